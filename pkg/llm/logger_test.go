package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/logx"
)

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "error", "invalid", ""} {
		t.Run(level, func(t *testing.T) {
			logger := NewLogger(level)
			require.NotNil(t, logger)
			require.Implements(t, (*Logger)(nil), logger)
		})
	}
}

func TestLoggerMethods(t *testing.T) {
	ctx := context.Background()
	for name, logger := range map[string]Logger{"logx": NewLogger("error"), "nop": NopLogger()} {
		t.Run(name, func(t *testing.T) {
			require.NotPanics(t, func() {
				logger.Debug(ctx, "debug message", Fields{"key": "value"})
				logger.Info(ctx, "info message", nil)
				logger.Warn(ctx, "warning message", Fields{})
				logger.Error(ctx, errors.New("boom"), Fields{"model": "gemini"})
			})
		})
	}
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, uint32(logx.DebugLevel), parseLevel("  DEBUG "))
	require.Equal(t, uint32(logx.ErrorLevel), parseLevel("error"))
	require.Equal(t, parseLevel("severe"), parseLevel("fatal"))
	require.Equal(t, uint32(logx.InfoLevel), parseLevel("invalid"))
	require.Equal(t, uint32(logx.InfoLevel), parseLevel(""))
}

func TestMsgWithFields(t *testing.T) {
	require.Equal(t, "message", msgWithFields("message", nil))
	require.Equal(t, "message", msgWithFields("message", Fields{}))
	require.Equal(t,
		"llm chat success | completion_tokens=12 duration_ms=40 model=gemini-2.0-flash",
		msgWithFields("llm chat success", Fields{
			"model":             "gemini-2.0-flash",
			"duration_ms":       40,
			"completion_tokens": 12,
		}),
	)
}
