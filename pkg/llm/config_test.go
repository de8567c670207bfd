package llm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{envAPIKey, envBaseURL, envDefaultModel, envTimeout, envMaxRetries} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	clearLLMEnv(t)

	t.Run("load from valid file", func(t *testing.T) {
		content := `
base_url: "https://llm.example.test/v1"
api_key: "test-api-key"
default_model: "analysis"
timeout: "30s"
log_level: "debug"

models:
  analysis:
    model_name: "gemini-2.0-flash"
    temperature: 0.4
    max_completion_tokens: 512
`
		path := filepath.Join(t.TempDir(), "llm.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		require.Equal(t, "https://llm.example.test/v1", cfg.BaseURL)
		require.Equal(t, "test-api-key", cfg.APIKey)
		require.Equal(t, "analysis", cfg.DefaultModel)
		require.Equal(t, 30*time.Second, cfg.Timeout)
		require.Zero(t, cfg.MaxRetries)
		require.Equal(t, "debug", cfg.LogLevel)

		model, ok := cfg.Model("analysis")
		require.True(t, ok)
		require.Equal(t, "gemini-2.0-flash", model.ModelName)
		require.InDelta(t, 0.4, *model.Temperature, 0.0001)
		require.Equal(t, 512, *model.MaxCompletionTokens)
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/llm.yaml")
		require.ErrorContains(t, err, "open llm config")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "invalid.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api_key: x\n  bad: yaml: here\n"), 0o644))
		_, err := LoadConfig(path)
		require.ErrorContains(t, err, "unmarshal llm config")
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	clearLLMEnv(t)

	cfg, err := LoadConfigFromReader(strings.NewReader(`api_key: "k"`))
	require.NoError(t, err)
	require.Equal(t, defaultBaseURL, cfg.BaseURL)
	require.Equal(t, defaultModel, cfg.DefaultModel)
	require.Equal(t, defaultLogLevel, cfg.LogLevel)
	require.Zero(t, cfg.Timeout, "no timeout unless configured")
	require.Zero(t, cfg.MaxRetries, "no retries unless configured")
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("GEMINI_API_KEY", "from-dotenv")
	t.Setenv(envDefaultModel, "gemini-1.5-pro")
	t.Setenv(envTimeout, "45s")
	t.Setenv(envMaxRetries, "2")

	data := `
api_key: "${GEMINI_API_KEY}"
default_model: "gemini-2.0-flash"
timeout: "10s"
`
	cfg, err := LoadConfigFromReader(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "from-dotenv", cfg.APIKey)
	require.Equal(t, "gemini-1.5-pro", cfg.DefaultModel)
	require.Equal(t, 45*time.Second, cfg.Timeout)
	require.Equal(t, 2, cfg.MaxRetries)

	t.Setenv(envAPIKey, "explicit")
	cfg, err = LoadConfigFromReader(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "explicit", cfg.APIKey)
}

func TestLoadConfigMissingKey(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("UNSET_KEY_FOR_TEST", "")
	_, err := LoadConfigFromReader(strings.NewReader(`api_key: "${UNSET_KEY_FOR_TEST}"`))
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{BaseURL: "https://llm.example.test", APIKey: "k", DefaultModel: "m"}
	}
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing key", mutate: func(c *Config) { c.APIKey = " " }, errMsg: "api_key"},
		{name: "missing base url", mutate: func(c *Config) { c.BaseURL = "" }, errMsg: "base_url"},
		{name: "missing model", mutate: func(c *Config) { c.DefaultModel = "" }, errMsg: "default_model"},
		{name: "negative timeout", mutate: func(c *Config) { c.Timeout = -time.Second }, errMsg: "timeout"},
		{name: "negative retries", mutate: func(c *Config) { c.MaxRetries = -1 }, errMsg: "max_retries"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestConfigParseTimeout(t *testing.T) {
	tests := []struct {
		raw       string
		expected  time.Duration
		expectErr bool
	}{
		{raw: "30s", expected: 30 * time.Second},
		{raw: "2m", expected: 2 * time.Minute},
		{raw: "", expected: 0},
		{raw: "   ", expected: 0},
		{raw: "0s", expected: 0},
		{raw: "invalid", expectErr: true},
		{raw: "-10s", expectErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			cfg := &Config{timeoutRaw: tt.raw}
			err := cfg.parseTimeout()
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, cfg.Timeout)
		})
	}
}

func TestConfigResolveModel(t *testing.T) {
	temp := 0.2
	cfg := &Config{
		DefaultModel: "analysis",
		Models: map[string]ModelConfig{
			"analysis": {ModelName: "gemini-2.0-flash", Temperature: &temp},
			"bare":     {},
		},
	}

	id, modelCfg := cfg.ResolveModel("")
	require.Equal(t, "gemini-2.0-flash", id)
	require.Equal(t, &temp, modelCfg.Temperature)

	id, _ = cfg.ResolveModel("bare")
	require.Equal(t, "bare", id)

	id, modelCfg = cfg.ResolveModel("gpt-4o-mini")
	require.Equal(t, "gpt-4o-mini", id)
	require.Nil(t, modelCfg.Temperature)

	_, ok := (&Config{}).Model("analysis")
	require.False(t, ok)
}

func TestConfigClone(t *testing.T) {
	tokens := 256
	original := &Config{
		BaseURL:      "https://llm.example.test",
		APIKey:       "k",
		DefaultModel: "analysis",
		Timeout:      30 * time.Second,
		Models:       map[string]ModelConfig{"analysis": {ModelName: "gemini", MaxCompletionTokens: &tokens}},
	}

	cloned := original.Clone()
	require.Equal(t, original, cloned)
	require.NotSame(t, original, cloned)

	cloned.Models["other"] = ModelConfig{}
	_, ok := original.Model("other")
	require.False(t, ok)

	var nilCfg *Config
	require.Nil(t, nilCfg.Clone())
}
