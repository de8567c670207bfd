package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"

	"moodjournal-api/internal/logic"
	"moodjournal-api/internal/types"
	"moodjournal-api/pkg/chart"
	"moodjournal-api/pkg/classifier"
	"moodjournal-api/pkg/journal"
	"moodjournal-api/pkg/report"
	"moodjournal-api/pkg/tracker"
)

const (
	msgNoHistory  = "No mood history available yet."
	msgNoThisWeek = "No data available for this week."
	msgEmptyInput = "Please enter some text."
)

// badRequest marks request decoding failures.
type badRequest struct{ err error }

func (e badRequest) Error() string { return e.err.Error() }
func (e badRequest) Unwrap() error { return e.err }

// ErrorHandler maps domain errors onto HTTP replies. Missing or unreadable
// history is informational and answered with 200.
func ErrorHandler(ctx context.Context, err error) (int, any) {
	var br badRequest
	switch {
	case errors.As(err, &br):
		return http.StatusBadRequest, types.ErrorResponse{Code: http.StatusBadRequest, Message: br.Error()}
	case errors.Is(err, tracker.ErrEmptyInput):
		return http.StatusBadRequest, types.ErrorResponse{Code: http.StatusBadRequest, Message: msgEmptyInput}
	case journal.IsReadError(err):
		logx.WithContext(ctx).Errorf("journal unreadable: %v", err)
		return http.StatusOK, types.NoticeResponse{Warning: err.Error()}
	case errors.Is(err, journal.ErrNoData), errors.Is(err, chart.ErrEmptySeries):
		return http.StatusOK, types.NoticeResponse{Message: msgNoHistory}
	case errors.Is(err, report.ErrNoRecentData):
		return http.StatusOK, types.NoticeResponse{Message: msgNoThisWeek}
	case classifier.IsError(err):
		logx.WithContext(ctx).Errorf("classifier failed: %v", err)
		return http.StatusBadGateway, types.ErrorResponse{Code: http.StatusBadGateway, Message: err.Error()}
	case errors.Is(err, logic.ErrAnalysisUnavailable):
		return http.StatusServiceUnavailable, types.ErrorResponse{Code: http.StatusServiceUnavailable, Message: err.Error()}
	default:
		logx.WithContext(ctx).Errorf("request failed: %v", err)
		return http.StatusInternalServerError, types.ErrorResponse{Code: http.StatusInternalServerError, Message: err.Error()}
	}
}
