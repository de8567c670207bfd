package logic

import (
	"context"
	"errors"

	"github.com/zeromicro/go-zero/core/logx"

	"moodjournal-api/internal/svc"
	"moodjournal-api/internal/types"
	"moodjournal-api/pkg/journal"
	"moodjournal-api/pkg/report"
)

type AnalyzeEntryLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewAnalyzeEntryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *AnalyzeEntryLogic {
	return &AnalyzeEntryLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// AnalyzeEntry classifies the text, logs it and returns the refreshed
// weekly summary alongside the narrative.
func (l *AnalyzeEntryLogic) AnalyzeEntry(req *types.AnalyzeRequest) (resp *types.AnalyzeResponse, err error) {
	if l.svcCtx.Tracker == nil {
		return nil, ErrAnalysisUnavailable
	}
	result, err := l.svcCtx.Tracker.Analyze(l.ctx, req.Text)
	if err != nil {
		return nil, err
	}
	resp = &types.AnalyzeResponse{
		Narrative: result.Narrative,
		Mode:      string(l.svcCtx.Tracker.Mode()),
		Entry:     toEntry(result.Entry),
	}

	journalCfg := l.svcCtx.Config.Journal
	summary, err := l.svcCtx.Aggregator.Summarize(journalCfg.TrailingDays)
	switch {
	case err == nil:
		resp.Summary = toSummary(summary)
		if journalCfg.PersistReport {
			if err := report.WriteWeeklyReport(journalCfg.ReportPath, summary); err != nil {
				l.Errorf("write weekly report %s: %v", journalCfg.ReportPath, err)
			}
		}
	case errors.Is(err, report.ErrNoRecentData), errors.Is(err, journal.ErrNoData):
		l.Infof("weekly summary unavailable after analysis: %v", err)
	default:
		l.Errorf("weekly summary after analysis: %v", err)
	}
	return resp, nil
}
