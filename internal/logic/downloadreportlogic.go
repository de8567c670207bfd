package logic

import (
	"bytes"
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"moodjournal-api/internal/svc"
	"moodjournal-api/pkg/report"
)

type DownloadReportLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewDownloadReportLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DownloadReportLogic {
	return &DownloadReportLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// DownloadReport encodes the current weekly summary as Mood,Count CSV,
// refreshing the persisted report when enabled.
func (l *DownloadReportLogic) DownloadReport() ([]byte, error) {
	journalCfg := l.svcCtx.Config.Journal
	summary, err := l.svcCtx.Aggregator.Summarize(journalCfg.TrailingDays)
	if err != nil {
		return nil, err
	}
	if journalCfg.PersistReport {
		if err := report.WriteWeeklyReport(journalCfg.ReportPath, summary); err != nil {
			l.Errorf("write weekly report %s: %v", journalCfg.ReportPath, err)
		}
	}
	var buf bytes.Buffer
	if err := report.EncodeWeeklyReport(&buf, summary); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
