package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"moodjournal-api/internal/svc"
	"moodjournal-api/internal/types"
)

type WeeklySummaryLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewWeeklySummaryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *WeeklySummaryLogic {
	return &WeeklySummaryLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// WeeklySummary counts entries in the trailing window. Days falls back to
// the configured window.
func (l *WeeklySummaryLogic) WeeklySummary(req *types.WeeklySummaryRequest) (resp *types.WeeklySummaryReply, err error) {
	days := req.Days
	if days <= 0 {
		days = l.svcCtx.Config.Journal.TrailingDays
	}
	summary, err := l.svcCtx.Aggregator.Summarize(days)
	if err != nil {
		return nil, err
	}
	return toSummary(summary), nil
}
