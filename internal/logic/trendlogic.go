package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"moodjournal-api/internal/svc"
	"moodjournal-api/internal/types"
)

type TrendLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewTrendLogic(ctx context.Context, svcCtx *svc.ServiceContext) *TrendLogic {
	return &TrendLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *TrendLogic) Trend() (resp *types.TrendResponse, err error) {
	series, err := l.svcCtx.Aggregator.Trend()
	if err != nil {
		return nil, err
	}
	return toTrend(series), nil
}
