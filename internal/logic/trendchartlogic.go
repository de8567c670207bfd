package logic

import (
	"bytes"
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"moodjournal-api/internal/svc"
	"moodjournal-api/internal/types"
	"moodjournal-api/pkg/chart"
)

const maxChartSide = 4096

type TrendChartLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewTrendChartLogic(ctx context.Context, svcCtx *svc.ServiceContext) *TrendChartLogic {
	return &TrendChartLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// TrendChart renders the trend series as a PNG.
func (l *TrendChartLogic) TrendChart(req *types.ChartRequest) ([]byte, error) {
	series, err := l.svcCtx.Aggregator.Trend()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	opts := chart.Options{Width: clampSide(req.Width), Height: clampSide(req.Height)}
	if err := chart.RenderTrend(&buf, series, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clampSide(v int) int {
	if v > maxChartSide {
		return maxChartSide
	}
	return v
}
