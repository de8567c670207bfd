package logic

import (
	"context"
	"io"

	"github.com/zeromicro/go-zero/core/logx"

	"moodjournal-api/internal/svc"
)

type DownloadHistoryLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewDownloadHistoryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DownloadHistoryLogic {
	return &DownloadHistoryLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// DownloadHistory opens the journal file. The caller closes the reader.
func (l *DownloadHistoryLogic) DownloadHistory() (io.ReadCloser, int64, error) {
	return l.svcCtx.Store.Open()
}
