package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"moodjournal-api/internal/svc"
	"moodjournal-api/internal/types"
	"moodjournal-api/pkg/journal"
)

type ListEntriesLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewListEntriesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListEntriesLogic {
	return &ListEntriesLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ListEntriesLogic) ListEntries() (resp *types.EntriesResponse, err error) {
	entries, err := l.svcCtx.Store.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, journal.ErrNoData
	}
	return &types.EntriesResponse{
		Total:   len(entries),
		Entries: toEntries(entries),
	}, nil
}
