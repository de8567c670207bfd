package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"moodjournal-api/internal/svc"
	"moodjournal-api/internal/types"
	"moodjournal-api/pkg/journal"
)

const (
	SourceRedis    = "redis"
	SourcePostgres = "postgres"
	SourceJournal  = "journal"
)

type RecentEntriesLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewRecentEntriesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RecentEntriesLogic {
	return &RecentEntriesLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// RecentEntries serves the newest entries first, preferring the Redis feed,
// then the Postgres mirror, then the tail of the journal file.
func (l *RecentEntriesLogic) RecentEntries(req *types.RecentEntriesRequest) (resp *types.RecentEntriesResponse, err error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}

	if l.svcCtx.Feed != nil {
		entries, err := l.svcCtx.Feed.Recent(l.ctx, limit)
		if err != nil {
			l.Errorf("recent entries from feed: %v", err)
		} else if len(entries) > 0 {
			return recentReply(SourceRedis, entries), nil
		}
	}
	if l.svcCtx.Mirror != nil {
		entries, err := l.svcCtx.Mirror.Recent(l.ctx, limit)
		if err != nil {
			l.Errorf("recent entries from mirror: %v", err)
		} else if len(entries) > 0 {
			return recentReply(SourcePostgres, entries), nil
		}
	}

	entries, err := l.svcCtx.Store.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, journal.ErrNoData
	}
	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	newest := make([]journal.Entry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		newest = append(newest, entries[i])
	}
	return recentReply(SourceJournal, newest), nil
}

func recentReply(source string, entries []journal.Entry) *types.RecentEntriesResponse {
	return &types.RecentEntriesResponse{Source: source, Entries: toEntries(entries)}
}
