// Package feed keeps a bounded Redis list of the newest journal entries so
// listings do not have to re-read the CSV file.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeromicro/go-zero/core/logx"

	cachekeys "moodjournal-api/internal/cache"
	"moodjournal-api/pkg/journal"
	"moodjournal-api/pkg/mood"
)

// ListStore is the subset of *redis.Redis used by the feed.
type ListStore interface {
	LpushCtx(ctx context.Context, key string, values ...any) (int, error)
	LtrimCtx(ctx context.Context, key string, start, stop int64) error
	LrangeCtx(ctx context.Context, key string, start, stop int) ([]string, error)
	ExpireCtx(ctx context.Context, key string, seconds int) error
}

type item struct {
	Timestamp int64  `msgpack:"ts"`
	Input     string `msgpack:"in"`
	Mood      string `msgpack:"mood"`
	Narrative string `msgpack:"an"`
}

// Config enumerates feed dependencies.
type Config struct {
	Store  ListStore
	MaxLen int
	TTL    cachekeys.TTLSet
}

// Feed records entries into a capped Redis list.
type Feed struct {
	store  ListStore
	key    string
	maxLen int
	ttl    time.Duration
}

// New returns nil when no list store is configured.
func New(cfg Config) *Feed {
	if cfg.Store == nil {
		return nil
	}
	maxLen := cfg.MaxLen
	if maxLen <= 0 {
		maxLen = 50
	}
	return &Feed{
		store:  cfg.Store,
		key:    cachekeys.RecentEntriesKey(),
		maxLen: maxLen,
		ttl:    cachekeys.RecentEntriesTTL(cfg.TTL),
	}
}

// Record pushes the entry to the head of the list and trims the tail.
func (f *Feed) Record(ctx context.Context, entry journal.Entry) error {
	if f == nil {
		return nil
	}
	payload, err := msgpack.Marshal(item{
		Timestamp: entry.Timestamp.UnixNano(),
		Input:     entry.RawInput,
		Mood:      string(entry.Category),
		Narrative: entry.Narrative,
	})
	if err != nil {
		return fmt.Errorf("feed: encode entry: %w", err)
	}
	if _, err := f.store.LpushCtx(ctx, f.key, string(payload)); err != nil {
		return fmt.Errorf("feed: push entry: %w", err)
	}
	if err := f.store.LtrimCtx(ctx, f.key, 0, int64(f.maxLen-1)); err != nil {
		return fmt.Errorf("feed: trim: %w", err)
	}
	if f.ttl > 0 {
		if err := f.store.ExpireCtx(ctx, f.key, int(f.ttl/time.Second)); err != nil {
			return fmt.Errorf("feed: expire: %w", err)
		}
	}
	return nil
}

// Recent returns up to limit entries, newest first. Undecodable items are
// skipped.
func (f *Feed) Recent(ctx context.Context, limit int) ([]journal.Entry, error) {
	if f == nil {
		return nil, nil
	}
	if limit <= 0 || limit > f.maxLen {
		limit = f.maxLen
	}
	raw, err := f.store.LrangeCtx(ctx, f.key, 0, limit-1)
	if err != nil {
		return nil, fmt.Errorf("feed: read: %w", err)
	}
	out := make([]journal.Entry, 0, len(raw))
	for _, v := range raw {
		var it item
		if err := msgpack.Unmarshal([]byte(v), &it); err != nil {
			logx.WithContext(ctx).Errorf("feed: skip undecodable item: %v", err)
			continue
		}
		out = append(out, journal.Entry{
			Timestamp: time.Unix(0, it.Timestamp),
			RawInput:  it.Input,
			Category:  mood.Category(it.Mood),
			Narrative: it.Narrative,
		})
	}
	return out, nil
}
