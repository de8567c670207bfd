package mirror

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"moodjournal-api/internal/model"
	"moodjournal-api/pkg/journal"
	"moodjournal-api/pkg/mood"
)

// Service mirrors journal entries into Postgres. The CSV journal stays the
// source of truth; the table only serves listings and aggregate queries.
type Service struct {
	entriesModel model.MoodEntriesModel
	newID        func() string
}

// Config enumerates dependencies required to mirror entries.
type Config struct {
	SQLConn      sqlx.SqlConn
	EntriesModel model.MoodEntriesModel
}

// NewService wires the mirror. Returns nil when no database is configured.
func NewService(cfg Config) *Service {
	entriesModel := cfg.EntriesModel
	if entriesModel == nil {
		if cfg.SQLConn == nil {
			return nil
		}
		entriesModel = model.NewMoodEntriesModel(cfg.SQLConn)
	}
	return &Service{
		entriesModel: entriesModel,
		newID:        uuid.NewString,
	}
}

// Record inserts one entry under a fresh id.
func (s *Service) Record(ctx context.Context, entry journal.Entry) error {
	if s == nil || s.entriesModel == nil {
		return nil
	}
	row := &model.MoodEntries{
		Id:               s.newID(),
		EntryTime:        entry.Timestamp,
		Input:            entry.RawInput,
		Mood:             string(entry.Category),
		DetailedAnalysis: entry.Narrative,
	}
	if row.EntryTime.IsZero() {
		row.EntryTime = time.Now()
	}
	if _, err := s.entriesModel.Insert(ctx, row); err != nil {
		return fmt.Errorf("mirror entry: %w", err)
	}
	logx.WithContext(ctx).Debugf("mirror: mirrored %s mood=%s", row.Id, row.Mood)
	return nil
}

// Recent returns up to limit mirrored entries, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]journal.Entry, error) {
	if s == nil || s.entriesModel == nil {
		return nil, nil
	}
	rows, err := s.entriesModel.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load recent entries: %w", err)
	}
	out := make([]journal.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, journal.Entry{
			Timestamp: row.EntryTime.Local(),
			RawInput:  row.Input,
			Category:  mood.Category(strings.TrimSpace(row.Mood)),
			Narrative: row.DetailedAnalysis,
		})
	}
	return out, nil
}
