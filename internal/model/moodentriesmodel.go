package model

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ MoodEntriesModel = (*customMoodEntriesModel)(nil)

type (
	// MoodEntriesModel is an interface to be customized, add more methods here,
	// and implement the added methods in customMoodEntriesModel.
	MoodEntriesModel interface {
		moodEntriesModel
		Recent(ctx context.Context, limit int) ([]MoodEntries, error)
	}

	customMoodEntriesModel struct {
		*defaultMoodEntriesModel
	}
)

// NewMoodEntriesModel returns a model for the database table.
func NewMoodEntriesModel(conn sqlx.SqlConn) MoodEntriesModel {
	return &customMoodEntriesModel{
		defaultMoodEntriesModel: newMoodEntriesModel(conn),
	}
}

// Recent returns the newest entries first. Limit defaults to 20 when
// non-positive.
func (m *customMoodEntriesModel) Recent(ctx context.Context, limit int) ([]MoodEntries, error) {
	if limit <= 0 {
		limit = 20
	}
	query := fmt.Sprintf("select %s from %s order by entry_time desc limit $1", moodEntriesRows, m.table)
	var rows []MoodEntries
	if err := m.conn.QueryRowsCtx(ctx, &rows, query, limit); err != nil {
		return nil, err
	}
	return rows, nil
}
