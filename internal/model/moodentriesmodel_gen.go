// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package model

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/stores/builder"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/core/stringx"
)

var (
	moodEntriesFieldNames          = builder.RawFieldNames(&MoodEntries{}, true)
	moodEntriesRows                = strings.Join(moodEntriesFieldNames, ",")
	moodEntriesRowsExpectAutoSet   = strings.Join(stringx.Remove(moodEntriesFieldNames, "created_at"), ",")
	moodEntriesRowsWithPlaceHolder = builder.PostgreSqlJoin(stringx.Remove(moodEntriesFieldNames, "id", "created_at"))
)

type (
	moodEntriesModel interface {
		Insert(ctx context.Context, data *MoodEntries) (sql.Result, error)
		FindOne(ctx context.Context, id string) (*MoodEntries, error)
		Update(ctx context.Context, data *MoodEntries) error
		Delete(ctx context.Context, id string) error
	}

	defaultMoodEntriesModel struct {
		conn  sqlx.SqlConn
		table string
	}

	MoodEntries struct {
		Id               string    `db:"id"`
		EntryTime        time.Time `db:"entry_time"`
		Input            string    `db:"input"`
		Mood             string    `db:"mood"`
		DetailedAnalysis string    `db:"detailed_analysis"`
		CreatedAt        time.Time `db:"created_at"`
	}
)

func newMoodEntriesModel(conn sqlx.SqlConn) *defaultMoodEntriesModel {
	return &defaultMoodEntriesModel{
		conn:  conn,
		table: `"public"."mood_entries"`,
	}
}

func (m *defaultMoodEntriesModel) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("delete from %s where id = $1", m.table)
	_, err := m.conn.ExecCtx(ctx, query, id)
	return err
}

func (m *defaultMoodEntriesModel) FindOne(ctx context.Context, id string) (*MoodEntries, error) {
	query := fmt.Sprintf("select %s from %s where id = $1 limit 1", moodEntriesRows, m.table)
	var resp MoodEntries
	err := m.conn.QueryRowCtx(ctx, &resp, query, id)
	switch err {
	case nil:
		return &resp, nil
	case sqlx.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *defaultMoodEntriesModel) Insert(ctx context.Context, data *MoodEntries) (sql.Result, error) {
	query := fmt.Sprintf("insert into %s (%s) values ($1, $2, $3, $4, $5)", m.table, moodEntriesRowsExpectAutoSet)
	ret, err := m.conn.ExecCtx(ctx, query, data.Id, data.EntryTime, data.Input, data.Mood, data.DetailedAnalysis)
	return ret, err
}

func (m *defaultMoodEntriesModel) Update(ctx context.Context, data *MoodEntries) error {
	query := fmt.Sprintf("update %s set %s where id = $1", m.table, moodEntriesRowsWithPlaceHolder)
	_, err := m.conn.ExecCtx(ctx, query, data.Id, data.EntryTime, data.Input, data.Mood, data.DetailedAnalysis)
	return err
}

func (m *defaultMoodEntriesModel) tableName() string {
	return m.table
}
