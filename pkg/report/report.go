package report

import (
	"errors"
	"sort"
	"time"

	"moodjournal-api/pkg/journal"
	"moodjournal-api/pkg/mood"
)

// DefaultTrailingDays is the window used by the weekly summary.
const DefaultTrailingDays = 7

// ErrNoRecentData reports a non-empty journal with nothing inside the
// trailing window.
var ErrNoRecentData = errors.New("report: no mood entries in the trailing window")

// EntryReader is the read side of the journal.
type EntryReader interface {
	ReadAll() ([]journal.Entry, error)
}

// WeeklySummary counts entries per category inside the trailing window.
type WeeklySummary struct {
	Since  time.Time             `json:"since"`
	Until  time.Time             `json:"until"`
	Total  int                   `json:"total"`
	Counts map[mood.Category]int `json:"counts"`
}

// TrendPoint holds per-category counts for one calendar day.
type TrendPoint struct {
	Date   time.Time             `json:"date"`
	Counts map[mood.Category]int `json:"counts"`
}

// TrendSeries is a dense, date-ordered daily series with one value per
// category on every day between the first and last logged dates.
type TrendSeries struct {
	Categories []mood.Category `json:"categories"`
	Points     []TrendPoint    `json:"points"`
}

// Aggregator derives summaries from the full journal on every call.
type Aggregator struct {
	reader EntryReader
	nowFn  func() time.Time
}

// Option customises an Aggregator.
type Option func(*Aggregator)

// WithClock overrides the query time source.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.nowFn = now
		}
	}
}

// NewAggregator constructs an aggregator over reader.
func NewAggregator(reader EntryReader, opts ...Option) *Aggregator {
	a := &Aggregator{reader: reader, nowFn: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Summarize counts entries recorded within trailingDays of now.
//
// It returns journal.ErrNoData when the journal is absent or empty, a
// *journal.StoreReadError (which also matches journal.ErrNoData) when it
// cannot be read, and ErrNoRecentData when the journal has entries but none
// inside the window.
func (a *Aggregator) Summarize(trailingDays int) (*WeeklySummary, error) {
	if trailingDays <= 0 {
		trailingDays = DefaultTrailingDays
	}
	entries, err := a.load()
	if err != nil {
		return nil, err
	}

	until := a.nowFn()
	since := until.Add(-time.Duration(trailingDays) * 24 * time.Hour)

	summary := &WeeklySummary{
		Since:  since,
		Until:  until,
		Counts: make(map[mood.Category]int, 3),
	}
	for _, c := range mood.Categories() {
		summary.Counts[c] = 0
	}
	for _, e := range entries {
		if e.Timestamp.Before(since) {
			continue
		}
		summary.Counts[e.Category]++
		summary.Total++
	}
	if summary.Total == 0 {
		return nil, ErrNoRecentData
	}
	return summary, nil
}

// Trend buckets every entry by calendar date and category, filling each day
// between the earliest and latest dates with zero counts where nothing was
// logged.
func (a *Aggregator) Trend() (*TrendSeries, error) {
	entries, err := a.load()
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]map[mood.Category]int)
	extra := make(map[mood.Category]struct{})
	var first, last time.Time
	for i, e := range entries {
		day := truncateDay(e.Timestamp)
		if i == 0 || day.Before(first) {
			first = day
		}
		if i == 0 || day.After(last) {
			last = day
		}
		counts, ok := byDay[dayKey(day)]
		if !ok {
			counts = make(map[mood.Category]int)
			byDay[dayKey(day)] = counts
		}
		counts[e.Category]++
		if !e.Category.Valid() {
			extra[e.Category] = struct{}{}
		}
	}

	series := &TrendSeries{Categories: seriesCategories(extra)}
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		point := TrendPoint{Date: day, Counts: make(map[mood.Category]int, len(series.Categories))}
		for _, c := range series.Categories {
			point.Counts[c] = byDay[dayKey(day)][c]
		}
		series.Points = append(series.Points, point)
	}
	return series, nil
}

func (a *Aggregator) load() ([]journal.Entry, error) {
	entries, err := a.reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, journal.ErrNoData
	}
	return entries, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) string { return t.Format("2006-01-02") }

func seriesCategories(extra map[mood.Category]struct{}) []mood.Category {
	out := mood.Categories()
	if len(extra) == 0 {
		return out
	}
	others := make([]mood.Category, 0, len(extra))
	for c := range extra {
		others = append(others, c)
	}
	sort.Slice(others, func(i, j int) bool { return others[i] < others[j] })
	return append(out, others...)
}
