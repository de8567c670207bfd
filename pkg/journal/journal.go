package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"moodjournal-api/pkg/mood"
)

// Column names of the backing CSV file, in on-disk order.
const (
	ColumnDate      = "Date"
	ColumnInput     = "Input"
	ColumnMood      = "Mood"
	ColumnNarrative = "Detailed Analysis"
)

// TimeLayout is the timestamp format written to the Date column (local time).
const TimeLayout = "2006-01-02 15:04:05"

// Columns is the fixed header of the log file.
var Columns = []string{ColumnDate, ColumnInput, ColumnMood, ColumnNarrative}

// ErrNoData reports that no mood history exists yet: the file is absent,
// has zero bytes, or holds only the header.
var ErrNoData = errors.New("journal: no mood history available yet")

// Entry is one analysed journal submission.
type Entry struct {
	Timestamp time.Time     `json:"timestamp"`
	RawInput  string        `json:"input"`
	Category  mood.Category `json:"mood"`
	Narrative string        `json:"detailed_analysis"`
}

func (e Entry) record() []string {
	return []string{
		e.Timestamp.Format(TimeLayout),
		e.RawInput,
		string(e.Category),
		e.Narrative,
	}
}

// Store is an append-only CSV journal. It keeps no in-memory state beyond
// its configuration; every read goes back to disk.
type Store struct {
	path       string
	nowFn      func() time.Time
	categorize func(string) mood.Category
}

// Option customises a Store.
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.nowFn = now
		}
	}
}

// WithCategorizer overrides how Append derives the category from a narrative.
func WithCategorizer(fn func(string) mood.Category) Option {
	return func(s *Store) {
		if fn != nil {
			s.categorize = fn
		}
	}
}

// NewStore constructs a journal store backed by path.
func NewStore(path string, opts ...Option) *Store {
	if strings.TrimSpace(path) == "" {
		path = "mood_history.csv"
	}
	s := &Store{path: path, nowFn: time.Now, categorize: mood.Derive}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Initialize creates the file with its header when it does not exist yet.
// An existing file is never modified.
func (s *Store) Initialize() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("journal: stat %s: %w", s.path, err)
	}
	if err := ensureDir(s.path); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return fmt.Errorf("journal: create %s: %w", s.path, err)
	}
	return writeAndClose(f, [][]string{Columns})
}

// Append records a new entry for rawInput, deriving the category from the
// narrative and normalising the narrative before it is written.
func (s *Store) Append(rawInput, narrative string) (Entry, error) {
	entry := Entry{
		RawInput:  rawInput,
		Category:  s.categorize(narrative),
		Narrative: narrative,
	}
	return s.AppendEntry(entry)
}

// AppendEntry records an already classified entry. A zero timestamp is
// replaced by the store clock.
func (s *Store) AppendEntry(entry Entry) (Entry, error) {
	if !entry.Category.Valid() {
		return Entry{}, fmt.Errorf("journal: invalid mood category %q", entry.Category)
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.nowFn()
	}
	// The file only keeps second resolution.
	entry.Timestamp = entry.Timestamp.Truncate(time.Second)
	entry.Narrative = mood.NormalizeNarrative(entry.Narrative)

	if err := ensureDir(s.path); err != nil {
		return Entry{}, err
	}
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return Entry{}, fmt.Errorf("journal: open %s: %w", s.path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return Entry{}, fmt.Errorf("journal: stat %s: %w", s.path, err)
	}

	rows := make([][]string, 0, 2)
	if info.Size() == 0 {
		rows = append(rows, Columns)
	}
	rows = append(rows, entry.record())
	if err := writeAndClose(f, rows); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// ReadAll returns every entry in file order. A missing or zero-byte file
// yields (nil, nil). A file without the Date or Mood column, or with a row
// that cannot be parsed, yields a *StoreReadError.
func (s *Store) ReadAll() ([]Entry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("journal: open %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, &StoreReadError{Path: s.path, Err: err}
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, &StoreReadError{Path: s.path, Err: err}
	}

	var entries []Entry
	line := 1
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, &StoreReadError{Path: s.path, Err: err}
		}
		entry, err := idx.parse(rec)
		if err != nil {
			return nil, &StoreReadError{Path: s.path, Err: fmt.Errorf("row %d: %w", line, err)}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Open returns the raw file for download along with its size.
func (s *Store) Open() (io.ReadCloser, int64, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, ErrNoData
		}
		return nil, 0, fmt.Errorf("journal: open %s: %w", s.path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, fmt.Errorf("journal: stat %s: %w", s.path, err)
	}
	if info.Size() == 0 {
		_ = f.Close()
		return nil, 0, ErrNoData
	}
	return f, info.Size(), nil
}

// ParseTimestamp parses a Date column value.
func ParseTimestamp(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range []string{TimeLayout, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", v)
}

type columns struct {
	date, input, mood, narrative int
}

func columnIndex(header []string) (columns, error) {
	idx := columns{date: -1, input: -1, mood: -1, narrative: -1}
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case ColumnDate:
			idx.date = i
		case ColumnInput:
			idx.input = i
		case ColumnMood:
			idx.mood = i
		case ColumnNarrative:
			idx.narrative = i
		}
	}
	var missing []string
	if idx.date < 0 {
		missing = append(missing, ColumnDate)
	}
	if idx.mood < 0 {
		missing = append(missing, ColumnMood)
	}
	if len(missing) > 0 {
		return idx, &MissingColumnsError{Columns: missing}
	}
	return idx, nil
}

func (c columns) parse(rec []string) (Entry, error) {
	field := func(i int) string {
		if i < 0 || i >= len(rec) {
			return ""
		}
		return rec[i]
	}
	ts, err := ParseTimestamp(field(c.date))
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Timestamp: ts,
		RawInput:  field(c.input),
		Category:  mood.Category(strings.TrimSpace(field(c.mood))),
		Narrative: field(c.narrative),
	}, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("journal: mkdir %s: %w", dir, err)
	}
	return nil
}

func writeAndClose(f *os.File, rows [][]string) error {
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("journal: write %s: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("journal: close %s: %w", f.Name(), err)
	}
	return nil
}
