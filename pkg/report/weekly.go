package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"moodjournal-api/pkg/mood"
)

// WeeklyReportColumns is the header of the persisted weekly report.
var WeeklyReportColumns = []string{"Mood", "Count"}

// Rows returns one (category, count) pair per category with a non-zero
// count, canonical categories first.
func (s *WeeklySummary) Rows() [][2]string {
	if s == nil {
		return nil
	}
	order := mood.Categories()
	var others []mood.Category
	for c := range s.Counts {
		if !c.Valid() {
			others = append(others, c)
		}
	}
	sort.Slice(others, func(i, j int) bool { return others[i] < others[j] })
	order = append(order, others...)

	rows := make([][2]string, 0, len(order))
	for _, c := range order {
		n := s.Counts[c]
		if n <= 0 {
			continue
		}
		rows = append(rows, [2]string{string(c), strconv.Itoa(n)})
	}
	return rows
}

// EncodeWeeklyReport writes the summary as a Mood,Count CSV.
func EncodeWeeklyReport(w io.Writer, s *WeeklySummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(WeeklyReportColumns); err != nil {
		return err
	}
	for _, row := range s.Rows() {
		if err := cw.Write(row[:]); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteWeeklyReport replaces the report file at path with the summary.
func WriteWeeklyReport(path string, s *WeeklySummary) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("report: mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp_weekly_report_*.csv")
	if err != nil {
		return fmt.Errorf("report: create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := EncodeWeeklyReport(tmp, s); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("report: encode %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("report: chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("report: close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("report: rename %s: %w", path, err)
	}
	return nil
}
