package logic

import (
	"errors"
	"time"

	"moodjournal-api/internal/types"
	"moodjournal-api/pkg/journal"
	"moodjournal-api/pkg/mood"
	"moodjournal-api/pkg/report"
)

// ErrAnalysisUnavailable is returned by analysis when no LLM client could be
// configured.
var ErrAnalysisUnavailable = errors.New("analysis unavailable: no LLM credentials configured")

const dateLayout = "2006-01-02"

func toEntry(e journal.Entry) types.Entry {
	return types.Entry{
		Date:             e.Timestamp.Format(journal.TimeLayout),
		Input:            e.RawInput,
		Mood:             string(e.Category),
		DetailedAnalysis: e.Narrative,
	}
}

func toEntries(entries []journal.Entry) []types.Entry {
	out := make([]types.Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntry(e))
	}
	return out
}

func toSummary(s *report.WeeklySummary) *types.WeeklySummaryReply {
	reply := &types.WeeklySummaryReply{
		Since: s.Since.Format(time.RFC3339),
		Until: s.Until.Format(time.RFC3339),
		Total: s.Total,
	}
	for _, c := range mood.Categories() {
		reply.Counts = append(reply.Counts, types.MoodCount{Mood: string(c), Count: s.Counts[c]})
	}
	for _, row := range s.Rows() {
		c := mood.Category(row[0])
		if c.Valid() {
			continue
		}
		reply.Counts = append(reply.Counts, types.MoodCount{Mood: row[0], Count: s.Counts[c]})
	}
	return reply
}

func toTrend(s *report.TrendSeries) *types.TrendResponse {
	resp := &types.TrendResponse{
		Categories: make([]string, 0, len(s.Categories)),
		Points:     make([]types.TrendPoint, 0, len(s.Points)),
	}
	for _, c := range s.Categories {
		resp.Categories = append(resp.Categories, string(c))
	}
	for _, p := range s.Points {
		counts := make(map[string]int, len(p.Counts))
		for c, n := range p.Counts {
			counts[string(c)] = n
		}
		resp.Points = append(resp.Points, types.TrendPoint{Date: p.Date.Format(dateLayout), Counts: counts})
	}
	return resp
}
