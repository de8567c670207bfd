// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package types

type AnalyzeRequest struct {
	Text string `json:"text,optional"`
}

type AnalyzeResponse struct {
	Narrative string              `json:"narrative"`
	Mode      string              `json:"mode"`
	Entry     Entry               `json:"entry"`
	Summary   *WeeklySummaryReply `json:"summary,omitempty"`
}

type Entry struct {
	Date             string `json:"date"`
	Input            string `json:"input"`
	Mood             string `json:"mood"`
	DetailedAnalysis string `json:"detailed_analysis"`
}

type EntriesResponse struct {
	Total   int     `json:"total"`
	Entries []Entry `json:"entries"`
}

type RecentEntriesRequest struct {
	Limit int `form:"limit,default=10"`
}

type RecentEntriesResponse struct {
	Source  string  `json:"source"`
	Entries []Entry `json:"entries"`
}

type WeeklySummaryRequest struct {
	Days int `form:"days,optional"`
}

type MoodCount struct {
	Mood  string `json:"mood"`
	Count int    `json:"count"`
}

type WeeklySummaryReply struct {
	Since  string      `json:"since"`
	Until  string      `json:"until"`
	Total  int         `json:"total"`
	Counts []MoodCount `json:"counts"`
}

type TrendPoint struct {
	Date   string         `json:"date"`
	Counts map[string]int `json:"counts"`
}

type TrendResponse struct {
	Categories []string     `json:"categories"`
	Points     []TrendPoint `json:"points"`
}

type ChartRequest struct {
	Width  int `form:"width,optional"`
	Height int `form:"height,optional"`
}

type NoticeResponse struct {
	Message string `json:"message,omitempty"`
	Warning string `json:"warning,omitempty"`
}

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
