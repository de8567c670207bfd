package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"moodjournal-api/internal/svc"
	llmpkg "moodjournal-api/pkg/llm"
)

type fakeClient struct {
	llmpkg.LLMClient
	reply string
}

func (f *fakeClient) Chat(context.Context, *llmpkg.ChatRequest) (*llmpkg.ChatResponse, error) {
	return &llmpkg.ChatResponse{Choices: []llmpkg.Choice{{Message: llmpkg.Message{Content: f.reply}}}}, nil
}

func (f *fakeClient) GetConfig() *llmpkg.Config { return &llmpkg.Config{DefaultModel: "fake"} }

func writeConfig(t *testing.T) (string, string) {
	t.Helper()
	t.Setenv("NO_DOTENV", "1")
	t.Setenv("MOODJOURNAL_LLM_API_KEY", "")
	dir := t.TempDir()
	journalPath := filepath.Join(dir, "mood_history.csv")
	body := "Name: moodctl\nPort: 8888\nLog:\n  Mode: console\n  Level: error\nJournal:\n  Path: " + journalPath +
		"\n  ReportPath: " + filepath.Join(dir, "weekly_report.csv") + "\n"
	path := filepath.Join(dir, "moodjournal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path, dir
}

func runCmd(t *testing.T, cfgPath string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	client := &fakeClient{reply: "A positive outlook despite the rain."}
	err := run(context.Background(), append([]string{"-f", cfgPath}, args...), &out, svc.WithLLMClient(client))
	require.NoError(t, err)
	return out.String()
}

func TestRunWithEmptyJournal(t *testing.T) {
	cfgPath, _ := writeConfig(t)
	require.Equal(t, "No mood history available yet.\n", runCmd(t, cfgPath, "summary"))
	require.Equal(t, "No mood history available yet.\n", runCmd(t, cfgPath, "trend"))
	require.Equal(t, "Please enter some text.\n", runCmd(t, cfgPath, "analyze", "-text", "  "))
}

func TestRunAnalyzeAndReports(t *testing.T) {
	cfgPath, dir := writeConfig(t)

	out := runCmd(t, cfgPath, "analyze", "-text", "rainy but hopeful")
	require.Contains(t, out, "AI Analysis: A positive outlook despite the rain.")
	require.Contains(t, out, "Logged as Positive")
	require.Contains(t, out, "Positive   1")

	out = runCmd(t, cfgPath, "trend")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "Date"))

	require.Equal(t, "Mood,Count\nPositive,1\n", runCmd(t, cfgPath, "report", "-out", "-"))

	chartPath := filepath.Join(dir, "trend.png")
	require.Contains(t, runCmd(t, cfgPath, "chart", "-out", chartPath), "(1 days)")
	f, err := os.Open(chartPath)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	require.NoError(t, err)

	out = runCmd(t, cfgPath, "history")
	require.True(t, strings.HasPrefix(out, "Date,Input,Mood,Detailed Analysis"))
	require.Contains(t, out, "rainy but hopeful")
}

func TestRunUsageErrors(t *testing.T) {
	cfgPath, _ := writeConfig(t)
	var out bytes.Buffer
	require.Error(t, run(context.Background(), []string{"-f", cfgPath}, &out))
	require.Contains(t, out.String(), "usage: moodctl")

	out.Reset()
	require.ErrorContains(t, run(context.Background(), []string{"-f", cfgPath, "dance"}, &out), `unknown command "dance"`)
}
