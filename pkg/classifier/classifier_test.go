package classifier

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"moodjournal-api/pkg/llm"
	"moodjournal-api/pkg/mood"
)

type fakeLLM struct {
	llm.LLMClient

	reply      string
	structured string
	err        error
	requests   []*llm.ChatRequest
}

func (f *fakeLLM) Chat(_ context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &llm.ChatResponse{Choices: []llm.Choice{{Message: llm.Message{Role: llm.RoleAssistant, Content: f.reply}}}}, nil
}

func (f *fakeLLM) ChatStructured(_ context.Context, req *llm.ChatRequest, target any) (any, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if err := llm.ParseStructured(f.structured, target); err != nil {
		return nil, err
	}
	return target, nil
}

func TestBuildPrompt(t *testing.T) {
	require.Equal(t, DefaultPromptPrefix+"\nI feel sad", BuildPrompt(DefaultPromptPrefix, "I feel sad"))
	require.Equal(t, "just text", BuildPrompt("  ", "just text"))
}

func TestClassify(t *testing.T) {
	fake := &fakeLLM{reply: "  The tone is negative overall.\n"}
	c := NewLLM(fake, WithModel("analysis"), WithTemperature(0.2))

	out, err := c.Classify(context.Background(), DefaultPromptPrefix, "I feel sad")
	require.NoError(t, err)
	require.Equal(t, "  The tone is negative overall.\n", out, "reply is returned as sent")

	require.Len(t, fake.requests, 1)
	req := fake.requests[0]
	require.Equal(t, "analysis", req.Model)
	require.InDelta(t, 0.2, *req.Temperature, 1e-9)
	require.Len(t, req.Messages, 1)
	require.Equal(t, llm.RoleUser, req.Messages[0].Role)
	require.Equal(t, DefaultPromptPrefix+"\nI feel sad", req.Messages[0].Content)
}

func TestClassifyFailureIsWrappedOnce(t *testing.T) {
	upstream := errors.New("quota exceeded")
	fake := &fakeLLM{err: upstream}

	_, err := NewLLM(fake).Classify(context.Background(), DefaultPromptPrefix, "hello")
	require.ErrorIs(t, err, upstream)
	require.True(t, IsError(err))

	var ce *Error
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "classify", ce.Op)
	require.Len(t, fake.requests, 1, "no retry")
}

func TestClassifyEmptyReply(t *testing.T) {
	out, err := NewLLM(&fakeLLM{reply: "   "}).Classify(context.Background(), "", "hello")
	require.NoError(t, err)
	require.Equal(t, "   ", out)
}

func TestClassifyWithTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mood.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("{{ .Prefix }}\n---\n{{ .Text }}"), 0o600))
	tmpl, err := llm.NewPromptTemplate(path, nil)
	require.NoError(t, err)

	fake := &fakeLLM{reply: "calm"}
	_, err = NewLLM(fake, WithTemplate(tmpl)).Classify(context.Background(), "Analyze:", "a quiet day")
	require.NoError(t, err)
	require.Equal(t, "Analyze:\n---\na quiet day", fake.requests[0].Messages[0].Content)
}

func TestClassifyStructured(t *testing.T) {
	fake := &fakeLLM{structured: `{"narrative":"Hopeful and light.","mood":"positive"}`}
	analysis, err := NewLLM(fake).ClassifyStructured(context.Background(), DefaultPromptPrefix, "Got the job!")
	require.NoError(t, err)
	require.Equal(t, "Hopeful and light.", analysis.Narrative)
	require.Equal(t, mood.Positive, analysis.Category())

	req := fake.requests[0]
	require.Len(t, req.Messages, 2)
	require.Equal(t, llm.RoleSystem, req.Messages[0].Role)
	require.Equal(t, DefaultPromptPrefix+"\nGot the job!", req.Messages[1].Content)
}

func TestClassifyStructuredErrors(t *testing.T) {
	_, err := NewLLM(&fakeLLM{structured: `{"narrative":"","mood":"Neutral"}`}).
		ClassifyStructured(context.Background(), "", "x")
	require.ErrorIs(t, err, ErrEmptyResponse)

	_, err = NewLLM(&fakeLLM{structured: `not json`}).ClassifyStructured(context.Background(), "", "x")
	require.True(t, IsError(err))
}

func TestAnalysisCategoryFallsBackToKeywords(t *testing.T) {
	a := &Analysis{Narrative: "Mostly negative, some positive moments.", Mood: "Mixed"}
	require.Equal(t, mood.Negative, a.Category())

	a = &Analysis{Narrative: "Flat.", Mood: ""}
	require.Equal(t, mood.Neutral, a.Category())
}

func TestFunc(t *testing.T) {
	var c Classifier = Func(func(_ context.Context, prefix, text string) (string, error) {
		return prefix + "|" + text, nil
	})
	out, err := c.Classify(context.Background(), "p", "t")
	require.NoError(t, err)
	require.Equal(t, "p|t", out)
}
