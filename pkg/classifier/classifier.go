// Package classifier turns a free-text journal entry into a narrative mood
// analysis by calling an external language model.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"moodjournal-api/pkg/llm"
	"moodjournal-api/pkg/mood"
)

// DefaultPromptPrefix frames the model as a psychologist's assistant.
const DefaultPromptPrefix = "You are a psychologist's AI assistant. Analyze the mood of the following text and provide a clear and insightful response:"

const structuredInstruction = "Reply with a JSON object holding your analysis in \"narrative\" and the overall mood in \"mood\", which must be one of Positive, Negative or Neutral."

// ErrEmptyResponse is wrapped in an *Error when a structured reply carries
// no narrative.
var ErrEmptyResponse = errors.New("classifier: empty response")

// Classifier produces a narrative analysis for a piece of user text.
type Classifier interface {
	Classify(ctx context.Context, promptPrefix, userText string) (string, error)
}

// Func adapts a plain function to Classifier.
type Func func(ctx context.Context, promptPrefix, userText string) (string, error)

// Classify calls f.
func (f Func) Classify(ctx context.Context, promptPrefix, userText string) (string, error) {
	return f(ctx, promptPrefix, userText)
}

// Analysis is the reply of the structured mode.
type Analysis struct {
	Narrative string `json:"narrative" jsonschema:"description=Clear and insightful analysis of the mood of the text"`
	Mood      string `json:"mood" jsonschema:"enum=Positive,enum=Negative,enum=Neutral"`
}

// Category returns the reported mood, falling back to the keyword heuristic
// over the narrative when the model answered outside the known labels.
func (a *Analysis) Category() mood.Category {
	if c, ok := mood.Parse(a.Mood); ok {
		return c
	}
	return mood.Derive(a.Narrative)
}

// Error wraps any failure of the classification call.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("classifier %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsError reports whether err came from a classifier.
func IsError(err error) bool {
	var ce *Error
	return errors.As(err, &ce)
}

// BuildPrompt joins the framing and the user's text on a new line.
func BuildPrompt(promptPrefix, userText string) string {
	if strings.TrimSpace(promptPrefix) == "" {
		return userText
	}
	return promptPrefix + "\n" + userText
}

// PromptData is handed to a prompt template.
type PromptData struct {
	Prefix string
	Text   string
}

// LLM classifies through an OpenAI-compatible chat endpoint. A single
// request is made per call; failures are returned as-is inside *Error.
type LLM struct {
	client      llm.LLMClient
	model       string
	temperature *float64
	template    *llm.PromptTemplate
}

// Option customises an LLM classifier.
type Option func(*LLM)

// WithModel selects a model alias; empty uses the client default.
func WithModel(model string) Option {
	return func(c *LLM) { c.model = strings.TrimSpace(model) }
}

// WithTemperature pins the sampling temperature.
func WithTemperature(t float64) Option {
	return func(c *LLM) { c.temperature = &t }
}

// WithTemplate renders prompts through tmpl instead of BuildPrompt.
func WithTemplate(tmpl *llm.PromptTemplate) Option {
	return func(c *LLM) { c.template = tmpl }
}

// NewLLM returns a classifier backed by client.
func NewLLM(client llm.LLMClient, opts ...Option) *LLM {
	c := &LLM{client: client}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns the model's narrative for userText.
func (c *LLM) Classify(ctx context.Context, promptPrefix, userText string) (string, error) {
	const op = "classify"
	prompt, err := c.render(promptPrefix, userText)
	if err != nil {
		return "", &Error{Op: op, Err: err}
	}
	resp, err := c.client.Chat(ctx, c.request(llm.Message{Role: llm.RoleUser, Content: prompt}))
	if err != nil {
		return "", &Error{Op: op, Err: err}
	}
	return resp.Text(), nil
}

// ClassifyStructured asks the model for a narrative and an explicit mood
// label in one JSON reply.
func (c *LLM) ClassifyStructured(ctx context.Context, promptPrefix, userText string) (*Analysis, error) {
	const op = "classify_structured"
	prompt, err := c.render(promptPrefix, userText)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	var analysis Analysis
	req := c.request(
		llm.Message{Role: llm.RoleSystem, Content: structuredInstruction},
		llm.Message{Role: llm.RoleUser, Content: prompt},
	)
	if _, err := c.client.ChatStructured(ctx, req, &analysis); err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	analysis.Narrative = strings.TrimSpace(analysis.Narrative)
	if analysis.Narrative == "" {
		return nil, &Error{Op: op, Err: ErrEmptyResponse}
	}
	return &analysis, nil
}

func (c *LLM) render(promptPrefix, userText string) (string, error) {
	if c.template == nil {
		return BuildPrompt(promptPrefix, userText), nil
	}
	return c.template.Render(PromptData{Prefix: promptPrefix, Text: userText})
}

func (c *LLM) request(msgs ...llm.Message) *llm.ChatRequest {
	return &llm.ChatRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: c.temperature,
	}
}
