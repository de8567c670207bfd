// Package tracker runs one journal interaction end to end: classify the
// text, derive the mood, append the entry and notify any sinks.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"moodjournal-api/pkg/classifier"
	"moodjournal-api/pkg/journal"
	"moodjournal-api/pkg/mood"
)

// ErrEmptyInput is returned for blank submissions; the classifier is not
// called.
var ErrEmptyInput = errors.New("tracker: please enter some text")

// Appender is the write side of the journal.
type Appender interface {
	Append(rawInput, narrative string) (journal.Entry, error)
	AppendEntry(entry journal.Entry) (journal.Entry, error)
}

// StructuredClassifier returns a narrative together with an explicit label.
type StructuredClassifier interface {
	ClassifyStructured(ctx context.Context, promptPrefix, userText string) (*classifier.Analysis, error)
}

// Sink receives every entry after it has been written to the journal.
type Sink interface {
	Record(ctx context.Context, entry journal.Entry) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, entry journal.Entry) error

// Record calls f.
func (f SinkFunc) Record(ctx context.Context, entry journal.Entry) error { return f(ctx, entry) }

// Result is the outcome of a successful interaction. Narrative is the
// classifier's text as returned; Entry holds the normalised copy on disk.
type Result struct {
	Entry     journal.Entry `json:"entry"`
	Narrative string        `json:"narrative"`
}

// Tracker ties a classifier to a journal.
type Tracker struct {
	classifier classifier.Classifier
	structured StructuredClassifier
	store      Appender
	sinks      []Sink
	mode       mood.Mode
	prefix     string
}

// Option customises a Tracker.
type Option func(*Tracker)

// WithSinks adds secondary recorders. Nil sinks are ignored.
func WithSinks(sinks ...Sink) Option {
	return func(t *Tracker) {
		for _, s := range sinks {
			if s != nil {
				t.sinks = append(t.sinks, s)
			}
		}
	}
}

// WithMode selects how the category is obtained.
func WithMode(mode mood.Mode) Option {
	return func(t *Tracker) {
		if mode != "" {
			t.mode = mode
		}
	}
}

// WithPromptPrefix replaces the framing sent ahead of the user's text.
func WithPromptPrefix(prefix string) Option {
	return func(t *Tracker) {
		if strings.TrimSpace(prefix) != "" {
			t.prefix = prefix
		}
	}
}

// New builds a Tracker. Structured mode requires c to implement
// StructuredClassifier.
func New(c classifier.Classifier, store Appender, opts ...Option) (*Tracker, error) {
	if c == nil {
		return nil, errors.New("tracker: classifier is required")
	}
	if store == nil {
		return nil, errors.New("tracker: store is required")
	}
	t := &Tracker{
		classifier: c,
		store:      store,
		mode:       mood.ModeKeyword,
		prefix:     classifier.DefaultPromptPrefix,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.mode == mood.ModeStructured {
		sc, ok := c.(StructuredClassifier)
		if !ok {
			return nil, fmt.Errorf("tracker: %T does not support %s mode", c, mood.ModeStructured)
		}
		t.structured = sc
	}
	return t, nil
}

// Mode reports the active classification mode.
func (t *Tracker) Mode() mood.Mode { return t.mode }

// Analyze classifies text and appends exactly one entry on success.
// Classifier errors are returned unchanged and leave the journal untouched.
// Sink failures are logged and do not fail the call.
func (t *Tracker) Analyze(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	var (
		narrative string
		entry     journal.Entry
		err       error
	)
	if t.structured != nil {
		var analysis *classifier.Analysis
		analysis, err = t.structured.ClassifyStructured(ctx, t.prefix, text)
		if err != nil {
			return nil, err
		}
		narrative = analysis.Narrative
		entry, err = t.store.AppendEntry(journal.Entry{
			RawInput:  text,
			Category:  analysis.Category(),
			Narrative: narrative,
		})
	} else {
		narrative, err = t.classifier.Classify(ctx, t.prefix, text)
		if err != nil {
			return nil, err
		}
		entry, err = t.store.Append(text, narrative)
	}
	if err != nil {
		return nil, fmt.Errorf("tracker: record entry: %w", err)
	}

	t.notify(ctx, entry)
	return &Result{Entry: entry, Narrative: narrative}, nil
}

func (t *Tracker) notify(ctx context.Context, entry journal.Entry) {
	for _, s := range t.sinks {
		if err := s.Record(ctx, entry); err != nil {
			logx.WithContext(ctx).Errorf("tracker: sink %T failed for entry at %s: %v",
				s, entry.Timestamp.Format(journal.TimeLayout), err)
		}
	}
}
