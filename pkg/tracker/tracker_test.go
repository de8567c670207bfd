package tracker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"moodjournal-api/pkg/classifier"
	"moodjournal-api/pkg/journal"
	"moodjournal-api/pkg/mood"
)

var fixedNow = time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)

func newStore(t *testing.T) *journal.Store {
	t.Helper()
	return journal.NewStore(filepath.Join(t.TempDir(), "mood_history.csv"),
		journal.WithClock(func() time.Time { return fixedNow }))
}

type countingClassifier struct {
	calls   int
	prefix  string
	reply   string
	err     error
	analyse *classifier.Analysis
}

func (c *countingClassifier) Classify(_ context.Context, prefix, _ string) (string, error) {
	c.calls++
	c.prefix = prefix
	return c.reply, c.err
}

type structuredClassifier struct {
	countingClassifier
}

func (c *structuredClassifier) ClassifyStructured(_ context.Context, prefix, _ string) (*classifier.Analysis, error) {
	c.calls++
	c.prefix = prefix
	if c.err != nil {
		return nil, c.err
	}
	return c.analyse, nil
}

func TestAnalyzeKeywordMode(t *testing.T) {
	store := newStore(t)
	c := &countingClassifier{reply: "The tone is \"negative\"\nbut hopeful."}
	tr, err := New(c, store)
	require.NoError(t, err)
	require.Equal(t, mood.ModeKeyword, tr.Mode())

	res, err := tr.Analyze(context.Background(), "I feel sad")
	require.NoError(t, err)
	require.Equal(t, 1, c.calls)
	require.Equal(t, classifier.DefaultPromptPrefix, c.prefix)
	require.Equal(t, "The tone is \"negative\"\nbut hopeful.", res.Narrative)
	require.Equal(t, mood.Negative, res.Entry.Category)
	require.Equal(t, "The tone is 'negative' but hopeful.", res.Entry.Narrative)
	require.Equal(t, "I feel sad", res.Entry.RawInput)
	require.True(t, res.Entry.Timestamp.Equal(fixedNow))

	entries, err := store.ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, res.Entry, entries[0])
}

func TestAnalyzeEmptyNarrativeIsNeutral(t *testing.T) {
	store := newStore(t)
	tr, err := New(&countingClassifier{reply: ""}, store)
	require.NoError(t, err)

	res, err := tr.Analyze(context.Background(), "ok I guess")
	require.NoError(t, err)
	require.Empty(t, res.Narrative)
	require.Equal(t, mood.Neutral, res.Entry.Category)

	entries, err := store.ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, mood.Neutral, entries[0].Category)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	store := newStore(t)
	c := &countingClassifier{reply: "x"}
	tr, err := New(c, store)
	require.NoError(t, err)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := tr.Analyze(context.Background(), text)
		require.ErrorIs(t, err, ErrEmptyInput)
	}
	require.Zero(t, c.calls)
	_, statErr := os.Stat(store.Path())
	require.True(t, os.IsNotExist(statErr))
}

func TestAnalyzeClassifierFailureLeavesJournalUntouched(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Initialize())
	before, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	upstream := &classifier.Error{Op: "classify", Err: errors.New("503")}
	tr, err := New(&countingClassifier{err: upstream}, store)
	require.NoError(t, err)

	_, err = tr.Analyze(context.Background(), "hello")
	require.Same(t, upstream, err)

	after, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestAnalyzeStructuredMode(t *testing.T) {
	store := newStore(t)
	c := &structuredClassifier{countingClassifier{
		analyse: &classifier.Analysis{Narrative: "Mostly negative, some positive.", Mood: "Positive"},
	}}
	tr, err := New(c, store, WithMode(mood.ModeStructured), WithPromptPrefix("Custom framing:"))
	require.NoError(t, err)

	res, err := tr.Analyze(context.Background(), "mixed day")
	require.NoError(t, err)
	require.Equal(t, "Custom framing:", c.prefix)
	require.Equal(t, mood.Positive, res.Entry.Category, "explicit label wins over keywords")
}

func TestNewRejectsStructuredWithoutSupport(t *testing.T) {
	_, err := New(&countingClassifier{}, newStore(t), WithMode(mood.ModeStructured))
	require.Error(t, err)

	_, err = New(nil, newStore(t))
	require.Error(t, err)
	_, err = New(&countingClassifier{}, nil)
	require.Error(t, err)
}

func TestAnalyzeSinks(t *testing.T) {
	store := newStore(t)
	var recorded []journal.Entry
	ok := SinkFunc(func(_ context.Context, e journal.Entry) error {
		recorded = append(recorded, e)
		return nil
	})
	failing := SinkFunc(func(context.Context, journal.Entry) error { return errors.New("redis down") })

	tr, err := New(&countingClassifier{reply: "positive vibes"}, store, WithSinks(failing, nil, ok))
	require.NoError(t, err)

	res, err := tr.Analyze(context.Background(), "great run")
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	require.Equal(t, res.Entry, recorded[0])
}

func TestAnalyzeStoreFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	store := journal.NewStore(filepath.Join(blocker, "history.csv"))

	tr, err := New(&countingClassifier{reply: "neutral"}, store)
	require.NoError(t, err)
	_, err = tr.Analyze(context.Background(), "hi")
	require.ErrorContains(t, err, "tracker: record entry")
}
