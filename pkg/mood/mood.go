package mood

import (
	"fmt"
	"strings"
)

// Category is the coarse sentiment label stored with every journal entry.
type Category string

const (
	Positive Category = "Positive"
	Negative Category = "Negative"
	Neutral  Category = "Neutral"
)

// Categories returns the fixed label set in display order.
func Categories() []Category {
	return []Category{Positive, Negative, Neutral}
}

// Valid reports whether c is one of the fixed labels.
func (c Category) Valid() bool {
	switch c {
	case Positive, Negative, Neutral:
		return true
	default:
		return false
	}
}

func (c Category) String() string { return string(c) }

// Derive maps a narrative analysis onto a category by keyword sniffing.
// "negative" wins over "positive" when both appear.
func Derive(narrative string) Category {
	lower := strings.ToLower(narrative)
	switch {
	case strings.Contains(lower, "negative"):
		return Negative
	case strings.Contains(lower, "positive"):
		return Positive
	default:
		return Neutral
	}
}

// Parse resolves a label case-insensitively.
func Parse(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

var narrativeReplacer = strings.NewReplacer(
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
	`"`, "'",
)

// NormalizeNarrative flattens newlines to spaces and double quotes to single
// quotes so the narrative stays on one CSV line.
func NormalizeNarrative(s string) string {
	return narrativeReplacer.Replace(s)
}

// Mode selects how the category of a new entry is decided.
type Mode string

const (
	// ModeKeyword derives the category from the narrative text.
	ModeKeyword Mode = "keyword"
	// ModeStructured asks the model for an explicit label alongside the narrative.
	ModeStructured Mode = "structured"
)

// ParseMode validates a configured mode; empty means keyword.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeKeyword:
		return ModeKeyword, nil
	case ModeStructured:
		return ModeStructured, nil
	default:
		return "", fmt.Errorf("mood: unknown mode %q (want keyword|structured)", s)
	}
}
