package journal

import (
	"errors"
	"fmt"
	"strings"
)

// StoreReadError reports a journal file that exists but cannot be used.
// It matches ErrNoData so aggregation code can treat it as absent data
// while still surfacing the cause as a warning.
type StoreReadError struct {
	Path string
	Err  error
}

func (e *StoreReadError) Error() string {
	return fmt.Sprintf("journal: read %s: %v", e.Path, e.Err)
}

func (e *StoreReadError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrNoData) true for read failures.
func (e *StoreReadError) Is(target error) bool { return target == ErrNoData }

// MissingColumnsError lists required header columns absent from the file.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Columns, ", ")
}

// IsReadError reports whether err carries a *StoreReadError.
func IsReadError(err error) bool {
	var readErr *StoreReadError
	return errors.As(err, &readErr)
}
