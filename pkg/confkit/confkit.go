// Package confkit holds the pieces shared by every config loader: path
// resolution relative to the main config, side-file sections and .env
// loading.
package confkit

import (
	"os"
	"path/filepath"
)

// ResolvePath expands environment variables in file and, when the result is
// relative, joins it onto base.
func ResolvePath(base, file string) string {
	file = os.ExpandEnv(file)
	if file == "" || filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(base, file)
}

// BaseDir returns the directory of the main config file path.
func BaseDir(mainPath string) string {
	return filepath.Dir(mainPath)
}

// Section points at a config section kept in its own file.
type Section[T any] struct {
	File  string `json:",optional"`
	Value *T     `json:"-"`
	// Skipped holds the loader error that left a configured section unset.
	Skipped error `json:"-"`
}

// Hydrate resolves File against base and loads it with loader. An empty File
// leaves the section unset. A loader error accepted by any of optional also
// leaves it unset and is kept in Skipped; other errors are returned.
func (s *Section[T]) Hydrate(base string, loader func(string) (*T, error), optional ...func(error) bool) error {
	s.Skipped = nil
	if s.File == "" {
		return nil
	}
	p := ResolvePath(base, s.File)
	v, err := loader(p)
	if err != nil {
		for _, ok := range optional {
			if ok(err) {
				s.File, s.Skipped = p, err
				return nil
			}
		}
		return err
	}
	s.File, s.Value = p, v
	return nil
}

// Loaded reports whether the section was hydrated.
func (s *Section[T]) Loaded() bool { return s != nil && s.Value != nil }
