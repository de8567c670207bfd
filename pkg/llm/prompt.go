package llm

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// PromptTemplate is a text/template loaded from disk. Missing keys are an
// execution error rather than "<no value>".
type PromptTemplate struct {
	path string
	tmpl *template.Template
	hash string
}

// NewPromptTemplate parses the template at path using the provided template functions.
func NewPromptTemplate(path string, funcs template.FuncMap) (*PromptTemplate, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("prompt template path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt template %q: %w", path, err)
	}
	tmpl := template.New(filepath.Base(path)).Option("missingkey=error")
	if len(funcs) > 0 {
		tmpl = tmpl.Funcs(funcs)
	}
	if _, err := tmpl.Parse(string(data)); err != nil {
		return nil, fmt.Errorf("parse prompt template %q: %w", path, err)
	}
	return &PromptTemplate{path: path, tmpl: tmpl, hash: DigestString(string(data))}, nil
}

// Path returns the file the template was loaded from.
func (t *PromptTemplate) Path() string { return t.path }

// Render executes the template with the provided data.
func (t *PromptTemplate) Render(data any) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute prompt template %q: %w", t.path, err)
	}
	return buf.String(), nil
}

// Digest returns the sha256 hash of the template content.
func (t *PromptTemplate) Digest() string { return t.hash }

// DigestString returns the hex sha256 digest of s.
func DigestString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
