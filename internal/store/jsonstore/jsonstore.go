package jsonstore

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store/record"
)

// JSON-backed storage. Single file, human-readable, portable.
// No locking; fine for a local single-user CLI.

//go:embed schema.json
var schemaJSON string

const schemaURL = "https://idilsaglam.github.io/todolist/schema.json"

// DefaultFileName is used when no path is configured.
const DefaultFileName = "todos.json"

// ValidationError is a schema violation at a location in the document.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Store reads and writes one list as a JSON file.
type Store struct {
	path        string
	defaultName string
	schema      *jsonschema.Schema
}

// New returns a store for path. Relative paths resolve against the working
// directory. defaultName names the list when the file does not exist yet.
func New(path, defaultName string) (*Store, error) {
	p, err := dataPath(path)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Store{path: p, defaultName: defaultName, schema: schema}, nil
}

func dataPath(path string) (string, error) {
	if path == "" {
		path = DefaultFileName
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return filepath.Join(wd, path), nil
}

// Path is the resolved file location.
func (s *Store) Path() string { return s.path }

// Load reads the list. A missing file yields an empty list.
// Both the document form and the older bare item array are accepted.
func (s *Store) Load(ctx context.Context) (*model.List, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.New(s.defaultName), nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	if err := s.validate(b); err != nil {
		return nil, err
	}

	var doc record.Document
	if trimmed := bytes.TrimSpace(b); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(b, &doc.Items); err != nil {
			return nil, fmt.Errorf("json unmarshal: %w", err)
		}
	} else if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return doc.List(s.defaultName), nil
}

// Save writes the list with 2-space indentation and a trailing newline.
func (s *Store) Save(ctx context.Context, l *model.List) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(record.FromList(l), "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	b = append(b, '\n')
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return nil }

func (s *Store) validate(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	err := s.schema.Validate(v)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("validate: %w", err)
	}
	leaf := deepest(ve)
	return &ValidationError{
		Path: pointerToPath(leaf.InstanceLocation),
		Err:  errors.New(leaf.Message),
	}
}

// deepest follows the first cause chain to the most specific failure.
func deepest(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

// pointerToPath turns "/items/1/title" into "items[1].title".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for i, part := range strings.Split(ptr, "/") {
		if part != "" && strings.Trim(part, "0123456789") == "" {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
