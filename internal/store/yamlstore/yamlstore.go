// Package yamlstore keeps a todo list in a YAML file.
package yamlstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store/record"
)

type Store struct {
	path        string
	defaultName string
}

func New(path, defaultName string) *Store {
	return &Store{path: path, defaultName: defaultName}
}

func (s *Store) Path() string { return s.path }

// Load reads the list; a missing or empty file is an empty list.
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
	var doc record.Document
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("yaml decode: %w", err)
	}
	return doc.List(s.defaultName), nil
}

func (s *Store) Save(ctx context.Context, l *model.List) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(record.FromList(l)); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return nil }
