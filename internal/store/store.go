// Package store picks a persistence backend for a todo list by file
// extension.
package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store/jsonstore"
	"github.com/idilsaglam/todolist/internal/store/sqlitestore"
	"github.com/idilsaglam/todolist/internal/store/yamlstore"
)

// Store loads and saves a whole list.
type Store interface {
	Load(ctx context.Context) (*model.List, error)
	Save(ctx context.Context, l *model.List) error
	Close() error
}

// Open returns the backend for path:
//
//	.json (or no extension) -> jsonstore
//	.yaml, .yml             -> yamlstore
//	.db, .sqlite, .sqlite3  -> sqlitestore
//
// defaultName names the list when nothing is stored yet.
func Open(path, defaultName string) (Store, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".json":
		return jsonstore.New(path, defaultName)
	case ".yaml", ".yml":
		return yamlstore.New(path, defaultName), nil
	case ".db", ".sqlite", ".sqlite3":
		return sqlitestore.Open(path, defaultName)
	default:
		return nil, fmt.Errorf("unsupported data file extension %q", ext)
	}
}
