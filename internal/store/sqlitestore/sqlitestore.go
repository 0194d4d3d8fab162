// Package sqlitestore keeps a todo list in a SQLite database.
package sqlitestore

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/idilsaglam/todolist/internal/model"
)

//go:embed schema.sql
var schemaSQL string

// Store holds exactly one list: a single row in lists plus its items
// ordered by position.
type Store struct {
	db          *sql.DB
	defaultName string
}

// Open creates or opens the database at path and applies the schema.
func Open(path, defaultName string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}
	// one writer; sqlite serializes anyway
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, defaultName: defaultName}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load reads the list. An empty database yields an empty list.
func (s *Store) Load(ctx context.Context) (*model.List, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM lists WHERE id = 1`).Scan(&name)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return model.New(s.defaultName), nil
	case err != nil:
		return nil, fmt.Errorf("query list: %w", err)
	}
	if name == "" {
		name = s.defaultName
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT title, done FROM items WHERE list_id = 1 ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	l := model.New(name)
	for rows.Next() {
		var (
			title string
			done  bool
		)
		if err := rows.Scan(&title, &done); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it := model.NewItem(title)
		if done {
			it.MarkDone()
		}
		_ = l.Add(it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return l, nil
}

// Save replaces the stored list in one transaction.
func (s *Store) Save(ctx context.Context, l *model.List) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO lists (id, name) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name`, l.Name()); err != nil {
		return fmt.Errorf("upsert list: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE list_id = 1`); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO items (list_id, position, title, done) VALUES (1, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, it := range l.ToSlice() {
		if _, err := stmt.ExecContext(ctx, i, it.Title(), it.IsDone()); err != nil {
			return fmt.Errorf("insert item %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
