package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store/jsonstore"
	"github.com/idilsaglam/todolist/internal/store/sqlitestore"
	"github.com/idilsaglam/todolist/internal/store/yamlstore"
)

func TestOpen_PicksBackend(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		file string
		want any
	}{
		{"todos.json", &jsonstore.Store{}},
		{"todos.YAML", &yamlstore.Store{}},
		{"todos.yml", &yamlstore.Store{}},
		{"todos.db", &sqlitestore.Store{}},
		{"todos.sqlite", &sqlitestore.Store{}},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			s, err := Open(filepath.Join(dir, tt.file), "Todos")
			require.NoError(t, err)
			defer s.Close()
			assert.IsType(t, tt.want, s)
		})
	}
}

func TestOpen_UnknownExtension(t *testing.T) {
	_, err := Open("todos.csv", "")
	assert.ErrorContains(t, err, `".csv"`)
}

func TestBackends_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for _, file := range []string{"a.json", "a.yaml", "a.db"} {
		t.Run(file, func(t *testing.T) {
			s, err := Open(filepath.Join(t.TempDir(), file), "Todos")
			require.NoError(t, err)
			defer s.Close()

			l := model.New("Today's Todos", model.NewItem("Buy milk"), model.NewItem("Clean room"))
			l.MarkDone("Clean room")
			require.NoError(t, s.Save(ctx, l))

			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, l.String(), got.String())
		})
	}
}
