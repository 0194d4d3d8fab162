package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(Sources{})
	require.NoError(t, err)
	assert.Equal(t, DefaultDataFile, cfg.DataFile)
	assert.Equal(t, DefaultName, cfg.Name)
	assert.Equal(t, DefaultTheme, cfg.Theme)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.False(t, cfg.Group)
	assert.Empty(t, cfg.Files)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	user := writeFile(t, dir, "user.toml", `
name = "Home"
theme = "neon"
data_file = "home.json"
`)
	project := writeFile(t, dir, "todo.toml", `
name = "Project"
group = true
`)

	cfg, err := Load(Sources{
		UserFile:    user,
		ProjectFile: project,
		Getenv:      envMap(map[string]string{"TODO_THEME": "MONO", "TODO_LOG_LEVEL": "debug"}),
	})
	require.NoError(t, err)

	assert.Equal(t, "Project", cfg.Name, "project file beats user file")
	assert.Equal(t, "home.json", cfg.DataFile, "user file beats default")
	assert.Equal(t, "mono", cfg.Theme, "env beats files, normalized")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Group)
	assert.Equal(t, []string{user, project}, cfg.Files)
}

func TestLoad_MissingFilesAreSkipped(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(Sources{
		UserFile:    filepath.Join(dir, "nope.toml"),
		ProjectFile: filepath.Join(dir, "todo.toml"),
	})
	require.NoError(t, err)
	assert.Empty(t, cfg.Files)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
		want string
	}{
		{name: "bad theme", body: `theme = "rainbow"`, want: "invalid theme"},
		{name: "bad level", env: map[string]string{"TODO_LOG_LEVEL": "loud"}, want: "invalid log level"},
		{name: "unknown key", body: `priority = 1`, want: "unknown key"},
		{name: "bad toml", body: `name = `, want: "config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := Sources{Getenv: envMap(tt.env)}
			if tt.body != "" {
				src.ProjectFile = writeFile(t, t.TempDir(), "todo.toml", tt.body)
			}
			_, err := Load(src)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestBoolFromString(t *testing.T) {
	for _, s := range []string{"1", "true", "YES", " on "} {
		assert.True(t, boolFromString(s), s)
	}
	for _, s := range []string{"0", "false", "", "nah"} {
		assert.False(t, boolFromString(s), s)
	}
}
