package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todolist/internal/config"
)

type result struct {
	code           int
	stdout, stderr string
}

// run invokes the CLI against file with no config files or env.
func run(t *testing.T, file string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	args = append(args, "--file", file, "--theme", "mono")
	code := Run(args, Options{Sources: &config.Sources{}, Stdout: &out, Stderr: &errOut})
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func seeded(t *testing.T, name string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	for _, title := range []string{"Buy milk", "Clean room", "Go to the gym"} {
		r := run(t, file, "add", title)
		require.Equal(t, 0, r.code, r.stderr)
		require.Equal(t, "x added\n", r.stdout)
	}
	return file
}

func TestAddAndListPlain(t *testing.T) {
	file := seeded(t, "todos.json")
	require.Equal(t, 0, run(t, file, "done", "1").code)

	r := run(t, file, "ls", "--plain")
	require.Equal(t, 0, r.code, r.stderr)
	goldie.New(t).Assert(t, "ls_plain", []byte(r.stdout))
}

func TestAdd_MultiWordAndEmpty(t *testing.T) {
	file := filepath.Join(t.TempDir(), "todos.json")

	require.Equal(t, 0, run(t, file, "add", "Go", "to", "the", "gym").code)
	r := run(t, file, "ls", "--plain")
	assert.Equal(t, "---- Todos ----\n[ ] Go to the gym\n", r.stdout)

	r = run(t, file, "add", "   ")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "add: empty title")

	r = run(t, file, "add")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "usage: todo add <title...>")
}

func TestIndexCommands(t *testing.T) {
	file := seeded(t, "todos.json")

	r := run(t, file, "check", "2")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "x marked done\n", r.stdout)

	require.Equal(t, 0, run(t, file, "done", "3").code)
	require.Equal(t, 0, run(t, file, "undone", "2").code)

	r = run(t, file, "ls", "--plain")
	assert.Equal(t, "---- Todos ----\n[ ] Buy milk\n[ ] Clean room\n[X] Go to the gym\n", r.stdout)

	r = run(t, file, "rm", "2")
	require.Equal(t, 0, r.code, r.stderr)
	r = run(t, file, "ls", "--plain")
	assert.Equal(t, "---- Todos ----\n[ ] Buy milk\n[X] Go to the gym\n", r.stdout)
}

func TestIndexCommands_BadIndex(t *testing.T) {
	file := seeded(t, "todos.json")
	before, err := os.ReadFile(file)
	require.NoError(t, err)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"done", "4"}, "index out of range: have 3, got 4"},
		{[]string{"check", "0"}, "index out of range: have 3, got 0"},
		{[]string{"undone", "4"}, "index out of range: have 3, got 4"},
		{[]string{"rm", "9"}, "index out of range: have 3, got 9"},
		{[]string{"rm", ""}, "missing index"},
		{[]string{"done", "two"}, "not a number: two"},
		{[]string{"done"}, "usage: todo done <index>"},
	}
	for _, tt := range tests {
		r := run(t, file, tt.args...)
		assert.Equal(t, 2, r.code, "%v", tt.args)
		assert.Contains(t, r.stderr, tt.want, "%v", tt.args)
	}

	after, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after), "failed commands must not write")
}

func TestFind(t *testing.T) {
	file := seeded(t, "todos.json")

	r := run(t, file, "find", "Clean", "room")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, " 2. [ ] Clean room\n", r.stdout)

	r = run(t, file, "find", "Nonexistent")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, `no item titled "Nonexistent"`)
}

func TestAll(t *testing.T) {
	file := seeded(t, "todos.json")

	require.Equal(t, 0, run(t, file, "all", "done").code)
	r := run(t, file, "ls", "--pending", "--plain")
	assert.Equal(t, "---- Todos ----\n", r.stdout)

	require.Equal(t, 0, run(t, file, "all", "undone").code)
	r = run(t, file, "ls", "--done", "--plain")
	assert.Equal(t, "---- Todos ----\n", r.stdout)

	r = run(t, file, "all", "maybe")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "usage: todo all <done|undone>")
}

func TestClearDone(t *testing.T) {
	file := seeded(t, "todos.json")
	run(t, file, "done", "1")
	run(t, file, "done", "3")

	r := run(t, file, "clear-done")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "x removed 2 done\n", r.stdout)

	r = run(t, file, "ls", "--plain")
	assert.Equal(t, "---- Todos ----\n[ ] Clean room\n", r.stdout)
}

func TestListMatch(t *testing.T) {
	file := seeded(t, "todos.json")

	r := run(t, file, "ls", "--match", "{Buy,Go}*", "--plain")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "---- Todos ----\n[ ] Buy milk\n[ ] Go to the gym\n", r.stdout)

	r = run(t, file, "ls", "--match", "[")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "match")

	r = run(t, file, "ls", "--done", "--pending")
	assert.Equal(t, 2, r.code)
}

func TestListPanel(t *testing.T) {
	file := seeded(t, "todos.json")
	run(t, file, "done", "1")

	r := run(t, file, "ls")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Todos  x 1  - 2  Total 3")
	assert.Contains(t, r.stdout, " 1. [x] Buy milk")
	assert.Contains(t, r.stdout, " 3. [ ] Go to the gym")
	assert.Contains(t, r.stdout, "+---")

	r = run(t, file, "ls", "--group")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Pending")
	assert.Contains(t, r.stdout, "Done")

	r = run(t, file, "ls", "--match", "Clean*")
	assert.Contains(t, r.stdout, " 2. [ ] Clean room", "numbers follow the full list")
}

func TestBackendsByExtension(t *testing.T) {
	for _, name := range []string{"todos.yaml", "todos.db"} {
		t.Run(name, func(t *testing.T) {
			file := seeded(t, name)
			run(t, file, "done", "2")

			r := run(t, file, "ls", "--plain")
			require.Equal(t, 0, r.code, r.stderr)
			assert.Equal(t, "---- Todos ----\n[ ] Buy milk\n[X] Clean room\n[ ] Go to the gym\n", r.stdout)
		})
	}
}

func TestUsageErrors(t *testing.T) {
	var out, errOut bytes.Buffer
	opt := Options{Sources: &config.Sources{}, Stdout: &out, Stderr: &errOut}

	assert.Equal(t, 2, Run(nil, opt))
	assert.Contains(t, out.String(), "Usage:")

	assert.Equal(t, 2, Run([]string{"frobnicate"}, opt))
	assert.Contains(t, errOut.String(), "unknown command")

	errOut.Reset()
	assert.Equal(t, 2, Run([]string{"ls", "--theme", "rainbow"}, opt))
	assert.Contains(t, errOut.String(), "invalid theme")
}

func TestConfigFromProjectFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "todo.toml")
	dataFile := filepath.Join(dir, "list.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(
		"name = \"Today's Todos\"\ndata_file = \""+filepath.ToSlash(dataFile)+"\"\ntheme = \"mono\"\n"), 0o644))

	var out, errOut bytes.Buffer
	opt := Options{Sources: &config.Sources{ProjectFile: cfgFile}, Stdout: &out, Stderr: &errOut}

	require.Equal(t, 0, Run([]string{"add", "Buy milk"}, opt), errOut.String())
	out.Reset()
	require.Equal(t, 0, Run([]string{"ls", "--plain"}, opt), errOut.String())
	assert.Equal(t, "---- Today's Todos ----\n[ ] Buy milk\n", out.String())

	_, err := os.Stat(dataFile)
	assert.NoError(t, err)
}

func TestSetupFailureLogsNothing(t *testing.T) {
	file := filepath.Join(t.TempDir(), "todos.json")
	var out, errOut bytes.Buffer
	code := Run([]string{"ls", "-v", "--file", file, "--theme", "rainbow"},
		Options{Sources: &config.Sources{}, Stdout: &out, Stderr: &errOut})

	assert.Equal(t, 2, code)
	assert.Contains(t, errOut.String(), `invalid theme "rainbow"`)
	assert.NotContains(t, errOut.String(), "rejected")
	assert.Equal(t, 1, strings.Count(errOut.String(), "\n"))
}

func TestVerboseLogsToStderr(t *testing.T) {
	file := filepath.Join(t.TempDir(), "todos.json")
	r := run(t, file, "add", "Buy milk", "-v")
	require.Equal(t, 0, r.code)
	assert.Contains(t, r.stderr, "list saved")
}
