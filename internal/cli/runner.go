package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/logging"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store"
	"github.com/idilsaglam/todolist/internal/ui"
)

// Options tune where the CLI reads config from and writes output to.
// Zero values mean the real process environment.
type Options struct {
	Sources *config.Sources
	Stdout  io.Writer
	Stderr  io.Writer
}

// Exit codes: 0 ok, 1 error, 2 usage or bad index.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// failure marks errors that are runtime problems (I/O, missing items)
// rather than caller mistakes.
type failure struct{ err error }

func (f failure) Error() string { return f.err.Error() }
func (f failure) Unwrap() error { return f.err }

func fail(err error) error { return failure{err} }

// app is the state shared by subcommands for one invocation.
type app struct {
	opt    Options
	cfg    *config.Config
	logger *log.Logger

	// root flags
	file, name, theme string
	group, verbose    bool
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	ui.Stdout, ui.Stderr = opt.Stdout, opt.Stderr

	root := NewRootCommand(opt)
	if len(args) == 0 {
		_ = root.Help()
		return exitUsage
	}
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	if err == nil {
		return exitOK
	}

	var le *model.LookupError
	switch {
	case errors.As(err, &le):
		ui.Fail(lookupMessage(le))
		ui.Hint("Hint: run `todo ls` to see valid indexes")
		return exitUsage
	case errors.As(err, new(failure)):
		ui.Fail(err.Error())
		return exitError
	}
	ui.Fail(err.Error())
	return exitUsage
}

// lookupMessage speaks in the 1-based numbers the user typed.
func lookupMessage(le *model.LookupError) string {
	if le.Size < 0 {
		if le.Raw != "" {
			return "not a number: " + le.Raw
		}
		return "missing index"
	}
	return fmt.Sprintf("index out of range: have %d, got %d", le.Size, le.Index+1)
}

// NewRootCommand builds the todo command tree.
func NewRootCommand(opt Options) *cobra.Command {
	// setup swaps in the configured logger
	a := &app{opt: opt, logger: logging.Discard()}

	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "todo - a tiny CLI",
		Long:          "Keep an ordered todo list in a local JSON, YAML or SQLite file.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	cmd.SetOut(opt.Stdout)
	cmd.SetErr(opt.Stderr)

	// Root flags (apply to every subcommand)
	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.file, "file", "f", "", "data file (.json, .yaml, .db)")
	pf.StringVar(&a.name, "name", "", "list name used when the file is new")
	pf.StringVar(&a.theme, "theme", "", "output theme (classic|neon|mono)")
	pf.BoolVar(&a.group, "group", false, "group output by pending/done")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(
		a.newAddCommand(),
		a.newListCommand(),
		a.newToggleCommand(),
		a.newCheckCommand(),
		a.newUncheckCommand(),
		a.newRemoveCommand(),
		a.newFindCommand(),
		a.newAllCommand(),
		a.newClearDoneCommand(),
		a.newTUICommand(),
	)
	return cmd
}

// setup merges config files, env and flags, then wires theme and logger.
func (a *app) setup(cmd *cobra.Command) error {
	src := config.DefaultSources()
	if a.opt.Sources != nil {
		src = *a.opt.Sources
	}
	cfg, err := config.Load(src)
	if err != nil {
		a.logger.Debug("config rejected", "err", err)
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.DataFile = a.file
	}
	if flags.Changed("name") {
		cfg.Name = a.name
	}
	if flags.Changed("theme") {
		cfg.Theme = a.theme
	}
	if flags.Changed("group") {
		cfg.Group = a.group
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		a.logger.Debug("flags rejected", "err", err)
		return err
	}

	a.cfg = cfg
	ui.SetTheme(cfg.Theme)
	a.logger = logging.New(a.opt.Stderr, cfg.LogLevel)
	a.logger.Debug("config loaded", "files", cfg.Files, "data_file", cfg.DataFile, "theme", cfg.Theme)
	return nil
}

// withList opens the store, loads the list and hands it to fn.
// fn returns the list to save, or nil to leave the file alone.
func (a *app) withList(ctx context.Context, fn func(l *model.List) (*model.List, error)) error {
	s, err := store.Open(a.cfg.DataFile, a.cfg.Name)
	if err != nil {
		return fail(fmt.Errorf("open: %w", err))
	}
	defer s.Close()

	l, err := s.Load(ctx)
	if err != nil {
		return fail(fmt.Errorf("load: %w", err))
	}
	a.logger.Debug("list loaded", "path", a.cfg.DataFile, "items", l.Size())

	out, err := fn(l)
	if err != nil || out == nil {
		return err
	}
	if err := s.Save(ctx, out); err != nil {
		return fail(fmt.Errorf("save: %w", err))
	}
	a.logger.Debug("list saved", "path", a.cfg.DataFile, "items", out.Size())
	return nil
}

// usageArgs turns cobra's arg validation into a usage message.
func usageArgs(check cobra.PositionalArgs, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return errors.New("usage: " + usage)
		}
		return nil
	}
}
