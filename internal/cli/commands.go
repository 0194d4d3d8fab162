package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/tui"
	"github.com/idilsaglam/todolist/internal/ui"
)

// -------------- subcommand impls ----------------

func (a *app) newAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "add <title...>",
		Short:   "Add a new item (title can be multiple words)",
		Example: `  todo add "Buy milk"`,
		Args:    usageArgs(cobra.MinimumNArgs(1), "todo add <title...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return errors.New("add: empty title")
			}
			err := a.withList(cmd.Context(), func(l *model.List) (*model.List, error) {
				return l, l.Add(model.NewItem(title))
			})
			if err == nil {
				ui.OK("added")
			}
			return err
		},
	}
}

type listFlags struct {
	match         string
	done, pending bool
	plain         bool
}

func (a *app) newListCommand() *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    usageArgs(cobra.NoArgs, "todo ls [--match <glob>] [--done|--pending] [--plain]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.done && f.pending {
				return errors.New("ls: --done and --pending are exclusive")
			}
			return a.withList(cmd.Context(), func(l *model.List) (*model.List, error) {
				return nil, a.printList(cmd.OutOrStdout(), l, f)
			})
		},
	}
	cmd.Flags().StringVarP(&f.match, "match", "m", "", "only titles matching a glob pattern")
	cmd.Flags().BoolVar(&f.done, "done", false, "only done items")
	cmd.Flags().BoolVar(&f.pending, "pending", false, "only pending items")
	cmd.Flags().BoolVar(&f.plain, "plain", false, "print the plain text rendering")
	return cmd
}

// indexCommand builds the "<verb> <index>" commands that act on one item.
func (a *app) indexCommand(use, short, okMsg string, op func(l *model.List, i int) error) *cobra.Command {
	verb := strings.Fields(use)[0]
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  usageArgs(cobra.ExactArgs(1), "todo "+use),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := model.ParseIndex(args[0])
			if err != nil {
				return err
			}
			err = a.withList(cmd.Context(), func(l *model.List) (*model.List, error) {
				// user indexes are 1-based
				if err := op(l, n-1); err != nil {
					return nil, err
				}
				return l, nil
			})
			if err != nil {
				return err
			}
			a.logger.Debug(verb, "index", n)
			ui.OK(okMsg)
			return nil
		},
	}
}

func (a *app) newToggleCommand() *cobra.Command {
	return a.indexCommand("done <index>", "Toggle done for item at 1-based index", "toggled",
		func(l *model.List, i int) error { return l.ToggleAt(i) })
}

func (a *app) newCheckCommand() *cobra.Command {
	return a.indexCommand("check <index>", "Mark item at 1-based index as done", "marked done",
		func(l *model.List, i int) error { return l.MarkDoneAt(i) })
}

func (a *app) newUncheckCommand() *cobra.Command {
	return a.indexCommand("undone <index>", "Mark item at 1-based index as not done", "marked undone",
		func(l *model.List, i int) error { return l.MarkUndoneAt(i) })
}

func (a *app) newRemoveCommand() *cobra.Command {
	return a.indexCommand("rm <index>", "Remove item at 1-based index", "removed",
		func(l *model.List, i int) error {
			_, err := l.RemoveAt(i)
			return err
		})
}

func (a *app) newFindCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "find <title...>",
		Short: "Show the first item with exactly this title",
		Args:  usageArgs(cobra.MinimumNArgs(1), "todo find <title...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			return a.withList(cmd.Context(), func(l *model.List) (*model.List, error) {
				it, ok := l.FindByTitle(title)
				if !ok {
					return nil, fail(fmt.Errorf("no item titled %q", title))
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.ItemLine(positionOf(l, it)+1, it))
				return nil, nil
			})
		},
	}
}

func (a *app) newAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "all <done|undone>",
		Short:     "Mark every item done or undone",
		ValidArgs: []string{"done", "undone"},
		Args:      usageArgs(cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs), "todo all <done|undone>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.withList(cmd.Context(), func(l *model.List) (*model.List, error) {
				if args[0] == "done" {
					l.MarkAllDone()
				} else {
					l.MarkAllUndone()
				}
				return l, nil
			})
			if err == nil {
				ui.OK("marked all " + args[0])
			}
			return err
		},
	}
}

func (a *app) newClearDoneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-done",
		Short: "Remove every done item",
		Args:  usageArgs(cobra.NoArgs, "todo clear-done"),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed := 0
			err := a.withList(cmd.Context(), func(l *model.List) (*model.List, error) {
				done, _ := l.Stats()
				if done == 0 {
					return nil, nil
				}
				removed = done
				return model.New(l.Name(), l.AllNotDone().ToSlice()...), nil
			})
			if err == nil {
				ui.OK(fmt.Sprintf("removed %d done", removed))
			}
			return err
		},
	}
}

func (a *app) newTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive list (space toggle, a add, e edit, d delete, u undo, q quit)",
		Args:  usageArgs(cobra.NoArgs, "todo tui"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withList(cmd.Context(), func(l *model.List) (*model.List, error) {
				out, changed, err := tui.Run(l)
				if err != nil {
					return nil, fail(fmt.Errorf("tui: %w", err))
				}
				a.logger.Debug("tui closed", "changed", changed, "items", out.Size())
				if !changed {
					return nil, nil
				}
				ui.OK("saved")
				return out, nil
			})
		},
	}
}

func positionOf(l *model.List, it *model.Item) int {
	for i, x := range l.ToSlice() {
		if x == it {
			return i
		}
	}
	return -1
}
