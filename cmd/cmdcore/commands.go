package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	completionaction "github.com/footprint-tools/cmdcore/internal/actions/completions"
	"github.com/footprint-tools/cmdcore/internal/app"
	"github.com/footprint-tools/cmdcore/internal/cli"
	"github.com/footprint-tools/cmdcore/internal/completions"
	"github.com/footprint-tools/cmdcore/internal/console"
	"github.com/footprint-tools/cmdcore/internal/dispatchers"
	"github.com/footprint-tools/cmdcore/internal/tokens"
)

// withApp opens the application for the duration of fn.
func (e *env) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) (err error) {
	ctx := cmd.Context()
	a, err := e.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, a.Close())
	}()
	return fn(ctx, a)
}

// report prints one dispatch result. A failure goes to errOut and comes
// back as an exitError with the code for its kind.
func (e *env) report(a *app.App, r *console.Renderer, res dispatchers.Result) error {
	text := r.Result(res)
	if !res.OK() {
		fmt.Fprintln(e.errOut, text)
		code := 1
		if res.Err != nil {
			code = res.Err.GetExitCode()
		}
		return &exitError{code: code}
	}
	if text != "" {
		a.Output.Pager(text + "\n")
	}
	return nil
}

// joinLine rebuilds a dispatch line from shell words. A single word is
// taken as the whole line.
func joinLine(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = tokens.Quote(a)
	}
	return strings.Join(quoted, " ")
}

func (e *env) execCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <command line...>",
		Short: "Dispatch one command line",
		Example: `  cmdcore exec give Steve diamond 3
  cmdcore exec --as Alex "tp Steve ~ ~10 ~"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.withApp(cmd, func(ctx context.Context, a *app.App) error {
				res := a.Dispatch(ctx, a.Caller, joinLine(args))
				return e.report(a, console.NewRenderer(terminalWidth(e.out)), res)
			})
		},
	}
	// Words after the first belong to the dispatch line, dashes included.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// readLines returns the non-blank lines of r that are not # comments.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}

func (e *env) runCmd() *cobra.Command {
	var parallel int
	cmd := &cobra.Command{
		Use:   "run [--parallel N] <file|->",
		Short: "Dispatch every line of a file",
		Long: `Dispatch every line of a file, or of stdin when the file is "-".
Blank lines and lines starting with # are skipped. Results print in file
order; the exit code is the one of the last failing line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := e.in
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("error opening file %s: %w", args[0], err)
				}
				defer f.Close()
				src = f
			}
			lines, err := readLines(src)
			if err != nil {
				return err
			}

			return e.withApp(cmd, func(ctx context.Context, a *app.App) error {
				results := make([]dispatchers.Result, len(lines))
				if parallel > 1 {
					var g errgroup.Group
					g.SetLimit(parallel)
					for i, line := range lines {
						g.Go(func() error {
							results[i] = a.Dispatch(ctx, a.Caller, line)
							return nil
						})
					}
					_ = g.Wait()
				} else {
					for i, line := range lines {
						results[i] = a.Dispatch(ctx, a.Caller, line)
					}
				}

				r := console.NewRenderer(terminalWidth(e.out))
				var last error
				for _, res := range results {
					if err := e.report(a, r, res); err != nil {
						last = err
					}
				}
				return last
			})
		},
	}
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 1, "Dispatch up to N lines at once")
	return cmd
}

func (e *env) consoleCmd() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Open the interactive console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.withApp(cmd, func(ctx context.Context, a *app.App) error {
				mode := console.ParseMode(a.Settings.ConsoleMode)
				if plain {
					mode = console.ModePlain
				}

				ctx, cancel := context.WithCancel(ctx)
				defer cancel()
				g, ctx := errgroup.WithContext(ctx)
				g.Go(func() error {
					return a.Watch(ctx)
				})
				g.Go(func() error {
					defer cancel()
					return console.Run(ctx, a, a.Caller, mode)
				})
				return g.Wait()
			})
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Use the line editor instead of the full screen view")
	return cmd
}

func (e *env) historyCmd() *cobra.Command {
	var (
		limit   int
		command string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded dispatches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			line := fmt.Sprintf("history %d", limit)
			if command != "" {
				line += " " + tokens.Quote(command)
			}
			return e.withApp(cmd, func(ctx context.Context, a *app.App) error {
				return e.report(a, console.NewRenderer(terminalWidth(e.out)), a.Dispatch(ctx, a.Caller, line))
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")
	cmd.Flags().StringVar(&command, "command", "", "Only show dispatches of this command")
	return cmd
}

func (e *env) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show cmdcore version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.withApp(cmd, func(ctx context.Context, a *app.App) error {
				return e.report(a, console.NewRenderer(terminalWidth(e.out)), a.Dispatch(ctx, a.Caller, "version"))
			})
		},
	}
}

func (e *env) completionCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "completion [bash|zsh|fish]",
		Short:     "Print a shell completion script, or install hints without a shell",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish"},
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := ""
			if len(args) == 1 {
				shell = args[0]
			}
			return completionaction.Completions(e.out, shell)
		},
	}
}

// completeCmd serves the shell scripts. It prints one candidate per line.
func (e *env) completeCmd(root *cobra.Command) *cobra.Command {
	var cursor int
	cmd := &cobra.Command{
		Use:    completions.CompleteCommand + " [--cursor N] -- <line>",
		Hidden: true,
		Args:   cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line := ""
			if len(args) == 1 {
				line = args[0]
			}
			if cursor < 0 {
				cursor = len(line)
			}

			var names []string
			for _, c := range root.Commands() {
				names = append(names, c.Name())
			}
			dispatching := map[string]bool{"exec": true}

			return e.withApp(cmd, func(ctx context.Context, a *app.App) error {
				items := completions.Line(line, cursor, names, dispatching, cli.ValueFlags(),
					func(raw string, at int) []string {
						return a.Complete(ctx, a.Caller, raw, at)
					})
				for _, item := range items {
					fmt.Fprintln(e.out, item)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&cursor, "cursor", -1, "Byte offset of the cursor in line")
	return cmd
}
