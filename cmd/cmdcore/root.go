package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/footprint-tools/cmdcore/internal/app"
	"github.com/footprint-tools/cmdcore/internal/cli"
	"github.com/footprint-tools/cmdcore/internal/ui/style"
	"github.com/footprint-tools/cmdcore/internal/usage"
)

// exitError carries a process exit code for a failure that was already
// reported.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// env is what every subcommand shares.
type env struct {
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	options func() (app.Options, error)
	flags   cli.GlobalFlags
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer, options func() (app.Options, error)) int {
	e := &env{in: in, out: out, errOut: errOut, options: options}
	root := e.rootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	var ue *usage.Error
	if errors.As(err, &ue) {
		fmt.Fprintln(errOut, style.Error("error:"), ue.Message)
		return ue.GetExitCode()
	}
	fmt.Fprintln(errOut, style.Error("error:"), err)
	return 1
}

func (e *env) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cmdcore",
		Short:         "Dispatch typed commands with overloads, conditions and completion",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	e.flags.Bind(root.PersistentFlags())

	root.AddCommand(
		e.execCmd(),
		e.runCmd(),
		e.consoleCmd(),
		e.historyCmd(),
		e.versionCmd(),
		e.completionCmd(),
		e.completeCmd(root),
	)
	return root
}

// open builds the application with the global flags applied.
func (e *env) open(ctx context.Context) (*app.App, error) {
	opts, err := e.options()
	if err != nil {
		return nil, err
	}
	if e.flags.As != "" {
		opts.As = e.flags.As
	}
	if len(e.flags.Perms) > 0 {
		opts.Perms = e.flags.Perms
	}
	opts.PagerDisabled = opts.PagerDisabled || e.flags.NoPager
	if e.flags.Pager != "" {
		opts.PagerOverride = e.flags.Pager
	}
	opts.StyleEnabled = opts.StyleEnabled && !e.flags.NoColor && isTerminal(e.out)
	opts.Out = e.out
	return app.New(ctx, opts)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth falls back to 80 columns off a terminal.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 80
}
