// Package completions prints shell completion scripts and install hints.
package completions

import (
	"fmt"
	"io"
	"os"

	"github.com/footprint-tools/cmdcore/internal/completions"
)

type Deps struct {
	Out    io.Writer
	Detect func() completions.Shell
	Binary func() string
}

func DefaultDeps() Deps {
	return Deps{
		Out:    os.Stdout,
		Detect: completions.RunningShell,
		Binary: completions.GetBinaryName,
	}
}

// Completions prints the completion script for a named shell. Without a
// name it prints install instructions for the running shell.
func Completions(out io.Writer, shell string) error {
	deps := DefaultDeps()
	deps.Out = out
	return run(shell, deps)
}

func run(name string, deps Deps) error {
	bin := deps.Binary()

	if name != "" {
		shell, ok := completions.ParseShell(name)
		if !ok {
			return fmt.Errorf("unsupported shell: %s (use bash, zsh, or fish)", name)
		}
		return completions.PrintCompletions(deps.Out, shell)
	}

	shell := deps.Detect()
	if shell == "" {
		return fmt.Errorf("could not detect shell, specify one: %s completion <bash|zsh|fish>", bin)
	}
	printInstructions(deps.Out, bin, shell)
	return nil
}

func printInstructions(w io.Writer, bin string, shell completions.Shell) {
	fmt.Fprintln(w, "To enable completions, choose one of the following:")
	fmt.Fprintln(w)

	n := 1
	if path := completions.AutoInstallPath(shell); path != "" {
		fmt.Fprintf(w, "%d. Write to auto-load directory:\n", n)
		fmt.Fprintf(w, "   %s completion %s > %s\n\n", bin, shell, path)
		n++
	}

	fmt.Fprintf(w, "%d. Add to %s:\n", n, completions.RcFile(shell))
	fmt.Fprintf(w, "   %s\n\n", completions.SourceInstructions(shell))
	fmt.Fprintln(w, "Then restart your shell or run: exec $SHELL")
}
