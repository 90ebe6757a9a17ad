// Package console runs an interactive prompt over the dispatcher, either
// as a full screen view with live completion or as a plain line editor.
package console

import (
	"context"
	"errors"
	"os"

	"golang.org/x/term"

	"github.com/footprint-tools/cmdcore/internal/dispatchers"
	"github.com/footprint-tools/cmdcore/internal/domain"
)

// Engine dispatches and completes console input.
type Engine interface {
	Dispatch(ctx context.Context, caller domain.Issuer, raw string) dispatchers.Result
	CompleteSpan(ctx context.Context, caller domain.Issuer, raw string, cursor int) dispatchers.Completion
}

// Mode selects the console front end.
type Mode string

const (
	ModeAuto  Mode = "auto"
	ModeTUI   Mode = "tui"
	ModePlain Mode = "plain"
)

// ParseMode maps a config value to a Mode. Unknown values mean auto.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeTUI, ModePlain:
		return Mode(s)
	default:
		return ModeAuto
	}
}

// ErrNotInteractive is returned when the full screen view is asked for
// without a terminal.
var ErrNotInteractive = errors.New("console: the full screen view needs an interactive terminal")

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Run starts the console for caller until the user quits or ctx is done.
func Run(ctx context.Context, e Engine, caller domain.Issuer, mode Mode) error {
	switch mode {
	case ModePlain:
		return RunPlain(ctx, e, caller)
	case ModeTUI:
		if !isTerminal() {
			return ErrNotInteractive
		}
		return RunTUI(ctx, e, caller)
	default:
		if isTerminal() {
			return RunTUI(ctx, e, caller)
		}
		return RunPlain(ctx, e, caller)
	}
}

// isExit reports whether line asks the console to quit.
func isExit(line string) bool {
	switch line {
	case "exit", "quit", ":q":
		return true
	}
	return false
}
