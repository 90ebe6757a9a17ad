package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/paths"
)

const plainPrompt = "> "

// lineReader is the part of liner.State the loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// historyPath is where typed lines persist between sessions.
func historyPath() string {
	return filepath.Join(paths.AppDataDir(), "console_history")
}

// RunPlain reads lines with tab completion and history until EOF,
// Ctrl+C or an exit command.
func RunPlain(ctx context.Context, e Engine, caller domain.Issuer) error {
	line := liner.NewLiner()
	defer func() { _ = line.Close() }()

	line.SetCtrlCAborts(true)
	line.SetTabCompletionStyle(liner.TabPrints)
	line.SetWordCompleter(wordCompleter(ctx, e, caller))

	if f, err := os.Open(historyPath()); err == nil {
		_, _ = line.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		f, err := os.OpenFile(historyPath(), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return
		}
		_, _ = line.WriteHistory(f)
		_ = f.Close()
	}()

	return plainLoop(ctx, e, caller, line, os.Stdout, NewRenderer(80))
}

func wordCompleter(ctx context.Context, e Engine, caller domain.Issuer) liner.WordCompleter {
	return func(line string, pos int) (string, []string, string) {
		c := e.CompleteSpan(ctx, caller, line, pos)
		return line[:c.Start], c.Items, line[c.End:]
	}
}

func plainLoop(ctx context.Context, e Engine, caller domain.Issuer, in lineReader, out io.Writer, r *Renderer) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		raw, err := in.Prompt(plainPrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}

		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		in.AppendHistory(raw)
		if isExit(raw) {
			return nil
		}

		if text := r.Result(e.Dispatch(ctx, caller, raw)); text != "" {
			fmt.Fprintln(out, text)
		}
	}
}
