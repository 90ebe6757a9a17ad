package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/footprint-tools/cmdcore/internal/domain"
)

// Writer is the OutputWriter of the binary.
type Writer struct {
	out           io.Writer
	pagerDisabled bool
	pagerOverride string
	configGetter  func(string) (string, bool)
	envGetter     func(string) string
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithPagerDisabled always writes directly (--no-pager).
func WithPagerDisabled() WriterOption { return func(w *Writer) { w.pagerDisabled = true } }

// WithPagerOverride names the pager ahead of config and $PAGER (--pager).
func WithPagerOverride(cmd string) WriterOption { return func(w *Writer) { w.pagerOverride = cmd } }

// WithConfigGetter reads the pager config key through fn.
func WithConfigGetter(fn func(string) (string, bool)) WriterOption {
	return func(w *Writer) { w.configGetter = fn }
}

// WithEnvGetter replaces os.Getenv for $PAGER.
func WithEnvGetter(fn func(string) string) WriterOption { return func(w *Writer) { w.envGetter = fn } }

// NewWriter writes to stdout.
func NewWriter(opts ...WriterOption) *Writer {
	return NewWriterTo(os.Stdout, opts...)
}

// NewWriterTo writes to out.
func NewWriterTo(out io.Writer, opts ...WriterOption) *Writer {
	w := &Writer{out: out, envGetter: os.Getenv}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (n int, err error) {
	return w.out.Write(p)
}

// Printf formats and prints to the output.
func (w *Writer) Printf(format string, args ...any) (int, error) {
	return fmt.Fprintf(w.out, format, args...)
}

// Println prints a line to the output.
func (w *Writer) Println(args ...any) (int, error) {
	return fmt.Fprintln(w.out, args...)
}

// Pager writes content, through a pager when the writer is a terminal
// and content is taller than it. The first of --pager, the pager config
// key and $PAGER wins, falling back to less. A failing pager falls back
// to a plain write.
func (w *Writer) Pager(content string) {
	if w.pagerDisabled || !w.isTerminal() || w.fits(content) {
		_, _ = io.WriteString(w.out, content)
		return
	}
	cmd := defaultPager
	if candidates := w.pagerCandidates(); len(candidates) > 0 {
		cmd = candidates[0]
	}
	argv := pagerArgv(cmd)
	if argv == nil || w.page(argv, content) != nil {
		_, _ = io.WriteString(w.out, content)
	}
}

// fits reports whether content fits the terminal height.
func (w *Writer) fits(content string) bool {
	f, ok := w.out.(*os.File)
	if !ok {
		return true
	}
	_, height, err := term.GetSize(int(f.Fd()))
	return err == nil && strings.Count(content, "\n") < height
}

func (w *Writer) isTerminal() bool {
	f, ok := w.out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// pagerCandidates lists configured pager commands, highest precedence first.
func (w *Writer) pagerCandidates() []string {
	var out []string
	if w.pagerOverride != "" {
		out = append(out, w.pagerOverride)
	}
	if w.configGetter != nil {
		if p, ok := w.configGetter("pager"); ok && p != "" {
			out = append(out, p)
		}
	}
	if w.envGetter != nil {
		if p := w.envGetter("PAGER"); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var _ domain.OutputWriter = (*Writer)(nil)
