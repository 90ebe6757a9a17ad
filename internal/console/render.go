package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/footprint-tools/cmdcore/internal/dispatchers"
	"github.com/footprint-tools/cmdcore/internal/ui/style"
)

// Markdowner is implemented by handler results that have a markdown form.
type Markdowner interface {
	Markdown() string
}

// Renderer turns dispatch results into terminal text.
type Renderer struct {
	md *glamour.TermRenderer
}

// NewRenderer renders markdown results wrapped at width. Without color the
// markdown form is skipped.
func NewRenderer(width int) *Renderer {
	if !style.Enabled() {
		return &Renderer{}
	}
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		return &Renderer{}
	}
	return &Renderer{md: md}
}

// Value renders a handler result. nil renders as nothing.
func (r *Renderer) Value(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case Markdowner:
		if r != nil && r.md != nil {
			if out, err := r.md.Render(v.Markdown()); err == nil {
				return strings.Trim(out, "\n")
			}
		}
		if s, ok := v.(fmt.Stringer); ok {
			return s.String()
		}
		return v.Markdown()
	case fmt.Stringer:
		return v.String()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Result renders the value of an executed dispatch or its error.
func (r *Renderer) Result(res dispatchers.Result) string {
	if res.OK() {
		return r.Value(res.Value)
	}
	msg := res.Kind.String()
	if res.Err != nil {
		msg = res.Err.Message
	}
	return style.Error("error:") + " " + msg
}
