// Package splitpanel draws a bordered sidebar next to a bordered main pane.
package splitpanel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/footprint-tools/cmdcore/internal/ui/style"
)

// chrome is the horizontal space a pane spends on its border, padding and
// scrollbar column.
const chrome = 6

// Panel is one pane's worth of already scrolled content.
type Panel struct {
	Title string
	Lines []string
	// ScrollPos and TotalItems place the scrollbar thumb. A zero TotalItems
	// means len(Lines).
	ScrollPos  int
	TotalItems int
}

// Config bounds the sidebar width.
type Config struct {
	SidebarWidthPercent float64
	SidebarMinWidth     int
	SidebarMaxWidth     int
}

// DefaultConfig is the console layout.
var DefaultConfig = Config{
	SidebarWidthPercent: 0.3,
	SidebarMinWidth:     18,
	SidebarMaxWidth:     40,
}

type Layout struct {
	Width        int
	SidebarWidth int
	ContentWidth int
	FocusSidebar bool
	Colors       style.ColorConfig
}

// NewLayout splits width between the sidebar and the main pane.
func NewLayout(width int, cfg Config, colors style.ColorConfig) *Layout {
	side := int(cfg.SidebarWidthPercent * float64(width))
	side = min(max(side, cfg.SidebarMinWidth), cfg.SidebarMaxWidth)
	return &Layout{
		Width:        width,
		SidebarWidth: side,
		ContentWidth: max(width-side, 8),
		Colors:       colors,
	}
}

// Render draws both panes exactly height rows tall.
func (l *Layout) Render(sidebar, content Panel, height int) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		l.pane(sidebar, l.SidebarWidth, height, l.FocusSidebar),
		l.pane(content, l.ContentWidth, height, !l.FocusSidebar),
	)
}

func (l *Layout) pane(p Panel, width, height int, focused bool) string {
	inner := max(width-chrome, 1)
	rows := max(height-2, 1)

	body := make([]string, 0, rows)
	if p.Title != "" {
		body = append(body, style.Header(p.Title))
	}
	body = append(body, p.Lines...)
	body = body[:min(len(body), rows)]

	total := p.TotalItems
	if total == 0 {
		total = len(p.Lines)
	}
	active, dim := lipgloss.Color(l.Colors.Prompt), lipgloss.Color(l.Colors.Muted)
	bar := BuildScrollbar(rows, total, p.ScrollPos, active, dim, focused)

	var b strings.Builder
	for row := range rows {
		if row > 0 {
			b.WriteByte('\n')
		}
		var line string
		if row < len(body) {
			line = body[row]
		}
		b.WriteString(Fit(line, inner))
		b.WriteByte(' ')
		b.WriteString(bar[row])
	}

	border := dim
	if focused {
		border = active
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(b.String())
}

// Fit truncates or pads line to exactly width terminal cells. Plain text is
// cut with an ellipsis; styled text is clipped.
func Fit(line string, width int) string {
	if w := lipgloss.Width(line); w > width {
		if w == runewidth.StringWidth(line) {
			line = runewidth.Truncate(line, width, "...")
		} else {
			line = lipgloss.NewStyle().MaxWidth(width).Render(line)
		}
	}
	if pad := width - lipgloss.Width(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	return line
}

// MainContentWidth is the text width inside the main pane.
func (l *Layout) MainContentWidth() int {
	return l.ContentWidth - chrome
}
