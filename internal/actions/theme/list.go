package theme

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/ui/style"
)

// ListView is the theme catalog with the current theme marked.
type ListView struct {
	Current string
	Names   []string
	Themes  map[string]style.ColorConfig
}

func (v ListView) String() string {
	var b strings.Builder
	b.WriteString("Available themes (* = current)\n\n")
	for _, name := range v.Names {
		marker := "  "
		if name == v.Current {
			marker = style.Success("* ")
		}
		fmt.Fprintf(&b, "%s%-14s  %s\n", marker, name, preview(v.Themes[name]))
	}
	b.WriteString("\nUse 'theme set <name>' to change")
	return b.String()
}

func List() domain.Handler {
	return list(DefaultDeps())
}

func list(deps Deps) domain.Handler {
	return domain.HandlerFunc(func(context.Context, *domain.ExecutionContext) (any, error) {
		current, _ := deps.Get("theme")
		if current == "" {
			current = "default"
		}
		return ListView{
			Current: style.ResolveThemeName(current),
			Names:   deps.ThemeNames,
			Themes:  deps.Themes,
		}, nil
	})
}

// preview renders a sample of each color in cfg.
func preview(cfg style.ColorConfig) string {
	colorize := func(text, color string) string {
		if color == "" || color == "bold" {
			return lipgloss.NewStyle().Bold(true).Render(text)
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
	}

	return colorize("success ", cfg.Success) +
		colorize("error ", cfg.Error) +
		colorize("info ", cfg.Info) +
		colorize("muted", cfg.Muted) +
		"   " +
		colorize("players ", cfg.Players) +
		colorize("world ", cfg.World) +
		colorize("chat ", cfg.Chat) +
		colorize("config ", cfg.Configuration) +
		colorize("plumbing ", cfg.Plumbing) +
		colorize("other", cfg.Other)
}
