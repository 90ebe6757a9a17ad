// Package style renders semantic text roles (success, error, prompt and
// so on) with lipgloss. It is the only package that imports lipgloss
// directly. While disabled every helper returns its input unchanged.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/footprint-tools/cmdcore/internal/domain"
)

// role is one semantic use of color.
type role int

const (
	roleSuccess role = iota
	roleWarning
	roleError
	roleInfo
	roleMuted
	roleHeader
	rolePrompt
	roleCount
)

var (
	enabled bool
	colors  ColorConfig

	roles          [roleCount]lipgloss.Style
	categoryStyles map[domain.CommandCategory]lipgloss.Style
)

// envPrefix namespaces the color environment overrides.
const envPrefix = "CMDCORE_"

// Init turns styling on or off and loads the theme and color overrides
// from cfg. NO_COLOR or CMDCORE_NO_COLOR, set to anything, force it off.
// Call it once before any output.
func Init(enable bool, cfg map[string]string) {
	if os.Getenv("NO_COLOR") != "" || os.Getenv(envPrefix+"NO_COLOR") != "" {
		enabled = false
		return
	}
	enabled = enable
	if enabled {
		colors = LoadColorConfig(cfg)
		build(colors)
	}
}

// GetColors returns the loaded colors, empty until styling is enabled.
func GetColors() ColorConfig {
	return colors
}

// build creates the styles. Colors are ANSI 256 numbers or "bold".
func build(c ColorConfig) {
	lipgloss.SetColorProfile(termenv.ANSI256)

	for r, value := range map[role]string{
		roleSuccess: c.Success,
		roleWarning: c.Warning,
		roleError:   c.Error,
		roleInfo:    c.Info,
		roleMuted:   c.Muted,
		roleHeader:  c.Header,
		rolePrompt:  c.Prompt,
	} {
		roles[r] = makeStyle(value)
	}
	roles[rolePrompt] = roles[rolePrompt].Bold(true)

	categoryStyles = map[domain.CommandCategory]lipgloss.Style{
		domain.CategoryPlayers:       makeStyle(c.Players),
		domain.CategoryWorld:         makeStyle(c.World),
		domain.CategoryChat:          makeStyle(c.Chat),
		domain.CategoryConfig:        makeStyle(c.Configuration),
		domain.CategoryPlumbing:      makeStyle(c.Plumbing),
		domain.CategoryUncategorized: makeStyle(c.Other),
	}
}

func makeStyle(value string) lipgloss.Style {
	if value == "bold" {
		return lipgloss.NewStyle().Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(value))
}

func render(r role, text string) string {
	if !enabled {
		return text
	}
	return roles[r].Render(text)
}

// Enabled reports whether styling is on.
func Enabled() bool { return enabled }

// Success marks a command that worked.
func Success(text string) string { return render(roleSuccess, text) }

// Warning marks something worth a second look.
func Warning(text string) string { return render(roleWarning, text) }

// Error marks a failure.
func Error(text string) string { return render(roleError, text) }

// Info marks neutral facts such as argument names.
func Info(text string) string { return render(roleInfo, text) }

// Header marks titles.
func Header(text string) string { return render(roleHeader, text) }

// Muted marks secondary text such as timestamps and hints.
func Muted(text string) string { return render(roleMuted, text) }

// Prompt marks the console prompt and the selected suggestion.
func Prompt(text string) string { return render(rolePrompt, text) }

// Category colors text by command category. Unknown categories use the
// uncategorized color.
func Category(cat domain.CommandCategory, text string) string {
	if !enabled {
		return text
	}
	st, ok := categoryStyles[cat]
	if !ok {
		st = categoryStyles[domain.CategoryUncategorized]
	}
	return st.Render(text)
}
