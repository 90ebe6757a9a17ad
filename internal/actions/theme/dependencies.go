// Package theme holds the handlers of the theme command group.
package theme

import (
	"github.com/footprint-tools/cmdcore/internal/config"
	"github.com/footprint-tools/cmdcore/internal/ui/style"
)

type Deps struct {
	Edit   func(func([]string) ([]string, bool)) error
	Get    func(string) (string, bool)
	GetAll func() (map[string]string, error)
	// Apply restyles the running process from a full config map.
	Apply      func(cfg map[string]string)
	ThemeNames []string
	Themes     map[string]style.ColorConfig
}

func DefaultDeps() Deps {
	return Deps{
		Edit:       config.Edit,
		Get:        config.Get,
		GetAll:     config.GetAll,
		Apply:      func(cfg map[string]string) { style.Init(style.Enabled(), cfg) },
		ThemeNames: style.ThemeNames,
		Themes:     style.Themes,
	}
}
