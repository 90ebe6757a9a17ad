package theme

import (
	"context"
	"fmt"
	"strings"

	"github.com/footprint-tools/cmdcore/internal/config"
	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/ui/style"
	"github.com/footprint-tools/cmdcore/internal/usage"
)

// Set stores the theme and applies it to the running process.
func Set() domain.Handler {
	return setTheme(DefaultDeps())
}

func setTheme(deps Deps) domain.Handler {
	return domain.HandlerFunc(func(_ context.Context, ec *domain.ExecutionContext) (any, error) {
		name := ec.String("theme")
		if name == "" {
			return nil, usage.MissingArgument("theme")
		}
		if _, ok := deps.Themes[style.ResolveThemeName(name)]; !ok {
			return nil, fmt.Errorf("unknown theme: %s (available: %s)", name, strings.Join(deps.ThemeNames, ", "))
		}

		err := deps.Edit(func(lines []string) ([]string, bool) {
			lines, _ = config.Set(lines, "theme", name)
			return lines, true
		})
		if err != nil {
			return nil, err
		}

		if deps.Apply != nil {
			cfg, err := deps.GetAll()
			if err != nil {
				cfg = map[string]string{}
			}
			cfg["theme"] = name
			deps.Apply(cfg)
		}
		return "theme set to " + style.Success(name), nil
	})
}
