package config

import (
	"context"

	"github.com/footprint-tools/cmdcore/internal/config"
	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/usage"
)

// Unset removes one key from the config file.
func Unset() domain.Handler {
	return unset(DefaultDeps())
}

func unset(deps Deps) domain.Handler {
	return domain.HandlerFunc(func(_ context.Context, ec *domain.ExecutionContext) (any, error) {
		key := ec.String("key")

		var removed bool
		err := deps.Edit(func(lines []string) ([]string, bool) {
			lines, removed = config.Unset(lines, key)
			return lines, removed
		})
		if err != nil {
			return nil, err
		}
		if !removed {
			return nil, usage.InvalidConfigKey(key)
		}
		return "unset " + key, nil
	})
}

// Reset removes every entry from the config file.
func Reset() domain.Handler {
	return reset(DefaultDeps())
}

func reset(deps Deps) domain.Handler {
	return domain.HandlerFunc(func(context.Context, *domain.ExecutionContext) (any, error) {
		dropAll := func([]string) ([]string, bool) { return nil, true }
		if err := deps.Edit(dropAll); err != nil {
			return nil, err
		}
		return "all config entries removed", nil
	})
}
