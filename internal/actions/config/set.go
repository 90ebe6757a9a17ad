package config

import (
	"context"
	"fmt"

	"github.com/footprint-tools/cmdcore/internal/config"
	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/usage"
)

// Set writes one key to the config file.
func Set() domain.Handler {
	return set(DefaultDeps())
}

func set(deps Deps) domain.Handler {
	return domain.HandlerFunc(func(_ context.Context, ec *domain.ExecutionContext) (any, error) {
		key := ec.String("key")
		value := ec.String("value")
		if !domain.IsValidConfigKey(key) {
			return nil, usage.InvalidConfigKey(key)
		}

		var updated bool
		err := deps.Edit(func(lines []string) ([]string, bool) {
			lines, updated = config.Set(lines, key, value)
			return lines, true
		})
		if err != nil {
			return nil, err
		}

		action := "added"
		if updated {
			action = "updated"
		}
		return fmt.Sprintf("%s %s=%s", action, key, value), nil
	})
}
