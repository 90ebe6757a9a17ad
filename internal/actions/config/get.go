package config

import (
	"context"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/usage"
)

// Get reports the value of one key.
func Get() domain.Handler {
	return get(DefaultDeps())
}

func get(deps Deps) domain.Handler {
	return domain.HandlerFunc(func(_ context.Context, ec *domain.ExecutionContext) (any, error) {
		key := ec.String("key")
		if key == "" {
			return nil, usage.MissingArgument("key")
		}

		value, found := deps.Get(key)
		if !found {
			return nil, usage.InvalidConfigKey(key)
		}
		return key + "=" + value, nil
	})
}
