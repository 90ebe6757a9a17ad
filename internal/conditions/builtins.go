package conditions

import (
	"context"
	"strings"

	"github.com/footprint-tools/cmdcore/internal/resolvers"
	"github.com/footprint-tools/cmdcore/internal/usage"
)

func registerBuiltins(v *Validator) {
	_ = v.Register("perm", Func(permCondition))
	_ = v.Register("limits", Func(limitsCondition))
	_ = v.Register("caller", Func(callerCondition))
}

// permCondition requires every comma separated node in the config.
func permCondition(_ context.Context, c Context) error {
	if strings.TrimSpace(c.Config) == "" {
		return nil
	}
	if !hasAll(c.Caller(), c.Config) {
		return usage.PermissionDenied(c.Config)
	}
	return nil
}

// limitsCondition bounds a numeric parameter: "limits=min=1,max=64".
func limitsCondition(_ context.Context, c Context) error {
	if c.Param == nil || c.Value == nil {
		return nil
	}
	var n float64
	switch v := c.Value.(type) {
	case int64:
		n = float64(v)
	case int:
		n = float64(v)
	case float64:
		n = v
	default:
		return Failf("%s must be a number", c.Param.Name)
	}

	flags := resolvers.ParseFlags(c.Config)
	if flags.Has("min") && n < flags.Float("min", 0) {
		return Failf("%s must be at least %s", c.Param.Name, flags.String("min", ""))
	}
	if flags.Has("max") && n > flags.Float("max", 0) {
		return Failf("%s must be at most %s", c.Param.Name, flags.String("max", ""))
	}
	return nil
}

// callerCondition restricts a command to the comma separated callers named
// in the config.
func callerCondition(_ context.Context, c Context) error {
	caller := c.Caller()
	if caller == nil {
		return Failf("this command needs a caller")
	}
	for _, name := range strings.Split(c.Config, ",") {
		if strings.EqualFold(strings.TrimSpace(name), caller.Name()) {
			return nil
		}
	}
	return Failf("%s may not use this command", caller.Name())
}
