package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/footprint-tools/cmdcore/internal/conditions"
	"github.com/footprint-tools/cmdcore/internal/dispatchers"
	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/resolvers"
	"github.com/footprint-tools/cmdcore/internal/world"
)

// RegisterResolvers adds the world types to reg.
func RegisterResolvers(reg *resolvers.Registry, w *world.World) error {
	for tag, res := range map[string]resolvers.Resolver{
		"player":    playerResolver{w: w},
		"location":  locationResolver{w: w},
		"item":      itemResolver{},
		"configkey": configKeyResolver{},
	} {
		if err := reg.Register(tag, res); err != nil {
			return err
		}
	}
	return nil
}

// RegisterConditions adds the world conditions to v.
func RegisterConditions(v *conditions.Validator, w *world.World) error {
	return v.Register("online", onlineCondition{w: w})
}

// RegisterCompletions adds @players to c.
func RegisterCompletions(c *dispatchers.Completions, w *world.World) error {
	return c.Register("players", dispatchers.CompletionFunc(func(context.Context, dispatchers.CompletionRequest) []string {
		return w.Online()
	}))
}

// playerResolver binds the canonical name of an online player.
type playerResolver struct{ w *world.World }

func (playerResolver) Arity(domain.Parameter) resolvers.Arity { return resolvers.One }

func (r playerResolver) Resolve(_ context.Context, req resolvers.Request) (any, *resolvers.Failure) {
	p, ok := r.w.Find(req.Text())
	if !ok {
		return nil, resolvers.Failf(resolvers.NotFound, "no player named '%s' is online", req.Text())
	}
	return p.Name, nil
}

func (r playerResolver) Suggest(context.Context, resolvers.SuggestRequest) []string {
	return r.w.Online()
}

// locationResolver reads three coordinates. A coordinate written as ~ or
// ~N is relative to the caller's own position.
type locationResolver struct{ w *world.World }

func (locationResolver) Arity(domain.Parameter) resolvers.Arity { return resolvers.Fixed(3) }

func (r locationResolver) Resolve(_ context.Context, req resolvers.Request) (any, *resolvers.Failure) {
	var origin world.Location
	if req.Caller != nil {
		if p, ok := r.w.Find(req.Caller.Name()); ok {
			origin = p.Location
		}
	}
	base := [3]float64{origin.X, origin.Y, origin.Z}

	var out [3]float64
	for i, tok := range req.Tokens {
		v, err := coordinate(tok, base[i])
		if err != nil {
			return nil, resolvers.Failf(resolvers.InvalidFormat, "'%s' is not a coordinate", tok)
		}
		out[i] = v
	}
	return world.Location{X: out[0], Y: out[1], Z: out[2]}, nil
}

func (locationResolver) Suggest(_ context.Context, req resolvers.SuggestRequest) []string {
	if req.Prefix == "" || strings.HasPrefix(req.Prefix, "~") {
		return []string{"~"}
	}
	return nil
}

func coordinate(tok string, base float64) (float64, error) {
	rel, ok := strings.CutPrefix(tok, "~")
	if !ok {
		return strconv.ParseFloat(tok, 64)
	}
	if rel == "" {
		return base, nil
	}
	off, err := strconv.ParseFloat(rel, 64)
	return base + off, err
}

// itemResolver accepts catalog items, ignoring case.
type itemResolver struct{}

func (itemResolver) Arity(domain.Parameter) resolvers.Arity { return resolvers.One }

func (itemResolver) Resolve(_ context.Context, req resolvers.Request) (any, *resolvers.Failure) {
	item := strings.ToLower(req.Text())
	if !world.IsItem(item) {
		return nil, resolvers.Failf(resolvers.NotFound, "unknown item '%s'", req.Text())
	}
	return item, nil
}

func (itemResolver) Suggest(context.Context, resolvers.SuggestRequest) []string {
	return world.Items
}

// configKeyResolver accepts known configuration keys.
type configKeyResolver struct{}

func (configKeyResolver) Arity(domain.Parameter) resolvers.Arity { return resolvers.One }

func (configKeyResolver) Resolve(_ context.Context, req resolvers.Request) (any, *resolvers.Failure) {
	key := strings.ToLower(req.Text())
	if !domain.IsValidConfigKey(key) {
		return nil, resolvers.Failf(resolvers.NotFound, "unknown config key '%s'", req.Text())
	}
	return key, nil
}

func (configKeyResolver) Suggest(context.Context, resolvers.SuggestRequest) []string {
	keys := domain.ConfigKeys
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.Name
	}
	return out
}

// onlineCondition requires the caller, or the player bound to the
// parameter it is attached to, to be in the world.
type onlineCondition struct{ w *world.World }

func (c onlineCondition) Check(_ context.Context, cc conditions.Context) error {
	name := cc.Exec.CallerName()
	if cc.Param != nil {
		s, _ := cc.Value.(string)
		if s == "" {
			return nil
		}
		name = s
	}
	if name == "" {
		return conditions.Failf("only players can use this command")
	}
	if _, ok := c.w.Find(name); !ok {
		return conditions.Failf("%s is not in the world", name)
	}
	return nil
}
