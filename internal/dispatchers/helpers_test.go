package dispatchers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/resolvers"
)

type testIssuer struct {
	name  string
	perms map[string]bool
}

func (i testIssuer) Name() string { return i.name }

func (i testIssuer) HasPermission(node string) bool {
	return i.perms["*"] || i.perms[node]
}

var (
	console = testIssuer{name: "console", perms: map[string]bool{"*": true}}
	guest   = testIssuer{name: "guest"}
)

// playerResolver knows a fixed set of online players.
type playerResolver struct {
	online []string
}

func (playerResolver) Arity(domain.Parameter) resolvers.Arity { return resolvers.One }

func (r playerResolver) Resolve(_ context.Context, req resolvers.Request) (any, *resolvers.Failure) {
	for _, name := range r.online {
		if strings.EqualFold(name, req.Text()) {
			return name, nil
		}
	}
	return nil, resolvers.Failf(resolvers.NotFound, "no player named '%s' is online", req.Text())
}

func (r playerResolver) Suggest(context.Context, resolvers.SuggestRequest) []string {
	return r.online
}

// locationResolver reads x y z.
type locationResolver struct{}

type location struct{ X, Y, Z float64 }

func (locationResolver) Arity(domain.Parameter) resolvers.Arity { return resolvers.Fixed(3) }

func (locationResolver) Resolve(ctx context.Context, req resolvers.Request) (any, *resolvers.Failure) {
	var xyz [3]float64
	for i, tok := range req.Tokens {
		v, _, f := resolvers.NewDefaultRegistry().Resolve(ctx, domain.Parameter{Name: "c", Type: "double"}, []string{tok}, nil, nil)
		if f != nil {
			return nil, resolvers.Failf(resolvers.InvalidFormat, "'%s' is not a coordinate", tok)
		}
		xyz[i] = v.(float64)
	}
	return location{xyz[0], xyz[1], xyz[2]}, nil
}

func (locationResolver) Suggest(context.Context, resolvers.SuggestRequest) []string {
	return []string{"~"}
}

// named returns a handler reporting which overload ran.
func named(name string) domain.Handler {
	return domain.HandlerFunc(func(context.Context, *domain.ExecutionContext) (any, error) {
		return name, nil
	})
}

func newTestManager(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	m := NewManager(opts...)
	require.NoError(t, m.Resolvers().Register("player", playerResolver{online: []string{"Steve", "Alex", "steve the builder"}}))
	require.NoError(t, m.Resolvers().Register("location", locationResolver{}))
	return m
}

// registerDemo registers a small command set shaped like a game server's.
func registerDemo(t *testing.T, m *Manager) {
	t.Helper()
	defs := []domain.CommandDefinition{
		Command("teleport|tp", named("tp-player"), Arg("target", "player")),
		Command("teleport|tp", named("tp-location"), Arg("target", "player"), Arg("destination", "location")),
		Command("give", named("give"), Arg("player", "player"), Arg("item", "string"), Flagged(OptionalArg("amount", "int", "1"), "min=1,max=64")),
		Command("say", named("say"), RestArg("message", "text")),
		Command("whoami", named("whoami"), Arg("self", "issuer")),
		Command("config get", named("config-get"), Arg("key", "string")),
		Command("config set", named("config-set"), Arg("key", "string"), Arg("value", "text")),
	}
	op := Command("op", named("op"), Arg("player", "player"))
	op.Permission = "admin"
	defs = append(defs, op)

	require.NoError(t, m.RegisterAll(defs))
}

// funcHandler runs fn and returns nothing.
func funcHandler(fn func()) domain.Handler {
	return domain.HandlerFunc(func(context.Context, *domain.ExecutionContext) (any, error) {
		fn()
		return nil, nil
	})
}
