package resolvers

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/usage"
)

// Registry maps type tags to resolvers. Reads are safe from any goroutine.
type Registry struct {
	mu        sync.RWMutex
	resolvers map[string]Resolver
	frozen    bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		resolvers: make(map[string]Resolver),
	}
}

// NewDefaultRegistry creates a registry holding the builtin resolvers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterBuiltins(r)
	return r
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// Register adds a resolver under tag.
func (r *Registry) Register(tag string, res Resolver) error {
	tag = normalizeTag(tag)
	if tag == "" {
		return usage.Configuration("resolver tag is empty")
	}
	if res == nil {
		return usage.Configuration("resolver %q is nil", tag)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return usage.Configuration("resolver %q registered after the registry was frozen", tag)
	}
	if _, exists := r.resolvers[tag]; exists {
		return usage.Configuration("resolver %q is already registered", tag)
	}
	r.resolvers[tag] = res
	return nil
}

// MustRegister is Register for init-time wiring; it panics on error.
func (r *Registry) MustRegister(tag string, res Resolver) {
	if err := r.Register(tag, res); err != nil {
		panic(err)
	}
}

// Freeze rejects any further registration.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Lookup returns the resolver for tag.
func (r *Registry) Lookup(tag string) (Resolver, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.resolvers[normalizeTag(tag)]
	return res, ok
}

// Tags returns every registered tag, sorted.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.resolvers))
	for tag := range r.resolvers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Arity returns the effective arity of p: the resolver's own arity, widened
// to Rest when p is declared Rest.
func (r *Registry) Arity(p domain.Parameter) (Arity, error) {
	res, ok := r.Lookup(p.Type)
	if !ok {
		return Arity{}, usage.Configuration("parameter %q uses unknown type %q", p.Name, p.Type)
	}
	a := res.Arity(p)
	if p.Rest && a.ConsumesInput() {
		return Rest, nil
	}
	return a, nil
}

// ConsumesInput reports whether p reads tokens. Unknown types count as
// consuming so validation elsewhere reports them.
func (r *Registry) ConsumesInput(p domain.Parameter) bool {
	a, err := r.Arity(p)
	if err != nil {
		return true
	}
	return a.ConsumesInput()
}

// Resolve binds p against the head of remaining. It returns the value and
// the number of tokens consumed. A resolver panic becomes InvalidFormat.
func (r *Registry) Resolve(ctx context.Context, p domain.Parameter, remaining []string, caller domain.Issuer, bound []domain.BoundArg) (value any, consumed int, fail *Failure) {
	res, ok := r.Lookup(p.Type)
	if !ok {
		return nil, 0, Failf(NotFound, "no resolver for type %q", p.Type)
	}
	arity, _ := r.Arity(p)

	switch arity.Kind {
	case ArityNone:
		consumed = 0
	case ArityRest:
		if len(remaining) == 0 {
			return nil, 0, Failf(NotEnoughTokens, "expected at least one value")
		}
		consumed = len(remaining)
	default:
		if len(remaining) < arity.N {
			return nil, 0, Failf(NotEnoughTokens, "expected %d value(s), got %d", arity.N, len(remaining))
		}
		consumed = arity.N
	}

	defer func() {
		if rec := recover(); rec != nil {
			value, consumed = nil, 0
			fail = Failf(InvalidFormat, "resolver %q panicked: %v", p.Type, rec)
		}
	}()

	req := Request{
		Param:  p,
		Tokens: remaining[:consumed:consumed],
		Caller: caller,
		Bound:  bound,
	}
	value, fail = res.Resolve(ctx, req)
	if fail != nil {
		return nil, 0, fail
	}
	return value, consumed, nil
}

// Suggest asks p's resolver for completion values. Parameters with a
// static Suggest list use it instead.
func (r *Registry) Suggest(ctx context.Context, req SuggestRequest) []string {
	if len(req.Param.Suggest) > 0 {
		return append([]string(nil), req.Param.Suggest...)
	}
	res, ok := r.Lookup(req.Param.Type)
	if !ok {
		return nil
	}
	s, ok := res.(Suggester)
	if !ok {
		return nil
	}
	return s.Suggest(ctx, req)
}
