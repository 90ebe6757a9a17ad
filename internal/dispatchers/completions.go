package dispatchers

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/footprint-tools/cmdcore/internal/resolvers"
	"github.com/footprint-tools/cmdcore/internal/usage"
)

// maxNamedRange caps how many values @range may list.
const maxNamedRange = 100

// TimeUnits are the values of the builtin @timeunits completion.
var TimeUnits = []string{"minutes", "hours", "days", "weeks", "months", "years"}

// CompletionRequest is what a named completion sees. Config is the text
// after ':' in "@range:1-10".
type CompletionRequest struct {
	resolvers.SuggestRequest
	Config string
}

// CompletionHandler proposes values for a parameter that references it.
type CompletionHandler interface {
	Complete(ctx context.Context, req CompletionRequest) []string
}

// CompletionFunc adapts a function to a CompletionHandler.
type CompletionFunc func(ctx context.Context, req CompletionRequest) []string

// Complete calls f.
func (f CompletionFunc) Complete(ctx context.Context, req CompletionRequest) []string {
	return f(ctx, req)
}

// Completions maps "@id" names to completion handlers. Parameters refer
// to them through Parameter.Completion, e.g. "@players|@range:1-10|all",
// where entries without '@' are literal values.
type Completions struct {
	mu       sync.RWMutex
	handlers map[string]CompletionHandler
}

// NewCompletions returns a registry holding @range, @timeunits, @empty
// and @nothing.
func NewCompletions() *Completions {
	c := &Completions{handlers: make(map[string]CompletionHandler)}
	c.handlers["range"] = CompletionFunc(completeRange)
	c.handlers["timeunits"] = staticCompletion(TimeUnits)
	c.handlers["empty"] = staticCompletion(nil)
	c.handlers["nothing"] = staticCompletion(nil)
	return c
}

func completionID(id string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(id), "@"))
}

// Register adds a named completion. The leading '@' is optional.
func (c *Completions) Register(id string, h CompletionHandler) error {
	id = completionID(id)
	if id == "" || h == nil {
		return usage.Configuration("completion needs an id and a handler")
	}
	if strings.ContainsAny(id, "|: ") {
		return usage.Configuration("completion id %q may not contain '|', ':' or spaces", id)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.handlers[id]; exists {
		return usage.Configuration("completion %q is already registered", "@"+id)
	}
	c.handlers[id] = h
	return nil
}

// RegisterStatic adds a named completion that always lists values.
func (c *Completions) RegisterStatic(id string, values ...string) error {
	return c.Register(id, staticCompletion(values))
}

// Lookup returns the handler registered under id.
func (c *Completions) Lookup(id string) (CompletionHandler, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.handlers[completionID(id)]
	return h, ok
}

// Complete expands ref for req. Unknown ids contribute nothing.
func (c *Completions) Complete(ctx context.Context, ref string, req resolvers.SuggestRequest) []string {
	var out []string
	for _, part := range strings.Split(ref, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.HasPrefix(part, "@") {
			out = append(out, part)
			continue
		}
		id, config, _ := strings.Cut(part, ":")
		h, ok := c.Lookup(id)
		if !ok {
			continue
		}
		out = append(out, h.Complete(ctx, CompletionRequest{SuggestRequest: req, Config: config})...)
	}
	return out
}

func staticCompletion(values []string) CompletionFunc {
	values = append([]string(nil), values...)
	return func(context.Context, CompletionRequest) []string {
		return append([]string(nil), values...)
	}
}

// completeRange lists "a-b" or "b" (meaning 0-b).
func completeRange(_ context.Context, req CompletionRequest) []string {
	min, max, ok := parseRange(req.Config)
	if !ok {
		return nil
	}
	return resolvers.RangeValues(min, max, maxNamedRange)
}

func parseRange(s string) (int64, int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, false
	}
	// The separator is the first '-' that is not a sign.
	sep := strings.Index(s[1:], "-")
	if sep < 0 {
		max, err := strconv.ParseInt(s, 10, 64)
		return 0, max, err == nil
	}
	sep++
	min, err := strconv.ParseInt(s[:sep], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	max, err := strconv.ParseInt(s[sep+1:], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return min, max, true
}

// paramCompletions picks the source for p: a static Suggest list, then a
// named completion reference, then the resolver.
func paramCompletions(ctx context.Context, reg *resolvers.Registry, comps *Completions, req resolvers.SuggestRequest) []string {
	if len(req.Param.Suggest) == 0 && req.Param.Completion != "" && comps != nil {
		return comps.Complete(ctx, req.Param.Completion, req)
	}
	return reg.Suggest(ctx, req)
}
