package domain

import (
	"context"
	"strings"
)

// Issuer identifies whoever typed a command. The engine never inspects it
// beyond the optional capability interfaces below.
type Issuer interface {
	Name() string
}

// PermissionHolder is implemented by issuers that carry permission nodes.
type PermissionHolder interface {
	HasPermission(node string) bool
}

// Handler runs a fully resolved command.
type Handler interface {
	Handle(ctx context.Context, ec *ExecutionContext) (any, error)
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(ctx context.Context, ec *ExecutionContext) (any, error)

// Handle calls f(ctx, ec).
func (f HandlerFunc) Handle(ctx context.Context, ec *ExecutionContext) (any, error) {
	return f(ctx, ec)
}

// Parameter declares one positional argument of a command.
type Parameter struct {
	Name     string
	Type     string // resolver type tag
	Optional bool

	// Default is raw text resolved through the parameter's resolver when
	// the parameter is optional and no input is left. Empty means nil.
	Default string

	// Rest makes the parameter consume every remaining token. Only valid
	// on the last parameter.
	Rest bool

	// Conditions are evaluated against the resolved value, in order.
	// Each entry is "id" or "id=config".
	Conditions []string

	// Flags configure the resolver (min, max, values, minlen, ...).
	Flags map[string]string

	// Suggest overrides resolver completion with a static list.
	Suggest []string

	// Completion names registered completions, "@players|@range:1-10".
	// Entries without '@' are literal values.
	Completion string

	Description string
}

// Flag returns the value of a resolver flag.
func (p Parameter) Flag(name string) (string, bool) {
	v, ok := p.Flags[name]
	return v, ok
}

// HasFlag reports whether a resolver flag is present.
func (p Parameter) HasFlag(name string) bool {
	_, ok := p.Flags[name]
	return ok
}

// CommandDefinition is an immutable registration record.
type CommandDefinition struct {
	// Path holds one element per tree level. An element may list
	// alternatives separated by '|'; the first one is primary.
	Path []string

	Params  []Parameter
	Handler Handler

	// Permission is checked before any other condition.
	Permission string

	// Conditions run before parameter conditions, in order.
	Conditions []string

	// AllowTrailing keeps unconsumed tokens instead of failing with
	// TooManyArguments.
	AllowTrailing bool

	Description string
	Category    CommandCategory
	Hidden      bool
}

// Aliases returns the alternatives of path element i.
func (d *CommandDefinition) Aliases(i int) []string {
	if i < 0 || i >= len(d.Path) {
		return nil
	}
	return SplitAliases(d.Path[i])
}

// PrimaryPath joins the primary alias of every path element.
func (d *CommandDefinition) PrimaryPath() string {
	parts := make([]string, 0, len(d.Path))
	for i := range d.Path {
		if aliases := d.Aliases(i); len(aliases) > 0 {
			parts = append(parts, aliases[0])
		}
	}
	return strings.Join(parts, " ")
}

// RequiredCount counts parameters that must consume input.
func (d *CommandDefinition) RequiredCount(consumesInput func(Parameter) bool) int {
	n := 0
	for _, p := range d.Params {
		if !p.Optional && consumesInput(p) {
			n++
		}
	}
	return n
}

// SplitAliases splits "teleport|tp" into its trimmed, non-empty parts.
func SplitAliases(element string) []string {
	var out []string
	for _, a := range strings.Split(element, "|") {
		a = strings.TrimSpace(a)
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}
