package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BoundArg is a parameter bound to its resolved value.
type BoundArg struct {
	Name      string
	Value     any
	Raw       []string
	Defaulted bool
}

// Invocation is a matched command with every parameter bound, not yet run.
type Invocation struct {
	Definition *CommandDefinition
	Label      []string // aliases as typed
	Args       []BoundArg
	Trailing   []string
}

// Arg returns the value bound to the named parameter.
func (inv *Invocation) Arg(name string) (any, bool) {
	if inv == nil {
		return nil, false
	}
	for _, a := range inv.Args {
		if a.Name == name {
			return a.Value, true
		}
	}
	return nil, false
}

// Values returns the bound values in declaration order.
func (inv *Invocation) Values() []any {
	out := make([]any, len(inv.Args))
	for i, a := range inv.Args {
		out[i] = a.Value
	}
	return out
}

// CommandLabel joins the aliases the caller typed.
func (inv *Invocation) CommandLabel() string {
	return strings.Join(inv.Label, " ")
}

// ExecutionContext is what a handler sees: who called, what was matched
// and the resolved arguments.
type ExecutionContext struct {
	ID         uuid.UUID
	Caller     Issuer
	Invocation *Invocation
	Raw        string
	Started    time.Time
}

// NewExecutionContext creates a context for one dispatch.
func NewExecutionContext(caller Issuer, inv *Invocation, raw string) *ExecutionContext {
	return &ExecutionContext{
		ID:         uuid.New(),
		Caller:     caller,
		Invocation: inv,
		Raw:        raw,
		Started:    time.Now(),
	}
}

// Definition returns the matched definition, or nil before matching.
func (ec *ExecutionContext) Definition() *CommandDefinition {
	if ec == nil || ec.Invocation == nil {
		return nil
	}
	return ec.Invocation.Definition
}

// Arg returns the value bound to name.
func (ec *ExecutionContext) Arg(name string) (any, bool) {
	if ec == nil {
		return nil, false
	}
	return ec.Invocation.Arg(name)
}

// String returns the named argument formatted as text, or "" if unbound.
func (ec *ExecutionContext) String(name string) string {
	v, ok := ec.Arg(name)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int returns the named argument as an int64, or def if unbound or not numeric.
func (ec *ExecutionContext) Int(name string, def int64) int64 {
	v, ok := ec.Arg(name)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return def
	}
}

// Bool returns the named argument as a bool, or false if unbound.
func (ec *ExecutionContext) Bool(name string) bool {
	v, _ := ec.Arg(name)
	b, _ := v.(bool)
	return b
}

// CallerName returns the caller's name, or "" for an anonymous caller.
func (ec *ExecutionContext) CallerName() string {
	if ec == nil || ec.Caller == nil {
		return ""
	}
	return ec.Caller.Name()
}
