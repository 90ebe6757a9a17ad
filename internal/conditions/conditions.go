// Package conditions validates pre-conditions of a resolved invocation.
package conditions

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/usage"
)

// Context is what a condition sees. Param is nil for command conditions.
type Context struct {
	Exec   *domain.ExecutionContext
	Config string
	Param  *domain.Parameter
	Value  any
}

// Caller returns the invoking issuer.
func (c Context) Caller() domain.Issuer {
	if c.Exec == nil {
		return nil
	}
	return c.Exec.Caller
}

// Condition is a pure predicate over an invocation.
type Condition interface {
	Check(ctx context.Context, c Context) error
}

// Func adapts a function to Condition.
type Func func(ctx context.Context, c Context) error

// Check calls f.
func (f Func) Check(ctx context.Context, c Context) error { return f(ctx, c) }

// Spec is one parsed "id=config" entry.
type Spec struct {
	ID     string
	Config string
}

// ParseSpecs parses entries such as "perm=admin|limits=min=1,max=5".
// Each entry may hold several '|' separated conditions.
func ParseSpecs(entries []string) []Spec {
	var out []Spec
	for _, entry := range entries {
		for _, part := range strings.Split(entry, "|") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, config, _ := strings.Cut(part, "=")
			out = append(out, Spec{ID: strings.ToLower(strings.TrimSpace(id)), Config: strings.TrimSpace(config)})
		}
	}
	return out
}

// Validator holds named conditions.
type Validator struct {
	mu         sync.RWMutex
	conditions map[string]Condition
	frozen     bool
}

// NewValidator creates a validator holding the builtin conditions.
func NewValidator() *Validator {
	v := &Validator{conditions: make(map[string]Condition)}
	registerBuiltins(v)
	return v
}

// Register adds a named condition.
func (v *Validator) Register(id string, c Condition) error {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" || c == nil {
		return usage.Configuration("condition needs an id and an implementation")
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.frozen {
		return usage.Configuration("condition %q registered after the validator was frozen", id)
	}
	if _, exists := v.conditions[id]; exists {
		return usage.Configuration("condition %q is already registered", id)
	}
	v.conditions[id] = c
	return nil
}

// Freeze rejects any further registration.
func (v *Validator) Freeze() {
	v.mu.Lock()
	v.frozen = true
	v.mu.Unlock()
}

// IDs returns the registered condition ids, sorted.
func (v *Validator) IDs() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	ids := make([]string, 0, len(v.conditions))
	for id := range v.conditions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (v *Validator) lookup(id string) (Condition, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	c, ok := v.conditions[id]
	return c, ok
}

// CheckDefinition reports unknown condition ids used by def.
func (v *Validator) CheckDefinition(def *domain.CommandDefinition) error {
	for _, s := range ParseSpecs(def.Conditions) {
		if _, ok := v.lookup(s.ID); !ok {
			return usage.Configuration("command %q uses unknown condition %q", def.PrimaryPath(), s.ID)
		}
	}
	for _, p := range def.Params {
		for _, s := range ParseSpecs(p.Conditions) {
			if _, ok := v.lookup(s.ID); !ok {
				return usage.Configuration("parameter %q of %q uses unknown condition %q", p.Name, def.PrimaryPath(), s.ID)
			}
		}
	}
	return nil
}

// Validate runs the permission check, then command conditions, then
// parameter conditions in parameter order. It stops at the first failure.
func (v *Validator) Validate(ctx context.Context, ec *domain.ExecutionContext) error {
	def := ec.Definition()
	if def == nil {
		return nil
	}

	if !Permitted(ec.Caller, def) {
		return usage.PermissionDenied(def.Permission)
	}

	for _, s := range ParseSpecs(def.Conditions) {
		if err := v.run(ctx, s, Context{Exec: ec, Config: s.Config}); err != nil {
			return err
		}
	}

	for i := range def.Params {
		p := &def.Params[i]
		if len(p.Conditions) == 0 {
			continue
		}
		value, _ := ec.Arg(p.Name)
		for _, s := range ParseSpecs(p.Conditions) {
			if err := v.run(ctx, s, Context{Exec: ec, Config: s.Config, Param: p, Value: value}); err != nil {
				return err
			}
		}
	}

	return nil
}

func (v *Validator) run(ctx context.Context, s Spec, c Context) error {
	cond, ok := v.lookup(s.ID)
	if !ok {
		return usage.Configuration("unknown condition %q", s.ID)
	}
	err := cond.Check(ctx, c)
	if err == nil {
		return nil
	}
	var ue *usage.Error
	if errors.As(err, &ue) {
		return ue
	}
	return usage.ConditionFailed(s.ID, err.Error())
}

// Permitted reports whether caller may see and run def. Every comma
// separated node in def.Permission is required.
func Permitted(caller domain.Issuer, def *domain.CommandDefinition) bool {
	if def == nil || strings.TrimSpace(def.Permission) == "" {
		return true
	}
	return hasAll(caller, def.Permission)
}

func hasAll(caller domain.Issuer, nodes string) bool {
	holder, ok := caller.(domain.PermissionHolder)
	if !ok {
		return false
	}
	for _, node := range strings.Split(nodes, ",") {
		node = strings.TrimSpace(node)
		if node != "" && !holder.HasPermission(node) {
			return false
		}
	}
	return true
}

// Failf builds a condition failure message.
func Failf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
