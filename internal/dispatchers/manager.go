package dispatchers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/footprint-tools/cmdcore/internal/conditions"
	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/execctx"
	"github.com/footprint-tools/cmdcore/internal/log"
	"github.com/footprint-tools/cmdcore/internal/resolvers"
	"github.com/footprint-tools/cmdcore/internal/tokens"
	"github.com/footprint-tools/cmdcore/internal/usage"
)

const tracerName = "github.com/footprint-tools/cmdcore/internal/dispatchers"

// Observer is told about every finished dispatch.
type Observer func(ctx context.Context, r Result)

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(l domain.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithTracer sets the tracer used for dispatch spans.
func WithTracer(t trace.Tracer) Option {
	return func(m *Manager) {
		m.tracer = t
	}
}

// WithObserver adds an observer called after every dispatch.
func WithObserver(o Observer) Option {
	return func(m *Manager) {
		m.observers = append(m.observers, o)
	}
}

// WithResolvers replaces the default resolver registry.
func WithResolvers(r *resolvers.Registry) Option {
	return func(m *Manager) {
		m.resolvers = r
	}
}

// WithValidator replaces the default condition validator.
func WithValidator(v *conditions.Validator) Option {
	return func(m *Manager) {
		m.validator = v
	}
}

// WithCompletions replaces the default named completion registry.
func WithCompletions(c *Completions) Option {
	return func(m *Manager) {
		m.completions = c
	}
}

// Manager owns the command tree and runs dispatches. Registration takes
// the write lock; resolution takes the read lock; handlers run unlocked.
type Manager struct {
	regMu   sync.Mutex // serializes Register and Reload
	mu      sync.RWMutex
	tree    *Tree
	static  []domain.CommandDefinition
	sources map[string][]domain.CommandDefinition
	frozen  bool

	resolvers    *resolvers.Registry
	validator    *conditions.Validator
	replacements *Replacements
	completions  *Completions

	logger    domain.Logger
	tracer    trace.Tracer
	observers []Observer
}

// NewManager creates a manager with the builtin resolvers and conditions.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		sources:      make(map[string][]domain.CommandDefinition),
		replacements: NewReplacements(),
		logger:       log.NopLogger{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.resolvers == nil {
		m.resolvers = resolvers.NewDefaultRegistry()
	}
	if m.validator == nil {
		m.validator = conditions.NewValidator()
	}
	if m.completions == nil {
		m.completions = NewCompletions()
	}
	if m.tracer == nil {
		m.tracer = otel.Tracer(tracerName)
	}
	m.tree = NewTree(m.resolvers, m.validator, m.replacements)
	return m
}

// Resolvers returns the resolver registry for plugin registration.
func (m *Manager) Resolvers() *resolvers.Registry {
	return m.resolvers
}

// Conditions returns the condition validator for plugin registration.
func (m *Manager) Conditions() *conditions.Validator {
	return m.validator
}

// Completions returns the named completion registry.
func (m *Manager) Completions() *Completions {
	return m.completions
}

// Replacements returns the %key replacements applied at registration.
func (m *Manager) Replacements() *Replacements {
	return m.replacements
}

// Register adds one command definition.
func (m *Manager) Register(def domain.CommandDefinition) error {
	m.regMu.Lock()
	defer m.regMu.Unlock()
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.frozen {
		return usage.Configuration("command %q registered after the manager was frozen", def.PrimaryPath())
	}
	if err := m.tree.Register(def); err != nil {
		return err
	}
	m.static = append(m.static, def)
	return nil
}

// RegisterAll registers defs in order and stops at the first error.
func (m *Manager) RegisterAll(defs []domain.CommandDefinition) error {
	for _, def := range defs {
		if err := m.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// Freeze ends the registration phase for commands, resolvers and
// conditions. Reload keeps working.
func (m *Manager) Freeze() {
	m.mu.Lock()
	m.frozen = true
	m.mu.Unlock()
	m.resolvers.Freeze()
	m.validator.Freeze()
}

// Reload replaces every definition previously loaded from source and
// swaps in a freshly built tree. On error the current tree stays.
func (m *Manager) Reload(source string, defs []domain.CommandDefinition) error {
	m.regMu.Lock()
	defer m.regMu.Unlock()

	m.mu.RLock()
	static := append([]domain.CommandDefinition(nil), m.static...)
	sources := make(map[string][]domain.CommandDefinition, len(m.sources)+1)
	for k, v := range m.sources {
		sources[k] = v
	}
	m.mu.RUnlock()

	sources[source] = append([]domain.CommandDefinition(nil), defs...)

	tree := NewTree(m.resolvers, m.validator, m.replacements)
	for _, def := range static {
		if err := tree.Register(def); err != nil {
			return err
		}
	}
	names := make([]string, 0, len(sources))
	for k := range sources {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, def := range sources[name] {
			if err := tree.Register(def); err != nil {
				return fmt.Errorf("reload %s: %w", name, err)
			}
		}
	}

	m.mu.Lock()
	m.tree = tree
	m.sources = sources
	m.mu.Unlock()

	m.logger.Info("reloaded %d command(s) from %s", len(defs), source)
	return nil
}

// snapshot returns the current tree. The returned tree must only be read
// while holding the read lock.
func (m *Manager) snapshot() *Tree {
	return m.tree
}

// Dispatch tokenizes raw, resolves it, checks conditions and runs the
// handler with the execution context pushed on the task stack in ctx.
func (m *Manager) Dispatch(ctx context.Context, caller domain.Issuer, raw string) Result {
	ctx, span := m.tracer.Start(ctx, "cmdcore.dispatch")
	defer span.End()

	r := Result{Raw: raw, Caller: caller, Started: time.Now()}

	m.mu.RLock()
	res := m.snapshot().Resolve(ctx, caller, tokens.Tokenize(raw))
	m.mu.RUnlock()

	r.Command, r.Label = res.command, res.command
	if res.inv != nil {
		r.Command = res.inv.Definition.PrimaryPath()
	}
	r.Suggestions = res.suggestions
	r.Reasons = res.reasons
	if res.err != nil {
		return m.finish(ctx, span, r, res.err)
	}
	r.Invocation = res.inv

	ec := domain.NewExecutionContext(caller, res.inv, raw)
	span.SetAttributes(attribute.String("cmdcore.exec_id", ec.ID.String()))

	if err := m.validator.Validate(ctx, ec); err != nil {
		return m.finish(ctx, span, r, asUsage(err))
	}

	if err := ctx.Err(); err != nil {
		return m.finish(ctx, span, r, usage.Cancelled(r.Command, err))
	}

	var value any
	err := execctx.WithContext(ctx, ec, func(ctx context.Context) error {
		var err error
		value, err = m.invoke(ctx, ec)
		return err
	})
	if err != nil {
		if cerr := ctx.Err(); cerr != nil && errors.Is(err, cerr) {
			return m.finish(ctx, span, r, usage.Cancelled(r.Command, err))
		}
		var ue *usage.Error
		if errors.As(err, &ue) && ue.Kind != usage.ErrUnknown {
			return m.finish(ctx, span, r, ue)
		}
		return m.finish(ctx, span, r, usage.HandlerFailed(r.Command, err))
	}

	r.Value = value
	return m.finish(ctx, span, r, nil)
}

// invoke calls the handler and turns a panic into an error.
func (m *Manager) invoke(ctx context.Context, ec *domain.ExecutionContext) (value any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			m.logger.Error("handler for %q panicked: %v", ec.Invocation.CommandLabel(), rec)
			value, err = nil, fmt.Errorf("panic: %v", rec)
		}
	}()
	return ec.Definition().Handler.Handle(ctx, ec)
}

func (m *Manager) finish(ctx context.Context, span trace.Span, r Result, err *usage.Error) Result {
	r.Duration = time.Since(r.Started)
	if err != nil {
		r.Err = err
		r.Kind = kindForError(err)
		if r.Kind == ResolutionFailed {
			r.Parameter = err.Param
		}
		span.SetStatus(codes.Error, err.Kind.String())
		m.logger.Debug("dispatch %q: %s: %s", r.Raw, r.Kind, err.Message)
	} else {
		r.Kind = Executed
		m.logger.Debug("dispatch %q: executed in %s", r.Raw, r.Duration)
	}

	span.SetAttributes(
		attribute.String("cmdcore.command", r.Command),
		attribute.String("cmdcore.result", r.Kind.String()),
	)

	for _, o := range m.observers {
		o(ctx, r)
	}
	return r
}

func asUsage(err error) *usage.Error {
	var ue *usage.Error
	if errors.As(err, &ue) {
		return ue
	}
	return usage.ConditionFailed("", err.Error())
}

// Lookup returns the node at exactly path, or nil.
func (m *Manager) Lookup(path ...string) *DispatchNode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot().Find(path)
}

// Commands returns the primary path of every executable command.
func (m *Manager) Commands() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return CollectAllCommands(m.snapshot().Root(), "")
}
