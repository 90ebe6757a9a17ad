package dispatchers

import (
	"context"
	"fmt"
	"strings"

	"github.com/footprint-tools/cmdcore/internal/conditions"
	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/resolvers"
	"github.com/footprint-tools/cmdcore/internal/tokens"
	"github.com/footprint-tools/cmdcore/internal/usage"
)

const defaultSuggestionsCount = 3

// resolution is the outcome of matching input against the tree, before
// conditions and before the handler.
type resolution struct {
	inv         *domain.Invocation
	err         *usage.Error
	command     string
	suggestions []string
	reasons     []string
}

// Resolve matches toks against t and binds every parameter of the winning
// overload. It never runs handlers or conditions.
func (t *Tree) Resolve(ctx context.Context, caller domain.Issuer, toks []tokens.Token) resolution {
	texts := tokens.Texts(toks)

	node, consumed := t.Lookup(texts)
	if consumed == 0 {
		input := ""
		if len(texts) > 0 {
			input = texts[0]
		}
		suggestions := FindSimilarCommands(input, t.root, defaultSuggestionsCount)
		return resolution{err: usage.UnknownCommand(input, suggestions...), suggestions: suggestions}
	}

	label := texts[:consumed]
	command := strings.Join(label, " ")
	if !node.Executable() {
		next := childNames(node, caller)
		return resolution{command: command, err: usage.IncompleteCommand(command, next), suggestions: next}
	}

	rest := texts[consumed:]
	var failures []candidateFailure
	for _, o := range node.Overloads {
		inv, err := t.bind(ctx, o, rest, caller)
		if err == nil {
			inv.Label = append([]string(nil), label...)
			return resolution{inv: inv, command: command}
		}
		failures = append(failures, candidateFailure{overload: o, err: err})
	}

	if len(failures) == 1 {
		return resolution{command: command, err: failures[0].err}
	}

	reasons := make([]string, len(failures))
	for i, f := range failures {
		reasons[i] = fmt.Sprintf("%s: %s", Syntax(f.overload.Def, t.resolvers), f.err.Message)
	}
	return resolution{command: command, err: usage.NoMatchingOverload(command, reasons), reasons: reasons}
}

type candidateFailure struct {
	overload *Overload
	err      *usage.Error
}

// bind resolves every parameter of o left to right against rest. All
// state is local so a failed candidate leaves nothing behind.
func (t *Tree) bind(ctx context.Context, o *Overload, rest []string, caller domain.Issuer) (*domain.Invocation, *usage.Error) {
	def := o.Def
	bound := make([]domain.BoundArg, 0, len(def.Params))
	idx := 0

	for i, p := range def.Params {
		arity := o.Arities[i]

		if arity.ConsumesInput() && idx >= len(rest) {
			if !p.Optional {
				return nil, usage.ResolutionFailed(usage.ErrNotEnoughTokens, p.Name, "missing value")
			}
			value, err := t.resolveDefault(ctx, p, caller, bound)
			if err != nil {
				return nil, err
			}
			bound = append(bound, domain.BoundArg{Name: p.Name, Value: value, Defaulted: true})
			continue
		}

		value, n, fail := t.resolvers.Resolve(ctx, p, rest[idx:], caller, bound)
		if fail != nil {
			if !arity.ConsumesInput() && p.Optional {
				bound = append(bound, domain.BoundArg{Name: p.Name, Defaulted: true})
				continue
			}
			return nil, usage.ResolutionFailed(fail.Reason.Kind(), p.Name, fail.Error())
		}
		bound = append(bound, domain.BoundArg{
			Name:  p.Name,
			Value: value,
			Raw:   append([]string(nil), rest[idx:idx+n]...),
		})
		idx += n
	}

	inv := &domain.Invocation{Definition: def, Args: bound}
	if idx < len(rest) {
		if !def.AllowTrailing {
			return nil, usage.TooManyArguments(def.PrimaryPath(), rest[idx:])
		}
		inv.Trailing = append([]string(nil), rest[idx:]...)
	}
	return inv, nil
}

// resolveDefault feeds p.Default through p's resolver. No default binds nil.
func (t *Tree) resolveDefault(ctx context.Context, p domain.Parameter, caller domain.Issuer, bound []domain.BoundArg) (any, *usage.Error) {
	if p.Default == "" {
		return nil, nil
	}
	value, _, fail := t.resolvers.Resolve(ctx, p, tokens.Texts(tokens.Tokenize(p.Default)), caller, bound)
	if fail != nil {
		return nil, usage.ResolutionFailed(fail.Reason.Kind(), p.Name, "bad default: "+fail.Error())
	}
	return value, nil
}

// childNames returns the primary alias of every child caller can see, in
// registration order.
func childNames(node *DispatchNode, caller domain.Issuer) []string {
	out := make([]string, 0, len(node.order))
	for _, c := range node.order {
		if c.visibleTo(caller, conditions.Permitted) {
			out = append(out, c.Name)
		}
	}
	return out
}

// Syntax renders a definition as "path <required> [optional] <rest...>".
// Context-only parameters are left out.
func Syntax(def *domain.CommandDefinition, reg *resolvers.Registry) string {
	parts := []string{def.PrimaryPath()}
	for _, p := range def.Params {
		a, err := reg.Arity(p)
		if err == nil && !a.ConsumesInput() {
			continue
		}
		name := p.Name
		if err == nil && a.Kind == resolvers.ArityRest {
			name += "..."
		}
		if p.Optional {
			parts = append(parts, "["+name+"]")
		} else {
			parts = append(parts, "<"+name+">")
		}
	}
	return strings.Join(parts, " ")
}
