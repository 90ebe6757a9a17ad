// Package resolvers turns raw tokens into typed argument values.
package resolvers

import (
	"context"
	"fmt"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/usage"
)

// ArityKind describes how many tokens a resolver consumes.
type ArityKind int

const (
	ArityOne   ArityKind = iota // exactly one token
	ArityFixed                  // exactly N tokens
	ArityRest                   // every remaining token, at least one
	ArityNone                   // no tokens, resolved from the caller
)

// Arity is the token demand of a resolver for one parameter.
type Arity struct {
	Kind ArityKind
	N    int
}

var (
	One  = Arity{Kind: ArityOne, N: 1}
	Rest = Arity{Kind: ArityRest}
	None = Arity{Kind: ArityNone}
)

// Fixed returns an arity consuming exactly n tokens.
func Fixed(n int) Arity {
	if n == 1 {
		return One
	}
	return Arity{Kind: ArityFixed, N: n}
}

// ConsumesInput reports whether the arity reads tokens at all.
func (a Arity) ConsumesInput() bool {
	return a.Kind != ArityNone
}

func (a Arity) String() string {
	switch a.Kind {
	case ArityOne:
		return "one"
	case ArityFixed:
		return fmt.Sprintf("fixed(%d)", a.N)
	case ArityRest:
		return "rest"
	default:
		return "none"
	}
}

// Reason classifies a resolution failure.
type Reason int

const (
	NotEnoughTokens Reason = iota
	InvalidFormat
	NotFound
)

func (r Reason) String() string {
	switch r {
	case NotEnoughTokens:
		return "not enough tokens"
	case InvalidFormat:
		return "invalid format"
	default:
		return "not found"
	}
}

// Kind maps the reason onto the usage error taxonomy.
func (r Reason) Kind() usage.ErrorKind {
	switch r {
	case NotEnoughTokens:
		return usage.ErrNotEnoughTokens
	case InvalidFormat:
		return usage.ErrInvalidFormat
	default:
		return usage.ErrNotFound
	}
}

// Failure is a typed resolution failure. Resolvers return it instead of panicking.
type Failure struct {
	Reason  Reason
	Message string
}

func (f *Failure) Error() string {
	if f.Message == "" {
		return f.Reason.String()
	}
	return f.Message
}

// Failf builds a Failure with a formatted message.
func Failf(reason Reason, format string, args ...any) *Failure {
	return &Failure{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// Request is what a resolver sees for one parameter.
type Request struct {
	Param  domain.Parameter
	Tokens []string // exactly the tokens the arity asked for
	Caller domain.Issuer
	Bound  []domain.BoundArg // parameters already bound on this candidate
}

// Flags returns the parameter's resolver flags.
func (r Request) Flags() Flags {
	return Flags(r.Param.Flags)
}

// Text returns the single token for One arity resolvers.
func (r Request) Text() string {
	if len(r.Tokens) == 0 {
		return ""
	}
	return r.Tokens[0]
}

// Resolver converts tokens for one semantic type.
type Resolver interface {
	// Arity reports how many tokens p needs.
	Arity(p domain.Parameter) Arity

	// Resolve converts req.Tokens. It must not mutate shared state.
	Resolve(ctx context.Context, req Request) (any, *Failure)
}

// SuggestRequest is what a Suggester sees while completing.
type SuggestRequest struct {
	Param  domain.Parameter
	Prefix string
	Index  int // token index within a multi-token parameter
	Caller domain.Issuer
	Bound  []domain.BoundArg
}

// Suggester is implemented by resolvers that can propose values.
type Suggester interface {
	Suggest(ctx context.Context, req SuggestRequest) []string
}

// Func adapts a function to a One arity Resolver.
type Func func(ctx context.Context, req Request) (any, *Failure)

// Arity returns One.
func (f Func) Arity(domain.Parameter) Arity { return One }

// Resolve calls f.
func (f Func) Resolve(ctx context.Context, req Request) (any, *Failure) { return f(ctx, req) }
