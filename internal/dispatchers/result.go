package dispatchers

import (
	"time"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/usage"
)

// ResultKind is the outcome of one dispatch.
type ResultKind int

const (
	Executed ResultKind = iota
	UnknownCommand
	IncompleteCommand
	NoMatchingOverload
	ConditionFailed
	ResolutionFailed
	TooManyArguments
	Cancelled
	HandlerFailed
)

func (k ResultKind) String() string {
	switch k {
	case Executed:
		return "executed"
	case UnknownCommand:
		return "unknown_command"
	case IncompleteCommand:
		return "incomplete_command"
	case NoMatchingOverload:
		return "no_matching_overload"
	case ConditionFailed:
		return "condition_failed"
	case ResolutionFailed:
		return "resolution_failed"
	case TooManyArguments:
		return "too_many_arguments"
	case Cancelled:
		return "cancelled"
	default:
		return "handler_failed"
	}
}

// Result is what Dispatch reports. Err is nil only for Executed.
type Result struct {
	Kind  ResultKind
	Value any // handler return value when Executed

	Raw        string
	Caller     domain.Issuer
	Command    string // primary path once bound, otherwise the path as typed
	Label      string // aliases as typed, empty when nothing matched
	Invocation *domain.Invocation

	// Suggestions holds did-you-mean aliases for UnknownCommand and the
	// next aliases for IncompleteCommand.
	Suggestions []string

	// Reasons lists one failure per candidate for NoMatchingOverload.
	Reasons []string

	// Parameter names the failing parameter for ResolutionFailed.
	Parameter string

	Err      *usage.Error
	Started  time.Time
	Duration time.Duration
}

// OK reports whether the handler ran and returned normally.
func (r Result) OK() bool {
	return r.Kind == Executed
}

// Error returns the failure as an error, nil when Executed.
func (r Result) Error() error {
	if r.Err == nil {
		return nil
	}
	return r.Err
}

func kindForError(err *usage.Error) ResultKind {
	switch err.Kind {
	case usage.ErrUnknownCommand:
		return UnknownCommand
	case usage.ErrIncompleteCommand:
		return IncompleteCommand
	case usage.ErrNoMatchingOverload:
		return NoMatchingOverload
	case usage.ErrConditionFailed:
		return ConditionFailed
	case usage.ErrNotEnoughTokens, usage.ErrInvalidFormat, usage.ErrNotFound:
		return ResolutionFailed
	case usage.ErrTooManyArguments:
		return TooManyArguments
	case usage.ErrCancelled:
		return Cancelled
	default:
		return HandlerFailed
	}
}
