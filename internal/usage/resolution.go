package usage

import (
	"fmt"
	"strings"
)

// ResolutionFailed is returned when one parameter could not be resolved.
// kind must be ErrNotEnoughTokens, ErrInvalidFormat or ErrNotFound.
func ResolutionFailed(kind ErrorKind, param, reason string) *Error {
	return &Error{
		Kind:    kind,
		Param:   param,
		Message: fmt.Sprintf("invalid <%s>: %s", param, reason),
	}
}

// NoMatchingOverload aggregates the per-candidate reasons when every
// overload failed to bind.
func NoMatchingOverload(command string, reasons []string) *Error {
	var b strings.Builder
	fmt.Fprintf(&b, "no form of '%s' matches the input", command)
	for _, r := range reasons {
		b.WriteString("\n  ")
		b.WriteString(r)
	}
	return &Error{
		Kind:    ErrNoMatchingOverload,
		Message: b.String(),
	}
}

// TooManyArguments is returned when tokens remain after every parameter bound.
func TooManyArguments(command string, extra []string) *Error {
	return &Error{
		Kind:    ErrTooManyArguments,
		Message: fmt.Sprintf("too many arguments for '%s': %s", command, strings.Join(extra, " ")),
	}
}
