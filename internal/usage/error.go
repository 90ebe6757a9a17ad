package usage

import "errors"

// ErrorKind represents the type of usage error.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrConfiguration
	ErrUnknownCommand
	ErrIncompleteCommand
	ErrNoMatchingOverload
	ErrNotEnoughTokens
	ErrInvalidFormat
	ErrNotFound
	ErrConditionFailed
	ErrTooManyArguments
	ErrCancelled
	ErrHandler
	ErrInvalidFlag
	ErrMissingArgument
	ErrInvalidConfigKey
	ErrRateLimited
)

var kindNames = map[ErrorKind]string{
	ErrUnknown:            "unknown",
	ErrConfiguration:      "configuration",
	ErrUnknownCommand:     "unknown_command",
	ErrIncompleteCommand:  "incomplete_command",
	ErrNoMatchingOverload: "no_matching_overload",
	ErrNotEnoughTokens:    "not_enough_tokens",
	ErrInvalidFormat:      "invalid_format",
	ErrNotFound:           "not_found",
	ErrConditionFailed:    "condition_failed",
	ErrTooManyArguments:   "too_many_arguments",
	ErrCancelled:          "cancelled",
	ErrHandler:            "handler",
	ErrInvalidFlag:        "invalid_flag",
	ErrMissingArgument:    "missing_argument",
	ErrInvalidConfigKey:   "invalid_config_key",
	ErrRateLimited:        "rate_limited",
}

// String returns the snake_case name of the kind.
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Exit codes:
//
//	Exit 1: Environment/system errors
//	  - Unknown errors
//	  - Configuration errors (bad registrations)
//	  - Cancelled dispatches
//	  - Handler failures
//	  - Invalid config key
//
//	Exit 2: User input errors
//	  - Unknown or incomplete command
//	  - No matching overload, resolution failures
//	  - Failed conditions
//	  - Too many arguments
//	  - Invalid flag, missing argument
//	  - Rate limited
var exitCodes = map[ErrorKind]int{
	ErrUnknown:            1,
	ErrConfiguration:      1,
	ErrUnknownCommand:     2,
	ErrIncompleteCommand:  2,
	ErrNoMatchingOverload: 2,
	ErrNotEnoughTokens:    2,
	ErrInvalidFormat:      2,
	ErrNotFound:           2,
	ErrConditionFailed:    2,
	ErrTooManyArguments:   2,
	ErrCancelled:          1,
	ErrHandler:            1,
	ErrInvalidFlag:        2,
	ErrMissingArgument:    2,
	ErrInvalidConfigKey:   1,
	ErrRateLimited:        2,
}

// Error represents a user-facing usage error with semantic type information.
type Error struct {
	Kind     ErrorKind
	Message  string
	Param    string // parameter name for resolution failures
	ExitCode int    // computed from Kind if zero
	Err      error  // wrapped cause
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind, so errors.Is(err, &Error{Kind: k}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// GetExitCode returns the appropriate exit code for this error.
// If ExitCode is explicitly set, it is returned; otherwise, the code is derived from Kind.
func (e *Error) GetExitCode() int {
	if e.ExitCode != 0 {
		return e.ExitCode
	}
	if code, ok := exitCodes[e.Kind]; ok {
		return code
	}
	return 1
}

// KindOf returns the kind of the first *Error in err's chain, or ErrUnknown.
func KindOf(err error) ErrorKind {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return ErrUnknown
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)
