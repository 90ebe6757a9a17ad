package usage

import (
	"fmt"
	"strings"
)

// UnknownCommand is returned when no registered command starts with the input.
func UnknownCommand(command string, suggestions ...string) *Error {
	msg := fmt.Sprintf("'%s' is not a known command. Type 'help' for a list.", command)
	if len(suggestions) > 0 {
		msg += fmt.Sprintf(" Did you mean '%s'?", strings.Join(suggestions, "', '"))
	}
	return &Error{
		Kind:    ErrUnknownCommand,
		Message: msg,
	}
}

// IncompleteCommand is returned when the input stops at a group with no handler.
func IncompleteCommand(path string, next []string) *Error {
	msg := fmt.Sprintf("'%s' needs a subcommand", path)
	if len(next) > 0 {
		msg += ": " + strings.Join(next, ", ")
	}
	return &Error{
		Kind:    ErrIncompleteCommand,
		Message: msg,
	}
}
