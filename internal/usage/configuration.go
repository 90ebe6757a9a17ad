package usage

import "fmt"

// Configuration is returned when a command or resolver registration is invalid.
func Configuration(format string, args ...any) *Error {
	return &Error{
		Kind:    ErrConfiguration,
		Message: "invalid registration: " + fmt.Sprintf(format, args...),
	}
}
