package usage

import "fmt"

// Cancelled is returned when the dispatch context ended before or during the handler.
func Cancelled(command string, cause error) *Error {
	return &Error{
		Kind:    ErrCancelled,
		Message: fmt.Sprintf("'%s' was cancelled: %v", command, cause),
		Err:     cause,
	}
}

// HandlerFailed wraps an error returned (or a panic raised) by a handler.
func HandlerFailed(command string, cause error) *Error {
	return &Error{
		Kind:    ErrHandler,
		Message: fmt.Sprintf("'%s' failed: %v", command, cause),
		Err:     cause,
	}
}

// RateLimited is returned when a caller sends commands too quickly.
func RateLimited(caller string) *Error {
	return &Error{
		Kind:    ErrRateLimited,
		Message: fmt.Sprintf("%s is sending commands too quickly", caller),
	}
}
