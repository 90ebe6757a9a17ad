package usage

import "fmt"

// ConditionFailed is returned when a pre-condition rejected the invocation.
func ConditionFailed(condition, reason string) *Error {
	return &Error{
		Kind:    ErrConditionFailed,
		Message: reason,
		Param:   condition,
	}
}

// PermissionDenied is the ConditionFailed produced by the permission check.
func PermissionDenied(node string) *Error {
	return &Error{
		Kind:    ErrConditionFailed,
		Message: fmt.Sprintf("you do not have permission to perform this command (%s)", node),
		Param:   "perm",
	}
}
