package usage

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_ExitCodes(t *testing.T) {
	tests := []struct {
		err      *Error
		expected int
	}{
		{UnknownCommand("fly"), 2},
		{IncompleteCommand("config", []string{"get", "set"}), 2},
		{NoMatchingOverload("tp", nil), 2},
		{ResolutionFailed(ErrInvalidFormat, "amount", "must be a number"), 2},
		{TooManyArguments("whoami", []string{"x"}), 2},
		{PermissionDenied("admin"), 2},
		{Configuration("duplicate alias %q", "tp"), 1},
		{Cancelled("wait", context.Canceled), 1},
		{HandlerFailed("give", errors.New("boom")), 1},
		{&Error{Kind: ErrHandler, ExitCode: 7}, 7},
		{&Error{Kind: ErrorKind(99)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.err.Kind.String(), func(t *testing.T) {
			require.Equal(t, tt.expected, tt.err.GetExitCode())
		})
	}
}

func TestUnknownCommand_Suggestions(t *testing.T) {
	err := UnknownCommand("teleprot", "teleport")
	require.Contains(t, err.Error(), "'teleprot' is not a known command")
	require.Contains(t, err.Error(), "Did you mean 'teleport'?")

	err = UnknownCommand("fly")
	require.NotContains(t, err.Error(), "Did you mean")
}

func TestError_IsAndUnwrap(t *testing.T) {
	err := fmt.Errorf("dispatch: %w", Cancelled("wait", context.DeadlineExceeded))

	require.True(t, errors.Is(err, &Error{Kind: ErrCancelled}))
	require.False(t, errors.Is(err, &Error{Kind: ErrHandler}))
	require.True(t, errors.Is(err, context.DeadlineExceeded))
	require.Equal(t, ErrCancelled, KindOf(err))
	require.Equal(t, ErrUnknown, KindOf(errors.New("plain")))
}

func TestNoMatchingOverload_ListsReasons(t *testing.T) {
	err := NoMatchingOverload("teleport", []string{"teleport <player>: too many arguments", "teleport <player> <location>: invalid <location>"})
	require.Contains(t, err.Error(), "no form of 'teleport' matches the input")
	require.Contains(t, err.Error(), "\n  teleport <player>: too many arguments")
}
