package actions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/execctx"
)

func waitDeps(after <-chan time.Time) actionDependencies {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	return actionDependencies{
		Now: func() time.Time {
			calls++
			if calls == 1 {
				return start
			}
			return start.Add(1500 * time.Millisecond)
		},
		After: func(time.Duration) <-chan time.Time { return after },
	}
}

func runWait(ctx context.Context, deps actionDependencies, caller domain.Issuer) (any, int, error) {
	ec := domain.NewExecutionContext(caller, &domain.Invocation{
		Args: []domain.BoundArg{{Name: "duration", Value: 1500 * time.Millisecond}},
	}, "wait 1.5s")

	var out any
	depth := -1
	err := execctx.WithContext(ctx, ec, func(ctx context.Context) error {
		var err error
		out, err = wait(deps).Handle(ctx, ec)
		depth = execctx.Depth(ctx)
		return err
	})
	return out, depth, err
}

func TestWait_ResumesOnAnotherTask(t *testing.T) {
	fired := make(chan time.Time, 1)
	fired <- time.Time{}

	out, depth, err := runWait(context.Background(), waitDeps(fired), player{name: "Steve"})
	require.NoError(t, err)
	require.Equal(t, "Steve waited 1.5s", out)
	require.Equal(t, 1, depth, "frame is restored before the handler returns")
}

func TestWait_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, depth, err := runWait(ctx, waitDeps(make(chan time.Time)), player{name: "Steve"})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, depth)
}

func TestWait_NeedsFrame(t *testing.T) {
	_, err := invoke(t, wait(waitDeps(nil)), nil, map[string]any{"duration": time.Second})
	require.ErrorIs(t, err, execctx.ErrNoFrame)
}
