package dispatchers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/execctx"
	"github.com/footprint-tools/cmdcore/internal/usage"
)

func TestDispatch_Executed(t *testing.T) {
	m := newTestManager(t)
	registerDemo(t, m)

	r := m.Dispatch(context.Background(), console, "give steve sword 5")
	require.Equal(t, Executed, r.Kind, r.Error())
	require.Equal(t, "give", r.Value)
	require.Equal(t, "give", r.Command)
	require.Equal(t, []any{"Steve", "sword", int64(5)}, r.Invocation.Values())
	require.Nil(t, r.Error())
}

func TestDispatch_AliasReportsPrimaryPath(t *testing.T) {
	m := newTestManager(t)
	registerDemo(t, m)

	r := m.Dispatch(context.Background(), console, "TP steve")
	require.Equal(t, Executed, r.Kind, r.Error())
	require.Equal(t, "teleport", r.Command)
	require.Equal(t, "TP", r.Label)

	r = m.Dispatch(context.Background(), console, "tp")
	require.Equal(t, NoMatchingOverload, r.Kind)
	require.Equal(t, "tp", r.Command, "nothing bound, so the typed path is kept")
}

func TestDispatch_QuotedArgument(t *testing.T) {
	m := newTestManager(t)
	registerDemo(t, m)

	r := m.Dispatch(context.Background(), console, `give "steve the builder" sword`)
	require.Equal(t, Executed, r.Kind, r.Error())
	require.Equal(t, []any{"steve the builder", "sword", int64(1)}, r.Invocation.Values(), "optional amount takes its default")
	require.True(t, r.Invocation.Args[2].Defaulted)
}

func TestDispatch_CaseInsensitiveAliases(t *testing.T) {
	m := newTestManager(t)
	registerDemo(t, m)

	r := m.Dispatch(context.Background(), console, "TP alex")
	require.Equal(t, Executed, r.Kind)
	require.Equal(t, "tp-player", r.Value)
	require.Equal(t, []string{"TP"}, r.Invocation.Label)
}

func TestDispatch_OverloadBacktracking(t *testing.T) {
	m := newTestManager(t)
	registerDemo(t, m)

	r := m.Dispatch(context.Background(), console, "teleport steve 1 2 3")
	require.Equal(t, Executed, r.Kind, r.Error())
	require.Equal(t, "tp-location", r.Value)
	dest, _ := r.Invocation.Arg("destination")
	require.Equal(t, location{1, 2, 3}, dest)

	r = m.Dispatch(context.Background(), console, "teleport steve")
	require.Equal(t, Executed, r.Kind, r.Error())
	require.Equal(t, "tp-player", r.Value)
}

func TestDispatch_MostSpecificOverloadWins(t *testing.T) {
	for _, order := range [][]string{{"one", "two"}, {"two", "one"}} {
		m := newTestManager(t)
		for _, name := range order {
			if name == "one" {
				require.NoError(t, m.Register(Command("pick", named("one"), Arg("a", "string"))))
			} else {
				require.NoError(t, m.Register(Command("pick", named("two"), Arg("a", "string"), Arg("b", "int"))))
			}
		}

		r := m.Dispatch(context.Background(), console, "pick x 2")
		require.Equal(t, "two", r.Value, "registration order %v", order)

		r = m.Dispatch(context.Background(), console, "pick x")
		require.Equal(t, "one", r.Value, "registration order %v", order)
	}
}

func TestDispatch_BacktrackingLeavesNoState(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Register(Command("tp", named("two"), Arg("a", "player"), Arg("b", "location"))))
	require.NoError(t, m.Register(Command("tp", named("one"), Arg("a", "player"))))

	r := m.Dispatch(context.Background(), console, "tp steve")
	require.Equal(t, Executed, r.Kind)
	require.Len(t, r.Invocation.Args, 1)
	require.Equal(t, "a", r.Invocation.Args[0].Name)
}

func TestDispatch_UnknownCommand(t *testing.T) {
	m := newTestManager(t)
	registerDemo(t, m)

	r := m.Dispatch(context.Background(), console, "fly")
	require.Equal(t, UnknownCommand, r.Kind)
	require.Equal(t, usage.ErrUnknownCommand, r.Err.Kind)

	r = m.Dispatch(context.Background(), console, "teleprot steve")
	require.Equal(t, UnknownCommand, r.Kind)
	require.Contains(t, r.Suggestions, "teleport")

	r = m.Dispatch(context.Background(), console, "   ")
	require.Equal(t, UnknownCommand, r.Kind)
}

func TestDispatch_IncompleteCommand(t *testing.T) {
	m := newTestManager(t)
	registerDemo(t, m)

	r := m.Dispatch(context.Background(), console, "config")
	require.Equal(t, IncompleteCommand, r.Kind)
	require.Equal(t, []string{"get", "set"}, r.Suggestions)
	require.Equal(t, "config", r.Command)

	r = m.Dispatch(context.Background(), console, "config frobnicate")
	require.Equal(t, IncompleteCommand, r.Kind)
}

func TestDispatch_ResolutionFailed(t *testing.T) {
	m := newTestManager(t)
	registerDemo(t, m)

	tests := []struct {
		input string
		param string
		kind  usage.ErrorKind
	}{
		{"give steve sword many", "amount", usage.ErrInvalidFormat},
		{"give steve sword 65", "amount", usage.ErrInvalidFormat},
		{"give notch sword", "player", usage.ErrNotFound},
		{"give steve", "item", usage.ErrNotEnoughTokens},
		{"say", "message", usage.ErrNotEnoughTokens},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := m.Dispatch(context.Background(), console, tt.input)
			require.Equal(t, ResolutionFailed, r.Kind)
			require.Equal(t, tt.param, r.Parameter)
			require.Equal(t, tt.kind, r.Err.Kind)
		})
	}
}

func TestDispatch_NoMatchingOverload(t *testing.T) {
	m := newTestManager(t)
	registerDemo(t, m)

	r := m.Dispatch(context.Background(), console, "tp steve 1 2 x")
	require.Equal(t, NoMatchingOverload, r.Kind)
	require.Len(t, r.Reasons, 2)
	require.Contains(t, r.Reasons[0], "teleport <target> <destination>")
	require.Contains(t, r.Reasons[1], "too many arguments")

	r = m.Dispatch(context.Background(), console, "tp")
	require.Equal(t, NoMatchingOverload, r.Kind)
}

func TestDispatch_TooManyArguments(t *testing.T) {
	m := newTestManager(t)
	registerDemo(t, m)

	r := m.Dispatch(context.Background(), console, "config get color extra")
	require.Equal(t, TooManyArguments, r.Kind)
	require.Contains(t, r.Err.Message, "extra")

	trailing := Command("echo", named("echo"), Arg("first", "string"))
	trailing.AllowTrailing = true
	require.NoError(t, m.Register(trailing))

	r = m.Dispatch(context.Background(), console, "echo a b c")
	require.Equal(t, Executed, r.Kind)
	require.Equal(t, []string{"b", "c"}, r.Invocation.Trailing)
}

func TestDispatch_ContextOnlyParameter(t *testing.T) {
	m := newTestManager(t)
	registerDemo(t, m)

	var seen domain.Issuer
	require.NoError(t, m.Register(Command("me", domain.HandlerFunc(func(_ context.Context, ec *domain.ExecutionContext) (any, error) {
		v, _ := ec.Arg("self")
		seen = v.(domain.Issuer)
		return nil, nil
	}), Arg("self", "issuer"), RestArg("action", "text"))))

	r := m.Dispatch(context.Background(), guest, "me waves")
	require.Equal(t, Executed, r.Kind, r.Error())
	require.Equal(t, guest, seen)

	r = m.Dispatch(context.Background(), nil, "whoami")
	require.Equal(t, ResolutionFailed, r.Kind)
}

func TestDispatch_ConditionFailed(t *testing.T) {
	m := newTestManager(t)
	registerDemo(t, m)

	r := m.Dispatch(context.Background(), guest, "op steve")
	require.Equal(t, ConditionFailed, r.Kind)
	require.Contains(t, r.Err.Message, "permission")

	r = m.Dispatch(context.Background(), console, "op steve")
	require.Equal(t, Executed, r.Kind)
}

func TestDispatch_HandlerErrorsAndPanics(t *testing.T) {
	m := newTestManager(t)
	boom := errors.New("boom")
	require.NoError(t, m.Register(Command("fail", domain.HandlerFunc(func(context.Context, *domain.ExecutionContext) (any, error) {
		return nil, boom
	}))))
	require.NoError(t, m.Register(Command("explode", domain.HandlerFunc(func(context.Context, *domain.ExecutionContext) (any, error) {
		panic("kaboom")
	}))))
	require.NoError(t, m.Register(Command("deny", domain.HandlerFunc(func(context.Context, *domain.ExecutionContext) (any, error) {
		return nil, usage.ConditionFailed("cooldown", "wait a bit")
	}))))

	ctx := execctx.NewTask(context.Background())

	r := m.Dispatch(ctx, console, "fail")
	require.Equal(t, HandlerFailed, r.Kind)
	require.ErrorIs(t, r.Error(), boom)
	require.Equal(t, 0, execctx.Depth(ctx))

	r = m.Dispatch(ctx, console, "explode")
	require.Equal(t, HandlerFailed, r.Kind)
	require.Contains(t, r.Err.Message, "kaboom")
	require.Equal(t, 0, execctx.Depth(ctx))

	r = m.Dispatch(ctx, console, "deny")
	require.Equal(t, ConditionFailed, r.Kind)
}

func TestDispatch_HandlerSeesExecutionContext(t *testing.T) {
	m := newTestManager(t)

	var depthInside int
	var current *domain.ExecutionContext
	var nested Result
	require.NoError(t, m.Register(Command("inner", domain.HandlerFunc(func(ctx context.Context, ec *domain.ExecutionContext) (any, error) {
		depthInside = execctx.Depth(ctx)
		return ec.CallerName(), nil
	}))))
	require.NoError(t, m.Register(Command("outer", domain.HandlerFunc(func(ctx context.Context, ec *domain.ExecutionContext) (any, error) {
		current, _ = execctx.Current(ctx)
		nested = m.Dispatch(ctx, ec.Caller, "inner")
		return nil, nil
	}))))

	ctx := execctx.NewTask(context.Background())
	r := m.Dispatch(ctx, console, "outer")
	require.Equal(t, Executed, r.Kind)
	require.NotNil(t, current)
	require.Equal(t, "outer", current.Raw)
	require.Equal(t, Executed, nested.Kind)
	require.Equal(t, "console", nested.Value)
	require.Equal(t, 2, depthInside, "re-entrant dispatch nests frames")
	require.Equal(t, 0, execctx.Depth(ctx))
}

func TestDispatch_ConcurrentNestedFromOneHandler(t *testing.T) {
	m := newTestManager(t)
	const n = 6

	var arrived sync.WaitGroup
	arrived.Add(n)
	release := make(chan struct{})
	type seen struct {
		depth int
		raw   string
	}
	results := make(chan seen, n)

	require.NoError(t, m.Register(Command("leaf", domain.HandlerFunc(func(ctx context.Context, ec *domain.ExecutionContext) (any, error) {
		arrived.Done()
		<-release
		cur, _ := execctx.Current(ctx)
		results <- seen{depth: execctx.Depth(ctx), raw: cur.Raw}
		return ec.Raw, nil
	}), OptionalArg("n", "int", "0"))))
	require.NoError(t, m.Register(Command("fan", domain.HandlerFunc(func(ctx context.Context, ec *domain.ExecutionContext) (any, error) {
		var g errgroup.Group
		for i := 0; i < n; i++ {
			raw := fmt.Sprintf("leaf %d", i)
			g.Go(func() error {
				if r := m.Dispatch(ctx, ec.Caller, raw); !r.OK() {
					return r.Error()
				}
				return nil
			})
		}
		arrived.Wait()
		if d := execctx.Depth(ctx); d != 1 {
			return nil, fmt.Errorf("fan saw %d frames", d)
		}
		close(release)
		return nil, g.Wait()
	}))))

	r := m.Dispatch(context.Background(), console, "fan")
	require.Equal(t, Executed, r.Kind, r.Error())
	close(results)

	raws := map[string]bool{}
	for got := range results {
		require.Equal(t, 2, got.depth)
		raws[got.raw] = true
	}
	require.Len(t, raws, n, "each leaf saw its own execution context")
}

func TestDispatch_Cancellation(t *testing.T) {
	m := newTestManager(t)
	ran := false
	require.NoError(t, m.Register(Command("noop", domain.HandlerFunc(func(context.Context, *domain.ExecutionContext) (any, error) {
		ran = true
		return nil, nil
	}))))

	ctx, cancel := context.WithCancel(execctx.NewTask(context.Background()))
	cancel()
	r := m.Dispatch(ctx, console, "noop")
	require.Equal(t, Cancelled, r.Kind)
	require.False(t, ran, "cancelled before the handler")

	started := make(chan struct{})
	depthInHandler := 0
	require.NoError(t, m.Register(Command("block", domain.HandlerFunc(func(ctx context.Context, _ *domain.ExecutionContext) (any, error) {
		depthInHandler = execctx.Depth(ctx)
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}))))

	ctx, cancel = context.WithCancel(execctx.NewTask(context.Background()))
	done := make(chan Result)
	go func() { done <- m.Dispatch(ctx, console, "block") }()
	<-started
	cancel()
	r = <-done
	require.Equal(t, Cancelled, r.Kind)
	require.ErrorIs(t, r.Error(), context.Canceled)
	require.Equal(t, 1, depthInHandler, "handler ran inside its frame")
	require.Equal(t, 0, execctx.Depth(ctx))
}

func TestDispatch_DefaultsAreResolved(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Register(Command("speed", named("speed"), OptionalArg("factor", "int", "0x10"))))
	require.NoError(t, m.Register(Command("broken", named("broken"), OptionalArg("factor", "int", "fast"))))
	require.NoError(t, m.Register(Command("maybe", named("maybe"), OptionalArg("factor", "int", ""))))

	r := m.Dispatch(context.Background(), console, "speed")
	require.Equal(t, Executed, r.Kind)
	v, _ := r.Invocation.Arg("factor")
	require.Equal(t, int64(16), v)

	r = m.Dispatch(context.Background(), console, "broken")
	require.Equal(t, ResolutionFailed, r.Kind)
	require.Contains(t, r.Err.Message, "bad default")

	r = m.Dispatch(context.Background(), console, "maybe")
	require.Equal(t, Executed, r.Kind)
	v, ok := r.Invocation.Arg("factor")
	require.True(t, ok)
	require.Nil(t, v)
}

func TestDispatch_Observer(t *testing.T) {
	var seen []ResultKind
	m := newTestManager(t, WithObserver(func(_ context.Context, r Result) {
		seen = append(seen, r.Kind)
	}))
	registerDemo(t, m)

	m.Dispatch(context.Background(), console, "say hi")
	m.Dispatch(context.Background(), console, "fly")
	require.Equal(t, []ResultKind{Executed, UnknownCommand}, seen)
}
