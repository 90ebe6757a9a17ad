package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/execctx"
)

func TestSay(t *testing.T) {
	out, err := invoke(t, Say(Deps{}), player{name: "Alex"}, map[string]any{"message": "hello there"})
	require.NoError(t, err)
	require.Equal(t, "[Alex] hello there", out)
}

func TestWhoAmI(t *testing.T) {
	steve := player{name: "Steve"}
	ec := domain.NewExecutionContext(steve, &domain.Invocation{
		Args: []domain.BoundArg{{Name: "self", Value: steve}},
	}, "whoami")

	var out any
	err := execctx.WithContext(context.Background(), ec, func(ctx context.Context) error {
		var err error
		out, err = WhoAmI(Deps{}).Handle(ctx, ec)
		return err
	})
	require.NoError(t, err)
	require.Contains(t, out, "You are Steve")
	require.Contains(t, out, ec.ID.String())
	require.Contains(t, out, "depth 1")
}

func TestWhoAmI_Nobody(t *testing.T) {
	out, err := invoke(t, WhoAmI(Deps{}), nil, nil)
	require.NoError(t, err)
	require.Equal(t, "You are nobody", out)
}
