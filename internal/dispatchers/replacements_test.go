package dispatchers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReplacements_Replace(t *testing.T) {
	r := NewReplacements()
	require.NoError(t, r.Add("%Admin", "server.admin"))
	require.NoError(t, r.Add("home", "spawn"))

	tests := []struct {
		in   string
		want string
	}{
		{"%admin", "server.admin"},
		{"%{ADMIN}.kick", "server.admin.kick"},
		{"values=%truthy", "values=true|false|yes|no|1|0|on|off"},
		{"%home|%missing", "spawn|%missing"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, r.Replace(tt.in))
		})
	}

	require.Error(t, r.Add(" % ", "x"))
}

func TestReplacements_ApplyCopies(t *testing.T) {
	r := NewReplacements()
	require.NoError(t, r.Add("max", "64"))

	def := Command("give", named("give"), Flagged(OptionalArg("amount", "int", "%max"), "max=%max"))
	def.Permission = "%perm"

	got := r.Apply(def)
	require.Equal(t, "64", got.Params[0].Default)
	require.Equal(t, "64", got.Params[0].Flags["max"])
	require.Equal(t, "%perm", got.Permission)

	require.Equal(t, "%max", def.Params[0].Default, "original untouched")
	require.Equal(t, "%max", def.Params[0].Flags["max"])
}

func TestReplacements_AppliedAtRegistration(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Replacements().Add("spawn", "spawn|home"))
	require.NoError(t, m.Register(Command("%spawn", named("spawn"))))

	r := m.Dispatch(context.Background(), console, "home")
	require.Equal(t, Executed, r.Kind)
	require.Equal(t, "spawn", r.Value)

	require.NoError(t, m.Register(Command("toggle", named("toggle"), Flagged(Arg("state", "enum"), "values=%truthy"))))
	r = m.Dispatch(context.Background(), console, "toggle ON")
	require.Equal(t, Executed, r.Kind, r.Error())
}
