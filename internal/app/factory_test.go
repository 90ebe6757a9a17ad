package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/cmdcore/internal/config"
	"github.com/footprint-tools/cmdcore/internal/dispatchers"
	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/log"
	"github.com/footprint-tools/cmdcore/internal/testutil"
	"github.com/footprint-tools/cmdcore/internal/usage"
)

func newTestApp(t *testing.T, values map[string]string) *App {
	t.Helper()
	base := map[string]string{
		"caller":          "Steve",
		"permissions":     "cmdcore.*",
		"history_enabled": "true",
		"history_keep":    "100",
	}
	for k, v := range values {
		base[k] = v
	}
	settings, err := config.FromValues(base, map[string]string{})
	require.NoError(t, err)

	a, err := New(context.Background(), Options{
		Settings:      settings,
		PagerDisabled: true,
		Logger:        log.NopLogger{},
		Store:         testutil.NewTestStore(t),
	})
	require.NoError(t, err)
	return a
}

func TestNew_DispatchesAndRecords(t *testing.T) {
	a := newTestApp(t, nil)

	r := a.Dispatch(context.Background(), a.Caller, "give alex diamond 2")
	require.Equal(t, dispatchers.Executed, r.Kind, r.Error())

	r = a.Dispatch(context.Background(), a.Caller, "give alex cake")
	require.Equal(t, dispatchers.ResolutionFailed, r.Kind)

	entries, err := a.History.List(domain.HistoryFilter{Caller: "Steve"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "resolution_failed", entries[0].Outcome)
	require.Equal(t, "executed", entries[1].Outcome)
	require.Equal(t, "give", entries[1].Command)
	require.Equal(t, int64(2), entries[1].Args["amount"])
}

func TestNew_RecordsPrimaryPathForAliases(t *testing.T) {
	a := newTestApp(t, nil)

	r := a.Dispatch(context.Background(), a.Caller, "online")
	require.Equal(t, dispatchers.Executed, r.Kind, r.Error())
	require.Equal(t, "list", r.Command)

	entries, err := a.History.List(domain.HistoryFilter{Command: "list"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "list", entries[0].Command)
	require.Equal(t, "online", entries[0].Raw)
}

func TestNew_Overrides(t *testing.T) {
	settings, err := config.FromValues(map[string]string{"caller": "console", "permissions": "*", "history_enabled": "false"}, map[string]string{})
	require.NoError(t, err)

	a, err := New(context.Background(), Options{
		Settings: settings,
		As:       "Alex",
		Perms:    []string{},
		Logger:   log.NopLogger{},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	require.Equal(t, "Alex", a.Caller.Name())
	require.False(t, a.Caller.HasPermission("cmdcore.give"))
	require.Nil(t, a.History, "history is off unless enabled")

	r := a.Dispatch(context.Background(), a.Caller, "give alex dirt")
	require.Equal(t, dispatchers.ConditionFailed, r.Kind)
}

func TestDispatch_RateLimited(t *testing.T) {
	a := newTestApp(t, map[string]string{"rate_per_sec": "0.001", "rate_burst": "1"})

	r := a.Dispatch(context.Background(), a.Caller, "list")
	require.Equal(t, dispatchers.Executed, r.Kind, r.Error())

	r = a.Dispatch(context.Background(), a.Caller, "list")
	require.Equal(t, dispatchers.ConditionFailed, r.Kind)
	require.Equal(t, usage.ErrRateLimited, r.Err.Kind)

	r = a.Dispatch(context.Background(), NewCaller("Alex", nil), "list")
	require.Equal(t, dispatchers.Executed, r.Kind, "buckets are per caller")
}

func TestNew_LoadsManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[command]]
path = "hello"
description = "Say hello"
reply = "hello {caller}"

[[command]]
path = "shout"
handler = "say"

  [[command.param]]
  name = "message"
  type = "text"
`), 0600))

	a := newTestApp(t, map[string]string{"manifest_path": path})

	r := a.Dispatch(context.Background(), a.Caller, "hello")
	require.Equal(t, dispatchers.Executed, r.Kind, r.Error())
	require.Equal(t, "hello Steve", r.Value)

	r = a.Dispatch(context.Background(), a.Caller, "shout hi all")
	require.Equal(t, dispatchers.Executed, r.Kind, r.Error())
	require.Equal(t, "[Steve] hi all", r.Value)
}

func TestNew_BadManifestKeepsBuiltins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.toml")
	require.NoError(t, os.WriteFile(path, []byte(`[[command]]
path = "x"
handler = "nope"
`), 0600))

	a := newTestApp(t, map[string]string{"manifest_path": path})
	require.Nil(t, a.Manager.Lookup("x"))
	require.NotNil(t, a.Manager.Lookup("give"))
}

func TestWatch_Disabled(t *testing.T) {
	a := newTestApp(t, nil)
	require.NoError(t, a.Watch(context.Background()))
}

func TestCaller_Permissions(t *testing.T) {
	c := NewCaller("Steve", []string{" cmdcore.config ", "", "cmdcore.logs.*"})

	require.Equal(t, []string{"cmdcore.config", "cmdcore.logs.*"}, c.Perms)
	require.True(t, c.HasPermission("cmdcore.config"))
	require.True(t, c.HasPermission("cmdcore.logs.clear"))
	require.False(t, c.HasPermission("cmdcore.logs"))
	require.False(t, c.HasPermission("cmdcore.give"))
	require.True(t, NewCaller("op", []string{"*"}).HasPermission("anything"))
}

func TestLimiter_Nil(t *testing.T) {
	var l *limiter
	require.True(t, l.Allow("anyone"))
	require.Nil(t, newLimiter(0, 5))
}
