package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/cmdcore/internal/domain"
)

func clearColorEnv(t *testing.T) {
	t.Helper()
	t.Setenv("NO_COLOR", "")
	t.Setenv("CMDCORE_NO_COLOR", "")
	t.Setenv("CMDCORE_THEME", "")
	t.Cleanup(func() { Init(false, nil) })
}

var semantic = []struct {
	name string
	fn   func(string) string
}{
	{"Success", Success},
	{"Warning", Warning},
	{"Error", Error},
	{"Info", Info},
	{"Header", Header},
	{"Muted", Muted},
	{"Prompt", Prompt},
}

func TestDisabledReturnsPlainText(t *testing.T) {
	clearColorEnv(t)
	Init(false, nil)

	for _, tt := range semantic {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, "test message", tt.fn("test message"))
		})
	}
	require.Equal(t, "give", Category(domain.CategoryPlayers, "give"))
}

func TestEnabledReturnsStyledText(t *testing.T) {
	clearColorEnv(t)
	Init(true, map[string]string{"theme": "default-dark"})

	for _, tt := range semantic {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.fn("test message")
			require.Contains(t, out, "test message")
			require.Contains(t, out, "\x1b[")
		})
	}
}

func TestNoColorEnvDisablesStyling(t *testing.T) {
	for _, key := range []string{"NO_COLOR", "CMDCORE_NO_COLOR"} {
		t.Run(key, func(t *testing.T) {
			clearColorEnv(t)
			t.Setenv(key, "1")

			Init(true, nil)
			require.False(t, Enabled())
			require.Equal(t, "careful", Warning("careful"))
		})
	}
}

func TestCategory(t *testing.T) {
	clearColorEnv(t)
	Init(true, map[string]string{"theme": "default-dark"})

	players := Category(domain.CategoryPlayers, "give")
	chat := Category(domain.CategoryChat, "give")
	require.Contains(t, players, "give")
	require.NotEqual(t, players, chat)

	unknown := Category(domain.CommandCategory(99), "x")
	require.Equal(t, Category(domain.CategoryUncategorized, "x"), unknown)
}

func TestLoadColorConfig(t *testing.T) {
	clearColorEnv(t)

	t.Run("theme from config", func(t *testing.T) {
		got := LoadColorConfig(map[string]string{"theme": "neon-light"})
		require.Equal(t, Themes["neon-light"].Players, got.Players)
	})

	t.Run("unknown theme falls back", func(t *testing.T) {
		got := LoadColorConfig(map[string]string{"theme": "nope-dark"})
		require.Equal(t, Themes["default-dark"], got)
	})

	t.Run("config override", func(t *testing.T) {
		got := LoadColorConfig(map[string]string{"theme": "mono-dark", "color_players": "99"})
		require.Equal(t, "99", got.Players)
		require.Equal(t, Themes["mono-dark"].World, got.World)
	})

	t.Run("env beats config", func(t *testing.T) {
		t.Setenv("CMDCORE_COLOR_PROMPT", "42")
		t.Setenv("CMDCORE_THEME", "ocean-dark")
		got := LoadColorConfig(map[string]string{"theme": "mono-dark", "color_prompt": "7"})
		require.Equal(t, "42", got.Prompt)
		require.Equal(t, Themes["ocean-dark"].Chat, got.Chat)
	})
}

func TestResolveThemeName(t *testing.T) {
	require.Equal(t, "neon-dark", ResolveThemeName("neon-dark"))
	require.Equal(t, "neon-light", ResolveThemeName("neon-light"))
	got := ResolveThemeName("neon")
	require.True(t, strings.HasPrefix(got, "neon-"))
}

func TestEveryThemeIsComplete(t *testing.T) {
	for _, name := range ThemeNames {
		theme, ok := Themes[name]
		require.True(t, ok, name)
		require.NotEmpty(t, theme.Success, name)
		require.NotEmpty(t, theme.Players, name)
		require.NotEmpty(t, theme.Prompt, name)
	}
}
