package splitpanel

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/cmdcore/internal/ui/style"
)

func TestNewLayout_ClampsSidebar(t *testing.T) {
	tests := []struct {
		width       int
		wantSidebar int
	}{
		{40, 18},
		{100, 30},
		{300, 40},
	}

	for _, tt := range tests {
		l := NewLayout(tt.width, DefaultConfig, style.ColorConfig{})
		require.Equal(t, tt.wantSidebar, l.SidebarWidth)
		require.Equal(t, tt.width-tt.wantSidebar, l.ContentWidth)
	}
}

func TestRender_Dimensions(t *testing.T) {
	l := NewLayout(80, DefaultConfig, style.ColorConfig{Prompt: "15", Muted: "8"})
	out := l.Render(
		Panel{Title: "Suggestions", Lines: []string{"give", "gamemode"}},
		Panel{Lines: []string{"> give steve dirt", strings.Repeat("x", 200)}},
		10,
	)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 10)
	for _, line := range lines {
		require.Equal(t, 80, lipgloss.Width(line))
	}
	require.Contains(t, out, "Suggestions")
	require.Contains(t, out, "...")
}

func TestFit(t *testing.T) {
	require.Equal(t, "ab  ", Fit("ab", 4))
	require.Equal(t, "abcd", Fit("abcd", 4))
	require.Equal(t, "abcd...", Fit("abcdefghij", 7))
	require.Equal(t, 6, lipgloss.Width(Fit("日本語テキスト", 6)))
}

func TestBuildScrollbar(t *testing.T) {
	t.Run("fits", func(t *testing.T) {
		bar := BuildScrollbar(5, 3, 0, "15", "8", true)
		require.Equal(t, []string{" ", " ", " ", " ", " "}, bar)
	})

	t.Run("thumb moves with offset", func(t *testing.T) {
		top := BuildScrollbar(4, 40, 0, "15", "8", false)
		bottom := BuildScrollbar(4, 40, 36, "15", "8", false)
		require.Equal(t, ScrollThumbChar, stripANSI(top[0]))
		require.Equal(t, ScrollTrackChar, stripANSI(top[3]))
		require.Equal(t, ScrollThumbChar, stripANSI(bottom[3]))
	})
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape && r == 'm':
			inEscape = false
		case !inEscape:
			b.WriteRune(r)
		}
	}
	return b.String()
}
