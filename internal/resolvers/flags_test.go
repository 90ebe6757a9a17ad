package resolvers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Flags
	}{
		{"empty", "", Flags{}},
		{"single key", "single", Flags{"single": ""}},
		{"pairs", "min=1, max=64", Flags{"min": "1", "max": "64"}},
		{"values list", "values=a|b|c,suffixes", Flags{"values": "a|b|c", "suffixes": ""}},
		{"stray commas", ",,min=2,", Flags{"min": "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ParseFlags(tt.input))
		})
	}
}

func TestFlags_Typed(t *testing.T) {
	f := Flags{"min": "3", "max": "x", "ratio": "0.5", "values": "red| green |", "single": ""}

	require.True(t, f.Has("single"))
	require.False(t, f.Has("split"))
	require.Equal(t, int64(3), f.Int("min", 0))
	require.Equal(t, int64(10), f.Int("max", 10), "invalid value falls back")
	require.Equal(t, int64(7), f.Int("missing", 7))
	require.Equal(t, 0.5, f.Float("ratio", 1))
	require.Equal(t, []string{"red", "green"}, f.List("values"))
	require.Nil(t, f.List("missing"))
	require.Equal(t, "fallback", f.String("missing", "fallback"))
}
