package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigKeys_Sections(t *testing.T) {
	known := make(map[string]bool)
	for _, s := range ConfigSections() {
		known[s] = true
	}
	seen := make(map[string]bool)
	for _, k := range ConfigKeys {
		require.True(t, known[k.Section], "%s has section %q", k.Name, k.Section)
		require.False(t, seen[k.Name], "duplicate key %s", k.Name)
		seen[k.Name] = true
	}

	bySection := ConfigKeysBySection()
	require.Len(t, bySection["Color Overrides"], 6)
	require.Equal(t, "pager", bySection["Display"][0].Name)
}

func TestGetDefaultValue(t *testing.T) {
	v, ok := GetDefaultValue("rate_burst")
	require.True(t, ok)
	require.Equal(t, "5", v)

	v, ok = GetDefaultValue("color_header")
	require.True(t, ok)
	require.Empty(t, v)

	_, ok = GetDefaultValue("nope")
	require.False(t, ok)
	require.False(t, IsValidConfigKey("nope"))
	require.True(t, IsValidConfigKey("trace_endpoint"))
}

func TestConfigSections_Copy(t *testing.T) {
	s := ConfigSections()
	s[0] = "changed"
	require.Equal(t, "Display", ConfigSections()[0])
}
