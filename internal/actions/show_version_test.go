package actions

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShowVersion(t *testing.T) {
	t.Run("injected", func(t *testing.T) {
		h := showVersion(actionDependencies{Version: func() string { return "1.2.3" }})
		out, err := invoke(t, h, nil, nil)
		require.NoError(t, err)
		require.Equal(t, "cmdcore version 1.2.3", out)
	})

	t.Run("build variable", func(t *testing.T) {
		prev := Version
		Version = "9.9.9"
		t.Cleanup(func() { Version = prev })

		out, err := invoke(t, ShowVersion(Deps{}), nil, nil)
		require.NoError(t, err)
		require.Equal(t, "cmdcore version 9.9.9", out)
	})
}
