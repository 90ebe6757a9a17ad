package dispatchers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "identical strings", a: "give", b: "give", want: 0},
		{name: "one character difference", a: "give", b: "givee", want: 1},
		{name: "typo - transposition", a: "give", b: "gvie", want: 2},
		{name: "typo - substitution", a: "teleport", b: "teleprot", want: 2},
		{name: "completely different", a: "give", b: "xyz123", want: 6},
		{name: "empty string a", a: "", b: "give", want: 4},
		{name: "empty string b", a: "give", b: "", want: 4},
		{name: "both empty", a: "", b: "", want: 0},
		{name: "case insensitive", a: "TP", b: "tp", want: 0},
		{name: "missing letter", a: "config", b: "confg", want: 1},
		{name: "extra letter", a: "config", b: "confiig", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := levenshtein(tt.a, tt.b)
			require.Equal(t, tt.want, got)
		})
	}
}

func suggestTree(t *testing.T, paths ...string) *Tree {
	t.Helper()
	m := newTestManager(t)
	for _, p := range paths {
		require.NoError(t, m.Register(Command(p, named(p))))
	}
	return m.snapshot()
}

func TestFindSimilarCommands(t *testing.T) {
	tree := suggestTree(t, "give", "gamemode|gm", "config", "version", "kill", "list", "help")

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "extra letter", input: "givee", want: []string{"give"}},
		{name: "transposition", input: "cofnig", want: []string{"config"}},
		{name: "missing letter", input: "confg", want: []string{"config"}},
		{name: "aliases are candidates", input: "gn", want: []string{"gm", "give"}},
		{name: "ties sort by name", input: "kil", want: []string{"kill", "give", "gm"}},
		{name: "exact match is not suggested", input: "list", want: []string{"give", "kill"}},
		{name: "nothing close", input: "xyzzyplugh", want: []string{}},
		{name: "empty input", input: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindSimilarCommands(tt.input, tree.Root(), defaultSuggestionsCount)
			if tt.want == nil {
				require.Nil(t, got)
				return
			}
			if len(tt.want) == 0 {
				require.Empty(t, got)
				return
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFindSimilarCommands_FuzzyFallback(t *testing.T) {
	tree := suggestTree(t, "version", "config")

	require.Equal(t, []string{"version"}, FindSimilarCommands("vsn", tree.Root(), 3))
}

func TestFindSimilarCommands_NilNode(t *testing.T) {
	require.Nil(t, FindSimilarCommands("give", nil, 3))
}

func TestFindSimilarCommands_SkipsHidden(t *testing.T) {
	m := newTestManager(t)
	secret := Command("secret", named("secret"))
	secret.Hidden = true
	require.NoError(t, m.Register(secret))
	require.NoError(t, m.Register(Command("select", named("select"))))

	got := FindSimilarCommands("secrt", m.snapshot().Root(), 3)
	require.Equal(t, []string{"select"}, got)
}

func TestFindSimilarCommands_Subcommands(t *testing.T) {
	tree := suggestTree(t, "config get", "config set", "config list")

	got := FindSimilarCommands("gett", tree.Find([]string{"config"}), 3)
	require.Contains(t, got, "get")
}

func TestCollectAllCommands(t *testing.T) {
	tree := suggestTree(t, "give", "config get", "config set")

	require.Equal(t, []string{"give", "config get", "config set"}, CollectAllCommands(tree.Root(), ""))
}

func TestCollectAllCommands_NilNode(t *testing.T) {
	require.Nil(t, CollectAllCommands(nil, ""))
}
