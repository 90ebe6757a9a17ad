package completions

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var subcommands = []string{"console", "completion", "exec", "history", "run", "__dispatch"}

type call struct {
	raw    string
	cursor int
}

func recorder(calls *[]call, out ...string) Completer {
	return func(raw string, cursor int) []string {
		*calls = append(*calls, call{raw, cursor})
		return out
	}
}

func TestLine(t *testing.T) {
	dispatching := map[string]bool{"exec": true}
	valueFlags := map[string]bool{"--as": true}

	tests := []struct {
		name      string
		line      string
		cursor    int
		want      []string
		wantCalls []call
	}{
		{"binary only", "cmdcore", 7, nil, nil},
		{"all subcommands", "cmdcore ", 8, []string{"completion", "console", "exec", "history", "run"}, nil},
		{"subcommand prefix", "cmdcore co", 10, []string{"completion", "console"}, nil},
		{"hidden is skipped", "cmdcore __", 10, nil, nil},
		{"not dispatching", "cmdcore history ", 16, nil, nil},
		{"exec", "cmdcore exec tp st", 18, []string{"steve"}, []call{{"tp st", 5}}},
		{"exec empty", "cmdcore  exec  ", 15, []string{"steve"}, []call{{"", 0}}},
		{"cursor cuts line", "cmdcore exec give steve", 17, []string{"steve"}, []call{{"give", 4}}},
		{"value flag", "cmdcore exec --as alex say hi", 29, []string{"steve"}, []call{{"say hi", 6}}},
		{"typing flag value", "cmdcore exec --as al", 20, nil, nil},
		{"typing flag", "cmdcore exec --a", 16, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []call
			got := Line(tt.line, tt.cursor, subcommands, dispatching, valueFlags, recorder(&calls, "steve"))
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestParseShell(t *testing.T) {
	s, ok := ParseShell("ZSH")
	require.True(t, ok)
	require.Equal(t, ShellZsh, s)

	_, ok = ParseShell("tcsh")
	require.False(t, ok)
}

func TestRunningShell(t *testing.T) {
	t.Setenv("SHELL", "/usr/local/bin/fish")
	require.Equal(t, ShellFish, RunningShell())

	t.Setenv("SHELL", "")
	require.Equal(t, Shell(""), RunningShell())
}

func TestGenerateScripts(t *testing.T) {
	tests := []struct {
		shell  Shell
		checks []string
	}{
		{ShellBash, []string{"_cmdcore_dev_completions()", "COMP_POINT", "cmdcore-dev __dispatch --cursor", "complete -o default -o nospace -F _cmdcore_dev_completions cmdcore-dev"}},
		{ShellZsh, []string{"#compdef cmdcore-dev", "compadd -Q", "compdef _cmdcore_dev_completions cmdcore-dev"}},
		{ShellFish, []string{"function __cmdcore_dev_completions_complete", "commandline -cp", "complete -c cmdcore-dev -f"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.shell), func(t *testing.T) {
			script := generators[tt.shell]("cmdcore-dev")
			for _, check := range tt.checks {
				require.Contains(t, script, check)
			}
		})
	}

	require.NotContains(t, generators, Shell("tcsh"))
}

func TestPrintCompletions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintCompletions(&buf, ShellBash))
	require.True(t, strings.HasPrefix(buf.String(), "# bash completion for "))

	require.Error(t, PrintCompletions(&buf, Shell("tcsh")))
}

func TestRcFileAndInstructions(t *testing.T) {
	require.Equal(t, "~/.zshrc", RcFile(ShellZsh))
	require.Empty(t, RcFile(Shell("tcsh")))
	require.Contains(t, SourceInstructions(ShellFish), "completion fish | source")
	require.Contains(t, SourceInstructions(ShellBash), `completion bash)"`)
	require.Empty(t, SourceInstructions(Shell("tcsh")))
}

func TestAutoInstallPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.Equal(t, filepath.Join(home, ".config", "fish", "completions", GetBinaryName()+".fish"), AutoInstallPath(ShellFish))
	require.Empty(t, AutoInstallPath(ShellZsh))
	require.Empty(t, AutoInstallPath(Shell("tcsh")))
}
