package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/cmdcore/internal/app"
	"github.com/footprint-tools/cmdcore/internal/config"
	"github.com/footprint-tools/cmdcore/internal/log"
)

type outcome struct {
	code   int
	out    string
	errOut string
}

func invoke(t *testing.T, stdin string, args ...string) outcome {
	t.Helper()
	settings, err := config.FromValues(map[string]string{
		"caller":          "Steve",
		"permissions":     "cmdcore.*",
		"history_enabled": "false",
		"enable_log":      "false",
		"rate_per_sec":    "0",
	}, map[string]string{})
	require.NoError(t, err)

	options := func() (app.Options, error) {
		return app.Options{Settings: settings, PagerDisabled: true, Logger: log.NopLogger{}}, nil
	}

	var out, errOut bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &out, &errOut, options)
	return outcome{code: code, out: out.String(), errOut: errOut.String()}
}

func TestExec(t *testing.T) {
	got := invoke(t, "", "exec", "give", "Steve", "diamond", "2")
	require.Equal(t, 0, got.code, got.errOut)
	assert.Equal(t, "Gave 2 diamond to Steve (now 2)\n", got.out)
}

func TestExec_QuotedLine(t *testing.T) {
	got := invoke(t, "", "exec", "say hello there")
	require.Equal(t, 0, got.code, got.errOut)
	assert.Equal(t, "[Steve] hello there\n", got.out)

	got = invoke(t, "", "exec", "tp", "steve the builder")
	require.Equal(t, 0, got.code, got.errOut)
	assert.Contains(t, got.out, "Teleported Steve")
}

func TestExec_Failures(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		want string
	}{
		{"unknown command", []string{"exec", "bogus"}, 2, "not a known command"},
		{"bad argument", []string{"exec", "give", "Steve", "cake"}, 2, "cake"},
		{"caller override", []string{"--as", "Nobody", "exec", "say", "hi"}, 0, ""},
		{"no permission", []string{"--perm", "none", "exec", "give", "Steve", "dirt"}, 2, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := invoke(t, "", tt.args...)
			assert.Equal(t, tt.code, got.code, got.errOut)
			assert.Contains(t, got.errOut, tt.want)
		})
	}
}

func TestExec_DashWordsBelongToLine(t *testing.T) {
	got := invoke(t, "", "exec", "say", "-v", "--loud")
	require.Equal(t, 0, got.code, got.errOut)
	assert.Equal(t, "[Steve] -v --loud\n", got.out)
}

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.txt")
	batch := "# warm up\ngive Steve dirt 1\n\nsay one\nbogus\nsay two\n"
	require.NoError(t, os.WriteFile(path, []byte(batch), 0600))

	for _, args := range [][]string{
		{"run", path},
		{"run", "--parallel", "3", path},
	} {
		got := invoke(t, "", args...)
		assert.Equal(t, 2, got.code, "last failure decides the exit code")
		assert.Equal(t, "Gave 1 dirt to Steve (now 1)\n[Steve] one\n[Steve] two\n", got.out, "results keep file order")
		assert.Contains(t, got.errOut, "'bogus' is not a known command")
	}
}

func TestRun_Stdin(t *testing.T) {
	got := invoke(t, "whoami\n", "run", "-")
	require.Equal(t, 0, got.code, got.errOut)
	assert.Contains(t, got.out, "You are Steve")
}

func TestRun_MissingFile(t *testing.T) {
	got := invoke(t, "", "run", filepath.Join(t.TempDir(), "nope.txt"))
	assert.Equal(t, 1, got.code)
	assert.Contains(t, got.errOut, "error opening file")
}

func TestHistory_Disabled(t *testing.T) {
	got := invoke(t, "", "history", "--limit", "5")
	assert.Equal(t, 1, got.code)
	assert.Contains(t, got.errOut, "history is disabled")
}

func TestVersion(t *testing.T) {
	got := invoke(t, "", "version")
	require.Equal(t, 0, got.code, got.errOut)
	assert.Contains(t, got.out, "cmdcore version")
}

func TestCompletion(t *testing.T) {
	got := invoke(t, "", "completion", "bash")
	require.Equal(t, 0, got.code, got.errOut)
	assert.Contains(t, got.out, "__dispatch --cursor")

	got = invoke(t, "", "completion", "tcsh")
	assert.Equal(t, 1, got.code)
	assert.Contains(t, got.errOut, "unsupported shell: tcsh")
}

func TestDispatchCompletion(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"cmdcore ex", []string{"exec"}},
		{"cmdcore exec giv", []string{"give"}},
		{"cmdcore exec give Ste", []string{"Steve", `"steve the builder"`}},
		{"cmdcore --as Alex", nil},
		{"cmdcore version ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := invoke(t, "", "__dispatch", "--", tt.line)
			require.Equal(t, 0, got.code, got.errOut)
			var lines []string
			if got.out != "" {
				lines = strings.Split(strings.TrimSuffix(got.out, "\n"), "\n")
			}
			assert.ElementsMatch(t, tt.want, lines)
		})
	}
}

func TestRoot(t *testing.T) {
	got := invoke(t, "")
	assert.Equal(t, 0, got.code)
	assert.Contains(t, got.out, "exec")
	assert.NotContains(t, got.out, "__dispatch")

	got = invoke(t, "", "frobnicate")
	assert.Equal(t, 1, got.code)
	assert.Contains(t, got.errOut, "unknown command")
}

func TestJoinLine(t *testing.T) {
	assert.Equal(t, "give Steve dirt", joinLine([]string{"give Steve dirt"}))
	assert.Equal(t, `tp "steve the builder"`, joinLine([]string{"tp", "steve the builder"}))
}

func TestReadLines(t *testing.T) {
	lines, err := readLines(strings.NewReader("  a  \n# skip\n\nb\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, lines)
}
