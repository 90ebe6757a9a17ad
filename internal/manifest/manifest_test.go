package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/cmdcore/internal/dispatchers"
	"github.com/footprint-tools/cmdcore/internal/domain"
)

const tomlManifest = `
[replacements]
greeting = "hello"

[[command]]
path = "greet|hi"
description = "Greet someone"
category = "chat"
reply = "%greeting {who}, from {caller}"

  [[command.param]]
  name = "who"
  type = "string"
  optional = true
  default = "world"

[[command]]
path = "dice roll"
description = "Roll a die"
handler = "roll"

  [[command.param]]
  name = "sides"
  type = "int"
  flags = "min=2,max=100"
`

const yamlManifest = `
replacements:
  greeting: hey
commands:
  - path: greet|hi
    category: chat
    reply: "%greeting {who}"
    params:
      - name: who
        type: text
        rest: true
`

type issuer string

func (i issuer) Name() string              { return string(i) }
func (i issuer) HasPermission(string) bool { return true }

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func handlers() Handlers {
	return Handlers{
		"roll": domain.HandlerFunc(func(_ context.Context, ec *domain.ExecutionContext) (any, error) {
			return ec.Int("sides", 0), nil
		}),
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"commands.toml", FormatTOML, false},
		{"commands.YAML", FormatYAML, false},
		{"commands.yml", FormatYAML, false},
		{"commands.json", 0, true},
		{"commands", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFor(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_TOML(t *testing.T) {
	m, err := Decode([]byte(tomlManifest), FormatTOML)
	require.NoError(t, err)

	require.Equal(t, map[string]string{"greeting": "hello"}, m.Replacements)
	require.Len(t, m.Commands, 2)
	require.Equal(t, "greet|hi", m.Commands[0].Path)
	require.Equal(t, "world", m.Commands[0].Params[0].Default)
	require.Equal(t, "roll", m.Commands[1].Handler)
	require.Equal(t, "min=2,max=100", m.Commands[1].Params[0].Flags)
}

func TestDecode_YAML(t *testing.T) {
	m, err := Decode([]byte(yamlManifest), FormatYAML)
	require.NoError(t, err)

	require.Len(t, m.Commands, 1)
	require.True(t, m.Commands[0].Params[0].Rest)
	require.Equal(t, "text", m.Commands[0].Params[0].Type)
}

func TestDecode_FormatsAgree(t *testing.T) {
	const equivalent = `
replacements:
  greeting: hello
commands:
  - path: greet|hi
    description: Greet someone
    category: chat
    reply: "%greeting {who}, from {caller}"
    params:
      - name: who
        type: string
        optional: true
        default: world
  - path: dice roll
    description: Roll a die
    handler: roll
    params:
      - name: sides
        type: int
        flags: min=2,max=100
`
	fromTOML, err := Decode([]byte(tomlManifest), FormatTOML)
	require.NoError(t, err)
	fromYAML, err := Decode([]byte(equivalent), FormatYAML)
	require.NoError(t, err)

	if diff := cmp.Diff(fromTOML, fromYAML, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("TOML and YAML manifests differ (-toml +yaml):\n%s", diff)
	}
}

func TestDecode_Empty(t *testing.T) {
	m, err := Decode(nil, FormatYAML)
	require.NoError(t, err)
	require.Empty(t, m.Commands)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
		want   string
	}{
		{"unknown toml key", FormatTOML, "[[command]]\npath = \"a\"\nreply = \"x\"\ncolour = \"red\"\n", "unknown key"},
		{"unknown yaml key", FormatYAML, "commands:\n  - path: a\n    reply: x\n    colour: red\n", "colour"},
		{"missing path", FormatTOML, "[[command]]\nreply = \"x\"\n", "has no path"},
		{"handler and reply", FormatTOML, "[[command]]\npath = \"a\"\nreply = \"x\"\nhandler = \"y\"\n", "both handler and reply"},
		{"neither", FormatYAML, "commands:\n  - path: a\n", "needs a handler or a reply"},
		{"param without type", FormatYAML, "commands:\n  - path: a\n    reply: x\n    params:\n      - name: b\n", "needs a name and a type"},
		{"rest not last", FormatYAML, "commands:\n  - path: a\n    reply: x\n    params:\n      - {name: b, type: text, rest: true}\n      - {name: c, type: int}\n", "must be last"},
		{"bad toml", FormatTOML, "[[command]\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDefinitions(t *testing.T) {
	m, err := Decode([]byte(tomlManifest), FormatTOML)
	require.NoError(t, err)

	defs, err := m.Definitions(handlers())
	require.NoError(t, err)
	require.Len(t, defs, 2)

	require.Equal(t, []string{"greet|hi"}, defs[0].Path)
	require.Equal(t, domain.CategoryChat, defs[0].Category)
	require.True(t, defs[0].Params[0].Optional)

	require.Equal(t, []string{"dice", "roll"}, defs[1].Path)
	require.Equal(t, map[string]string{"min": "2", "max": "100"}, defs[1].Params[0].Flags)
}

func TestDefinitions_UnknownHandler(t *testing.T) {
	m := &Manifest{Commands: []Command{{Path: "x", Handler: "missing"}}}

	_, err := m.Definitions(handlers())
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown handler "missing"`)
}

func TestReplyHandler(t *testing.T) {
	inv := &domain.Invocation{Args: []domain.BoundArg{{Name: "who", Value: "steve"}, {Name: "n", Value: int64(3)}}}
	ec := domain.NewExecutionContext(issuer("alex"), inv, "")

	got, err := ReplyHandler("{who} x{n} by {caller} {unknown}").Handle(context.Background(), ec)
	require.NoError(t, err)
	require.Equal(t, "steve x3 by alex {unknown}", got)
}

func TestApply(t *testing.T) {
	m := dispatchers.NewManager()
	path := writeFile(t, "commands.toml", tomlManifest)

	n, err := Apply(m, path, handlers())
	require.NoError(t, err)
	require.Equal(t, 2, n)

	res := m.Dispatch(context.Background(), issuer("alex"), "hi")
	require.Equal(t, dispatchers.Executed, res.Kind, res.Error())
	require.Equal(t, "hello world, from alex", res.Value)

	res = m.Dispatch(context.Background(), issuer("alex"), "dice roll 6")
	require.Equal(t, dispatchers.Executed, res.Kind, res.Error())
	require.Equal(t, int64(6), res.Value)

	res = m.Dispatch(context.Background(), issuer("alex"), "dice roll 1")
	require.Equal(t, dispatchers.ResolutionFailed, res.Kind)
}

func TestApply_YAMLReplacesPreviousManifest(t *testing.T) {
	m := dispatchers.NewManager()

	_, err := Apply(m, writeFile(t, "commands.toml", tomlManifest), handlers())
	require.NoError(t, err)
	_, err = Apply(m, writeFile(t, "commands.yaml", yamlManifest), handlers())
	require.NoError(t, err)

	res := m.Dispatch(context.Background(), issuer("alex"), "greet big blue world")
	require.Equal(t, dispatchers.Executed, res.Kind, res.Error())
	require.Equal(t, "hey big blue world", res.Value)

	res = m.Dispatch(context.Background(), issuer("alex"), "dice roll 6")
	require.Equal(t, dispatchers.UnknownCommand, res.Kind)
}

func TestApply_KeepsCommandsOnError(t *testing.T) {
	m := dispatchers.NewManager()
	path := writeFile(t, "commands.toml", tomlManifest)
	_, err := Apply(m, path, handlers())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[[command]]\npath = \"x\"\n"), 0600))
	_, err = Apply(m, path, handlers())
	require.Error(t, err)

	res := m.Dispatch(context.Background(), issuer("alex"), "hi")
	require.Equal(t, dispatchers.Executed, res.Kind)
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	m := dispatchers.NewManager()
	path := writeFile(t, "commands.yaml", yamlManifest)
	_, err := Apply(m, path, handlers())
	require.NoError(t, err)

	w := NewWatcher(m, path, handlers(), nil)
	w.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	// Give the watcher time to register the directory.
	time.Sleep(50 * time.Millisecond)
	updated := "commands:\n  - path: wave\n    reply: o/\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0600))

	require.Eventually(t, func() bool {
		return m.Dispatch(context.Background(), issuer("alex"), "wave").Kind == dispatchers.Executed
	}, 3*time.Second, 20*time.Millisecond)
}
