package logs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/cmdcore/internal/domain"
)

const sampleLog = `[2026-01-29 10:30:45.000] DEBUG: resolving give
[2026-01-29 10:30:46.000] INFO: dispatched give
[2026-01-29 10:30:47.000] WARN: slow handler
not a log line
[2026-01-29 10:30:48.000] ERROR: reload failed
`

func fileDeps(t *testing.T, content string) (Deps, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cmdcore.log")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	}
	deps := DefaultDeps()
	deps.Path = func() string { return path }
	deps.Poll = 5 * time.Millisecond
	return deps, path
}

func run(t *testing.T, ctx context.Context, h domain.Handler, args ...domain.BoundArg) (any, error) {
	t.Helper()
	return h.Handle(ctx, domain.NewExecutionContext(nil, &domain.Invocation{Args: args}, ""))
}

func TestShow_ParsesAndLimits(t *testing.T) {
	deps, _ := fileDeps(t, sampleLog)

	out, err := run(t, context.Background(), show(deps), domain.BoundArg{Name: "limit", Value: int64(2)})
	require.NoError(t, err)

	view := out.(View)
	require.Len(t, view.Entries, 2)
	require.Equal(t, "not a log line", view.Entries[0].Message)
	require.Empty(t, view.Entries[0].Level)
	require.Equal(t, "ERROR", view.Entries[1].Level)
	require.Equal(t, "reload failed", view.Entries[1].Message)
	require.Equal(t, "2026-01-29 10:30:48.000", view.Entries[1].Timestamp)
}

func TestShow_FiltersByLevel(t *testing.T) {
	deps, _ := fileDeps(t, sampleLog)

	out, err := run(t, context.Background(), show(deps), domain.BoundArg{Name: "level", Value: "warn"})
	require.NoError(t, err)

	var levels []string
	for _, e := range out.(View).Entries {
		levels = append(levels, e.Level)
	}
	require.Equal(t, []string{"WARN", "ERROR"}, levels)
}

func TestShow_MissingAndEmpty(t *testing.T) {
	deps, path := fileDeps(t, "")

	out, err := run(t, context.Background(), show(deps))
	require.NoError(t, err)
	require.Contains(t, out.(View).String(), "No log file found")

	require.NoError(t, os.WriteFile(path, nil, 0600))
	out, err = run(t, context.Background(), show(deps))
	require.NoError(t, err)
	require.Contains(t, out.(View).String(), "Log file is empty")
}

func TestClear(t *testing.T) {
	deps, path := fileDeps(t, sampleLog)

	_, err := run(t, context.Background(), truncate(deps))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Empty(t, data)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestFollow_StreamsNewLines(t *testing.T) {
	deps, path := fileDeps(t, sampleLog)
	var out syncBuffer
	deps.Out = &out

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := run(t, ctx, follow(deps))
		done <- err
	}()

	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("Following logs"))
	}, time.Second, 5*time.Millisecond)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0600)
	require.NoError(t, err)
	_, err = f.WriteString("[2026-01-29 10:31:00.000] INFO: new line\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("new line"))
	}, time.Second, 5*time.Millisecond)
	require.NotContains(t, out.String(), "reload failed")

	cancel()
	require.NoError(t, <-done)
}
