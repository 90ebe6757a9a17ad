package logs

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/log"
	"github.com/footprint-tools/cmdcore/internal/ui/style"
)

const defaultLogLimit = 50

// Entry is one parsed log line. Lines that do not parse keep only Raw.
type Entry struct {
	Timestamp string
	Level     string
	Message   string
	Raw       string

	level log.Level
}

// View is the tail of the log file.
type View struct {
	Path    string
	Entries []Entry
	Note    string
}

func (v View) String() string {
	if v.Note != "" {
		return style.Muted(v.Note)
	}
	lines := make([]string, len(v.Entries))
	for i, e := range v.Entries {
		lines[i] = colorize(e)
	}
	return strings.Join(lines, "\n")
}

// logLine matches lines like: [2026-01-29 10:30:45.123] INFO: message
var logLine = regexp.MustCompile(`^\[([^\]]+)\]\s+(DEBUG|INFO|WARN|ERROR):\s*(.*)$`)

func parse(line string) Entry {
	m := logLine.FindStringSubmatch(line)
	if m == nil {
		return Entry{Message: line, Raw: line, level: log.LevelInfo}
	}
	return Entry{Timestamp: m[1], Level: m[2], Message: m[3], Raw: line, level: log.ParseLevel(m[2])}
}

// Show lists the last lines of the log file, optionally only those at or
// above a level.
func Show() domain.Handler {
	return show(DefaultDeps())
}

func show(deps Deps) domain.Handler {
	return domain.HandlerFunc(func(_ context.Context, ec *domain.ExecutionContext) (any, error) {
		path := deps.Path()

		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return View{Path: path, Note: "No log file found at " + path}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("stat log file: %w", err)
		}
		if info.Size() == 0 {
			return View{Path: path, Note: "Log file is empty"}, nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read log file: %w", err)
		}

		limit := int(ec.Int("limit", defaultLogLimit))
		if limit <= 0 {
			limit = defaultLogLimit
		}
		minLevel := log.LevelDebug
		if lvl := ec.String("level"); lvl != "" {
			minLevel = log.ParseLevel(lvl)
		}

		var entries []Entry
		for _, line := range strings.Split(strings.TrimSuffix(string(content), "\n"), "\n") {
			if e := parse(line); e.level >= minLevel {
				entries = append(entries, e)
			}
		}
		if len(entries) > limit {
			entries = entries[len(entries)-limit:]
		}
		return View{Path: path, Entries: entries}, nil
	})
}

// Follow streams new log lines until the dispatch is cancelled.
func Follow() domain.Handler {
	return follow(DefaultDeps())
}

func follow(deps Deps) domain.Handler {
	return domain.HandlerFunc(func(ctx context.Context, _ *domain.ExecutionContext) (any, error) {
		path := deps.Path()

		file, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, 0600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		defer func() { _ = file.Close() }()

		if _, err := file.Seek(0, io.SeekEnd); err != nil {
			return nil, fmt.Errorf("seek log file: %w", err)
		}

		fmt.Fprintln(deps.Out, style.Muted("Following logs at "+path+" (Ctrl+C to stop)"))

		reader := bufio.NewReader(file)
		ticker := time.NewTicker(deps.Poll)
		defer ticker.Stop()

		var partial string
		for {
			line, err := reader.ReadString('\n')
			if err == nil {
				fmt.Fprintln(deps.Out, colorize(parse(strings.TrimSuffix(partial+line, "\n"))))
				partial = ""
				continue
			}
			if err != io.EOF {
				return nil, fmt.Errorf("read log file: %w", err)
			}
			partial += line

			select {
			case <-ctx.Done():
				return nil, nil
			case <-ticker.C:
			}
		}
	})
}

// Clear empties the log file.
func Clear() domain.Handler {
	return truncate(DefaultDeps())
}

func truncate(deps Deps) domain.Handler {
	return domain.HandlerFunc(func(context.Context, *domain.ExecutionContext) (any, error) {
		if err := os.WriteFile(deps.Path(), nil, 0600); err != nil {
			return nil, fmt.Errorf("clear log file: %w", err)
		}
		return style.Success("Log file cleared"), nil
	})
}

func colorize(e Entry) string {
	if e.Level == "" {
		return e.Raw
	}
	switch e.level {
	case log.LevelError:
		return style.Error(e.Raw)
	case log.LevelWarn:
		return style.Warning(e.Raw)
	case log.LevelInfo:
		return style.Info(e.Raw)
	default:
		return style.Muted(e.Raw)
	}
}
