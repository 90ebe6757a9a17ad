// Package log writes leveled lines to a rotated file under the app data dir.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/footprint-tools/cmdcore/internal/domain"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel matches a level name case-insensitively. Unknown names give
// LevelWarn.
func ParseLevel(s string) Level {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i)
		}
	}
	return LevelWarn
}

const timeLayout = "2006-01-02 15:04:05.000"

// Logger is safe for concurrent use. A nil *Logger discards everything.
type Logger struct {
	mu  sync.Mutex
	out io.WriteCloser
	min Level
	off atomic.Bool
}

// Options controls rotation of the log file.
type Options struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var DefaultOptions = Options{MaxSizeMB: 5, MaxBackups: 3, MaxAgeDays: 28}

// New appends to path, creating its directory 0700 and the file 0600.
func New(path string, min Level, opts Options) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	// An existing file keeps its mode on open.
	chmodErr := f.Chmod(0600)
	_ = f.Close()
	if chmodErr != nil {
		return nil, fmt.Errorf("chmod existing log file: %w", chmodErr)
	}

	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = DefaultOptions.MaxSizeMB
	}
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}
	return &Logger{out: rotator, min: min}, nil
}

// NewWriter logs to w without rotation. Close leaves w open.
func NewWriter(w io.Writer, min Level) *Logger {
	return &Logger{out: nopCloser{w}, min: min}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.out.Close()
}

func (l *Logger) SetEnabled(enabled bool) {
	if l != nil {
		l.off.Store(!enabled)
	}
}

func (l *Logger) write(level Level, format string, args []any) {
	if l == nil || level < l.min || l.off.Load() {
		return
	}
	line := fmt.Sprintf("[%s] %s: %s\n", time.Now().Format(timeLayout), level, fmt.Sprintf(format, args...))

	l.mu.Lock()
	_, err := io.WriteString(l.out, line)
	l.mu.Unlock()
	if err != nil && level == LevelError {
		fmt.Fprintf(os.Stderr, "logger: write failed: %v: %s", err, line)
	}
}

func (l *Logger) Debug(format string, args ...any) { l.write(LevelDebug, format, args) }
func (l *Logger) Info(format string, args ...any)  { l.write(LevelInfo, format, args) }
func (l *Logger) Warn(format string, args ...any)  { l.write(LevelWarn, format, args) }
func (l *Logger) Error(format string, args ...any) { l.write(LevelError, format, args) }

// NopLogger discards all messages.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
func (NopLogger) Close() error         { return nil }

var (
	_ domain.Logger = (*Logger)(nil)
	_ domain.Logger = NopLogger{}
)

type holder struct{ domain.Logger }

var std atomic.Pointer[holder]

// SetDefault routes the package-level functions to l. A nil l restores
// discarding.
func SetDefault(l domain.Logger) {
	if l == nil {
		std.Store(nil)
		return
	}
	std.Store(&holder{l})
}

// Default returns the logger set by SetDefault, or a NopLogger.
func Default() domain.Logger {
	if h := std.Load(); h != nil {
		return h.Logger
	}
	return NopLogger{}
}

func Debug(format string, args ...any) { Default().Debug(format, args...) }
func Info(format string, args ...any)  { Default().Info(format, args...) }
func Warn(format string, args ...any)  { Default().Warn(format, args...) }
func Error(format string, args ...any) { Default().Error(format, args...) }
