package domain

import "io"

// HistoryStore keeps one row per finished dispatch.
type HistoryStore interface {
	Record(entry HistoryEntry) error
	// List returns matching entries, newest first.
	List(filter HistoryFilter) ([]HistoryEntry, error)
	// Prune keeps the newest keep entries and reports how many went.
	Prune(keep int) (int64, error)
	Close() error
}

// ConfigProvider reads and edits the persisted configuration.
type ConfigProvider interface {
	Get(key string) (string, bool)
	GetAll() (map[string]string, error)
	Set(key, value string) error
	Unset(key string) error
}

// Logger takes printf style messages at four levels.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	Close() error
}

// OutputWriter is where rendered results go. Pager may hand long content
// to an external pager when the output is a terminal.
type OutputWriter interface {
	io.Writer
	Printf(format string, args ...any) (int, error)
	Println(args ...any) (int, error)
	Pager(content string)
}

// Application is the set of collaborators shared by the binary's
// subcommands.
type Application struct {
	History HistoryStore
	Config  ConfigProvider
	Logger  Logger
	Output  OutputWriter
}
