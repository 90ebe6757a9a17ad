package domain

import "time"

// HistoryEntry is one recorded dispatch.
type HistoryEntry struct {
	ID       string
	Caller   string
	Raw      string
	Command  string
	Outcome  string
	Message  string
	Args     map[string]any
	Started  time.Time
	Duration time.Duration
}

// HistoryFilter narrows HistoryStore.List.
type HistoryFilter struct {
	Caller  string
	Command string
	Outcome string
	Since   *time.Time
	Limit   int
}
