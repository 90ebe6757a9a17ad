package store

import (
	"database/sql"
	"time"
)

// PruneState describes the last history prune.
type PruneState struct {
	LastPrune   time.Time // zero when never pruned
	PrunedTotal int64
}

// GetPruneState returns when history was last pruned.
func (s *Store) GetPruneState() (PruneState, error) {
	var (
		last  sql.NullString
		state PruneState
	)
	err := s.db.QueryRow(`
		SELECT last_prune_at, pruned_total FROM state WHERE id = 1
	`).Scan(&last, &state.PrunedTotal)
	if err != nil {
		return PruneState{}, err
	}
	if last.Valid && last.String != "" {
		t, err := time.Parse(time.RFC3339, last.String)
		if err != nil {
			return PruneState{}, err
		}
		state.LastPrune = t
	}
	return state, nil
}
