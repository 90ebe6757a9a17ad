// Package testutil builds stores for tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/store"
)

// NewTestStore returns a migrated in-memory store closed at cleanup.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(store.Memory)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// SeedHistory records entries in order.
func SeedHistory(t *testing.T, s domain.HistoryStore, entries []domain.HistoryEntry) {
	t.Helper()
	for i, e := range entries {
		require.NoError(t, s.Record(e), "seed entry %d", i)
	}
}
