package migrations_test

import (
	"context"
	"database/sql"
	"testing"
	"testing/fstest"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/cmdcore/internal/store/migrations"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestLoad(t *testing.T) {
	all, err := migrations.Load()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(all), 3)

	for i := 1; i < len(all); i++ {
		require.Greater(t, all[i].Version, all[i-1].Version)
	}
	require.Equal(t, "history", all[0].Name)
}

func TestLoadFS(t *testing.T) {
	t.Run("sorted by number", func(t *testing.T) {
		fsys := fstest.MapFS{
			"m/10_late.sql": {Data: []byte("SELECT 10")},
			"m/2_early.sql": {Data: []byte("SELECT 2")},
			"m/notes.txt":   {Data: []byte("ignored")},
		}
		all, err := migrations.LoadFS(fsys, "m")
		require.NoError(t, err)
		require.Len(t, all, 2)
		require.Equal(t, 2, all[0].Version)
		require.Equal(t, "late", all[1].Name)
		require.Equal(t, "SELECT 10", all[1].SQL)
	})

	tests := map[string]fstest.MapFS{
		"duplicate":  {"m/01_a.sql": {}, "m/1_b.sql": {}},
		"no name":    {"m/01.sql": {}},
		"bad number": {"m/x_a.sql": {}},
	}
	for name, fsys := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := migrations.LoadFS(fsys, "m")
			require.Error(t, err)
		})
	}
}

func TestRunIdempotent(t *testing.T) {
	db := openDB(t)

	require.NoError(t, migrations.RunContext(context.Background(), db))
	v1, err := migrations.CurrentVersion(db)
	require.NoError(t, err)

	require.NoError(t, migrations.Run(db))
	v2, err := migrations.CurrentVersion(db)
	require.NoError(t, err)

	require.Equal(t, v1, v2)
}

func TestPending(t *testing.T) {
	db := openDB(t)
	all, err := migrations.Load()
	require.NoError(t, err)

	pending, err := migrations.Pending(db)
	require.NoError(t, err)
	require.Len(t, pending, len(all))

	require.NoError(t, migrations.Run(db))
	pending, err = migrations.Pending(db)
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestTablesCreated(t *testing.T) {
	db := openDB(t)
	require.NoError(t, migrations.Run(db))

	for _, table := range []string{"schema_migrations", "history", "state"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "table %s", table)
	}

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM state").Scan(&count))
	require.Equal(t, 1, count, "state row is seeded once")
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, migrations.RunContext(ctx, openDB(t)))
}
