// Package migrations applies the embedded history schema in order.
package migrations

import (
	"cmp"
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
)

//go:embed sql/*.sql
var embedded embed.FS

// Migration is one numbered schema step, loaded from NN_name.sql.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

const schemaTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version    INTEGER PRIMARY KEY,
	name       TEXT NOT NULL,
	applied_at TEXT NOT NULL DEFAULT (datetime('now'))
)`

// Load returns the embedded migrations ordered by version.
func Load() ([]Migration, error) {
	return LoadFS(embedded, "sql")
}

// LoadFS reads every .sql file in dir of fsys. Versions must be unique.
func LoadFS(fsys fs.FS, dir string) ([]Migration, error) {
	names, err := fs.Glob(fsys, path.Join(dir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	out := make([]Migration, 0, len(names))
	for _, name := range names {
		m, err := parse(path.Base(name))
		if err != nil {
			return nil, err
		}
		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		m.SQL = string(body)
		out = append(out, m)
	}

	slices.SortFunc(out, func(a, b Migration) int { return cmp.Compare(a.Version, b.Version) })
	for i := 1; i < len(out); i++ {
		if out[i].Version == out[i-1].Version {
			return nil, fmt.Errorf("migrations %s and %s share version %d", out[i-1].Name, out[i].Name, out[i].Version)
		}
	}
	return out, nil
}

func parse(file string) (Migration, error) {
	version, name, ok := strings.Cut(strings.TrimSuffix(file, ".sql"), "_")
	if !ok || name == "" {
		return Migration{}, fmt.Errorf("migration %s: want NN_name.sql", file)
	}
	v, err := strconv.Atoi(version)
	if err != nil || v <= 0 {
		return Migration{}, fmt.Errorf("migration %s: bad version %q", file, version)
	}
	return Migration{Version: v, Name: name}, nil
}

// Run applies the embedded migrations that db has not seen yet.
func Run(db *sql.DB) error {
	return RunContext(context.Background(), db)
}

// RunContext is Run with a context. Each migration commits on its own.
func RunContext(ctx context.Context, db *sql.DB) error {
	pending, err := pendingContext(ctx, db)
	if err != nil {
		return err
	}
	for _, m := range pending {
		if err := apply(ctx, db, m); err != nil {
			return fmt.Errorf("migration %02d_%s: %w", m.Version, m.Name, err)
		}
	}
	return nil
}

func apply(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	return tx.Commit()
}

// CurrentVersion returns the highest applied version, 0 on a fresh database.
func CurrentVersion(db *sql.DB) (int, error) {
	return currentVersion(context.Background(), db)
}

func currentVersion(ctx context.Context, db *sql.DB) (int, error) {
	if _, err := db.ExecContext(ctx, schemaTable); err != nil {
		return 0, fmt.Errorf("create schema_migrations: %w", err)
	}
	var v sql.NullInt64
	if err := db.QueryRowContext(ctx, "SELECT MAX(version) FROM schema_migrations").Scan(&v); err != nil {
		return 0, fmt.Errorf("current version: %w", err)
	}
	return int(v.Int64), nil
}

// Pending returns the embedded migrations newer than the database.
func Pending(db *sql.DB) ([]Migration, error) {
	return pendingContext(context.Background(), db)
}

func pendingContext(ctx context.Context, db *sql.DB) ([]Migration, error) {
	all, err := Load()
	if err != nil {
		return nil, err
	}
	current, err := currentVersion(ctx, db)
	if err != nil {
		return nil, err
	}
	i, _ := slices.BinarySearchFunc(all, current+1, func(m Migration, v int) int { return cmp.Compare(m.Version, v) })
	return all[i:], nil
}
