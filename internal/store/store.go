// Package store keeps dispatch history and small key/value state in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/footprint-tools/cmdcore/internal/log"
	"github.com/footprint-tools/cmdcore/internal/store/migrations"
)

// Memory opens a private in-memory database.
const Memory = ":memory:"

// fileParams put the database in WAL mode with a busy timeout so concurrent
// processes queue instead of failing with SQLITE_BUSY.
const fileParams = "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"

// Store implements domain.HistoryStore.
type Store struct {
	db   *sql.DB
	path string
}

// New opens or creates the database at path and migrates it. The file and
// the journal files SQLite derives from it are private to the user.
func New(path string) (*Store, error) {
	log.Debug("store: opening %s", path)

	dsn := path
	if path != Memory {
		if err := touchPrivate(path); err != nil {
			return nil, err
		}
		dsn += fileParams
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == Memory {
		// Every pooled connection would see its own empty database.
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db, path: path}
	if err := db.Ping(); err != nil {
		return nil, s.fail("ping database", err)
	}
	if err := migrations.Run(db); err != nil {
		return nil, s.fail("run migrations", err)
	}
	return s, nil
}

func (s *Store) fail(op string, err error) error {
	_ = s.db.Close()
	return fmt.Errorf("%s: %w", op, err)
}

func touchPrivate(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	defer func() { _ = f.Close() }()
	if err := f.Chmod(0600); err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	return nil
}

// Path is the database file, or Memory.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	return s.db.Close()
}
