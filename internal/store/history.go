package store

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/footprint-tools/cmdcore/internal/domain"
)

// timeLayout is fixed width so started_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Record appends one dispatch outcome. An empty ID gets a fresh UUID.
func (s *Store) Record(entry domain.HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	args, err := encodeArgs(entry.Args)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`INSERT INTO history
		 (id, seq, caller, raw, command, outcome, message, args, started_at, duration_us)
		 VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM history), ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Caller,
		entry.Raw,
		entry.Command,
		entry.Outcome,
		entry.Message,
		args,
		entry.Started.UTC().Format(timeLayout),
		entry.Duration.Microseconds(),
	)
	return err
}

// List returns entries matching filter, newest first.
func (s *Store) List(filter domain.HistoryFilter) ([]domain.HistoryEntry, error) {
	base := `
		SELECT
			id,
			caller,
			raw,
			command,
			outcome,
			message,
			args,
			started_at,
			duration_us
		FROM history
	`

	var (
		clauses []string
		args    []any
	)

	if filter.Caller != "" {
		clauses = append(clauses, "caller = ?")
		args = append(args, filter.Caller)
	}

	if filter.Command != "" {
		clauses = append(clauses, "(command = ? OR command LIKE ?)")
		args = append(args, filter.Command, filter.Command+" %")
	}

	if filter.Outcome != "" {
		clauses = append(clauses, "outcome = ?")
		args = append(args, filter.Outcome)
	}

	if filter.Since != nil {
		clauses = append(clauses, "started_at >= ?")
		args = append(args, filter.Since.UTC().Format(timeLayout))
	}

	query := base

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY seq DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HistoryEntry

	for rows.Next() {
		e, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	return out, rows.Err()
}

// Count returns the number of recorded entries.
func (s *Store) Count() (int64, error) {
	var n int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM history").Scan(&n)
	return n, err
}

// Prune deletes all but the newest keep entries and returns how many
// were removed.
func (s *Store) Prune(keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	result, err := tx.Exec(`
		DELETE FROM history
		WHERE seq NOT IN (SELECT seq FROM history ORDER BY seq DESC LIMIT ?)
	`, keep)
	if err != nil {
		return 0, err
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec(`
		UPDATE state SET last_prune_at = ?, pruned_total = pruned_total + ? WHERE id = 1
	`, time.Now().UTC().Format(time.RFC3339), removed); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return removed, nil
}

func scanHistoryEntry(rows *sql.Rows) (domain.HistoryEntry, error) {
	var (
		e          domain.HistoryEntry
		args       []byte
		started    string
		durationUS int64
	)

	if err := rows.Scan(
		&e.ID,
		&e.Caller,
		&e.Raw,
		&e.Command,
		&e.Outcome,
		&e.Message,
		&args,
		&started,
		&durationUS,
	); err != nil {
		return domain.HistoryEntry{}, err
	}

	t, err := time.Parse(timeLayout, started)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	e.Started = t
	e.Duration = time.Duration(durationUS) * time.Microsecond

	if e.Args, err = decodeArgs(args); err != nil {
		return domain.HistoryEntry{}, err
	}

	return e, nil
}

// Verify Store implements domain.HistoryStore
var _ domain.HistoryStore = (*Store)(nil)
