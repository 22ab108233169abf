// Package history journals completed apply runs in a SQLite database.
// The database is optionally encrypted at rest via SQLCipher; with an
// empty passphrase it opens as plain SQLite.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mutecomm/go-sqlcipher/v4"

	"github.com/phlthy88/unified-theming/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	theme_name  TEXT NOT NULL,
	applied_at  TEXT NOT NULL,
	success     INTEGER NOT NULL,
	ratio       REAL NOT NULL,
	backup_id   TEXT,
	results     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_applied_at ON runs(applied_at DESC);
`

// Run is one journaled apply operation.
type Run struct {
	RunID          string                          `json:"run_id"`
	ThemeName      string                          `json:"theme_name"`
	AppliedAt      time.Time                       `json:"applied_at"`
	OverallSuccess bool                            `json:"overall_success"`
	SuccessRatio   float64                         `json:"success_ratio"`
	BackupID       string                          `json:"backup_id,omitempty"`
	HandlerResults map[string]*model.HandlerResult `json:"handler_results"`
}

// Store persists apply runs.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the journal at dbPath. A non-empty passphrase
// enables SQLCipher encryption.
func Open(dbPath, passphrase string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_synchronous=NORMAL", dbPath)
	if passphrase != "" {
		dsn = fmt.Sprintf("file:%s?_pragma_key=%s&_journal_mode=WAL&_synchronous=NORMAL", dbPath, passphrase)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record journals one apply run.
func (s *Store) Record(result *model.ApplicationResult) error {
	results, err := json.Marshal(result.HandlerResults)
	if err != nil {
		return fmt.Errorf("encode handler results: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO runs (run_id, theme_name, applied_at, success, ratio, backup_id, results)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, result.RunID, result.ThemeName, result.Timestamp.UTC().Format(time.RFC3339Nano),
		boolToInt(result.OverallSuccess), result.SuccessRatio, result.BackupID, string(results))
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first. limit <= 0 means all.
func (s *Store) List(limit int) ([]*Run, error) {
	query := `SELECT run_id, theme_name, applied_at, success, ratio, backup_id, results
		FROM runs ORDER BY applied_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var (
			r         Run
			appliedAt string
			success   int
			backupID  sql.NullString
			results   string
		)
		if err := rows.Scan(&r.RunID, &r.ThemeName, &appliedAt, &success, &r.SuccessRatio, &backupID, &results); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.AppliedAt, _ = time.Parse(time.RFC3339Nano, appliedAt)
		r.OverallSuccess = success != 0
		r.BackupID = backupID.String
		if err := json.Unmarshal([]byte(results), &r.HandlerResults); err != nil {
			return nil, fmt.Errorf("decode handler results: %w", err)
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
