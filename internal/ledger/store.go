package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"jobproof/internal/config"
)

// Record is one run outcome. The (RunID, CandidateID) pair is unique; a
// record is written once and never updated or deleted.
type Record struct {
	RunID       string    `json:"run_id"`
	CandidateID string    `json:"candidate_id"`
	GitRevision string    `json:"git_revision"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	SummaryPath string    `json:"summary_path"`
	HealthPath  string    `json:"health_path"`
}

// Run statuses recorded in the ledger.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusBlocked   = "blocked"
)

// Store manages ledger persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the ledger database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.LedgerPath())
}

// OpenPath opens a ledger database at an explicit location.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Append records a run outcome with insert-if-absent semantics. A record
// with the same (run_id, candidate_id) already present wins; the new write
// is silently ignored. SQLite serializes the conflicting inserts, so the
// guarantee holds under concurrent callers.
func (s *Store) Append(ctx context.Context, rec Record) error {
	if strings.TrimSpace(rec.RunID) == "" {
		return fmt.Errorf("append ledger record: run id required")
	}
	if strings.TrimSpace(rec.CandidateID) == "" {
		return fmt.Errorf("append ledger record: candidate id required")
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO run_ledger (
            run_id, candidate_id, git_revision, status, created_at,
            summary_path, health_path
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID,
		rec.CandidateID,
		rec.GitRevision,
		rec.Status,
		createdAt.UTC().Format(time.RFC3339Nano),
		rec.SummaryPath,
		rec.HealthPath,
	)
	if err != nil {
		return fmt.Errorf("append ledger record: %w", err)
	}
	return nil
}

// List returns records for a candidate ordered by run id descending (most
// recent first), limited to limit entries. A non-positive limit returns all.
func (s *Store) List(ctx context.Context, candidateID string, limit int) ([]Record, error) {
	query := `SELECT run_id, candidate_id, git_revision, status, created_at,
                summary_path, health_path
            FROM run_ledger WHERE candidate_id = ?
            ORDER BY run_id DESC`
	args := []any{candidateID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger records: %w", err)
	}
	return records, nil
}

// Get fetches a single record by key. Returns (nil, nil) when absent.
func (s *Store) Get(ctx context.Context, runID, candidateID string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT run_id, candidate_id, git_revision, status, created_at,
            summary_path, health_path
        FROM run_ledger WHERE run_id = ? AND candidate_id = ?`,
		runID, candidateID,
	)
	rec, err := scanRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// LatestSuccessful returns the most recent succeeded run for a candidate,
// or (nil, nil) when none exists.
func (s *Store) LatestSuccessful(ctx context.Context, candidateID string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT run_id, candidate_id, git_revision, status, created_at,
            summary_path, health_path
        FROM run_ledger WHERE candidate_id = ? AND status = ?
        ORDER BY run_id DESC LIMIT 1`,
		candidateID, StatusSucceeded,
	)
	rec, err := scanRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var createdAt string
	err := row.Scan(
		&rec.RunID,
		&rec.CandidateID,
		&rec.GitRevision,
		&rec.Status,
		&createdAt,
		&rec.SummaryPath,
		&rec.HealthPath,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return rec, err
		}
		return rec, fmt.Errorf("scan ledger record: %w", err)
	}
	if ts, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
		rec.CreatedAt = ts
	}
	return rec, nil
}
