package reports

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/platinummonkey/contentlint/pkg/linter"
)

// DBStore implements Store on database/sql. The schema and placeholders are
// kept valid for both lib/pq and mattn/go-sqlite3, so tests run against
// sqlite :memory: while production runs against Postgres.
type DBStore struct {
	db *sql.DB
}

// NewDBStore creates a database-backed report store and ensures its schema
func NewDBStore(db *sql.DB) (*DBStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	store := &DBStore{db: db}
	if err := store.ensureTable(); err != nil {
		return nil, fmt.Errorf("failed to ensure lint_reports table: %w", err)
	}

	return store, nil
}

// ensureTable creates the lint_reports table if it doesn't exist
func (s *DBStore) ensureTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS lint_reports (
		id TEXT PRIMARY KEY,
		path TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		skipped BOOLEAN NOT NULL,
		total INTEGER NOT NULL,
		errors INTEGER NOT NULL,
		warnings INTEGER NOT NULL,
		violations TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_lint_reports_path ON lint_reports(path);
	CREATE INDEX IF NOT EXISTS idx_lint_reports_created_at ON lint_reports(created_at);
	`

	_, err := s.db.Exec(query)
	return err
}

// Save persists a report
func (s *DBStore) Save(ctx context.Context, report *Report) error {
	violationsJSON, err := json.Marshal(report.Violations)
	if err != nil {
		return fmt.Errorf("failed to marshal violations: %w", err)
	}

	query := `
		INSERT INTO lint_reports (
			id, path, created_at, skipped, total, errors, warnings, violations
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = s.db.ExecContext(ctx, query,
		report.ID, report.Path, report.CreatedAt, report.Skipped,
		report.Total, report.Errors, report.Warnings, string(violationsJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert lint report: %w", err)
	}

	return nil
}

// Get retrieves a report by ID
func (s *DBStore) Get(ctx context.Context, id string) (*Report, error) {
	query := `
		SELECT id, path, created_at, skipped, total, errors, warnings, violations
		FROM lint_reports
		WHERE id = $1
	`

	report, err := scanReport(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lint report: %w", err)
	}

	return report, nil
}

// Search returns reports matching the query, newest first
func (s *DBStore) Search(ctx context.Context, q ReportQuery) ([]*Report, error) {
	query := `
		SELECT id, path, created_at, skipped, total, errors, warnings, violations
		FROM lint_reports
		WHERE 1=1
	`

	args := []interface{}{}
	argCount := 1

	if q.Path != "" {
		query += fmt.Sprintf(" AND path = $%d", argCount)
		args = append(args, q.Path)
		argCount++
	}

	if q.Since != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argCount)
		args = append(args, *q.Since)
		argCount++
	}

	if q.Until != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argCount)
		args = append(args, *q.Until)
		argCount++
	}

	query += " ORDER BY created_at DESC"

	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, q.Limit)
		argCount++
	}

	if q.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argCount)
		args = append(args, q.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search lint reports: %w", err)
	}
	defer rows.Close()

	result := make([]*Report, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lint report: %w", err)
		}
		result = append(result, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lint reports: %w", err)
	}

	return result, nil
}

// Purge removes reports created before the cutoff
func (s *DBStore) Purge(ctx context.Context, olderThan time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM lint_reports WHERE created_at < $1", olderThan)
	if err != nil {
		return 0, fmt.Errorf("failed to purge lint reports: %w", err)
	}

	return result.RowsAffected()
}

// Close is a no-op; the *sql.DB is owned by the caller and may be shared
func (s *DBStore) Close() error {
	return nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReport(row scanner) (*Report, error) {
	report := &Report{}
	var violationsJSON sql.NullString

	err := row.Scan(
		&report.ID, &report.Path, &report.CreatedAt, &report.Skipped,
		&report.Total, &report.Errors, &report.Warnings, &violationsJSON,
	)
	if err != nil {
		return nil, err
	}

	report.Violations = make([]linter.Violation, 0)
	if violationsJSON.Valid && violationsJSON.String != "" {
		if err := json.Unmarshal([]byte(violationsJSON.String), &report.Violations); err != nil {
			return nil, fmt.Errorf("failed to unmarshal violations: %w", err)
		}
	}

	return report, nil
}
