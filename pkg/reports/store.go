package reports

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates no report exists with the requested ID
var ErrNotFound = errors.New("report not found")

// Store persists and queries lint reports
type Store interface {
	// Save persists a report
	Save(ctx context.Context, report *Report) error

	// Get retrieves a report by ID, returning ErrNotFound when absent
	Get(ctx context.Context, id string) (*Report, error)

	// Search returns reports matching the query, newest first
	Search(ctx context.Context, query ReportQuery) ([]*Report, error)

	// Purge removes reports created before the cutoff, returning the count
	Purge(ctx context.Context, olderThan time.Time) (int64, error)

	// Close releases underlying resources
	Close() error
}
