package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/platinummonkey/contentlint/pkg/linter"
)

// Report is the persisted outcome of linting one document once
type Report struct {
	ID        string             `json:"id"`
	Path      string             `json:"path"`
	CreatedAt time.Time          `json:"created_at"`
	Skipped   bool               `json:"skipped"`
	Total     int                `json:"total"`
	Errors    int                `json:"errors"`
	Warnings  int                `json:"warnings"`
	Violations []linter.Violation `json:"violations"`
}

// NewReport builds a report from a lint result, assigning a fresh ID
func NewReport(path string, result *linter.LintResult) *Report {
	return &Report{
		ID:         uuid.NewString(),
		Path:       path,
		CreatedAt:  time.Now().UTC(),
		Skipped:    result.Skipped,
		Total:      result.Summary.TotalViolations,
		Errors:     result.Summary.Errors,
		Warnings:   result.Summary.Warnings,
		Violations: result.Violations,
	}
}

// HasErrors reports whether any violation carries error severity
func (r *Report) HasErrors() bool {
	return r.Errors > 0
}

// ReportQuery filters report searches. Zero values mean "no constraint".
type ReportQuery struct {
	Path   string
	Since  *time.Time
	Until  *time.Time
	Limit  int
	Offset int
}
