package reports

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// DailyStat is one per-day per-rule per-severity violation count
type DailyStat struct {
	Day            string `json:"day"`
	RuleID         string `json:"rule_id"`
	Severity       string `json:"severity"`
	ViolationCount int64  `json:"violation_count"`
}

// StatsAggregator rolls report violations up into daily per-rule counts
type StatsAggregator struct {
	db *sql.DB
}

// NewStatsAggregator creates an aggregator and ensures its schema
func NewStatsAggregator(db *sql.DB) (*StatsAggregator, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	a := &StatsAggregator{db: db}
	if err := a.ensureTable(); err != nil {
		return nil, fmt.Errorf("failed to ensure lint_report_stats table: %w", err)
	}

	return a, nil
}

func (a *StatsAggregator) ensureTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS lint_report_stats (
		day TEXT NOT NULL,
		rule_id TEXT NOT NULL,
		severity TEXT NOT NULL,
		violation_count INTEGER NOT NULL,
		PRIMARY KEY (day, rule_id, severity)
	);
	`

	_, err := a.db.Exec(query)
	return err
}

// AggregateDaily recomputes stats for the calendar day containing the given
// time (UTC) from the reports store and upserts them. Re-running for the
// same day overwrites, so backfills are idempotent.
func (a *StatsAggregator) AggregateDaily(ctx context.Context, store Store, day time.Time) error {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	found, err := store.Search(ctx, ReportQuery{Since: &start, Until: &end})
	if err != nil {
		return fmt.Errorf("failed to load reports for %s: %w", start.Format("2006-01-02"), err)
	}

	type key struct {
		rule     string
		severity string
	}
	counts := make(map[key]int64)
	for _, report := range found {
		for _, v := range report.Violations {
			counts[key{rule: v.RuleID, severity: string(v.Severity)}]++
		}
	}

	dayStr := start.Format("2006-01-02")
	upsert := `
		INSERT INTO lint_report_stats (day, rule_id, severity, violation_count)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (day, rule_id, severity)
		DO UPDATE SET violation_count = excluded.violation_count
	`

	for k, count := range counts {
		if _, err := a.db.ExecContext(ctx, upsert, dayStr, k.rule, k.severity, count); err != nil {
			return fmt.Errorf("failed to upsert stats for rule %s: %w", k.rule, err)
		}
	}

	return nil
}

// StatsForDay returns the aggregated counts for one calendar day
func (a *StatsAggregator) StatsForDay(ctx context.Context, day time.Time) ([]DailyStat, error) {
	query := `
		SELECT day, rule_id, severity, violation_count
		FROM lint_report_stats
		WHERE day = $1
		ORDER BY rule_id, severity
	`

	rows, err := a.db.QueryContext(ctx, query, day.UTC().Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	defer rows.Close()

	stats := make([]DailyStat, 0)
	for rows.Next() {
		var s DailyStat
		if err := rows.Scan(&s.Day, &s.RuleID, &s.Severity, &s.ViolationCount); err != nil {
			return nil, fmt.Errorf("failed to scan stat row: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}
