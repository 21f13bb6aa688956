package main

import (
	"bytes"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/contentlint/pkg/reports"
	"github.com/platinummonkey/contentlint/pkg/storage"
)

var (
	dbURL           = flag.String("db-url", getEnv("CONTENTLINT_DATABASE_URL", "postgres://localhost/contentlint?sslmode=disable"), "PostgreSQL connection URL")
	dailySchedule   = flag.String("schedule", "5 0 * * *", "Cron schedule for daily stats aggregation and export (default: 00:05 UTC)")
	purgeSchedule   = flag.String("purge-schedule", "30 0 * * *", "Cron schedule for purging expired reports (default: 00:30 UTC)")
	retention       = flag.Duration("retention", 90*24*time.Hour, "Reports older than this are purged")
	exportDir       = flag.String("export-dir", "", "Directory for daily NDJSON report exports (empty disables exports)")
	s3Bucket        = flag.String("s3-bucket", os.Getenv("CONTENTLINT_S3_BUCKET"), "S3 bucket for export uploads (empty disables uploads)")
	runOnce         = flag.Bool("run-once", false, "Run aggregation once and exit (for testing or backfilling)")
	aggregationDate = flag.String("date", "", "Date to aggregate (YYYY-MM-DD format). If empty, aggregates yesterday. Only used with --run-once")
)

func main() {
	flag.Parse()

	db, err := sql.Open("postgres", *dbURL)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logrus.Fatalf("Failed to ping database: %v", err)
	}

	store, err := reports.NewDBStore(db)
	if err != nil {
		logrus.Fatalf("Failed to initialize report store: %v", err)
	}

	aggregator, err := reports.NewStatsAggregator(db)
	if err != nil {
		logrus.Fatalf("Failed to initialize stats aggregator: %v", err)
	}

	archive := openArchive()

	// Run once mode (for testing or backfilling)
	if *runOnce {
		var date time.Time
		if *aggregationDate != "" {
			date, err = time.Parse("2006-01-02", *aggregationDate)
			if err != nil {
				logrus.Fatalf("Invalid date format: %v", err)
			}
		} else {
			date = time.Now().UTC().AddDate(0, 0, -1)
		}

		logrus.Infof("Running aggregation for date: %s", date.Format("2006-01-02"))
		if err := runDaily(store, aggregator, archive, date); err != nil {
			logrus.Fatalf("Aggregation failed: %v", err)
		}

		logrus.Info("Aggregation completed successfully")
		return
	}

	// Scheduled mode
	c := cron.New()

	_, err = c.AddFunc(*dailySchedule, func() {
		yesterday := time.Now().UTC().AddDate(0, 0, -1)
		logrus.Infof("Starting daily aggregation for %s", yesterday.Format("2006-01-02"))

		if err := runDaily(store, aggregator, archive, yesterday); err != nil {
			logrus.Errorf("Daily aggregation failed: %v", err)
		} else {
			logrus.Info("Daily aggregation completed successfully")
		}
	})
	if err != nil {
		logrus.Fatalf("Failed to schedule daily aggregation: %v", err)
	}

	_, err = c.AddFunc(*purgeSchedule, func() {
		cutoff := time.Now().UTC().Add(-*retention)
		logrus.Infof("Purging reports created before %s", cutoff.Format(time.RFC3339))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		purged, err := store.Purge(ctx, cutoff)
		if err != nil {
			logrus.Errorf("Purge failed: %v", err)
			return
		}
		logrus.Infof("Purged %d expired reports", purged)
	})
	if err != nil {
		logrus.Fatalf("Failed to schedule purge: %v", err)
	}

	c.Start()
	logrus.Info("Contentlint report aggregator started")
	logrus.Infof("Daily aggregation schedule: %s", *dailySchedule)
	logrus.Infof("Purge schedule: %s (retention %s)", *purgeSchedule, *retention)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down...")
	cronCtx := c.Stop()
	<-cronCtx.Done()
	logrus.Info("Aggregator stopped")
}

// runDaily rolls up one day of lint reports into daily stats and, when
// configured, writes an NDJSON export of that day's reports.
func runDaily(store reports.Store, aggregator *reports.StatsAggregator, archive *storage.S3Archive, day time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if err := aggregator.AggregateDaily(ctx, store, day); err != nil {
		return fmt.Errorf("aggregate daily stats: %w", err)
	}

	if *exportDir == "" && archive == nil {
		return nil
	}
	return exportDay(ctx, store, archive, day)
}

// exportDay exports the day's reports as NDJSON to the export directory
// and, when an S3 archive is configured, uploads the same payload.
func exportDay(ctx context.Context, store reports.Store, archive *storage.S3Archive, day time.Time) error {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	all, err := store.Search(ctx, reports.ReportQuery{Since: &start, Until: &end})
	if err != nil {
		return fmt.Errorf("search reports for export: %w", err)
	}
	if len(all) == 0 {
		logrus.Infof("No reports for %s, skipping export", day.Format("2006-01-02"))
		return nil
	}

	var buf bytes.Buffer
	if err := reports.ExportNDJSON(&buf, all); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}

	name := day.Format("2006-01-02") + ".ndjson"

	if *exportDir != "" {
		if err := os.MkdirAll(*exportDir, 0755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
		path := filepath.Join(*exportDir, name)
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		logrus.Infof("Exported %d reports to %s", len(all), path)
	}

	if archive != nil {
		key := "exports/" + name
		if err := archive.Upload(ctx, key, buf.Bytes(), "application/x-ndjson"); err != nil {
			return fmt.Errorf("upload export: %w", err)
		}
		logrus.Infof("Uploaded export to s3://%s", key)
	}

	return nil
}

// openArchive builds the S3 archive from the -s3-bucket flag plus
// environment configuration. Returns nil when no bucket is configured.
func openArchive() *storage.S3Archive {
	bucket := *s3Bucket
	if bucket == "" {
		return nil
	}

	archive, err := storage.NewS3Archive(context.Background(), storage.ArchiveConfig{
		Endpoint:     os.Getenv("CONTENTLINT_S3_ENDPOINT"),
		Region:       getEnv("CONTENTLINT_S3_REGION", "us-east-1"),
		Bucket:       bucket,
		AccessKey:    os.Getenv("CONTENTLINT_S3_ACCESS_KEY"),
		SecretKey:    os.Getenv("CONTENTLINT_S3_SECRET_KEY"),
		UsePathStyle: os.Getenv("CONTENTLINT_S3_USE_PATH_STYLE") == "true",
	})
	if err != nil {
		logrus.Fatalf("Failed to initialize S3 archive: %v", err)
	}
	logrus.Infof("S3 archive enabled: bucket %s", bucket)
	return archive
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
