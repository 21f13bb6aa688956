package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/platinummonkey/contentlint/pkg/async"
	"github.com/platinummonkey/contentlint/pkg/cache"
	"github.com/platinummonkey/contentlint/pkg/document"
	"github.com/platinummonkey/contentlint/pkg/httputil"
	"github.com/platinummonkey/contentlint/pkg/linter"
	"github.com/platinummonkey/contentlint/pkg/notify"
	"github.com/platinummonkey/contentlint/pkg/observability"
	"github.com/platinummonkey/contentlint/pkg/reports"
)

const (
	batchWorkers  = 8
	persistBudget = 10 * time.Second
)

// handleLint lints a single document
func (s *Server) handleLint(w http.ResponseWriter, r *http.Request) {
	var req LintRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, req.Path, "path") {
		return
	}

	httputil.WriteSuccess(w, s.lintDocument(r.Context(), req))
}

// handleLintBatch lints several documents concurrently
func (s *Server) handleLintBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchLintRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if len(req.Documents) == 0 {
		httputil.WriteValidationError(w, "documents is required")
		return
	}
	if len(req.Documents) > maxBatchSize {
		httputil.WriteValidationError(w, fmt.Sprintf("batch size %d exceeds limit of %d", len(req.Documents), maxBatchSize))
		return
	}
	for i, doc := range req.Documents {
		if doc.Path == "" {
			httputil.WriteValidationError(w, fmt.Sprintf("documents[%d].path is required", i))
			return
		}
	}

	results := make([]LintResponse, len(req.Documents))
	indexes := make([]int, len(req.Documents))
	for i := range indexes {
		indexes[i] = i
	}

	// Each worker writes only its own slot, so no locking is needed.
	async.Batch(r.Context(), indexes, batchWorkers, "batch-lint", time.Minute,
		func(ctx context.Context, i int) error {
			results[i] = s.lintDocument(ctx, req.Documents[i])
			return nil
		})

	lintResults := make([]linter.LintResult, 0, len(results))
	for _, resp := range results {
		lintResults = append(lintResults, resp.Result)
	}

	httputil.WriteSuccess(w, BatchLintResponse{
		Results: results,
		Summary: s.engine.GenerateSummary(lintResults),
	})
}

// lintDocument runs one document through cache, engine, persistence,
// and notification
func (s *Server) lintDocument(ctx context.Context, req LintRequest) LintResponse {
	content := []byte(req.Content)
	key := cache.ContentKey(req.Path, content)

	if cached, ok := s.cachedResult(ctx, key); ok {
		// The cache is keyed by content, so a hit may carry the path the
		// content was first linted under. Copy before fixing it up.
		result := *cached
		result.File = req.Path
		return LintResponse{Result: result, Cached: true}
	}

	doc, err := document.Parse(req.Path, content)
	if err != nil {
		// Parse still returns a lintable body on front-matter decode
		// failures.
		s.logger.WithError(err).WithField("path", req.Path).Warn("front matter decode failed")
	}

	start := time.Now()
	result := s.engine.Lint(req.Path, doc)
	s.observeLint(result, time.Since(start))
	s.storeCaches(ctx, key, &result)

	resp := LintResponse{Result: result}
	if s.store != nil {
		report := reports.NewReport(req.Path, &result)
		resp.ReportID = report.ID
		s.persistReport(report)
	}

	return resp
}

// cachedResult consults the local cache, then Redis. Redis hits are
// promoted into the local cache.
func (s *Server) cachedResult(ctx context.Context, key string) (*linter.LintResult, bool) {
	if s.localCache != nil {
		if result, err := s.localCache.Get(ctx, key); err == nil {
			return result, true
		}
	}

	if s.redisCache != nil {
		result, err := s.redisCache.Get(ctx, key)
		if err != nil {
			if err != cache.ErrCacheMiss {
				s.logger.WithError(err).Warn("redis cache lookup failed")
			}
			return nil, false
		}
		if s.localCache != nil {
			if err := s.localCache.Set(ctx, key, result); err != nil {
				s.logger.WithError(err).Warn("local cache store failed")
			}
		}
		return result, true
	}

	return nil, false
}

func (s *Server) storeCaches(ctx context.Context, key string, result *linter.LintResult) {
	if s.localCache != nil {
		if err := s.localCache.Set(ctx, key, result); err != nil {
			s.logger.WithError(err).Warn("local cache store failed")
		}
	}
	if s.redisCache != nil {
		if err := s.redisCache.Set(ctx, key, result); err != nil {
			s.logger.WithError(err).Warn("redis cache store failed")
		}
	}
}

// persistReport saves a report in the background and fires webhooks for
// reports that carry errors
func (s *Server) persistReport(report *reports.Report) {
	store := s.store
	sender := s.sender
	logger := s.logger

	async.SafeGo(context.Background(), persistBudget, "persist-lint-report", func(ctx context.Context) error {
		if err := store.Save(ctx, report); err != nil {
			logger.WithError(err).WithField("report_id", report.ID).Error("failed to persist lint report")
			return err
		}

		if sender != nil && sender.Enabled() && report.HasErrors() {
			sender.Send(ctx, notify.NewEvent(notify.EventReportErrors, report))
		}
		return nil
	})
}

func (s *Server) observeLint(result linter.LintResult, duration time.Duration) {
	if s.metrics == nil {
		return
	}

	outcome := observability.LintOutcome{
		Status:           "clean",
		ViolationsByRule: make(map[string]map[string]int),
	}
	switch {
	case result.Skipped:
		outcome.Status = "skipped"
	case len(result.Violations) > 0:
		outcome.Status = "violations"
	}
	for _, v := range result.Violations {
		if outcome.ViolationsByRule[v.RuleID] == nil {
			outcome.ViolationsByRule[v.RuleID] = make(map[string]int)
		}
		outcome.ViolationsByRule[v.RuleID][string(v.Severity)]++
	}

	s.metrics.ObserveLint("api", outcome, duration)
}
