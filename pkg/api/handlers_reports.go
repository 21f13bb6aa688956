package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/platinummonkey/contentlint/pkg/httputil"
	"github.com/platinummonkey/contentlint/pkg/reports"
)

const defaultReportLimit = 50

// searchReports queries persisted lint reports. Supported query
// parameters: path, since, until (RFC 3339), limit, offset.
func (s *Server) searchReports(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		httputil.WriteServiceUnavailable(w, "report storage is not configured")
		return
	}

	query := reports.ReportQuery{
		Path: httputil.ParseQueryString(r, "path", ""),
	}

	limit, err := httputil.ParseQueryInt(r, "limit", defaultReportLimit)
	if err != nil {
		httputil.WriteValidationError(w, "invalid limit")
		return
	}
	query.Limit = limit

	offset, err := httputil.ParseQueryInt(r, "offset", 0)
	if err != nil {
		httputil.WriteValidationError(w, "invalid offset")
		return
	}
	query.Offset = offset

	if since, err := httputil.ParseQueryTime(r, "since", time.Time{}); err != nil {
		httputil.WriteValidationError(w, "invalid since timestamp")
		return
	} else if !since.IsZero() {
		query.Since = &since
	}

	if until, err := httputil.ParseQueryTime(r, "until", time.Time{}); err != nil {
		httputil.WriteValidationError(w, "invalid until timestamp")
		return
	} else if !until.IsZero() {
		query.Until = &until
	}

	found, err := s.store.Search(r.Context(), query)
	if err != nil {
		s.logger.WithError(err).Error("report search failed")
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteSuccess(w, map[string]interface{}{
		"reports": found,
		"total":   len(found),
	})
}

// getReport returns one persisted report by ID
func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		httputil.WriteServiceUnavailable(w, "report storage is not configured")
		return
	}

	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}

	report, err := s.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, reports.ErrNotFound) {
			httputil.WriteNotFoundError(w, "report not found: "+id)
			return
		}
		s.logger.WithError(err).Error("report lookup failed")
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteSuccess(w, report)
}
