// Package httputil provides HTTP utilities for standardized request/response handling.
//
// # Overview
//
// This package offers helper functions for JSON encoding/decoding, error responses,
// parameter parsing, validation, and common HTTP middleware patterns.
//
// # Response Helpers
//
// JSON responses:
//
//	httputil.WriteJSON(w, http.StatusOK, data)
//	httputil.WriteSuccess(w, report)
//	httputil.WriteCreated(w, report)
//
// Error responses:
//
//	httputil.WriteError(w, http.StatusBadRequest, err)
//	httputil.WriteBadRequest(w, "Invalid input")
//	httputil.WriteUnauthorized(w, "invalid API key")
//	httputil.WriteServiceUnavailable(w, "report storage not configured")
//
// # Request Parsing
//
// JSON parsing:
//
//	var req LintRequest
//	if !httputil.ParseJSONOrError(w, r, &req) {
//		return // Error response already written
//	}
//
// Path parameters:
//
//	id, err := httputil.ParsePathString(r, "id")
//
// Query parameters:
//
//	limit, err := httputil.ParseQueryInt(r, "limit", 20)
//	offset, err := httputil.ParseQueryInt(r, "offset", 0)
//	since, err := httputil.ParseQueryTime(r, "since", time.Time{})
//
// # Validation
//
//	if !httputil.RequireNonEmpty(w, req.Path, "path") {
//		return
//	}
//
// # Middleware
//
//	httputil.Chain(
//		httputil.RecoveryMiddleware,
//		httputil.ContentTypeMiddleware,
//		httputil.TimeoutMiddleware(30*time.Second),
//		httputil.MaxBytesMiddleware(10*1024*1024), // 10MB
//	)
//
// # Related Packages
//
//   - pkg/middleware: Authentication and rate limiting middleware
package httputil
