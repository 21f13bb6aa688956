// Package contextkeys provides centralized context key definitions
//
// IMPORTANT: All context keys shared across packages must be defined here.
// This prevents typos, documents dependencies, and makes key usage discoverable.
//
// USAGE PATTERN:
//   import "github.com/platinummonkey/contentlint/pkg/contextkeys"
//   ctx = context.WithValue(ctx, contextkeys.AuthKey, authCtx)
//   authCtx := ctx.Value(contextkeys.AuthKey).(*middleware.AuthContext)
package contextkeys

import "context"

// Key is the type for context keys to prevent collisions
type Key string

const (
	// AuthKey contains the authenticated API client
	// Set by: middleware.AuthMiddleware (pkg/middleware/auth.go)
	// Required by: Handlers that attribute lint requests to a client
	// Type: *middleware.AuthContext
	AuthKey Key = "auth_context"

	// RequestIDKey contains request ID string (UUID)
	// Set by: HTTP middleware, observability layer
	// Used by: Logger, lint reports, distributed tracing
	// Type: string
	RequestIDKey Key = "request_id"

	// DocumentPathKey contains the path of the document being linted
	// Set by: Lint handlers, CLI, and the watch daemon
	// Used by: Logger, lint pipeline diagnostics
	// Type: string
	DocumentPathKey Key = "document_path"

	// LoggerKey contains *observability.Logger
	// Set by: Observability middleware
	// Used by: Handlers that need structured logging with request context
	// Type: *observability.Logger
	LoggerKey Key = "logger"
)

// Helper functions for type-safe context operations

// WithAuth adds authentication context to the context
func WithAuth(ctx context.Context, authCtx interface{}) context.Context {
	return context.WithValue(ctx, AuthKey, authCtx)
}

// WithRequestID adds request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// WithDocumentPath adds the document path to the context
func WithDocumentPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, DocumentPathKey, path)
}

// WithLogger adds logger to the context
func WithLogger(ctx context.Context, logger interface{}) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// GetRequestID retrieves request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// GetDocumentPath retrieves the document path from context
func GetDocumentPath(ctx context.Context) string {
	if path, ok := ctx.Value(DocumentPathKey).(string); ok {
		return path
	}
	return ""
}
