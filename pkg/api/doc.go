// Package api implements the HTTP API for the lint service.
//
// # Endpoints
//
//	POST /api/v1/lint          lint one document
//	POST /api/v1/lint/batch    lint up to 100 documents in one call
//	GET  /api/v1/rules         list registered rules
//	GET  /api/v1/rules/{id}    get one rule by ID or name
//	GET  /api/v1/reports       search persisted lint reports
//	GET  /api/v1/reports/{id}  get one report
//	GET  /health               readiness probe (checks DB and Redis)
//	GET  /health/live          liveness probe
//	GET  /health/ready         readiness probe
//	GET  /metrics              Prometheus metrics
//
// Lint results are cached by content hash: an in-process LRU first,
// then Redis when configured. Reports are persisted asynchronously so
// storage latency never shows up in lint response times. When webhook
// endpoints are configured, reports with error-severity violations are
// dispatched to them in the background.
package api
