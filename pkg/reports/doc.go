// Package reports persists the outcome of lint runs.
//
// A Report is one document linted once. Two Store implementations exist: a
// database/sql store compatible with Postgres and SQLite, and an append-only
// NDJSON file store. Exports and daily stats aggregation operate on either.
package reports
