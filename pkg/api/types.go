package api

import "github.com/platinummonkey/contentlint/pkg/linter"

// LintRequest asks the server to lint one document
type LintRequest struct {
	// Path identifies the document; used in violations and reports
	Path string `json:"path"`
	// Content is the raw Markdown source
	Content string `json:"content"`
}

// LintResponse carries the outcome of linting one document
type LintResponse struct {
	Result   linter.LintResult `json:"result"`
	Cached   bool              `json:"cached"`
	ReportID string            `json:"report_id,omitempty"`
}

// BatchLintRequest asks the server to lint several documents at once
type BatchLintRequest struct {
	Documents []LintRequest `json:"documents"`
}

// BatchLintResponse carries per-document outcomes plus an aggregate
// summary
type BatchLintResponse struct {
	Results []LintResponse `json:"results"`
	Summary linter.Summary `json:"summary"`
}

// RuleInfo describes a registered lint rule
type RuleInfo struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Tags        []string        `json:"tags,omitempty"`
	Severity    linter.Severity `json:"severity"`
	Description string          `json:"description"`
}
