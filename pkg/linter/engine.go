package linter

import (
	"sort"

	"github.com/platinummonkey/contentlint/pkg/document"
)

// LintEngine orchestrates the linting process
type LintEngine struct {
	config   *Config
	registry *RuleRegistry
}

// NewLintEngine creates a new lint engine with an empty rule registry
func NewLintEngine(config *Config) *LintEngine {
	if config == nil {
		config = DefaultConfig()
	}

	return &LintEngine{
		config:   config,
		registry: NewRuleRegistry(),
	}
}

// Registry returns the engine's rule registry so callers can register rules
func (e *LintEngine) Registry() *RuleRegistry {
	return e.registry
}

// Lint runs all enabled rules against a single document
func (e *LintEngine) Lint(path string, doc *document.Document) LintResult {
	result := LintResult{
		File:       path,
		Violations: make([]Violation, 0),
	}

	if e.config.IsIgnored(path) {
		return result
	}

	// Autogenerated documents are owned by the pipeline that wrote them;
	// skip them entirely and report nothing.
	if doc.Autogenerated() {
		result.Skipped = true
		return result
	}

	for _, rule := range e.registry.GetEnabledRules(e.config) {
		violations := rule.Check(doc)
		if sev, ok := e.config.SeverityOverride(rule); ok {
			for i := range violations {
				violations[i].Severity = sev
			}
		}
		result.Violations = append(result.Violations, violations...)
	}

	result.Summary = summarize(result.Violations)
	return result
}

// LintFiles lints multiple documents, ordered by path
func (e *LintEngine) LintFiles(docs map[string]*document.Document) []LintResult {
	paths := make([]string, 0, len(docs))
	for path := range docs {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	results := make([]LintResult, 0, len(docs))
	for _, path := range paths {
		results = append(results, e.Lint(path, docs[path]))
	}
	return results
}

// GenerateSummary creates a summary of lint results
func (e *LintEngine) GenerateSummary(results []LintResult) Summary {
	summary := Summary{
		TotalFiles: len(results),
	}

	for _, result := range results {
		summary.TotalViolations += len(result.Violations)
		summary.Errors += result.Summary.Errors
		summary.Warnings += result.Summary.Warnings
		summary.Infos += result.Summary.Infos
	}

	return summary
}

func summarize(violations []Violation) Summary {
	summary := Summary{TotalViolations: len(violations)}

	for _, v := range violations {
		switch v.Severity {
		case SeverityError:
			summary.Errors++
		case SeverityWarning:
			summary.Warnings++
		case SeverityInfo:
			summary.Infos++
		}
	}

	return summary
}

// LintResult contains the result of linting a single document
type LintResult struct {
	File       string      `json:"file"`
	Skipped    bool        `json:"skipped,omitempty"`
	Violations []Violation `json:"violations"`
	Summary    Summary     `json:"summary"`
}

// Violation represents a single positioned finding from one rule
type Violation struct {
	RuleID    string   `json:"rule_id"`
	RuleName  string   `json:"rule_name"`
	Severity  Severity `json:"severity"`
	Tags      []string `json:"tags,omitempty"`
	Line      int      `json:"line"`
	Message   string   `json:"message"`
	RawText   string   `json:"raw_text"`
	Highlight Range    `json:"highlight"`
}

// Range is a half-open [Start, End) column span on a single line, 1-based
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Severity indicates how serious a violation is
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Summary provides violation totals by severity
type Summary struct {
	TotalFiles      int `json:"total_files,omitempty"`
	TotalViolations int `json:"total_violations"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Infos           int `json:"infos"`
}
