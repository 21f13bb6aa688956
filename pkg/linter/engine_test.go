package linter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/contentlint/pkg/document"
)

func stubViolation(line int, severity Severity) Violation {
	return Violation{
		RuleID:   "TEST1",
		RuleName: "stub-rule",
		Severity: severity,
		Line:     line,
		Message:  "stub finding",
	}
}

func TestNewLintEngine_NilConfigUsesDefaults(t *testing.T) {
	engine := NewLintEngine(nil)

	require.NotNil(t, engine)
	require.NotNil(t, engine.Registry())
	assert.Equal(t, "v1", engine.config.Version)
}

func TestLintEngine_Lint(t *testing.T) {
	engine := NewLintEngine(DefaultConfig())
	rule := &mockRule{
		id:       "TEST1",
		name:     "stub-rule",
		severity: SeverityError,
		violations: []Violation{
			stubViolation(3, SeverityError),
			stubViolation(7, SeverityWarning),
		},
	}
	require.NoError(t, engine.Registry().Register(rule))

	doc := document.New("docs/page.md", []string{"body"})
	result := engine.Lint("docs/page.md", doc)

	assert.Equal(t, "docs/page.md", result.File)
	assert.False(t, result.Skipped)
	require.Len(t, result.Violations, 2)
	assert.Equal(t, 2, result.Summary.TotalViolations)
	assert.Equal(t, 1, result.Summary.Errors)
	assert.Equal(t, 1, result.Summary.Warnings)
}

func TestLintEngine_SeverityOverride(t *testing.T) {
	config := DefaultConfig()
	config.Lint.Rules["stub-rule"] = RuleConfig{Severity: "warning"}

	engine := NewLintEngine(config)
	rule := &mockRule{
		id:         "TEST1",
		name:       "stub-rule",
		severity:   SeverityError,
		violations: []Violation{stubViolation(1, SeverityError)},
	}
	require.NoError(t, engine.Registry().Register(rule))

	result := engine.Lint("page.md", document.New("page.md", []string{"x"}))

	require.Len(t, result.Violations, 1)
	assert.Equal(t, SeverityWarning, result.Violations[0].Severity)
	assert.Equal(t, 1, result.Summary.Warnings)
	assert.Equal(t, 0, result.Summary.Errors)
}

func TestLintEngine_SkipsAutogenerated(t *testing.T) {
	engine := NewLintEngine(DefaultConfig())
	rule := &mockRule{
		id:         "TEST1",
		name:       "stub-rule",
		severity:   SeverityError,
		violations: []Violation{stubViolation(1, SeverityError)},
	}
	require.NoError(t, engine.Registry().Register(rule))

	doc, err := document.Parse("page.md", []byte("---\nautogenerated: true\n---\nbody\n"))
	require.NoError(t, err)

	result := engine.Lint("page.md", doc)

	assert.True(t, result.Skipped)
	assert.Empty(t, result.Violations)
	assert.Equal(t, 0, result.Summary.TotalViolations)
}

func TestLintEngine_IgnoredPath(t *testing.T) {
	engine := NewLintEngine(DefaultConfig())
	rule := &mockRule{
		id:         "TEST1",
		name:       "stub-rule",
		severity:   SeverityError,
		violations: []Violation{stubViolation(1, SeverityError)},
	}
	require.NoError(t, engine.Registry().Register(rule))

	doc := document.New("node_modules/pkg/readme.md", []string{"x"})
	result := engine.Lint("node_modules/pkg/readme.md", doc)

	assert.Empty(t, result.Violations)
	assert.False(t, result.Skipped)
}

func TestLintEngine_DisabledRuleProducesNothing(t *testing.T) {
	enabled := false
	config := DefaultConfig()
	config.Lint.Rules["stub-rule"] = RuleConfig{Enabled: &enabled}

	engine := NewLintEngine(config)
	rule := &mockRule{
		id:         "TEST1",
		name:       "stub-rule",
		severity:   SeverityError,
		violations: []Violation{stubViolation(1, SeverityError)},
	}
	require.NoError(t, engine.Registry().Register(rule))

	result := engine.Lint("page.md", document.New("page.md", []string{"x"}))
	assert.Empty(t, result.Violations)
}

func TestLintEngine_LintFiles(t *testing.T) {
	engine := NewLintEngine(DefaultConfig())
	rule := &mockRule{
		id:         "TEST1",
		name:       "stub-rule",
		severity:   SeverityError,
		violations: []Violation{stubViolation(1, SeverityError)},
	}
	require.NoError(t, engine.Registry().Register(rule))

	docs := map[string]*document.Document{
		"b.md": document.New("b.md", []string{"x"}),
		"a.md": document.New("a.md", []string{"x"}),
	}

	results := engine.LintFiles(docs)

	require.Len(t, results, 2)
	assert.Equal(t, "a.md", results[0].File)
	assert.Equal(t, "b.md", results[1].File)
}

func TestLintEngine_GenerateSummary(t *testing.T) {
	engine := NewLintEngine(DefaultConfig())

	results := []LintResult{
		{
			Violations: []Violation{stubViolation(1, SeverityError)},
			Summary:    Summary{TotalViolations: 1, Errors: 1},
		},
		{
			Violations: []Violation{stubViolation(2, SeverityWarning), stubViolation(3, SeverityInfo)},
			Summary:    Summary{TotalViolations: 2, Warnings: 1, Infos: 1},
		},
		{Summary: Summary{}},
	}

	summary := engine.GenerateSummary(results)

	assert.Equal(t, 3, summary.TotalFiles)
	assert.Equal(t, 3, summary.TotalViolations)
	assert.Equal(t, 1, summary.Errors)
	assert.Equal(t, 1, summary.Warnings)
	assert.Equal(t, 1, summary.Infos)
}
