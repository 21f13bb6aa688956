package rules

import (
	"fmt"
	"unicode/utf8"

	"github.com/platinummonkey/contentlint/pkg/document"
	"github.com/platinummonkey/contentlint/pkg/linter"
)

// TableColumnIntegrityRule checks that every data row of a pipe table has
// the same number of columns as its header row
type TableColumnIntegrityRule struct {
	BaseRule
}

// NewTableColumnIntegrityRule creates a new table column integrity rule
func NewTableColumnIntegrityRule() *TableColumnIntegrityRule {
	return &TableColumnIntegrityRule{
		BaseRule: BaseRule{
			RuleID:          "CL001",
			RuleName:        "table-column-integrity",
			RuleTags:        []string{"tables", "structure"},
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "Table rows must have the same number of columns as their header row",
		},
	}
}

// Check validates the column counts of every table in the document
func (r *TableColumnIntegrityRule) Check(doc *document.Document) []linter.Violation {
	// Autogenerated documents are owned by their pipeline and never scanned.
	if doc.Autogenerated() {
		return nil
	}

	violations := make([]linter.Violation, 0)

	scanner := tableScanner{}
	scanner.scan(doc.Lines, func(m columnMismatch) {
		violations = append(violations, linter.Violation{
			RuleID:    r.ID(),
			RuleName:  r.Name(),
			Severity:  r.Severity(),
			Tags:      r.Tags(),
			Line:      m.line.Number,
			Message:   mismatchMessage(m.actual, m.expected),
			RawText:   m.line.Text,
			Highlight: fullLine(m.line.Text),
		})
	})

	return violations
}

// mismatchMessage reports both counts and which side to fix.
func mismatchMessage(actual, expected int) string {
	if actual > expected {
		return fmt.Sprintf(
			"Table row has %d columns but header has %d. Add %d more column(s) to the header row to match this row.",
			actual, expected, actual-expected,
		)
	}
	return fmt.Sprintf(
		"Table row has %d columns but header has %d. Add %d missing column(s) to this row.",
		actual, expected, expected-actual,
	)
}

func fullLine(text string) linter.Range {
	return linter.Range{Start: 1, End: utf8.RuneCountInString(text) + 1}
}
