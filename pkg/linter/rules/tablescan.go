package rules

import (
	"strings"
	"unicode"

	"github.com/platinummonkey/contentlint/pkg/document"
)

// Liquid conditional keywords whose cells are exempt from column counting.
// These directives resolve at build time to a configuration-dependent
// number of real columns.
var conditionalKeywords = map[string]bool{
	"ifversion": true,
	"elsif":     true,
	"else":      true,
	"endif":     true,
}

// isTableRow reports whether the trimmed line begins and ends with a pipe
// and contains at least two pipes total. Empty cells are allowed.
func isTableRow(line string) bool {
	t := strings.TrimSpace(line)
	if t == "" {
		return false
	}
	return t[0] == '|' && t[len(t)-1] == '|' && strings.Count(t, "|") >= 2
}

// isSeparatorRow reports whether the line is a structural separator such as
// |---|:--:|. Separator detection is only meaningful for lines that already
// pass isTableRow.
func isSeparatorRow(line string) bool {
	if !isTableRow(line) {
		return false
	}
	for _, r := range strings.TrimSpace(line) {
		switch {
		case r == '|' || r == '-' || r == ':':
		case unicode.IsSpace(r):
		default:
			return false
		}
	}
	return true
}

// splitCells splits a row on pipes and drops the empty or whitespace-only
// first and last pieces produced by a leading or trailing delimiter. Rows
// lacking both keep every piece. The column counter and the template
// exemption share this split so they always agree on cell boundaries.
func splitCells(row string) []string {
	t := strings.TrimSpace(row)
	if t == "" || !strings.Contains(t, "|") {
		return nil
	}

	cells := strings.Split(t, "|")
	if len(cells) > 0 && strings.TrimSpace(cells[0]) == "" {
		cells = cells[1:]
	}
	if n := len(cells); n > 0 && strings.TrimSpace(cells[n-1]) == "" {
		cells = cells[:n-1]
	}
	return cells
}

// countColumns counts the logical cells in a row. Delimiter-free rows count
// to zero.
func countColumns(row string) int {
	return len(splitCells(row))
}

// isTemplateOnlyRow reports whether every cell of the row is a single
// Liquid conditional directive.
func isTemplateOnlyRow(row string) bool {
	cells := splitCells(row)
	if len(cells) == 0 {
		return false
	}
	for _, cell := range cells {
		if !isConditionalCell(cell) {
			return false
		}
	}
	return true
}

// isConditionalCell matches one cell against the shape "{% keyword body %}"
// with optional surrounding whitespace, where keyword is one of the Liquid
// conditional keywords.
func isConditionalCell(cell string) bool {
	t := strings.TrimSpace(cell)
	if len(t) < 4 || !strings.HasPrefix(t, "{%") || !strings.HasSuffix(t, "%}") {
		return false
	}

	rest := t[2:]
	i := 0
	for i < len(rest) && (rest[i] == ' ' || rest[i] == '\t') {
		i++
	}
	start := i
	for i < len(rest) && isKeywordChar(rest[i]) {
		i++
	}
	if !conditionalKeywords[rest[start:i]] {
		return false
	}

	// The body runs to the closing marker. A second marker in the cell
	// means directive plus content, not a lone directive.
	body := rest[i : len(rest)-2]
	return !strings.Contains(body, "%")
}

func isKeywordChar(c byte) bool {
	return c >= 'a' && c <= 'z'
}

// tableScanner walks a document's lines once, tracking whether the walk is
// inside a table region and the column count its header established. State
// lives in the value itself, one per Check invocation.
type tableScanner struct {
	inTable         bool
	expectedColumns int
}

// columnMismatch describes one data row whose cell count differs from the
// count its table's header established.
type columnMismatch struct {
	line     document.Line
	actual   int
	expected int
}

// scan runs the state machine over lines, invoking report for every
// mismatching data row inside a table region. Transition order per line:
// region open (header with separator lookahead), region close (non-row),
// separator skip, template-only skip, then the column comparison.
func (s *tableScanner) scan(lines []document.Line, report func(columnMismatch)) {
	for i := 0; i < len(lines); i++ {
		text := lines[i].Text

		if !s.inTable {
			if isTableRow(text) && i+1 < len(lines) && isSeparatorRow(lines[i+1].Text) {
				s.inTable = true
				s.expectedColumns = countColumns(text)
				// The separator is consumed as part of opening the region
				// and is never itself checked.
				i++
			}
			continue
		}

		if !isTableRow(text) {
			s.inTable = false
			s.expectedColumns = 0
			continue
		}

		if isSeparatorRow(text) {
			continue
		}

		if isTemplateOnlyRow(text) {
			continue
		}

		if actual := countColumns(text); actual != s.expectedColumns {
			report(columnMismatch{
				line:     lines[i],
				actual:   actual,
				expected: s.expectedColumns,
			})
		}
	}
}
