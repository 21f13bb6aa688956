package reports

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// ExportFormat selects an export encoding
type ExportFormat string

const (
	ExportFormatJSON   ExportFormat = "json"
	ExportFormatCSV    ExportFormat = "csv"
	ExportFormatNDJSON ExportFormat = "ndjson"
)

// Export writes reports to w in the given format
func Export(w io.Writer, format ExportFormat, all []*Report) error {
	switch format {
	case ExportFormatCSV:
		return ExportCSV(w, all)
	case ExportFormatNDJSON:
		return ExportNDJSON(w, all)
	case ExportFormatJSON, "":
		return ExportJSON(w, all)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

// ExportJSON writes reports as an indented JSON array
func ExportJSON(w io.Writer, all []*Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(all)
}

// ExportNDJSON writes reports as newline-delimited JSON, one report per line
func ExportNDJSON(w io.Writer, all []*Report) error {
	encoder := json.NewEncoder(w)
	for _, report := range all {
		if err := encoder.Encode(report); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
	}
	return nil
}

// ExportCSV writes one row per violation, flattening report fields onto each.
// Skipped and clean reports still get a single row so export totals match
// report counts.
func ExportCSV(w io.Writer, all []*Report) error {
	writer := csv.NewWriter(w)

	header := []string{
		"ReportID",
		"Path",
		"CreatedAt",
		"Skipped",
		"RuleID",
		"RuleName",
		"Severity",
		"Line",
		"Message",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, report := range all {
		base := []string{
			report.ID,
			report.Path,
			report.CreatedAt.Format("2006-01-02 15:04:05"),
			strconv.FormatBool(report.Skipped),
		}

		if len(report.Violations) == 0 {
			row := append(append([]string{}, base...), "", "", "", "", "")
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
			continue
		}

		for _, v := range report.Violations {
			row := append(append([]string{}, base...),
				v.RuleID,
				v.RuleName,
				string(v.Severity),
				strconv.Itoa(v.Line),
				v.Message,
			)
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}

	return nil
}
