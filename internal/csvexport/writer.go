package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"readiness/internal/analyzer"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{"Section", "Item", "Status", "Detail"}

// Section names used in the first column.
const (
	SectionScore    = "score"
	SectionCoverage = "coverage"
	SectionRule     = "rule"
	SectionGap      = "gap"
)

// Writer wraps csv.Writer for exporting readiness reports as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteReport writes one row per score, coverage entry, rule finding and gap, in report order.
func (w *Writer) WriteReport(r *analyzer.Report) error {
	for _, row := range reportRows(r) {
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func reportRows(r *analyzer.Report) [][]string {
	rows := [][]string{
		{SectionScore, "data", strconv.Itoa(r.Scores.Data), ""},
		{SectionScore, "coverage", strconv.Itoa(r.Scores.Coverage), ""},
		{SectionScore, "rules", strconv.Itoa(r.Scores.Rules), ""},
		{SectionScore, "posture", strconv.Itoa(r.Scores.Posture), ""},
		{SectionScore, "overall", strconv.Itoa(r.Scores.Overall), ""},
	}
	for _, path := range r.Coverage.Matched {
		rows = append(rows, []string{SectionCoverage, path, "matched", ""})
	}
	for _, c := range r.Coverage.Close {
		rows = append(rows, []string{SectionCoverage, c.Target, "close",
			fmt.Sprintf("candidate=%s confidence=%s", c.Candidate, strconv.FormatFloat(c.Confidence, 'f', 2, 64))})
	}
	for _, path := range r.Coverage.Missing {
		rows = append(rows, []string{SectionCoverage, path, "missing", ""})
	}
	for _, f := range r.RuleFindings {
		rows = append(rows, []string{SectionRule, string(f.Rule), formatStatus(f.OK), formatDetail(f.Detail)})
	}
	for _, gap := range r.Gaps {
		rows = append(rows, []string{SectionGap, "", "", gap})
	}
	return rows
}

func formatStatus(ok bool) string {
	if ok {
		return "pass"
	}
	return "fail"
}

func formatDetail(d analyzer.Detail) string {
	switch d := d.(type) {
	case analyzer.LineMathDetail:
		expected := "n/a"
		if d.Expected != nil {
			expected = formatValue(*d.Expected)
		}
		return fmt.Sprintf("exampleLine=%d expected=%s got=%s", d.ExampleLine, expected, formatValue(d.Got))
	case analyzer.CurrencyDetail:
		if d.Value == nil {
			return ""
		}
		return "value=" + formatValue(d.Value)
	default:
		return ""
	}
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns the download name of a report export.
// Format: readiness_{sanitized_report_id}_{YYYY-MM-DD}.csv, dated by the report's creation day.
func BuildFilename(reportID string, createdAt time.Time) string {
	return fmt.Sprintf("readiness_%s_%s.csv", SanitizeFilename(reportID), createdAt.UTC().Format("2006-01-02"))
}
