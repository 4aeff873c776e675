// Package analyzer is the readiness engine. It measures a dataset against the GETS schema: header coverage,
// row-level rule checks, and the scores and gaps that make up a report.
//
// Everything here is synchronous and free of I/O. An Analyzer only reads its schema, so one instance can serve
// any number of concurrent analyses.
package analyzer

import (
	"fmt"

	"readiness/internal/schema"
)

// Analyzer binds the engine to a schema and the storage backend tag reported in report metadata.
type Analyzer struct {
	schema  *schema.Schema
	backend string
}

// New creates an Analyzer. The schema is shared, never copied or modified.
func New(s *schema.Schema, backend string) *Analyzer {
	return &Analyzer{schema: s, backend: backend}
}

// Schema returns the schema the analyzer measures against.
func (a *Analyzer) Schema() *schema.Schema { return a.schema }

// AnalyzeCoverage matches headers against the analyzer's schema.
func (a *Analyzer) AnalyzeCoverage(headers []string) (Coverage, HeaderMap) {
	return AnalyzeCoverage(a.schema.Paths(), headers)
}

// RunRuleChecks runs the rule battery against the analyzer's schema.
func (a *Analyzer) RunRuleChecks(rows []NormalizedRow) []RuleFinding {
	return RunRuleChecks(a.schema, rows)
}

// AnalyzeData produces the report for a dataset. Headers only count when there is a first row, so a dataset
// without rows scores zero coverage even if its file carried a header line.
// The same input always yields the same report.
func (a *Analyzer) AnalyzeData(ds Dataset, q Questionnaire) *Report {
	headers := ds.Headers
	if len(ds.Rows) == 0 {
		headers = nil
	}
	cov, hm := a.AnalyzeCoverage(headers)
	rows := NormalizeRows(hm, ds.Rows)
	findings := a.RunRuleChecks(rows)

	return &Report{
		Scores:       CalculateScores(cov, findings, q),
		Coverage:     cov,
		RuleFindings: findings,
		Gaps:         BuildGaps(cov, findings),
		Meta: Meta{
			RowsParsed: len(ds.Rows),
			DB:         a.backend,
		},
	}
}

// BuildGaps lists one line per missing field, in coverage order, then one line per failing rule, in rule order.
func BuildGaps(cov Coverage, findings []RuleFinding) []string {
	gaps := make([]string, 0, len(cov.Missing)+len(findings))
	for _, path := range cov.Missing {
		gaps = append(gaps, fmt.Sprintf("Missing required field: %s", path))
	}
	for _, f := range findings {
		if !f.OK {
			gaps = append(gaps, fmt.Sprintf("Rule validation failed: %s", f.Rule))
		}
	}
	return gaps
}
