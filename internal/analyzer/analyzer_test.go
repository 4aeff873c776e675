package analyzer_test

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readiness/internal/analyzer"
	"readiness/internal/schema"
)

var scalarPaths = []string{
	"invoice.id", "invoice.issue_date", "invoice.currency",
	"invoice.total_excl_vat", "invoice.vat_amount", "invoice.total_incl_vat",
	"seller.name", "seller.trn", "seller.country", "seller.city",
	"buyer.name", "buyer.trn", "buyer.country", "buyer.city",
}

func completeRow(id int) analyzer.RawRow {
	return analyzer.RawRow{
		"invoice.id":             fmt.Sprintf("INV-%03d", id),
		"invoice.issue_date":     "2025-01-05",
		"invoice.currency":       "AED",
		"invoice.total_excl_vat": 100.0,
		"invoice.vat_amount":     5.0,
		"invoice.total_incl_vat": 105.0,
		"seller.name":            "Acme Trading LLC",
		"seller.trn":             "100000000000003",
		"seller.country":         "AE",
		"seller.city":            "Dubai",
		"buyer.name":             "Globex FZE",
		"buyer.trn":              "100000000000004",
		"buyer.country":          "AE",
		"buyer.city":             "Abu Dhabi",
		"lines": []any{
			map[string]any{"sku": "A-1", "description": "Widget", "qty": 2.0, "unit_price": 50.0, "line_total": 100.0},
		},
	}
}

func newAnalyzer(t *testing.T) *analyzer.Analyzer {
	t.Helper()
	return analyzer.New(defaultSchema(t), "sqlite")
}

func TestAnalyzeData_CompleteDataset(t *testing.T) {
	headers := append(append([]string{}, scalarPaths...), "lines")
	ds := analyzer.Dataset{Headers: headers, Rows: []analyzer.RawRow{completeRow(1), completeRow(2)}}

	report := newAnalyzer(t).AnalyzeData(ds, allYes())

	assert.Equal(t, scalarPaths, report.Coverage.Matched)
	require.Len(t, report.Coverage.Close, 5)
	for _, c := range report.Coverage.Close {
		assert.Equal(t, "lines", c.Candidate)
		assert.Contains(t, c.Target, schema.LinesPrefix)
	}
	assert.Empty(t, report.Coverage.Missing)
	assert.Equal(t, analyzer.Scores{Data: 100, Coverage: 87, Rules: 100, Posture: 100, Overall: 95}, report.Scores)
	assert.Empty(t, report.Gaps)
	assert.Equal(t, analyzer.Meta{RowsParsed: 2, DB: "sqlite"}, report.Meta)
	assert.Empty(t, report.ReportID)
}

func TestAnalyzeData_EmptyDataset(t *testing.T) {
	report := newAnalyzer(t).AnalyzeData(analyzer.Dataset{}, nil)

	assert.Empty(t, report.Coverage.Matched)
	assert.Len(t, report.Coverage.Missing, 19)
	assert.Equal(t, 0, report.Scores.Coverage)
	assert.Equal(t, 100, report.Scores.Rules)
	assert.Equal(t, 0, report.Scores.Posture)
	assert.Equal(t, 55, report.Scores.Overall)
	assert.Len(t, report.Gaps, 19)
	assert.Equal(t, 0, report.Meta.RowsParsed)
}

func TestAnalyzeData_HeadersWithoutRows(t *testing.T) {
	report := newAnalyzer(t).AnalyzeData(analyzer.Dataset{Headers: scalarPaths}, nil)

	assert.Empty(t, report.Coverage.Matched)
	assert.Empty(t, report.Coverage.Close)
	assert.Len(t, report.Coverage.Missing, 19)
	assert.Equal(t, 0, report.Scores.Coverage)
	assert.Equal(t, 55, report.Scores.Overall)
}

func TestAnalyzeData_GapsOrder(t *testing.T) {
	headers := make([]string, 0, len(scalarPaths))
	for _, p := range scalarPaths {
		if p == "invoice.currency" {
			p = "Currency"
		}
		headers = append(headers, p)
	}
	row := completeRow(1)
	delete(row, "invoice.currency")
	delete(row, "lines")
	row["Currency"] = "EUR"

	report := newAnalyzer(t).AnalyzeData(analyzer.Dataset{Headers: headers, Rows: []analyzer.RawRow{row}}, nil)

	require.Len(t, report.Coverage.Close, 1)
	assert.Equal(t, analyzer.CloseMatch{Target: "invoice.currency", Candidate: "Currency", Confidence: 0.8}, report.Coverage.Close[0])
	assert.Equal(t, []string{
		"Missing required field: lines[].sku",
		"Missing required field: lines[].description",
		"Missing required field: lines[].qty",
		"Missing required field: lines[].unit_price",
		"Missing required field: lines[].line_total",
		"Rule validation failed: CURRENCY_ALLOWED",
	}, report.Gaps)

	currency := findingFor(t, report.RuleFindings, analyzer.RuleCurrencyAllowed)
	assert.Equal(t, analyzer.CurrencyDetail{Value: "EUR"}, currency.Detail)
}

func TestAnalyzeData_Deterministic(t *testing.T) {
	a := newAnalyzer(t)
	ds := analyzer.Dataset{Headers: scalarPaths, Rows: []analyzer.RawRow{completeRow(1)}}

	first, err := json.Marshal(a.AnalyzeData(ds, allYes()))
	require.NoError(t, err)
	second, err := json.Marshal(a.AnalyzeData(ds, allYes()))
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
}

func TestAnalyzeData_ConcurrentUse(t *testing.T) {
	a := newAnalyzer(t)
	ds := analyzer.Dataset{Headers: append(append([]string{}, scalarPaths...), "lines"), Rows: []analyzer.RawRow{completeRow(1)}}

	var wg sync.WaitGroup
	results := make([]int, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = a.AnalyzeData(ds, allYes()).Scores.Overall
		}(i)
	}
	wg.Wait()

	for _, overall := range results {
		assert.Equal(t, 95, overall)
	}
}

func TestReport_JSONShape(t *testing.T) {
	report := newAnalyzer(t).AnalyzeData(analyzer.Dataset{}, nil)
	report.ReportID = "r_0123456789abcdef"

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range []string{"reportId", "scores", "coverage", "ruleFindings", "gaps", "meta"} {
		assert.Contains(t, decoded, key)
	}
	assert.Equal(t, []any{}, decoded["coverage"].(map[string]any)["matched"])
}
