package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readiness/internal/analyzer"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestAnalyze_PrintsReport(t *testing.T) {
	path := writeFile(t, "invoices.csv",
		"invoice.id,invoice.issue_date,invoice.currency,invoice.total_excl_vat,invoice.vat_amount,invoice.total_incl_vat,seller.trn,buyer.trn\n"+
			"INV-1,2025-01-31,AED,100,5,105,100000000000003,100000000000004\n")

	out, err := execute(t, "analyze", path, "--webhooks", "--retries")
	require.NoError(t, err)

	var report analyzer.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1, report.Meta.RowsParsed)
	assert.Equal(t, 67, report.Scores.Posture)
	require.Len(t, report.RuleFindings, analyzer.RuleCount)
	for _, f := range report.RuleFindings {
		assert.True(t, f.OK, "rule %s", f.Rule)
	}
}

func TestAnalyze_MaxRows(t *testing.T) {
	path := writeFile(t, "invoices.json", `[{"invoice_id":"a"},{"invoice_id":"b"},{"invoice_id":"c"}]`)

	out, err := execute(t, "analyze", path, "--max-rows", "2")
	require.NoError(t, err)
	assert.Contains(t, out, `"rowsParsed": 2`)
}

func TestAnalyze_Errors(t *testing.T) {
	_, err := execute(t, "analyze")
	assert.Error(t, err)

	_, err = execute(t, "analyze", writeFile(t, "notes.txt", "hello"))
	assert.ErrorContains(t, err, "unsupported file type")

	_, err = execute(t, "analyze", filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorContains(t, err, "reading")

	_, err = execute(t, "analyze", writeFile(t, "a.csv", "x\n1\n"), "--max-rows", "0")
	assert.Error(t, err)
}

func TestSchema_PrintsFields(t *testing.T) {
	out, err := execute(t, "schema")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "GETS v0.1", lines[0])
	assert.Equal(t, "invoice.id", lines[1])
	assert.Contains(t, out, "invoice.currency\tAED,SAR,MYR,USD")
	assert.Contains(t, out, "lines[].line_total")
}
