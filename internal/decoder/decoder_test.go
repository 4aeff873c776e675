package decoder_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"readiness/internal/analyzer"
	"readiness/internal/decoder"
	"readiness/internal/domain"
)

func TestDecode_CSV(t *testing.T) {
	data := "\xEF\xBB\xBFinvoice.id,Currency,Total,paid,note\n" +
		"INV-1,AED,105.50,true,\n" +
		",,,,\n" +
		"INV-2,SAR,-3e2,FALSE,\"quoted, text\"\n" +
		"INV-3,USD\n"

	out, err := decoder.New(0).Decode(domain.FileTypeCSV, []byte(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"invoice.id", "Currency", "Total", "paid", "note"}, out.Headers)
	require.Len(t, out.Rows, 3)
	assert.Equal(t, 3, out.TotalRows)
	assert.False(t, out.Truncated())

	assert.Equal(t, analyzer.RawRow{
		"invoice.id": "INV-1", "Currency": "AED", "Total": 105.5, "paid": true, "note": nil,
	}, out.Rows[0])
	assert.Equal(t, -300.0, out.Rows[1]["Total"])
	assert.Equal(t, false, out.Rows[1]["paid"])
	assert.Equal(t, "quoted, text", out.Rows[1]["note"])

	_, hasTotal := out.Rows[2]["Total"]
	assert.False(t, hasTotal, "short record leaves trailing columns unset")
}

func TestDecode_CSVDuplicateHeaders(t *testing.T) {
	data := "sku,qty,sku,sku,qty_1\nA-1,2,B-1,C-1,9\n"

	out, err := decoder.New(0).Decode(domain.FileTypeCSV, []byte(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"sku", "qty", "sku_1", "sku_2", "qty_1"}, out.Headers)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, analyzer.RawRow{
		"sku": "A-1", "qty": 2.0, "sku_1": "B-1", "sku_2": "C-1", "qty_1": 9.0,
	}, out.Rows[0])
}

func TestDecode_CSVHeaderOnly(t *testing.T) {
	out, err := decoder.New(0).Decode(domain.FileTypeCSV, []byte("invoice.id,invoice.currency\n,\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"invoice.id", "invoice.currency"}, out.Headers)
	assert.Empty(t, out.Rows)
	assert.Equal(t, 0, out.TotalRows)
}

func TestDecode_CSVTyping(t *testing.T) {
	tests := []struct {
		cell string
		want any
	}{
		{"42", 42.0},
		{" 7.25 ", 7.25},
		{".5", 0.5},
		{"1e3", 1000.0},
		{"2025-01-05", "2025-01-05"},
		{"0012", 12.0},
		{"True", "True"},
		{"12abc", "12abc"},
		{"99999999999999999999", "99999999999999999999"},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			out, err := decoder.New(0).Decode(domain.FileTypeCSV, []byte("v\n"+tt.cell+"\n"))
			require.NoError(t, err)
			require.Len(t, out.Rows, 1)
			assert.Equal(t, tt.want, out.Rows[0]["v"])
		})
	}
}

func TestDecode_CapsRows(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("id\n")
	for i := 0; i < 250; i++ {
		fmt.Fprintf(&buf, "row-%d\n", i)
	}

	out, err := decoder.New(200).Decode(domain.FileTypeCSV, buf.Bytes())
	require.NoError(t, err)

	assert.Len(t, out.Rows, 200)
	assert.Equal(t, 250, out.TotalRows)
	assert.True(t, out.Truncated())
	assert.Equal(t, "row-199", out.Rows[199]["id"])
}

func TestDecode_JSON(t *testing.T) {
	data := `[
		{"seller.trn": "100", "invoice.id": 1, "lines": [{"qty": 2, "unit_price": 3, "line_total": 6}]},
		{"invoice.id": 2, "extra": null}
	]`

	out, err := decoder.New(0).Decode(domain.FileTypeJSON, []byte(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"seller.trn", "invoice.id", "lines"}, out.Headers)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, 1.0, out.Rows[0]["invoice.id"])
	assert.Equal(t, []any{map[string]any{"qty": 2.0, "unit_price": 3.0, "line_total": 6.0}}, out.Rows[0]["lines"])
	assert.Contains(t, out.Rows[1], "extra")
}

func TestDecode_JSONEmptyArray(t *testing.T) {
	out, err := decoder.New(0).Decode(domain.FileTypeJSON, []byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, out.Headers)
	assert.Empty(t, out.Rows)
}

func TestDecode_MalformedJSON(t *testing.T) {
	for name, data := range map[string]string{
		"empty":          ``,
		"object":         `{"invoice.id": 1}`,
		"scalar_element": `[{"a": 1}, 2]`,
		"null_element":   `[null]`,
		"truncated":      `[{"a": 1}`,
		"trailing":       `[{"a": 1}] [{"b": 2}]`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := decoder.New(0).Decode(domain.FileTypeJSON, []byte(data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrMalformedFile))
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}
}

func TestDecode_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"invoice.id", "invoice.total_incl_vat", "invoice.issue_date"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"INV-1", 105.0, "2025-01-05"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]any{"INV-2", 50.5, "2025-02-01"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	out, err := decoder.New(0).Decode(domain.FileTypeXLSX, buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, []string{"invoice.id", "invoice.total_incl_vat", "invoice.issue_date"}, out.Headers)
	require.Len(t, out.Rows, 2, "blank row 3 is skipped")
	assert.Equal(t, analyzer.RawRow{
		"invoice.id": "INV-1", "invoice.total_incl_vat": 105.0, "invoice.issue_date": "2025-01-05",
	}, out.Rows[0])
	assert.Equal(t, 50.5, out.Rows[1]["invoice.total_incl_vat"])
}

func TestDecode_MalformedXLSX(t *testing.T) {
	_, err := decoder.New(0).Decode(domain.FileTypeXLSX, []byte("not a zip"))
	assert.ErrorIs(t, err, domain.ErrMalformedFile)
}

func TestDecode_UnsupportedType(t *testing.T) {
	_, err := decoder.New(0).Decode(domain.FileType("pdf"), []byte("%PDF"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}
