// Package decoder converts uploaded CSV, JSON and XLSX files into rows keyed by the file's own column headers.
package decoder

import (
	"bytes"
	"fmt"

	"readiness/internal/analyzer"
	"readiness/internal/domain"
	"readiness/internal/port"
)

// DefaultMaxRows is the number of rows kept from an upload when no cap is configured.
const DefaultMaxRows = 200

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type fileDecoder struct {
	maxRows int
}

// New creates a FileDecoder that keeps at most maxRows rows per file.
func New(maxRows int) port.FileDecoder {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	return &fileDecoder{maxRows: maxRows}
}

func (d *fileDecoder) Decode(fileType domain.FileType, data []byte) (*port.DecodedFile, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var (
		headers []string
		rows    []analyzer.RawRow
		err     error
	)
	switch fileType {
	case domain.FileTypeCSV:
		headers, rows, err = decodeCSV(data)
	case domain.FileTypeJSON:
		headers, rows, err = decodeJSON(data)
	case domain.FileTypeXLSX:
		headers, rows, err = decodeXLSX(data)
	default:
		return nil, domain.ErrUnsupportedFileType
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedFile, fileType, err)
	}

	out := &port.DecodedFile{Headers: headers, Rows: rows, TotalRows: len(rows)}
	if len(out.Rows) > d.maxRows {
		out.Rows = out.Rows[:d.maxRows]
	}
	return out, nil
}

// fromRecords builds rows from a header record and string records, typing each cell.
// Short records leave the trailing columns unset. Extra cells beyond the header are dropped.
// Records whose cells are all blank are skipped.
func fromRecords(header []string, records [][]string) ([]string, []analyzer.RawRow) {
	headers := renameDuplicates(header)
	rows := make([]analyzer.RawRow, 0, len(records))
	for _, rec := range records {
		row := make(analyzer.RawRow, len(headers))
		blank := true
		for i, cell := range rec {
			if i >= len(headers) {
				break
			}
			v := typeCell(cell)
			if v != nil {
				blank = false
			}
			row[headers[i]] = v
		}
		if !blank {
			rows = append(rows, row)
		}
	}
	return headers, rows
}

// renameDuplicates gives every column its own key: a repeated header h becomes h_1, h_2, ...,
// skipping suffixes that another column already uses.
func renameDuplicates(header []string) []string {
	taken := make(map[string]bool, len(header))
	for _, h := range header {
		taken[h] = true
	}
	seen := make(map[string]int, len(header))
	out := make([]string, len(header))
	for i, h := range header {
		n, dup := seen[h]
		if !dup {
			seen[h] = 1
			out[i] = h
			continue
		}
		name := fmt.Sprintf("%s_%d", h, n)
		for taken[name] {
			n++
			name = fmt.Sprintf("%s_%d", h, n)
		}
		seen[h] = n + 1
		taken[name] = true
		out[i] = name
	}
	return out
}
