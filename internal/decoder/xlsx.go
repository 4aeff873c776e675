package decoder

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"readiness/internal/analyzer"
)

// decodeXLSX reads the first worksheet. The first row holds the headers. Cells are read as displayed,
// so a date cell formatted yyyy-mm-dd arrives as that text, then typed like a CSV cell.
func decodeXLSX(data []byte) ([]string, []analyzer.RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, nil, errors.New("workbook has no sheets")
	}
	records, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}
	if len(records) == 0 {
		return []string{}, []analyzer.RawRow{}, nil
	}

	headers, rows := fromRecords(records[0], records[1:])
	return headers, rows, nil
}
