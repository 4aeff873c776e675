package decoder

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"

	"readiness/internal/analyzer"
)

func decodeCSV(data []byte) ([]string, []analyzer.RawRow, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []string{}, []analyzer.RawRow{}, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		records = append(records, rec)
	}

	headers, rows := fromRecords(header, records)
	return headers, rows, nil
}
