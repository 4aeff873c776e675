package port

import (
	"readiness/internal/analyzer"
	"readiness/internal/domain"
)

// DecodedFile is the tabular content of an uploaded file.
// TotalRows counts the non-blank rows before the row cap was applied.
type DecodedFile struct {
	Headers   []string
	Rows      []analyzer.RawRow
	TotalRows int
}

// Truncated reports whether rows were dropped by the row cap.
func (d *DecodedFile) Truncated() bool {
	return d.TotalRows > len(d.Rows)
}

// FileDecoder turns raw file bytes into rows keyed by the file's own headers.
type FileDecoder interface {
	Decode(fileType domain.FileType, data []byte) (*DecodedFile, error)
}
