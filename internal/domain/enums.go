package domain

// FileType represents the accepted upload formats.
type FileType string

const (
	FileTypeCSV  FileType = "csv"
	FileTypeJSON FileType = "json"
	FileTypeXLSX FileType = "xlsx"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypeCSV:  "text/csv",
	FileTypeJSON: "application/json",
	FileTypeXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"csv":  FileTypeCSV,
	"json": FileTypeJSON,
	"xlsx": FileTypeXLSX,
}

// StorageBackend names the database that holds uploads and reports.
// It is also reported in the meta block of every report.
type StorageBackend string

const (
	BackendSQLite   StorageBackend = "sqlite"
	BackendPostgres StorageBackend = "postgres"
)

// Valid reports whether b is a supported backend.
func (b StorageBackend) Valid() bool {
	return b == BackendSQLite || b == BackendPostgres
}
