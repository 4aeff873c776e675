package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"readiness/internal/analyzer"
	"readiness/internal/domain"
	"readiness/internal/port"
)

type uploadRepo struct {
	db *sqlx.DB
}

// NewUploadRepo creates a SQL-backed UploadRepository.
func NewUploadRepo(db *sqlx.DB) port.UploadRepository {
	return &uploadRepo{db: db}
}

type uploadRow struct {
	ID          string    `db:"id"`
	FileName    string    `db:"file_name"`
	FileType    string    `db:"file_type"`
	HeadersJSON string    `db:"headers_json"`
	RawDataJSON string    `db:"raw_data_json"`
	ArchiveKey  string    `db:"archive_key"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r *uploadRepo) Create(ctx context.Context, upload *domain.Upload) error {
	if upload.CreatedAt.IsZero() {
		upload.CreatedAt = time.Now().UTC()
	}

	headers := upload.Headers
	if headers == nil {
		headers = []string{}
	}
	rows := upload.Rows
	if rows == nil {
		rows = []analyzer.RawRow{}
	}
	headersJSON, err := json.Marshal(headers)
	if err != nil {
		return fmt.Errorf("uploadRepo.Create: encoding headers: %w", err)
	}
	rowsJSON, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("uploadRepo.Create: encoding rows: %w", err)
	}

	query := r.db.Rebind(`INSERT INTO uploads
		(id, file_name, file_type, headers_json, raw_data_json, archive_key, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)

	_, err = r.db.ExecContext(ctx, query,
		upload.ID, upload.FileName, string(upload.FileType), string(headersJSON), string(rowsJSON),
		upload.ArchiveKey, upload.CreatedAt)
	if err != nil {
		return storageErr("uploadRepo.Create", err)
	}
	return nil
}

func (r *uploadRepo) GetByID(ctx context.Context, id string) (*domain.Upload, error) {
	var row uploadRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(
		`SELECT id, file_name, file_type, headers_json, raw_data_json, archive_key, created_at
		 FROM uploads WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUploadNotFound
		}
		return nil, storageErr("uploadRepo.GetByID", err)
	}

	upload := &domain.Upload{
		ID:         row.ID,
		FileName:   row.FileName,
		FileType:   domain.FileType(row.FileType),
		ArchiveKey: row.ArchiveKey,
		CreatedAt:  row.CreatedAt.UTC(),
	}
	if err := json.Unmarshal([]byte(row.HeadersJSON), &upload.Headers); err != nil {
		return nil, storageErr("uploadRepo.GetByID decoding headers", err)
	}
	if err := json.Unmarshal([]byte(row.RawDataJSON), &upload.Rows); err != nil {
		return nil, storageErr("uploadRepo.GetByID decoding rows", err)
	}
	return upload, nil
}
