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

type reportRepo struct {
	db *sqlx.DB
}

// NewReportRepo creates a SQL-backed ReportRepository.
func NewReportRepo(db *sqlx.DB) port.ReportRepository {
	return &reportRepo{db: db}
}

type reportRow struct {
	ID         string    `db:"id"`
	UploadID   string    `db:"upload_id"`
	ReportJSON string    `db:"report_json"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r *reportRepo) Create(ctx context.Context, record *domain.ReportRecord) error {
	if record.Report == nil {
		return fmt.Errorf("reportRepo.Create: %w: report is nil", domain.ErrInvalidInput)
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	body, err := json.Marshal(record.Report)
	if err != nil {
		return fmt.Errorf("reportRepo.Create: encoding report: %w", err)
	}

	query := r.db.Rebind(`INSERT INTO reports (id, upload_id, overall_score, report_json, created_at)
		VALUES (?, ?, ?, ?, ?)`)
	_, err = r.db.ExecContext(ctx, query,
		record.ID, record.UploadID, record.Report.Scores.Overall, string(body), record.CreatedAt)
	if err != nil {
		return storageErr("reportRepo.Create", err)
	}
	return nil
}

func (r *reportRepo) GetByID(ctx context.Context, id string) (*domain.ReportRecord, error) {
	var row reportRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(
		"SELECT id, upload_id, report_json, created_at FROM reports WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, storageErr("reportRepo.GetByID", err)
	}

	var report analyzer.Report
	if err := json.Unmarshal([]byte(row.ReportJSON), &report); err != nil {
		return nil, storageErr("reportRepo.GetByID decoding report", err)
	}
	return &domain.ReportRecord{
		ID:        row.ID,
		UploadID:  row.UploadID,
		Report:    &report,
		CreatedAt: row.CreatedAt.UTC(),
	}, nil
}

// ListRecent returns summaries newest first. Reports created in the same instant are ordered by id.
func (r *reportRepo) ListRecent(ctx context.Context, limit int) ([]domain.ReportSummary, error) {
	summaries := []domain.ReportSummary{}
	err := r.db.SelectContext(ctx, &summaries, r.db.Rebind(
		`SELECT id, upload_id, overall_score, created_at FROM reports
		 ORDER BY created_at DESC, id DESC LIMIT ?`), limit)
	if err != nil {
		return nil, storageErr("reportRepo.ListRecent", err)
	}
	for i := range summaries {
		summaries[i].CreatedAt = summaries[i].CreatedAt.UTC()
	}
	return summaries, nil
}
