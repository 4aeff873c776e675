package port

import (
	"context"

	"readiness/internal/domain"
)

// UploadRepository persists decoded uploads.
type UploadRepository interface {
	Create(ctx context.Context, upload *domain.Upload) error
	GetByID(ctx context.Context, id string) (*domain.Upload, error)
}
