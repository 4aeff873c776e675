package port

import (
	"context"
	"io"
	"time"
)

// ArchiveObject is an original uploaded file to be kept verbatim.
type ArchiveObject struct {
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// ObjectStorage is the archive of original uploaded files. Implementations are bound to one bucket.
type ObjectStorage interface {
	Put(ctx context.Context, obj ArchiveObject) (location string, err error)
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
