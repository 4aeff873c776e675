// Package noop provides an ObjectStorage that keeps nothing, used when archiving is disabled.
package noop

import (
	"context"
	"io"
	"time"

	"readiness/internal/port"
)

type archive struct{}

// NewArchive returns an ObjectStorage that discards every object.
func NewArchive() port.ObjectStorage {
	return archive{}
}

func (archive) Put(_ context.Context, obj port.ArchiveObject) (string, error) {
	if obj.Body != nil {
		if _, err := io.Copy(io.Discard, obj.Body); err != nil {
			return "", err
		}
	}
	return "", nil
}

func (archive) Delete(context.Context, string) error { return nil }

func (archive) PresignGet(context.Context, string, time.Duration) (string, error) { return "", nil }
