package domain

import (
	"errors"
	"fmt"
)

// Base error kinds. Every error surfaced by a service wraps one of these.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("resource not found")
	ErrStorageFailure = errors.New("storage failure")
)

var (
	ErrUnsupportedFileType  = fmt.Errorf("%w: unsupported file type", ErrInvalidInput)
	ErrFileTooLarge         = fmt.Errorf("%w: file exceeds maximum allowed size", ErrInvalidInput)
	ErrMalformedFile        = fmt.Errorf("%w: file could not be decoded", ErrInvalidInput)
	ErrMissingUploadID      = fmt.Errorf("%w: uploadId is required", ErrInvalidInput)
	ErrMissingQuestionnaire = fmt.Errorf("%w: questionnaire is required", ErrInvalidInput)
	ErrUploadNotFound       = fmt.Errorf("upload %w", ErrNotFound)
	ErrReportNotFound       = fmt.Errorf("report %w", ErrNotFound)
	ErrArchiveFailed        = fmt.Errorf("%w: archiving upload failed", ErrStorageFailure)
)
