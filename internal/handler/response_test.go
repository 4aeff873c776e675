package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"readiness/internal/domain"
	"readiness/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{fmt.Errorf("%w: csv: bad quote", domain.ErrMalformedFile), http.StatusBadRequest, "MALFORMED_FILE"},
		{domain.ErrMissingUploadID, http.StatusBadRequest, "INVALID_REQUEST"},
		{domain.ErrMissingQuestionnaire, http.StatusBadRequest, "INVALID_REQUEST"},
		{domain.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
		{domain.ErrUploadNotFound, http.StatusNotFound, "UPLOAD_NOT_FOUND"},
		{domain.ErrReportNotFound, http.StatusNotFound, "REPORT_NOT_FOUND"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrArchiveFailed, http.StatusInternalServerError, "ARCHIVE_FAILED"},
		{fmt.Errorf("repo.Create: %w", domain.ErrStorageFailure), http.StatusInternalServerError, "STORAGE_FAILURE"},
		{errors.New("other"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.wantCode+"/"+tt.err.Error(), func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
			assert.NotEmpty(t, msg)
		})
	}
}
