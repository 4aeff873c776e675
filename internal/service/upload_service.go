package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"path/filepath"
	"strings"
	"time"

	"readiness/internal/config"
	"readiness/internal/domain"
	"readiness/internal/metrics"
	"readiness/internal/port"
)

// UploadInput is the DTO for dataset upload requests.
type UploadInput struct {
	FileName string
	Size     int64
	Body     io.Reader
}

// UploadResult describes an accepted upload.
type UploadResult struct {
	UploadID   string   `json:"uploadId"`
	RowsParsed int      `json:"rowsParsed"`
	TotalRows  int      `json:"totalRows"`
	Truncated  bool     `json:"truncated"`
	Headers    []string `json:"headers"`
}

// UploadService defines the dataset upload contract.
type UploadService interface {
	Upload(ctx context.Context, input UploadInput) (*UploadResult, error)
	GetByID(ctx context.Context, id string) (*domain.Upload, error)
	GetDownloadURL(ctx context.Context, id string) (string, error)
}

type uploadService struct {
	uploadRepo port.UploadRepository
	decoder    port.FileDecoder
	archive    port.ObjectStorage
	uploadCfg  *config.UploadConfig
	s3Cfg      *config.S3Config
}

// NewUploadService creates a new UploadService implementation.
// The original file is archived only when s3Cfg.Enabled is set.
func NewUploadService(
	uploadRepo port.UploadRepository,
	decoder port.FileDecoder,
	archive port.ObjectStorage,
	uploadCfg *config.UploadConfig,
	s3Cfg *config.S3Config,
) UploadService {
	return &uploadService{
		uploadRepo: uploadRepo,
		decoder:    decoder,
		archive:    archive,
		uploadCfg:  uploadCfg,
		s3Cfg:      s3Cfg,
	}
}

func (s *uploadService) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.FileName), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size, both declared and actual
	maxBytes := s.uploadCfg.MaxFileSizeMB * 1024 * 1024
	if input.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}
	data, err := io.ReadAll(io.LimitReader(input.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	decoded, err := s.decoder.Decode(fileType, data)
	if err != nil {
		log.Printf("uploadService.Upload: decoding %s failed: %v", input.FileName, err)
		return nil, err
	}

	upload := &domain.Upload{
		ID:        domain.NewUploadID(),
		FileName:  filepath.Base(input.FileName),
		FileType:  fileType,
		Headers:   decoded.Headers,
		Rows:      decoded.Rows,
		CreatedAt: time.Now().UTC(),
	}

	log.Printf("uploadService.Upload: accepted %s (%s, %d bytes, %d of %d rows) as %s",
		upload.FileName, fileType, len(data), len(decoded.Rows), decoded.TotalRows, upload.ID)

	if s.s3Cfg.Enabled {
		key := archiveKey(upload.ID, upload.FileName)
		_, err := s.archive.Put(ctx, port.ArchiveObject{
			Key:         key,
			Body:        bytes.NewReader(data),
			ContentType: domain.AllowedFileTypes[fileType],
			Size:        int64(len(data)),
		})
		if err != nil {
			log.Printf("uploadService.Upload: archiving %s failed: %v", upload.ID, err)
			return nil, fmt.Errorf("%w: %v", domain.ErrArchiveFailed, err)
		}
		upload.ArchiveKey = key
	}

	if err := s.uploadRepo.Create(ctx, upload); err != nil {
		log.Printf("uploadService.Upload: failed to persist upload %s: %v", upload.ID, err)
		if upload.ArchiveKey != "" {
			if delErr := s.archive.Delete(ctx, upload.ArchiveKey); delErr != nil {
				log.Printf("uploadService.Upload: failed to remove archived file %s: %v", upload.ArchiveKey, delErr)
			}
		}
		return nil, err
	}

	metrics.RecordUpload(string(fileType), decoded.Truncated())

	return &UploadResult{
		UploadID:   upload.ID,
		RowsParsed: len(decoded.Rows),
		TotalRows:  decoded.TotalRows,
		Truncated:  decoded.Truncated(),
		Headers:    decoded.Headers,
	}, nil
}

func (s *uploadService) GetByID(ctx context.Context, id string) (*domain.Upload, error) {
	return s.uploadRepo.GetByID(ctx, id)
}

// GetDownloadURL returns a presigned link to the archived original file.
func (s *uploadService) GetDownloadURL(ctx context.Context, id string) (string, error) {
	upload, err := s.uploadRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if upload.ArchiveKey == "" {
		return "", fmt.Errorf("archived file for %s: %w", id, domain.ErrNotFound)
	}
	url, err := s.archive.PresignGet(ctx, upload.ArchiveKey, time.Duration(s.s3Cfg.PresignExpiry)*time.Second)
	if err != nil {
		return "", fmt.Errorf("uploadService.GetDownloadURL: %w: %w", domain.ErrStorageFailure, err)
	}
	return url, nil
}

func archiveKey(uploadID, fileName string) string {
	return path.Join("uploads", uploadID, fileName)
}
