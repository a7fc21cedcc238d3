package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/YusovID/journal-review-service/internal/apperrors"
	"github.com/YusovID/journal-review-service/internal/storage"
	"github.com/google/uuid"
)

const MaxUploadSize = 10 << 20

var allowedUploads = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

type UploadService interface {
	Upload(ctx context.Context, filename string, size int64, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

type UploadServiceImpl struct {
	store storage.BlobStore
	log   *slog.Logger
}

func NewUploadService(store storage.BlobStore, log *slog.Logger) *UploadServiceImpl {
	return &UploadServiceImpl{
		store: store,
		log:   log,
	}
}

// Upload stores a manuscript under a random name that keeps the original extension.
func (s *UploadServiceImpl) Upload(ctx context.Context, filename string, size int64, r io.Reader) (string, error) {
	const op = "internal.service.upload.Upload"

	ext := strings.ToLower(filepath.Ext(filename))

	contentType, ok := allowedUploads[ext]
	if !ok {
		return "", apperrors.ErrUnsupportedFile
	}

	if size > MaxUploadSize {
		return "", apperrors.ErrFileTooLarge
	}

	// The declared size can lie; never read more than the limit.
	limited := &io.LimitedReader{R: r, N: MaxUploadSize + 1}
	counter := &countingReader{r: limited}

	name := uuid.NewString() + ext

	url, err := s.store.Put(ctx, name, contentType, counter)
	if err != nil {
		return "", fmt.Errorf("%s: failed to store file: %w", op, err)
	}

	if counter.n > MaxUploadSize {
		if err := s.store.Delete(ctx, url); err != nil {
			s.log.Warn("failed to remove oversized upload", slog.String("op", op), slog.String("url", url))
		}

		return "", apperrors.ErrFileTooLarge
	}

	s.log.Info("file uploaded", slog.String("op", op), slog.String("url", url), slog.Int64("size", counter.n))

	return url, nil
}

func (s *UploadServiceImpl) Delete(ctx context.Context, url string) error {
	const op = "internal.service.upload.Delete"

	if err := s.store.Delete(ctx, url); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("file deleted", slog.String("op", op), slog.String("url", url))

	return nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)

	return n, err
}
