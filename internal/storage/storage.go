// Package storage keeps uploaded manuscripts in a blob store and hands out public URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/YusovID/journal-review-service/internal/config"
)

type BlobStore interface {
	// Put stores the object under name and returns its public URL.
	Put(ctx context.Context, name string, contentType string, r io.Reader) (string, error)

	// Delete removes the object behind url. It returns apperrors.ErrForeignStorageObject
	// for URLs this store did not issue and apperrors.ErrNotFound for missing objects.
	Delete(ctx context.Context, url string) error
}

// New builds the store selected by cfg.Driver.
func New(ctx context.Context, cfg config.Storage, log *slog.Logger) (BlobStore, error) {
	switch cfg.Driver {
	case config.StorageLocal:
		local, err := NewLocal(cfg.LocalDir, cfg.BaseURL, log)
		if err != nil {
			return nil, err
		}

		return local, nil
	case config.StorageGCS:
		gcs, err := NewGCS(ctx, cfg.GCSBucket, cfg.BaseURL, log)
		if err != nil {
			return nil, err
		}

		return gcs, nil
	}

	return nil, fmt.Errorf("internal.storage.New: unknown driver %q", cfg.Driver)
}
