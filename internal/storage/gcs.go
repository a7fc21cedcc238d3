package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/YusovID/journal-review-service/internal/apperrors"
	"google.golang.org/api/option"
)

const gcsPublicHost = "https://storage.googleapis.com"

// GCS keeps objects in a Google Cloud Storage bucket. Credentials come from the
// environment (GOOGLE_APPLICATION_CREDENTIALS or workload identity).
type GCS struct {
	client  *storage.Client
	bucket  string
	baseURL string
	log     *slog.Logger
}

func NewGCS(ctx context.Context, bucket string, baseURL string, log *slog.Logger, opts ...option.ClientOption) (*GCS, error) {
	const op = "internal.storage.NewGCS"

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create gcs client: %w", op, err)
	}

	if baseURL == "" {
		baseURL = gcsPublicHost + "/" + bucket
	}

	return &GCS{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}, nil
}

func (g *GCS) Put(ctx context.Context, name string, contentType string, r io.Reader) (string, error) {
	const op = "internal.storage.GCS.Put"

	w := g.client.Bucket(g.bucket).Object(name).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("%s: failed to upload object: %w", op, err)
	}

	if err := w.Close(); err != nil {
		return "", fmt.Errorf("%s: failed to finalize object: %w", op, err)
	}

	g.log.Debug("stored upload", slog.String("op", op), slog.String("bucket", g.bucket), slog.String("object", name))

	return g.baseURL + "/" + name, nil
}

func (g *GCS) Delete(ctx context.Context, url string) error {
	const op = "internal.storage.GCS.Delete"

	name, ok := strings.CutPrefix(url, g.baseURL+"/")
	if !ok || name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("%s: %w: %s", op, apperrors.ErrForeignStorageObject, url)
	}

	if err := g.client.Bucket(g.bucket).Object(name).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return fmt.Errorf("%s: %w: %s", op, apperrors.ErrNotFound, url)
		}

		return fmt.Errorf("%s: failed to delete object: %w", op, err)
	}

	return nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}
