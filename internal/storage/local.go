package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/YusovID/journal-review-service/internal/apperrors"
)

const DefaultLocalPrefix = "/files"

// Local writes objects into a directory served by the API under its URL prefix.
type Local struct {
	dir    string
	prefix string
	log    *slog.Logger
}

func NewLocal(dir string, prefix string, log *slog.Logger) (*Local, error) {
	const op = "internal.storage.NewLocal"

	if prefix == "" {
		prefix = DefaultLocalPrefix
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: failed to create upload dir: %w", op, err)
	}

	return &Local{
		dir:    dir,
		prefix: strings.TrimRight(prefix, "/"),
		log:    log,
	}, nil
}

func (l *Local) Put(ctx context.Context, name string, _ string, r io.Reader) (string, error) {
	const op = "internal.storage.Local.Put"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if !validName(name) {
		return "", fmt.Errorf("%s: %w: bad object name %q", op, apperrors.ErrInvalidRequest, name)
	}

	path := filepath.Join(l.dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("%s: failed to create file: %w", op, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)

		return "", fmt.Errorf("%s: failed to write file: %w", op, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%s: failed to close file: %w", op, err)
	}

	l.log.Debug("stored upload", slog.String("op", op), slog.String("path", path))

	return l.prefix + "/" + name, nil
}

func (l *Local) Delete(ctx context.Context, url string) error {
	const op = "internal.storage.Local.Delete"

	name, ok := strings.CutPrefix(url, l.prefix+"/")
	if !ok || !validName(name) {
		return fmt.Errorf("%s: %w: %s", op, apperrors.ErrForeignStorageObject, url)
	}

	if err := os.Remove(filepath.Join(l.dir, name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w: %s", op, apperrors.ErrNotFound, url)
		}

		return fmt.Errorf("%s: failed to remove file: %w", op, err)
	}

	return nil
}

// Handler serves stored objects; mount it under the store's prefix.
func (l *Local) Handler() http.Handler {
	return http.StripPrefix(l.prefix, http.FileServer(http.Dir(l.dir)))
}

func (l *Local) Prefix() string {
	return l.prefix
}

func validName(name string) bool {
	return name != "" && name == filepath.Base(name) && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}
