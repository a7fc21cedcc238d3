package storage

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/YusovID/journal-review-service/internal/apperrors"
	"github.com/YusovID/journal-review-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocal(t *testing.T) (*Local, string) {
	t.Helper()

	dir := t.TempDir()
	l, err := NewLocal(dir, "", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	return l, dir
}

func TestLocal_PutServeDelete(t *testing.T) {
	ctx := context.Background()
	l, dir := newTestLocal(t)

	url, err := l.Put(ctx, "paper-1.pdf", "application/pdf", strings.NewReader("%PDF-1.7"))
	require.NoError(t, err)
	assert.Equal(t, "/files/paper-1.pdf", url)

	data, err := os.ReadFile(filepath.Join(dir, "paper-1.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(data))

	rec := httptest.NewRecorder()
	l.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "%PDF-1.7", rec.Body.String())

	_, err = l.Put(ctx, "paper-1.pdf", "application/pdf", bytes.NewReader(nil))
	assert.Error(t, err, "objects are never overwritten")

	require.NoError(t, l.Delete(ctx, url))
	_, err = os.Stat(filepath.Join(dir, "paper-1.pdf"))
	assert.True(t, os.IsNotExist(err))

	err = l.Delete(ctx, url)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLocal_RejectsForeignAndTraversal(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLocal(t)

	testCases := []struct {
		name string
		url  string
	}{
		{name: "other host", url: "https://evil.example/files/x.pdf"},
		{name: "traversal", url: "/files/../secret"},
		{name: "nested", url: "/files/a/b.pdf"},
		{name: "empty name", url: "/files/"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := l.Delete(ctx, tc.url)
			assert.ErrorIs(t, err, apperrors.ErrForeignStorageObject)
		})
	}

	_, err := l.Put(ctx, "../escape.pdf", "application/pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(context.Background(), config.Storage{Driver: "s3"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
