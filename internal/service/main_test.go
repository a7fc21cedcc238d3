package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/YusovID/journal-review-service/internal/mailer"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newMockDBAndTx(t *testing.T) (*sqlx.DB, *sqlx.Tx, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, smock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")

	smock.ExpectBegin()

	tx, err := sqlxDB.Beginx()
	require.NoError(t, err)

	return sqlxDB, tx, smock
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newNotifierMock(t *testing.T) *NotifierMock {
	t.Helper()

	templates, err := mailer.NewTemplates("http://journal.test")
	require.NoError(t, err)

	return &NotifierMock{templates: templates}
}
