package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/YusovID/journal-review-service/internal/config"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

type Postgres struct {
	db  *sqlx.DB
	log *slog.Logger
}

func NewDB(ctx context.Context, cfg config.Postgres, log *slog.Logger) (*Postgres, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("can't connect to database: %v", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	log.Info("connected to postgres",
		slog.String("host", cfg.Host),
		slog.String("database", cfg.Database),
	)

	return &Postgres{
		db:  db,
		log: log,
	}, nil
}

func (p *Postgres) DB() *sqlx.DB {
	return p.db
}

// pqCode returns the SQLSTATE of a lib/pq error, or "" for other errors.
func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}
