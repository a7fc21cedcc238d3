package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/YusovID/journal-review-service/pkg/logger/sl"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var workflowTransitions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "journal_workflow_transitions_total",
		Help: "Committed article workflow transitions",
	},
	[]string{"transition"},
)

const (
	transitionSubmit   = "submit"
	transitionAssign   = "assign"
	transitionReview   = "review"
	transitionFeedback = "feedback"
	transitionPublish  = "publish"
	transitionRepair   = "repair"
)

type Transactor interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// BaseService holds what every service needs: a way to open transactions and a
// reader for queries that run outside of one.
type BaseService struct {
	db     Transactor
	reader sqlx.ExtContext
	log    *slog.Logger
}

func NewBaseService(db Transactor, reader sqlx.ExtContext, log *slog.Logger) BaseService {
	return BaseService{
		db:     db,
		reader: reader,
		log:    log,
	}
}

func (s *BaseService) transaction(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.log.Error("failed to rollback transaction", slog.String("op", op), sl.Err(err))
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return nil
}
