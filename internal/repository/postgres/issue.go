package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/journal-review-service/internal/apperrors"
	"github.com/YusovID/journal-review-service/internal/domain"
	"github.com/jmoiron/sqlx"
)

var issueColumns = []string{"id", "volume", "number", "year", "published_at", "created_at"}

type IssueRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewIssueRepository(db *sqlx.DB, log *slog.Logger) *IssueRepository {
	return &IssueRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (ir *IssueRepository) CreateIssue(ctx context.Context, issue *domain.Issue) error {
	const op = "internal.repository.postgres.CreateIssue"

	query, args, err := ir.sq.Insert("issues").
		Columns("id", "volume", "number", "year", "published_at").
		Values(issue.ID, issue.Volume, issue.Number, issue.Year, issue.PublishedAt).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if err := ir.db.QueryRowxContext(ctx, query, args...).Scan(&issue.CreatedAt); err != nil {
		if pqCode(err) == pqUniqueViolation {
			return &apperrors.IssueExistsError{Volume: issue.Volume, Number: issue.Number}
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (ir *IssueRepository) GetIssueByID(ctx context.Context, ext sqlx.ExtContext, issueID string) (*domain.Issue, error) {
	const op = "internal.repository.postgres.GetIssueByID"

	query, args, err := ir.sq.Select(issueColumns...).
		From("issues").
		Where(sq.Eq{"id": issueID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var issue domain.Issue
	if err := sqlx.GetContext(ctx, ext, &issue, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: issue with id '%s'", op, apperrors.ErrNotFound, issueID)
		}

		return nil, fmt.Errorf("%s: failed to get issue: %w", op, err)
	}

	return &issue, nil
}

func (ir *IssueRepository) ListIssues(ctx context.Context) ([]domain.Issue, error) {
	const op = "internal.repository.postgres.ListIssues"

	query, args, err := ir.sq.Select(issueColumns...).
		From("issues").
		OrderBy("volume DESC", "number DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	issues := []domain.Issue{}
	if err := ir.db.SelectContext(ctx, &issues, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return issues, nil
}
