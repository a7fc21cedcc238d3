package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/journal-review-service/internal/apperrors"
	"github.com/YusovID/journal-review-service/internal/domain"
	"github.com/jmoiron/sqlx"
)

var reviewColumns = []string{
	"id", "article_id", "reviewer_id", "status", "recommendation", "comments", "confidential", "created_at", "submitted_at",
}

type ReviewRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewReviewRepository(db *sqlx.DB, log *slog.Logger) *ReviewRepository {
	return &ReviewRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (rr *ReviewRepository) CreatePendingReview(ctx context.Context, tx *sqlx.Tx, review *domain.Review) error {
	const op = "internal.repository.postgres.CreatePendingReview"

	query, args, err := rr.sq.Insert("reviews").
		Columns("id", "article_id", "reviewer_id", "status").
		Values(review.ID, review.ArticleID, review.ReviewerID, domain.ReviewPending).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&review.CreatedAt); err != nil {
		switch pqCode(err) {
		case pqUniqueViolation:
			return &apperrors.ReviewerAlreadyAssignedError{ArticleID: review.ArticleID, ReviewerID: review.ReviewerID}
		case pqForeignKeyViolation:
			return fmt.Errorf("%s: %w: article '%s' or reviewer '%s'", op, apperrors.ErrNotFound, review.ArticleID, review.ReviewerID)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	review.Status = domain.ReviewPending

	return nil
}

func (rr *ReviewRepository) OpenPendingReview(ctx context.Context, tx *sqlx.Tx, review *domain.Review) error {
	const op = "internal.repository.postgres.OpenPendingReview"

	query, args, err := rr.sq.Insert("reviews").
		Columns("id", "article_id", "reviewer_id", "status").
		Values(review.ID, review.ArticleID, review.ReviewerID, domain.ReviewPending).
		Suffix(`ON CONFLICT (article_id, reviewer_id) DO UPDATE SET
			status = EXCLUDED.status,
			recommendation = NULL,
			submitted_at = NULL
			RETURNING id, created_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build upsert query: %w", op, err)
	}

	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&review.ID, &review.CreatedAt); err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return fmt.Errorf("%s: %w: article '%s' or reviewer '%s'", op, apperrors.ErrNotFound, review.ArticleID, review.ReviewerID)
		}

		return fmt.Errorf("%s: failed to execute upsert: %w", op, err)
	}

	review.Status = domain.ReviewPending
	review.Recommendation = nil
	review.SubmittedAt = nil

	return nil
}

func (rr *ReviewRepository) WithdrawPendingReviews(ctx context.Context, tx *sqlx.Tx, articleID string, keepReviewerID string) (int64, error) {
	const op = "internal.repository.postgres.WithdrawPendingReviews"

	query, args, err := rr.sq.Delete("reviews").
		Where(sq.Eq{"article_id": articleID, "status": domain.ReviewPending}).
		Where(sq.NotEq{"reviewer_id": keepReviewerID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to execute delete: %w", op, err)
	}

	withdrawn, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}

	return withdrawn, nil
}

func (rr *ReviewRepository) CompleteReview(ctx context.Context, tx *sqlx.Tx, review *domain.Review) (*domain.Review, error) {
	const op = "internal.repository.postgres.CompleteReview"

	query, args, err := rr.sq.Insert("reviews").
		Columns("id", "article_id", "reviewer_id", "status", "recommendation", "comments", "confidential", "submitted_at").
		Values(
			review.ID, review.ArticleID, review.ReviewerID, domain.ReviewCompleted,
			review.Recommendation, review.Comments, review.Confidential, review.SubmittedAt,
		).
		Suffix(`ON CONFLICT (article_id, reviewer_id) DO UPDATE SET
			status = EXCLUDED.status,
			recommendation = EXCLUDED.recommendation,
			comments = EXCLUDED.comments,
			confidential = EXCLUDED.confidential,
			submitted_at = EXCLUDED.submitted_at
			RETURNING ` + strings.Join(reviewColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build upsert query: %w", op, err)
	}

	var saved domain.Review
	if err := tx.QueryRowxContext(ctx, query, args...).StructScan(&saved); err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return nil, fmt.Errorf("%s: %w: article '%s' or reviewer '%s'", op, apperrors.ErrNotFound, review.ArticleID, review.ReviewerID)
		}

		return nil, fmt.Errorf("%s: failed to execute upsert: %w", op, err)
	}

	return &saved, nil
}

func (rr *ReviewRepository) GetReview(ctx context.Context, ext sqlx.ExtContext, articleID string, reviewerID string) (*domain.Review, error) {
	const op = "internal.repository.postgres.GetReview"

	query, args, err := rr.sq.Select(reviewColumns...).
		From("reviews").
		Where(sq.Eq{"article_id": articleID, "reviewer_id": reviewerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var review domain.Review
	if err := sqlx.GetContext(ctx, ext, &review, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: review of article '%s' by '%s'", op, apperrors.ErrNotFound, articleID, reviewerID)
		}

		return nil, fmt.Errorf("%s: failed to get review: %w", op, err)
	}

	return &review, nil
}

func (rr *ReviewRepository) ListReviewsByArticle(ctx context.Context, articleID string) ([]domain.Review, error) {
	const op = "internal.repository.postgres.ListReviewsByArticle"

	query, args, err := rr.sq.Select(reviewColumns...).
		From("reviews").
		Where(sq.Eq{"article_id": articleID}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	reviews := []domain.Review{}
	if err := rr.db.SelectContext(ctx, &reviews, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return reviews, nil
}

func (rr *ReviewRepository) GetReviewerWorkload(ctx context.Context) ([]domain.ReviewerWorkload, error) {
	const op = "internal.repository.postgres.GetReviewerWorkload"

	query, args, err := rr.sq.Select(
		"u.id AS reviewer_id",
		"u.name",
		"COUNT(CASE WHEN rv.status = 'PENDING' THEN 1 END) AS pending_reviews",
		"COUNT(CASE WHEN rv.status = 'COMPLETED' THEN 1 END) AS completed_reviews",
	).
		From("users u").
		LeftJoin("reviews rv ON rv.reviewer_id = u.id").
		Where(sq.Eq{"u.role": domain.RoleReviewer, "u.approval_status": domain.ApprovalApproved}).
		GroupBy("u.id", "u.name").
		OrderBy("pending_reviews DESC", "u.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	workload := []domain.ReviewerWorkload{}
	if err := rr.db.SelectContext(ctx, &workload, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return workload, nil
}
