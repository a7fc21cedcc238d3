package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/journal-review-service/internal/apperrors"
	"github.com/YusovID/journal-review-service/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var articleColumns = []string{
	"id", "title", "abstract", "keywords", "authors", "author_id", "reviewer_id", "status",
	"pdf_url", "editor_feedback", "issue_id", "submitted_at", "updated_at", "published_at",
}

type ArticleRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewArticleRepository(db *sqlx.DB, log *slog.Logger) *ArticleRepository {
	return &ArticleRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ArticleRepository) CreateArticle(ctx context.Context, tx *sqlx.Tx, article *domain.Article) error {
	const op = "internal.repository.postgres.CreateArticle"

	query, args, err := r.sq.Insert("articles").
		Columns("id", "title", "abstract", "keywords", "authors", "author_id", "status", "pdf_url", "submitted_at", "updated_at").
		Values(
			article.ID, article.Title, article.Abstract, pq.StringArray(article.Keywords), pq.StringArray(article.Authors),
			article.AuthorID, article.Status, article.PDFURL, article.SubmittedAt, article.SubmittedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return fmt.Errorf("%s: %w: author with id '%s' not found", op, apperrors.ErrNotFound, article.AuthorID)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	article.UpdatedAt = article.SubmittedAt

	return nil
}

func (r *ArticleRepository) GetArticleByID(ctx context.Context, articleID string) (*domain.Article, error) {
	const op = "internal.repository.postgres.GetArticleByID"

	return r.getArticle(ctx, r.db, op, articleID, false)
}

func (r *ArticleRepository) GetArticleByIDWithLock(ctx context.Context, tx *sqlx.Tx, articleID string) (*domain.Article, error) {
	const op = "internal.repository.postgres.GetArticleByIDWithLock"

	return r.getArticle(ctx, tx, op, articleID, true)
}

func (r *ArticleRepository) getArticle(ctx context.Context, ext sqlx.ExtContext, op string, articleID string, lock bool) (*domain.Article, error) {
	builder := r.sq.Select(articleColumns...).
		From("articles").
		Where(sq.Eq{"id": articleID})

	if lock {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var article domain.Article
	if err := sqlx.GetContext(ctx, ext, &article, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: article with id '%s'", op, apperrors.ErrNotFound, articleID)
		}

		return nil, fmt.Errorf("%s: failed to get article: %w", op, err)
	}

	return &article, nil
}

func (r *ArticleRepository) ListArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	const op = "internal.repository.postgres.ListArticles"

	builder := r.sq.Select(articleColumns...).From("articles")

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}

	if filter.AuthorID != "" {
		builder = builder.Where(sq.Eq{"author_id": filter.AuthorID})
	}

	if filter.ReviewerID != "" {
		builder = builder.Where(sq.Eq{"reviewer_id": filter.ReviewerID})
	}

	if filter.IssueID != "" {
		builder = builder.Where(sq.Eq{"issue_id": filter.IssueID})
	}

	if filter.Status == domain.StatusPublished {
		builder = builder.OrderBy("published_at DESC", "submitted_at DESC")
	} else {
		builder = builder.OrderBy("submitted_at DESC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	articles := []domain.Article{}
	if err := r.db.SelectContext(ctx, &articles, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return articles, nil
}

func (r *ArticleRepository) GetStatusCounts(ctx context.Context) ([]domain.StatusCount, error) {
	const op = "internal.repository.postgres.GetStatusCounts"

	query, args, err := r.sq.Select("status", "COUNT(*) AS count").
		From("articles").
		GroupBy("status").
		OrderBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	counts := []domain.StatusCount{}
	if err := r.db.SelectContext(ctx, &counts, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return counts, nil
}

func (r *ArticleRepository) UpdateArticleContent(ctx context.Context, tx *sqlx.Tx, articleID string, upd domain.ArticleUpdate, at time.Time) (*domain.Article, error) {
	const op = "internal.repository.postgres.UpdateArticleContent"

	builder := r.sq.Update("articles").
		Set("updated_at", at).
		Where(sq.Eq{"id": articleID})

	if upd.Title != nil {
		builder = builder.Set("title", *upd.Title)
	}

	if upd.Abstract != nil {
		builder = builder.Set("abstract", *upd.Abstract)
	}

	if upd.Keywords != nil {
		builder = builder.Set("keywords", pq.StringArray(upd.Keywords))
	}

	if upd.Authors != nil {
		builder = builder.Set("authors", pq.StringArray(upd.Authors))
	}

	if upd.PDFURL != nil {
		builder = builder.Set("pdf_url", *upd.PDFURL)
	}

	query, args, err := builder.
		Suffix("RETURNING " + strings.Join(articleColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	var article domain.Article
	if err := tx.QueryRowxContext(ctx, query, args...).StructScan(&article); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: article with id '%s'", op, apperrors.ErrNotFound, articleID)
		}

		return nil, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return &article, nil
}

func (r *ArticleRepository) AssignReviewer(ctx context.Context, tx *sqlx.Tx, articleID string, reviewerID string, at time.Time) error {
	const op = "internal.repository.postgres.AssignReviewer"

	query, args, err := r.sq.Update("articles").
		Set("reviewer_id", reviewerID).
		Set("status", domain.StatusUnderReview).
		Set("updated_at", at).
		Where(sq.Eq{"id": articleID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	return r.execUpdate(ctx, tx, op, articleID, query, args)
}

func (r *ArticleRepository) UpdateArticleStatus(ctx context.Context, tx *sqlx.Tx, articleID string, status domain.ArticleStatus, at time.Time) error {
	const op = "internal.repository.postgres.UpdateArticleStatus"

	query, args, err := r.sq.Update("articles").
		Set("status", status).
		Set("updated_at", at).
		Where(sq.Eq{"id": articleID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	return r.execUpdate(ctx, tx, op, articleID, query, args)
}

func (r *ArticleRepository) SetEditorFeedback(ctx context.Context, tx *sqlx.Tx, articleID string, feedback string, status domain.ArticleStatus, publishedAt *time.Time, at time.Time) error {
	const op = "internal.repository.postgres.SetEditorFeedback"

	builder := r.sq.Update("articles").
		Set("editor_feedback", feedback).
		Set("status", status).
		Set("updated_at", at).
		Where(sq.Eq{"id": articleID})

	if publishedAt != nil {
		builder = builder.Set("published_at", *publishedAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	return r.execUpdate(ctx, tx, op, articleID, query, args)
}

func (r *ArticleRepository) SetArticleIssue(ctx context.Context, tx *sqlx.Tx, articleID string, issueID string) error {
	const op = "internal.repository.postgres.SetArticleIssue"

	query, args, err := r.sq.Update("articles").
		Set("issue_id", issueID).
		Where(sq.Eq{"id": articleID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	return r.execUpdate(ctx, tx, op, articleID, query, args)
}

func (r *ArticleRepository) execUpdate(ctx context.Context, tx *sqlx.Tx, op string, articleID string, query string, args []interface{}) error {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return fmt.Errorf("%s: %w: referenced row for article '%s'", op, apperrors.ErrNotFound, articleID)
		}

		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: article with id '%s'", op, apperrors.ErrNotFound, articleID)
	}

	return nil
}

func (r *ArticleRepository) ListArticlesMissingReview(ctx context.Context) ([]domain.Article, error) {
	const op = "internal.repository.postgres.ListArticlesMissingReview"

	columns := make([]string, len(articleColumns))
	for i, c := range articleColumns {
		columns[i] = "a." + c
	}

	query, args, err := r.sq.Select(columns...).
		From("articles a").
		LeftJoin("reviews rv ON rv.article_id = a.id AND rv.reviewer_id = a.reviewer_id").
		Where(sq.NotEq{"a.reviewer_id": nil}).
		Where(sq.Eq{"rv.id": nil}).
		OrderBy("a.submitted_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	articles := []domain.Article{}
	if err := r.db.SelectContext(ctx, &articles, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return articles, nil
}

func (r *ArticleRepository) ListStatusDrift(ctx context.Context) ([]domain.StatusDrift, error) {
	const op = "internal.repository.postgres.ListStatusDrift"

	query, args, err := r.sq.Select("a.id AS article_id", "a.title", "a.status", "rv.recommendation").
		From("articles a").
		Join("reviews rv ON rv.article_id = a.id AND rv.reviewer_id = a.reviewer_id").
		Where(sq.Eq{"a.status": domain.StatusUnderReview, "rv.status": domain.ReviewCompleted}).
		Where(sq.NotEq{"rv.recommendation": nil}).
		OrderBy("a.submitted_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	drift := []domain.StatusDrift{}
	if err := r.db.SelectContext(ctx, &drift, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return drift, nil
}

func (r *ArticleRepository) CountArticles(ctx context.Context) (int, error) {
	const op = "internal.repository.postgres.CountArticles"

	query, args, err := r.sq.Select("COUNT(*)").From("articles").ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return count, nil
}
