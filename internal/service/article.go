package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/YusovID/journal-review-service/internal/apperrors"
	"github.com/YusovID/journal-review-service/internal/domain"
	"github.com/YusovID/journal-review-service/internal/notify"
	"github.com/YusovID/journal-review-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type SubmitInput struct {
	Title    string
	Abstract string
	Keywords []string
	Authors  []string
	PDFURL   string
}

type ArticleService interface {
	Submit(ctx context.Context, author *domain.User, in SubmitInput) (*domain.Article, error)
	GetArticle(ctx context.Context, caller *domain.User, articleID string) (*domain.Article, error)
	UpdateArticle(ctx context.Context, caller *domain.User, articleID string, upd domain.ArticleUpdate) (*domain.Article, error)
	ListArticles(ctx context.Context, status domain.ArticleStatus) ([]domain.Article, error)
	ListMyArticles(ctx context.Context, authorID string) ([]domain.Article, error)
	ListPublished(ctx context.Context, issueID string) ([]domain.Article, error)
	ListAssigned(ctx context.Context, reviewerID string) ([]domain.Article, error)
	ListArticleReviews(ctx context.Context, articleID string) ([]domain.Review, error)
	GetMyReview(ctx context.Context, reviewerID string, articleID string) (*domain.Review, error)
}

type ArticleServiceImpl struct {
	BaseService
	articleQuery repository.ArticleQueryRepository
	articleCmd   repository.ArticleCommandRepository
	reviews      repository.ReviewRepository
	notifier     Notifier
}

func NewArticleService(
	base BaseService,
	articleQuery repository.ArticleQueryRepository,
	articleCmd repository.ArticleCommandRepository,
	reviews repository.ReviewRepository,
	notifier Notifier,
) *ArticleServiceImpl {
	return &ArticleServiceImpl{
		BaseService:  base,
		articleQuery: articleQuery,
		articleCmd:   articleCmd,
		reviews:      reviews,
		notifier:     notifier,
	}
}

func (s *ArticleServiceImpl) Submit(ctx context.Context, author *domain.User, in SubmitInput) (*domain.Article, error) {
	const op = "internal.service.article.Submit"

	if author.Role != domain.RoleAuthor {
		return nil, apperrors.ErrUnauthorized
	}

	article := &domain.Article{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(in.Title),
		Abstract:    strings.TrimSpace(in.Abstract),
		Keywords:    cleanList(in.Keywords),
		Authors:     cleanList(in.Authors),
		AuthorID:    author.ID,
		Status:      domain.StatusSubmitted,
		PDFURL:      strings.TrimSpace(in.PDFURL),
		SubmittedAt: time.Now().UTC(),
	}

	if err := validateContent(domain.ArticleUpdate{
		Title:    &article.Title,
		Abstract: &article.Abstract,
		Keywords: article.Keywords,
		Authors:  article.Authors,
		PDFURL:   &article.PDFURL,
	}); err != nil {
		return nil, err
	}

	log := s.log.With(slog.String("op", op), slog.String("article_id", article.ID), slog.String("author_id", author.ID))

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		if err := s.articleCmd.CreateArticle(ctx, tx, article); err != nil {
			return fmt.Errorf("%s: failed to create article: %w", op, err)
		}

		return s.notifier.Record(ctx, tx, notify.Build(
			author.ID,
			domain.NotificationArticleSubmitted,
			"Submission received",
			fmt.Sprintf("Your manuscript %q has been submitted.", article.Title),
			article,
			"/articles/"+article.ID,
		))
	})
	if err != nil {
		return nil, err
	}

	workflowTransitions.WithLabelValues(transitionSubmit).Inc()
	log.Info("article submitted")

	outbox := &notify.Outbox{}
	outbox.Queue(s.notifier.Templates().ArticleSubmitted(author, article))
	s.notifier.Flush(ctx, outbox)

	return article, nil
}

// GetArticle returns the article if caller may see it. caller is nil for anonymous requests.
func (s *ArticleServiceImpl) GetArticle(ctx context.Context, caller *domain.User, articleID string) (*domain.Article, error) {
	const op = "internal.service.article.GetArticle"

	article, err := s.articleQuery.GetArticleByID(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get article: %w", op, err)
	}

	if !article.VisibleTo(caller) {
		if caller == nil {
			return nil, apperrors.ErrUnauthenticated
		}

		return nil, apperrors.ErrForbidden
	}

	return article, nil
}

func (s *ArticleServiceImpl) UpdateArticle(ctx context.Context, caller *domain.User, articleID string, upd domain.ArticleUpdate) (*domain.Article, error) {
	const op = "internal.service.article.UpdateArticle"
	log := s.log.With(slog.String("op", op), slog.String("article_id", articleID), slog.String("user_id", caller.ID))

	upd.Title = trimmed(upd.Title)
	upd.Abstract = trimmed(upd.Abstract)
	upd.PDFURL = trimmed(upd.PDFURL)

	if upd.Keywords != nil {
		upd.Keywords = cleanList(upd.Keywords)
	}

	if upd.Authors != nil {
		upd.Authors = cleanList(upd.Authors)
	}

	if err := validateContent(upd); err != nil {
		return nil, err
	}

	var updated *domain.Article

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		article, err := s.articleCmd.GetArticleByIDWithLock(ctx, tx, articleID)
		if err != nil {
			return fmt.Errorf("%s: failed to get article with lock: %w", op, err)
		}

		if !article.IsAuthor(caller.ID) {
			return apperrors.ErrForbidden
		}

		if !article.Status.Editable() {
			return apperrors.ErrArticlePublished
		}

		updated, err = s.articleCmd.UpdateArticleContent(ctx, tx, articleID, upd, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("%s: failed to update article: %w", op, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("article updated")

	return updated, nil
}

func (s *ArticleServiceImpl) ListArticles(ctx context.Context, status domain.ArticleStatus) ([]domain.Article, error) {
	const op = "internal.service.article.ListArticles"

	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, status)
	}

	return s.list(ctx, op, domain.ArticleFilter{Status: status})
}

func (s *ArticleServiceImpl) ListMyArticles(ctx context.Context, authorID string) ([]domain.Article, error) {
	const op = "internal.service.article.ListMyArticles"

	return s.list(ctx, op, domain.ArticleFilter{AuthorID: authorID})
}

func (s *ArticleServiceImpl) ListPublished(ctx context.Context, issueID string) ([]domain.Article, error) {
	const op = "internal.service.article.ListPublished"

	return s.list(ctx, op, domain.ArticleFilter{Status: domain.StatusPublished, IssueID: issueID})
}

func (s *ArticleServiceImpl) ListAssigned(ctx context.Context, reviewerID string) ([]domain.Article, error) {
	const op = "internal.service.article.ListAssigned"

	return s.list(ctx, op, domain.ArticleFilter{ReviewerID: reviewerID})
}

func (s *ArticleServiceImpl) list(ctx context.Context, op string, filter domain.ArticleFilter) ([]domain.Article, error) {
	articles, err := s.articleQuery.ListArticles(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list articles: %w", op, err)
	}

	return articles, nil
}

func (s *ArticleServiceImpl) ListArticleReviews(ctx context.Context, articleID string) ([]domain.Review, error) {
	const op = "internal.service.article.ListArticleReviews"

	if _, err := s.articleQuery.GetArticleByID(ctx, articleID); err != nil {
		return nil, fmt.Errorf("%s: failed to get article: %w", op, err)
	}

	reviews, err := s.reviews.ListReviewsByArticle(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list reviews: %w", op, err)
	}

	return reviews, nil
}

// GetMyReview returns the caller's review of an article they are assigned to.
func (s *ArticleServiceImpl) GetMyReview(ctx context.Context, reviewerID string, articleID string) (*domain.Review, error) {
	const op = "internal.service.article.GetMyReview"

	article, err := s.articleQuery.GetArticleByID(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get article: %w", op, err)
	}

	if !article.IsAssignedReviewer(reviewerID) {
		return nil, apperrors.ErrNotAssignedReviewer
	}

	review, err := s.reviews.GetReview(ctx, s.reader, articleID, reviewerID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get review: %w", op, err)
	}

	return review, nil
}

const (
	minTitleLength    = 5
	minAbstractLength = 20
)

// validateContent checks the fields present in upd after trimming. Nil fields are skipped.
func validateContent(upd domain.ArticleUpdate) error {
	if upd.Title != nil && utf8.RuneCountInString(*upd.Title) < minTitleLength {
		return fmt.Errorf("%w: title must be at least %d characters", apperrors.ErrValidation, minTitleLength)
	}

	if upd.Abstract != nil && utf8.RuneCountInString(*upd.Abstract) < minAbstractLength {
		return fmt.Errorf("%w: abstract must be at least %d characters", apperrors.ErrValidation, minAbstractLength)
	}

	if upd.Keywords != nil && len(upd.Keywords) == 0 {
		return fmt.Errorf("%w: at least one keyword is required", apperrors.ErrValidation)
	}

	if upd.Authors != nil && len(upd.Authors) == 0 {
		return fmt.Errorf("%w: at least one author is required", apperrors.ErrValidation)
	}

	if upd.PDFURL != nil && *upd.PDFURL == "" {
		return fmt.Errorf("%w: pdf_url is required", apperrors.ErrValidation)
	}

	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}

	v := strings.TrimSpace(*s)

	return &v
}

// cleanList trims entries and drops empty ones, keeping order.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))

	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}

	return out
}
