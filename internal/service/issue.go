package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/YusovID/journal-review-service/internal/apperrors"
	"github.com/YusovID/journal-review-service/internal/domain"
	"github.com/YusovID/journal-review-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type IssueInput struct {
	Volume      int
	Number      int
	Year        int
	PublishedAt *time.Time
}

type IssueService interface {
	CreateIssue(ctx context.Context, in IssueInput) (*domain.Issue, error)
	ListIssues(ctx context.Context) ([]domain.Issue, error)
	GetIssue(ctx context.Context, issueID string) (*domain.Issue, error)
	AttachArticle(ctx context.Context, issueID string, articleID string) (*domain.Article, error)
}

type IssueServiceImpl struct {
	BaseService
	issues       repository.IssueRepository
	articleQuery repository.ArticleQueryRepository
	articleCmd   repository.ArticleCommandRepository
}

func NewIssueService(
	base BaseService,
	issues repository.IssueRepository,
	articleQuery repository.ArticleQueryRepository,
	articleCmd repository.ArticleCommandRepository,
) *IssueServiceImpl {
	return &IssueServiceImpl{
		BaseService:  base,
		issues:       issues,
		articleQuery: articleQuery,
		articleCmd:   articleCmd,
	}
}

func (s *IssueServiceImpl) CreateIssue(ctx context.Context, in IssueInput) (*domain.Issue, error) {
	const op = "internal.service.issue.CreateIssue"

	if in.Volume < 1 || in.Number < 1 {
		return nil, fmt.Errorf("%w: volume and number must be positive", apperrors.ErrValidation)
	}

	issue := &domain.Issue{
		ID:          uuid.NewString(),
		Volume:      in.Volume,
		Number:      in.Number,
		Year:        in.Year,
		PublishedAt: in.PublishedAt,
	}

	if err := s.issues.CreateIssue(ctx, issue); err != nil {
		return nil, fmt.Errorf("%s: failed to create issue: %w", op, err)
	}

	s.log.Info("issue created", slog.String("op", op), slog.String("issue_id", issue.ID), slog.Int("volume", issue.Volume), slog.Int("number", issue.Number))

	return issue, nil
}

func (s *IssueServiceImpl) ListIssues(ctx context.Context) ([]domain.Issue, error) {
	const op = "internal.service.issue.ListIssues"

	issues, err := s.issues.ListIssues(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list issues: %w", op, err)
	}

	return issues, nil
}

// GetIssue returns the issue with its published articles.
func (s *IssueServiceImpl) GetIssue(ctx context.Context, issueID string) (*domain.Issue, error) {
	const op = "internal.service.issue.GetIssue"

	issue, err := s.issues.GetIssueByID(ctx, s.reader, issueID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get issue: %w", op, err)
	}

	issue.Articles, err = s.articleQuery.ListArticles(ctx, domain.ArticleFilter{
		Status:  domain.StatusPublished,
		IssueID: issueID,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list issue articles: %w", op, err)
	}

	return issue, nil
}

// AttachArticle places a published article into an issue.
func (s *IssueServiceImpl) AttachArticle(ctx context.Context, issueID string, articleID string) (*domain.Article, error) {
	const op = "internal.service.issue.AttachArticle"

	var article *domain.Article

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		if _, err := s.issues.GetIssueByID(ctx, tx, issueID); err != nil {
			return fmt.Errorf("%s: failed to get issue: %w", op, err)
		}

		var err error

		article, err = s.articleCmd.GetArticleByIDWithLock(ctx, tx, articleID)
		if err != nil {
			return fmt.Errorf("%s: failed to get article with lock: %w", op, err)
		}

		if article.Status != domain.StatusPublished {
			return apperrors.ErrArticleNotPublished
		}

		if err := s.articleCmd.SetArticleIssue(ctx, tx, articleID, issueID); err != nil {
			return fmt.Errorf("%s: failed to set article issue: %w", op, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	article.IssueID = &issueID
	s.log.Info("article attached to issue", slog.String("op", op), slog.String("article_id", articleID), slog.String("issue_id", issueID))

	return article, nil
}
