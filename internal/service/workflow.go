package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/YusovID/journal-review-service/internal/apperrors"
	"github.com/YusovID/journal-review-service/internal/domain"
	"github.com/YusovID/journal-review-service/internal/notify"
	"github.com/YusovID/journal-review-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ReviewInput struct {
	Recommendation domain.Recommendation
	Comments       string
	Confidential   string
}

type ReviewResult struct {
	Review  *domain.Review
	Article *domain.Article
}

type FeedbackResult struct {
	Article   *domain.Article
	Published bool
}

// WorkflowService moves articles through review. Every method runs in a single
// transaction with the article row locked; emails go out after commit.
type WorkflowService interface {
	AssignReviewer(ctx context.Context, articleID string, reviewerID string) (*domain.Article, error)
	SubmitReview(ctx context.Context, reviewer *domain.User, articleID string, in ReviewInput) (*ReviewResult, error)
	SubmitFeedback(ctx context.Context, articleID string, feedback string) (*FeedbackResult, error)
}

type WorkflowServiceImpl struct {
	BaseService
	articleCmd repository.ArticleCommandRepository
	reviews    repository.ReviewRepository
	users      repository.UserRepository
	notifier   Notifier
	now        func() time.Time
}

func NewWorkflowService(
	base BaseService,
	articleCmd repository.ArticleCommandRepository,
	reviews repository.ReviewRepository,
	users repository.UserRepository,
	notifier Notifier,
) *WorkflowServiceImpl {
	return &WorkflowServiceImpl{
		BaseService: base,
		articleCmd:  articleCmd,
		reviews:     reviews,
		users:       users,
		notifier:    notifier,
		now:         time.Now,
	}
}

func (s *WorkflowServiceImpl) AssignReviewer(ctx context.Context, articleID string, reviewerID string) (*domain.Article, error) {
	const op = "internal.service.workflow.AssignReviewer"
	log := s.log.With(slog.String("op", op), slog.String("article_id", articleID), slog.String("reviewer_id", reviewerID))

	var (
		article  *domain.Article
		reviewer *domain.User
	)

	now := s.now().UTC()

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		var err error

		article, err = s.articleCmd.GetArticleByIDWithLock(ctx, tx, articleID)
		if err != nil {
			return fmt.Errorf("%s: failed to get article with lock: %w", op, err)
		}

		if !article.Status.CanAssignReviewer() {
			return apperrors.ErrArticlePublished
		}

		if article.ReviewerID != nil && *article.ReviewerID == reviewerID {
			return &apperrors.ReviewerAlreadyAssignedError{ArticleID: articleID, ReviewerID: reviewerID}
		}

		reviewer, err = s.users.GetUserByID(ctx, tx, reviewerID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.ErrInvalidReviewer
			}

			return fmt.Errorf("%s: failed to get reviewer: %w", op, err)
		}

		if reviewer.Role != domain.RoleReviewer || reviewer.ApprovalStatus != domain.ApprovalApproved {
			return apperrors.ErrInvalidReviewer
		}

		review := &domain.Review{
			ID:         uuid.NewString(),
			ArticleID:  articleID,
			ReviewerID: reviewerID,
		}

		withdrawn, err := s.reviews.WithdrawPendingReviews(ctx, tx, articleID, reviewerID)
		if err != nil {
			return fmt.Errorf("%s: failed to withdraw superseded reviews: %w", op, err)
		}

		if withdrawn > 0 {
			log.Info("superseded pending reviews withdrawn", slog.Int64("count", withdrawn))
		}

		if err := s.reviews.OpenPendingReview(ctx, tx, review); err != nil {
			return fmt.Errorf("%s: failed to open review: %w", op, err)
		}

		if err := s.articleCmd.AssignReviewer(ctx, tx, articleID, reviewerID, now); err != nil {
			return fmt.Errorf("%s: failed to assign reviewer: %w", op, err)
		}

		return s.notifier.Record(ctx, tx, notify.Build(
			reviewerID,
			domain.NotificationArticleAssigned,
			"New review assignment",
			fmt.Sprintf("You have been assigned to review %q.", article.Title),
			article,
			"/reviewer/articles/"+articleID,
		))
	})
	if err != nil {
		return nil, err
	}

	article.ReviewerID = &reviewerID
	article.Status = domain.StatusUnderReview
	article.UpdatedAt = now

	workflowTransitions.WithLabelValues(transitionAssign).Inc()
	log.Info("reviewer assigned")

	outbox := &notify.Outbox{}
	outbox.Queue(s.notifier.Templates().ReviewerAssigned(reviewer, article))
	s.notifier.Flush(ctx, outbox)

	return article, nil
}

func (s *WorkflowServiceImpl) SubmitReview(ctx context.Context, reviewer *domain.User, articleID string, in ReviewInput) (*ReviewResult, error) {
	const op = "internal.service.workflow.SubmitReview"
	log := s.log.With(slog.String("op", op), slog.String("article_id", articleID), slog.String("reviewer_id", reviewer.ID))

	status, ok := domain.StatusForRecommendation(in.Recommendation)
	if !ok {
		return nil, fmt.Errorf("%w: unknown recommendation %q", apperrors.ErrValidation, in.Recommendation)
	}

	var (
		article *domain.Article
		saved   *domain.Review
		editors []domain.User
	)

	now := s.now().UTC()

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		var err error

		article, err = s.articleCmd.GetArticleByIDWithLock(ctx, tx, articleID)
		if err != nil {
			return fmt.Errorf("%s: failed to get article with lock: %w", op, err)
		}

		if !article.IsAssignedReviewer(reviewer.ID) {
			return apperrors.ErrNotAssignedReviewer
		}

		if !article.Status.AcceptsReview() {
			return apperrors.ErrArticlePublished
		}

		saved, err = s.reviews.CompleteReview(ctx, tx, &domain.Review{
			ID:             uuid.NewString(),
			ArticleID:      articleID,
			ReviewerID:     reviewer.ID,
			Recommendation: &in.Recommendation,
			Comments:       optional(in.Comments),
			Confidential:   optional(in.Confidential),
			SubmittedAt:    &now,
		})
		if err != nil {
			return fmt.Errorf("%s: failed to save review: %w", op, err)
		}

		if err := s.articleCmd.UpdateArticleStatus(ctx, tx, articleID, status, now); err != nil {
			return fmt.Errorf("%s: failed to update article status: %w", op, err)
		}

		editors, err = s.users.ListUsers(ctx, tx, domain.RoleEditor, domain.ApprovalApproved)
		if err != nil {
			return fmt.Errorf("%s: failed to list editors: %w", op, err)
		}

		notifications := make([]domain.Notification, 0, len(editors))
		for _, editor := range editors {
			notifications = append(notifications, notify.Build(
				editor.ID,
				domain.NotificationReviewSubmitted,
				"Review submitted",
				fmt.Sprintf("%s submitted a review for %q.", reviewer.Name, article.Title),
				article,
				"/editor/articles/"+articleID,
			))
		}

		return s.notifier.Record(ctx, tx, notifications...)
	})
	if err != nil {
		return nil, err
	}

	article.Status = status
	article.UpdatedAt = now

	workflowTransitions.WithLabelValues(transitionReview).Inc()
	log.Info("review submitted", slog.String("recommendation", string(in.Recommendation)), slog.String("status", string(status)))

	outbox := &notify.Outbox{}
	for i := range editors {
		outbox.Queue(s.notifier.Templates().ReviewSubmitted(&editors[i], article, in.Recommendation))
	}
	s.notifier.Flush(ctx, outbox)

	return &ReviewResult{Review: saved, Article: article}, nil
}

// SubmitFeedback stores the editor's comments. An ACCEPTED article is published by it.
func (s *WorkflowServiceImpl) SubmitFeedback(ctx context.Context, articleID string, feedback string) (*FeedbackResult, error) {
	const op = "internal.service.workflow.SubmitFeedback"
	log := s.log.With(slog.String("op", op), slog.String("article_id", articleID))

	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return nil, fmt.Errorf("%w: feedback is required", apperrors.ErrValidation)
	}

	var (
		article   *domain.Article
		author    *domain.User
		published bool
	)

	now := s.now().UTC()

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		var err error

		article, err = s.articleCmd.GetArticleByIDWithLock(ctx, tx, articleID)
		if err != nil {
			return fmt.Errorf("%s: failed to get article with lock: %w", op, err)
		}

		var (
			next        domain.ArticleStatus
			publishedAt *time.Time
		)

		next, published = domain.AfterFeedback(article.Status)
		if published {
			publishedAt = &now
		}

		if err := s.articleCmd.SetEditorFeedback(ctx, tx, articleID, feedback, next, publishedAt, now); err != nil {
			return fmt.Errorf("%s: failed to set editor feedback: %w", op, err)
		}

		article.Status = next
		article.EditorFeedback = &feedback
		if published {
			article.PublishedAt = publishedAt
		}

		author, err = s.users.GetUserByID(ctx, tx, article.AuthorID)
		if err != nil {
			return fmt.Errorf("%s: failed to get author: %w", op, err)
		}

		message := fmt.Sprintf("The editor left feedback on %q.", article.Title)
		if published {
			message = fmt.Sprintf("Your article %q has been published.", article.Title)
		}

		return s.notifier.Record(ctx, tx, notify.Build(
			author.ID,
			domain.NotificationEditorFeedback,
			"Editor feedback",
			message,
			article,
			"/articles/"+articleID,
		))
	})
	if err != nil {
		return nil, err
	}

	article.UpdatedAt = now

	workflowTransitions.WithLabelValues(transitionFeedback).Inc()
	if published {
		workflowTransitions.WithLabelValues(transitionPublish).Inc()
	}

	log.Info("editor feedback saved", slog.Bool("published", published))

	outbox := &notify.Outbox{}
	outbox.Queue(s.notifier.Templates().EditorFeedback(author, article, feedback, published))
	s.notifier.Flush(ctx, outbox)

	return &FeedbackResult{Article: article, Published: published}, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	return &s
}
