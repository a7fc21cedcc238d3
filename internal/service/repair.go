package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/YusovID/journal-review-service/internal/apperrors"
	"github.com/YusovID/journal-review-service/internal/domain"
	"github.com/YusovID/journal-review-service/internal/repository"
	"github.com/YusovID/journal-review-service/pkg/logger/sl"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type RepairService interface {
	Repair(ctx context.Context, dryRun bool) (*domain.RepairReport, error)
}

// RepairServiceImpl fixes rows written before reviews and status changes were
// committed together: assigned reviewers without a review row, and articles still
// UNDER_REVIEW after their reviewer completed a review.
type RepairServiceImpl struct {
	BaseService
	consistency repository.ConsistencyRepository
	articleCmd  repository.ArticleCommandRepository
	reviews     repository.ReviewRepository
}

func NewRepairService(
	base BaseService,
	consistency repository.ConsistencyRepository,
	articleCmd repository.ArticleCommandRepository,
	reviews repository.ReviewRepository,
) *RepairServiceImpl {
	return &RepairServiceImpl{
		BaseService: base,
		consistency: consistency,
		articleCmd:  articleCmd,
		reviews:     reviews,
	}
}

func (s *RepairServiceImpl) Repair(ctx context.Context, dryRun bool) (*domain.RepairReport, error) {
	const op = "internal.service.repair.Repair"
	log := s.log.With(slog.String("op", op), slog.Bool("dry_run", dryRun))

	report := &domain.RepairReport{
		DryRun:         dryRun,
		MissingReviews: []string{},
		StatusMismatch: []string{},
	}

	total, err := s.consistency.CountArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to count articles: %w", op, err)
	}

	report.ArticlesChecked = total

	missing, err := s.consistency.ListArticlesMissingReview(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list articles missing reviews: %w", op, err)
	}

	for _, article := range missing {
		if !dryRun {
			err := s.createMissingReview(ctx, article.ID, *article.ReviewerID)
			if errors.Is(err, apperrors.ErrAlreadyExists) {
				continue
			}

			if err != nil {
				log.Error("failed to create missing review", slog.String("article_id", article.ID), sl.Err(err))
				continue
			}
		}

		report.MissingReviews = append(report.MissingReviews, article.ID)
	}

	drift, err := s.consistency.ListStatusDrift(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list status drift: %w", op, err)
	}

	for _, d := range drift {
		want, ok := domain.StatusForRecommendation(d.Recommendation)
		if !ok {
			log.Warn("skipping unknown recommendation", slog.String("article_id", d.ArticleID), slog.String("recommendation", string(d.Recommendation)))
			continue
		}

		if !dryRun {
			if err := s.fixStatus(ctx, d.ArticleID, want); err != nil {
				log.Error("failed to fix article status", slog.String("article_id", d.ArticleID), sl.Err(err))
				continue
			}
		}

		report.StatusMismatch = append(report.StatusMismatch, d.ArticleID)
	}

	log.Info("repair finished",
		slog.Int("articles_checked", report.ArticlesChecked),
		slog.Int("missing_reviews", len(report.MissingReviews)),
		slog.Int("status_mismatch", len(report.StatusMismatch)),
	)

	return report, nil
}

func (s *RepairServiceImpl) createMissingReview(ctx context.Context, articleID, reviewerID string) error {
	const op = "internal.service.repair.createMissingReview"

	return s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		err := s.reviews.CreatePendingReview(ctx, tx, &domain.Review{
			ID:         uuid.NewString(),
			ArticleID:  articleID,
			ReviewerID: reviewerID,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		workflowTransitions.WithLabelValues(transitionRepair).Inc()

		return nil
	})
}

// fixStatus re-reads the article under lock so a concurrent transition wins.
func (s *RepairServiceImpl) fixStatus(ctx context.Context, articleID string, want domain.ArticleStatus) error {
	const op = "internal.service.repair.fixStatus"

	return s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		article, err := s.articleCmd.GetArticleByIDWithLock(ctx, tx, articleID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if article.Status != domain.StatusUnderReview {
			return nil
		}

		if err := s.articleCmd.UpdateArticleStatus(ctx, tx, articleID, want, time.Now().UTC()); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		workflowTransitions.WithLabelValues(transitionRepair).Inc()

		return nil
	})
}
