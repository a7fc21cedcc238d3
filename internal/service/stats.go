package service

import (
	"context"
	"fmt"

	"github.com/YusovID/journal-review-service/internal/domain"
	"github.com/YusovID/journal-review-service/internal/repository"
)

type StatsService interface {
	GetStats(ctx context.Context) (*domain.Stats, error)
}

type StatsServiceImpl struct {
	articles repository.ArticleQueryRepository
	reviews  repository.ReviewRepository
}

func NewStatsService(articles repository.ArticleQueryRepository, reviews repository.ReviewRepository) *StatsServiceImpl {
	return &StatsServiceImpl{
		articles: articles,
		reviews:  reviews,
	}
}

// GetStats reports article counts for every status, zero included, and the
// pending/completed review load of each approved reviewer.
func (s *StatsServiceImpl) GetStats(ctx context.Context) (*domain.Stats, error) {
	const op = "internal.service.stats.GetStats"

	counts, err := s.articles.GetStatusCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get status counts: %w", op, err)
	}

	byStatus := make(map[domain.ArticleStatus]int, len(counts))
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}

	full := make([]domain.StatusCount, len(domain.ArticleStatuses))
	for i, st := range domain.ArticleStatuses {
		full[i] = domain.StatusCount{Status: st, Count: byStatus[st]}
	}

	workload, err := s.reviews.GetReviewerWorkload(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get reviewer workload: %w", op, err)
	}

	return &domain.Stats{Articles: full, Reviewers: workload}, nil
}
