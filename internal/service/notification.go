package service

import (
	"context"
	"fmt"

	"github.com/YusovID/journal-review-service/internal/domain"
	"github.com/YusovID/journal-review-service/internal/repository"
)

type NotificationService interface {
	ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID string, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

type NotificationServiceImpl struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) *NotificationServiceImpl {
	return &NotificationServiceImpl{repo: repo}
}

func (s *NotificationServiceImpl) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	notifications, err := s.repo.ListNotifications(ctx, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("repo.ListNotifications failed: %w", err)
	}

	return notifications, nil
}

func (s *NotificationServiceImpl) MarkRead(ctx context.Context, userID string, notificationID string) error {
	if err := s.repo.MarkRead(ctx, userID, notificationID); err != nil {
		return fmt.Errorf("repo.MarkRead failed: %w", err)
	}

	return nil
}

func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	updated, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("repo.MarkAllRead failed: %w", err)
	}

	return updated, nil
}
