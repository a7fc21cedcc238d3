package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/YusovID/journal-review-service/internal/apperrors"
	"github.com/YusovID/journal-review-service/internal/domain"
	"github.com/YusovID/journal-review-service/internal/notify"
	"github.com/YusovID/journal-review-service/internal/repository"
	"github.com/jmoiron/sqlx"
)

type UserService interface {
	ListUsers(ctx context.Context, role domain.Role, approval domain.ApprovalStatus) ([]domain.User, error)
	ApproveUser(ctx context.Context, userID string) (*domain.User, error)
	ApproveUserByEmail(ctx context.Context, email string) (*domain.User, error)
	RejectUser(ctx context.Context, userID string, reason string) (*domain.User, error)
	DeleteUser(ctx context.Context, callerID string, userID string) error
}

type UserServiceImpl struct {
	BaseService
	users    repository.UserRepository
	notifier Notifier
}

func NewUserService(base BaseService, users repository.UserRepository, notifier Notifier) *UserServiceImpl {
	return &UserServiceImpl{
		BaseService: base,
		users:       users,
		notifier:    notifier,
	}
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, role domain.Role, approval domain.ApprovalStatus) ([]domain.User, error) {
	const op = "internal.service.user.ListUsers"

	if !role.Valid() {
		return nil, fmt.Errorf("%w: role must be one of AUTHOR, EDITOR, REVIEWER", apperrors.ErrValidation)
	}

	users, err := s.users.ListUsers(ctx, s.reader, role, approval)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list users: %w", op, err)
	}

	return users, nil
}

// ApproveUser activates a pending or rejected account and tells its owner.
func (s *UserServiceImpl) ApproveUser(ctx context.Context, userID string) (*domain.User, error) {
	const op = "internal.service.user.ApproveUser"
	log := s.log.With(slog.String("op", op), slog.String("user_id", userID))

	var user *domain.User

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		var err error

		user, err = s.users.GetUserByID(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("%s: failed to get user: %w", op, err)
		}

		if user.ApprovalStatus == domain.ApprovalApproved {
			return apperrors.ErrAlreadyApproved
		}

		if err := s.users.SetApprovalStatus(ctx, tx, userID, domain.ApprovalApproved); err != nil {
			return fmt.Errorf("%s: failed to set approval status: %w", op, err)
		}

		return s.notifier.Record(ctx, tx, notify.Build(
			userID,
			domain.NotificationUserApproved,
			"Account approved",
			"Your account has been approved. You can now sign in.",
			nil,
			"/login",
		))
	})
	if err != nil {
		return nil, err
	}

	user.ApprovalStatus = domain.ApprovalApproved
	log.Info("user approved")

	outbox := &notify.Outbox{}
	outbox.Queue(s.notifier.Templates().UserApproved(user))
	s.notifier.Flush(ctx, outbox)

	return user, nil
}

func (s *UserServiceImpl) ApproveUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	const op = "internal.service.user.ApproveUserByEmail"

	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	return s.ApproveUser(ctx, user.ID)
}

func (s *UserServiceImpl) RejectUser(ctx context.Context, userID string, reason string) (*domain.User, error) {
	const op = "internal.service.user.RejectUser"
	log := s.log.With(slog.String("op", op), slog.String("user_id", userID))

	var user *domain.User

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		var err error

		user, err = s.users.GetUserByID(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("%s: failed to get user: %w", op, err)
		}

		if user.ApprovalStatus == domain.ApprovalRejected {
			return apperrors.ErrAlreadyRejected
		}

		if err := s.users.SetApprovalStatus(ctx, tx, userID, domain.ApprovalRejected); err != nil {
			return fmt.Errorf("%s: failed to set approval status: %w", op, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	user.ApprovalStatus = domain.ApprovalRejected
	log.Info("user rejected")

	outbox := &notify.Outbox{}
	outbox.Queue(s.notifier.Templates().UserRejected(user, reason))
	s.notifier.Flush(ctx, outbox)

	return user, nil
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, callerID string, userID string) error {
	const op = "internal.service.user.DeleteUser"

	if callerID == userID {
		return apperrors.ErrCannotDeleteSelf
	}

	if err := s.users.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("%s: failed to delete user: %w", op, err)
	}

	s.log.Info("user deleted", slog.String("op", op), slog.String("user_id", userID), slog.String("deleted_by", callerID))

	return nil
}
