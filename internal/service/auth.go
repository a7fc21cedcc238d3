package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/YusovID/journal-review-service/internal/apperrors"
	"github.com/YusovID/journal-review-service/internal/auth"
	"github.com/YusovID/journal-review-service/internal/domain"
	"github.com/YusovID/journal-review-service/internal/mailer"
	"github.com/YusovID/journal-review-service/internal/notify"
	"github.com/YusovID/journal-review-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const minPasswordLength = 6

// Notifier is the side-effect dispatcher used by workflow transitions.
type Notifier interface {
	Record(ctx context.Context, tx *sqlx.Tx, notifications ...domain.Notification) error
	Flush(ctx context.Context, outbox *notify.Outbox)
	Templates() *mailer.Templates
}

type TokenIssuer interface {
	Issue(user *domain.User) (string, time.Time, error)
	Parse(token string) (*auth.Claims, error)
}

type RegisterInput struct {
	Email       string
	Password    string
	Name        string
	Role        domain.Role
	Affiliation *string
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email string, password string) (*Session, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

type AuthServiceImpl struct {
	BaseService
	users    repository.UserRepository
	tokens   TokenIssuer
	notifier Notifier
}

func NewAuthService(base BaseService, users repository.UserRepository, tokens TokenIssuer, notifier Notifier) *AuthServiceImpl {
	return &AuthServiceImpl{
		BaseService: base,
		users:       users,
		tokens:      tokens,
		notifier:    notifier,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	const op = "internal.service.auth.Register"

	email := normalizeEmail(in.Email)
	log := s.log.With(slog.String("op", op), slog.String("email", email))

	if in.Role == "" {
		in.Role = domain.RoleAuthor
	}

	if !in.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, in.Role)
	}

	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation, minPasswordLength)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := &domain.User{
		ID:             uuid.NewString(),
		Email:          email,
		PasswordHash:   hash,
		Name:           strings.TrimSpace(in.Name),
		Role:           in.Role,
		ApprovalStatus: domain.InitialApproval(in.Role),
		Affiliation:    in.Affiliation,
	}

	err = s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		return s.users.CreateUser(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}

	log.Info("user registered", slog.String("user_id", user.ID), slog.String("role", string(user.Role)))

	outbox := &notify.Outbox{}
	outbox.Queue(s.notifier.Templates().Welcome(user))
	s.notifier.Flush(ctx, outbox)

	return user, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, email string, password string) (*Session, error) {
	const op = "internal.service.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}

		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	switch user.ApprovalStatus {
	case domain.ApprovalPending:
		return nil, apperrors.ErrAccountPending
	case domain.ApprovalRejected:
		return nil, apperrors.ErrAccountRejected
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user logged in", slog.String("op", op), slog.String("user_id", user.ID))

	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Authenticate resolves a session token to the current state of its user, so role
// changes, rejections and deletions apply to existing sessions.
func (s *AuthServiceImpl) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	const op = "internal.service.auth.Authenticate"

	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, s.reader, claims.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", apperrors.ErrUnauthenticated)
		}

		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if user.ApprovalStatus != domain.ApprovalApproved {
		return nil, fmt.Errorf("%w: account is not active", apperrors.ErrUnauthenticated)
	}

	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
