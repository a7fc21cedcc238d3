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

var userColumns = []string{"id", "email", "password_hash", "name", "role", "approval_status", "affiliation", "created_at"}

type UserRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewUserRepository(db *sqlx.DB, log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (ur *UserRepository) CreateUser(ctx context.Context, tx *sqlx.Tx, user *domain.User) error {
	const op = "internal.repository.postgres.CreateUser"

	query, args, err := ur.sq.Insert("users").
		Columns("id", "email", "password_hash", "name", "role", "approval_status", "affiliation").
		Values(user.ID, user.Email, user.PasswordHash, user.Name, user.Role, user.ApprovalStatus, user.Affiliation).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&user.CreatedAt); err != nil {
		if pqCode(err) == pqUniqueViolation {
			return &apperrors.EmailTakenError{Email: user.Email}
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (ur *UserRepository) GetUserByID(ctx context.Context, ext sqlx.ExtContext, userID string) (*domain.User, error) {
	const op = "internal.repository.postgres.GetUserByID"

	query, args, err := ur.sq.Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var user domain.User
	if err := sqlx.GetContext(ctx, ext, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: user with id '%s'", op, apperrors.ErrNotFound, userID)
		}

		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	return &user, nil
}

func (ur *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	const op = "internal.repository.postgres.GetUserByEmail"

	query, args, err := ur.sq.Select(userColumns...).
		From("users").
		Where(sq.Expr("lower(email) = ?", strings.ToLower(email))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var user domain.User
	if err := ur.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: user with email '%s'", op, apperrors.ErrNotFound, email)
		}

		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	return &user, nil
}

func (ur *UserRepository) ListUsers(ctx context.Context, ext sqlx.ExtContext, role domain.Role, approval domain.ApprovalStatus) ([]domain.User, error) {
	const op = "internal.repository.postgres.ListUsers"

	builder := ur.sq.Select(userColumns...).
		From("users").
		Where(sq.Eq{"role": role}).
		OrderBy("name")

	if approval != "" {
		builder = builder.Where(sq.Eq{"approval_status": approval})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	users := []domain.User{}
	if err := sqlx.SelectContext(ctx, ext, &users, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return users, nil
}

func (ur *UserRepository) SetApprovalStatus(ctx context.Context, tx *sqlx.Tx, userID string, status domain.ApprovalStatus) error {
	const op = "internal.repository.postgres.SetApprovalStatus"

	ur.log.Info("setting approval status", slog.String("op", op), slog.String("user_id", userID), slog.String("status", string(status)))

	query, args, err := ur.sq.Update("users").
		Set("approval_status", status).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: user with id '%s'", op, apperrors.ErrNotFound, userID)
	}

	return nil
}

func (ur *UserRepository) DeleteUser(ctx context.Context, userID string) error {
	const op = "internal.repository.postgres.DeleteUser"

	query, args, err := ur.sq.Delete("users").
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}

	res, err := ur.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute delete: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: user with id '%s'", op, apperrors.ErrNotFound, userID)
	}

	return nil
}
