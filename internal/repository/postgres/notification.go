package postgres

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/journal-review-service/internal/apperrors"
	"github.com/YusovID/journal-review-service/internal/domain"
	"github.com/jmoiron/sqlx"
)

var notificationColumns = []string{"id", "user_id", "type", "title", "message", "article_id", "link", "is_read", "created_at"}

type NotificationRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewNotificationRepository(db *sqlx.DB, log *slog.Logger) *NotificationRepository {
	return &NotificationRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (nr *NotificationRepository) CreateNotifications(ctx context.Context, tx *sqlx.Tx, notifications []domain.Notification) error {
	const op = "internal.repository.postgres.CreateNotifications"

	if len(notifications) == 0 {
		return nil
	}

	builder := nr.sq.Insert("notifications").
		Columns("id", "user_id", "type", "title", "message", "article_id", "link", "created_at")

	for _, n := range notifications {
		builder = builder.Values(n.ID, n.UserID, n.Type, n.Title, n.Message, n.ArticleID, n.Link, n.CreatedAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return fmt.Errorf("%s: %w: notification recipient or article", op, apperrors.ErrNotFound)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (nr *NotificationRepository) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	const op = "internal.repository.postgres.ListNotifications"

	builder := nr.sq.Select(notificationColumns...).
		From("notifications").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	if unreadOnly {
		builder = builder.Where(sq.Eq{"is_read": false})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	notifications := []domain.Notification{}
	if err := nr.db.SelectContext(ctx, &notifications, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return notifications, nil
}

func (nr *NotificationRepository) MarkRead(ctx context.Context, userID string, notificationID string) error {
	const op = "internal.repository.postgres.MarkRead"

	query, args, err := nr.sq.Update("notifications").
		Set("is_read", true).
		Where(sq.Eq{"id": notificationID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := nr.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: notification with id '%s'", op, apperrors.ErrNotFound, notificationID)
	}

	return nil
}

func (nr *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	const op = "internal.repository.postgres.MarkAllRead"

	query, args, err := nr.sq.Update("notifications").
		Set("is_read", true).
		Where(sq.Eq{"user_id": userID, "is_read": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := nr.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	updated, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to get rows affected: %w", op, err)
	}

	return updated, nil
}
