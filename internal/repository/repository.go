// package repository defines the interfaces for the data persistence layer.
// Methods taking a *sqlx.Tx must run inside the caller's transaction; methods taking
// sqlx.ExtContext work on either a transaction or the pool.
package repository

import (
	"context"
	"time"

	"github.com/YusovID/journal-review-service/internal/domain"
	"github.com/jmoiron/sqlx"
)

// UserRepository covers accounts and their approval lifecycle.
type UserRepository interface {
	// CreateUser inserts a new account.
	// It returns *apperrors.EmailTakenError if the email is already registered.
	CreateUser(ctx context.Context, tx *sqlx.Tx, user *domain.User) error

	// GetUserByID returns apperrors.ErrNotFound if the user does not exist.
	GetUserByID(ctx context.Context, ext sqlx.ExtContext, userID string) (*domain.User, error)

	// GetUserByEmail matches the email case-insensitively.
	// It returns apperrors.ErrNotFound if no account uses the email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers returns users with the given role ordered by name.
	// An empty approval status matches every account.
	ListUsers(ctx context.Context, ext sqlx.ExtContext, role domain.Role, approval domain.ApprovalStatus) ([]domain.User, error)

	// SetApprovalStatus returns apperrors.ErrNotFound if the user does not exist.
	SetApprovalStatus(ctx context.Context, tx *sqlx.Tx, userID string, status domain.ApprovalStatus) error

	// DeleteUser removes the account; owned articles, reviews and notifications cascade.
	// It returns apperrors.ErrNotFound if the user does not exist.
	DeleteUser(ctx context.Context, userID string) error
}

// ArticleQueryRepository holds read-only article queries.
type ArticleQueryRepository interface {
	// GetArticleByID returns apperrors.ErrNotFound if the article does not exist.
	GetArticleByID(ctx context.Context, articleID string) (*domain.Article, error)

	// ListArticles returns articles matching every non-empty filter field, newest first.
	ListArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error)

	// GetStatusCounts returns the number of articles per status.
	GetStatusCounts(ctx context.Context) ([]domain.StatusCount, error)
}

// ArticleCommandRepository holds the article writes used by workflow transitions.
type ArticleCommandRepository interface {
	CreateArticle(ctx context.Context, tx *sqlx.Tx, article *domain.Article) error

	// GetArticleByIDWithLock reads the article with a row-level lock ("FOR UPDATE") so that
	// concurrent transitions on the same article serialize.
	GetArticleByIDWithLock(ctx context.Context, tx *sqlx.Tx, articleID string) (*domain.Article, error)

	UpdateArticleContent(ctx context.Context, tx *sqlx.Tx, articleID string, upd domain.ArticleUpdate, at time.Time) (*domain.Article, error)

	// AssignReviewer sets reviewer_id and moves the article to UNDER_REVIEW.
	AssignReviewer(ctx context.Context, tx *sqlx.Tx, articleID string, reviewerID string, at time.Time) error

	UpdateArticleStatus(ctx context.Context, tx *sqlx.Tx, articleID string, status domain.ArticleStatus, at time.Time) error

	// SetEditorFeedback writes the feedback and the resulting status. publishedAt is
	// only stored when non-nil.
	SetEditorFeedback(ctx context.Context, tx *sqlx.Tx, articleID string, feedback string, status domain.ArticleStatus, publishedAt *time.Time, at time.Time) error

	SetArticleIssue(ctx context.Context, tx *sqlx.Tx, articleID string, issueID string) error
}

// ReviewRepository stores reviews. The schema keeps one review per (article, reviewer).
type ReviewRepository interface {
	// CreatePendingReview returns *apperrors.ReviewerAlreadyAssignedError when the reviewer
	// already has a review for the article.
	CreatePendingReview(ctx context.Context, tx *sqlx.Tx, review *domain.Review) error

	// OpenPendingReview starts a review round for the reviewer: it inserts a PENDING review or
	// resets the existing (article, reviewer) row to PENDING, keeping its id and comments.
	OpenPendingReview(ctx context.Context, tx *sqlx.Tx, review *domain.Review) error

	// WithdrawPendingReviews deletes PENDING reviews of the article held by anyone but keepReviewerID.
	// Completed reviews stay as history.
	WithdrawPendingReviews(ctx context.Context, tx *sqlx.Tx, articleID string, keepReviewerID string) (int64, error)

	// CompleteReview inserts or updates the (article, reviewer) review as COMPLETED.
	CompleteReview(ctx context.Context, tx *sqlx.Tx, review *domain.Review) (*domain.Review, error)

	// GetReview returns apperrors.ErrNotFound if the reviewer has no review for the article.
	GetReview(ctx context.Context, ext sqlx.ExtContext, articleID string, reviewerID string) (*domain.Review, error)

	ListReviewsByArticle(ctx context.Context, articleID string) ([]domain.Review, error)

	GetReviewerWorkload(ctx context.Context) ([]domain.ReviewerWorkload, error)
}

type NotificationRepository interface {
	CreateNotifications(ctx context.Context, tx *sqlx.Tx, notifications []domain.Notification) error
	ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)

	// MarkRead returns apperrors.ErrNotFound if the notification does not belong to the user.
	MarkRead(ctx context.Context, userID string, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

type IssueRepository interface {
	// CreateIssue returns *apperrors.IssueExistsError on a duplicate volume/number.
	CreateIssue(ctx context.Context, issue *domain.Issue) error

	// GetIssueByID returns apperrors.ErrNotFound if the issue does not exist.
	GetIssueByID(ctx context.Context, ext sqlx.ExtContext, issueID string) (*domain.Issue, error)
	ListIssues(ctx context.Context) ([]domain.Issue, error)
}

// ConsistencyRepository finds rows where the review invariants drifted.
type ConsistencyRepository interface {
	// ListArticlesMissingReview returns articles with an assigned reviewer but no review row for that reviewer.
	ListArticlesMissingReview(ctx context.Context) ([]domain.Article, error)

	// ListStatusDrift returns UNDER_REVIEW articles whose assigned reviewer already completed a review.
	ListStatusDrift(ctx context.Context) ([]domain.StatusDrift, error)

	CountArticles(ctx context.Context) (int, error)
}
