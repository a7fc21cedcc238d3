package service

import (
	"context"
	"database/sql"
	"io"
	"time"

	"github.com/YusovID/journal-review-service/internal/auth"
	"github.com/YusovID/journal-review-service/internal/domain"
	"github.com/YusovID/journal-review-service/internal/mailer"
	"github.com/YusovID/journal-review-service/internal/notify"
	"github.com/YusovID/journal-review-service/internal/repository"
	"github.com/YusovID/journal-review-service/internal/storage"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type TransactorMock struct {
	mock.Mock
}

func (m *TransactorMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	var tx *sqlx.Tx

	args := m.Called(ctx, opts)
	if args.Get(0) != nil {
		tx = args.Get(0).(*sqlx.Tx)
	}

	return tx, args.Error(1)
}

type UserRepositoryMock struct {
	mock.Mock
}

var _ repository.UserRepository = (*UserRepositoryMock)(nil)

func (m *UserRepositoryMock) CreateUser(ctx context.Context, tx *sqlx.Tx, user *domain.User) error {
	args := m.Called(ctx, tx, user)
	return args.Error(0)
}

func (m *UserRepositoryMock) GetUserByID(ctx context.Context, ext sqlx.ExtContext, userID string) (*domain.User, error) {
	args := m.Called(ctx, ext, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) ListUsers(ctx context.Context, ext sqlx.ExtContext, role domain.Role, approval domain.ApprovalStatus) ([]domain.User, error) {
	args := m.Called(ctx, ext, role, approval)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *UserRepositoryMock) SetApprovalStatus(ctx context.Context, tx *sqlx.Tx, userID string, status domain.ApprovalStatus) error {
	args := m.Called(ctx, tx, userID, status)
	return args.Error(0)
}

func (m *UserRepositoryMock) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type ArticleQueryRepositoryMock struct {
	mock.Mock
}

var _ repository.ArticleQueryRepository = (*ArticleQueryRepositoryMock)(nil)

func (m *ArticleQueryRepositoryMock) GetArticleByID(ctx context.Context, articleID string) (*domain.Article, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *ArticleQueryRepositoryMock) ListArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *ArticleQueryRepositoryMock) GetStatusCounts(ctx context.Context) ([]domain.StatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.StatusCount), args.Error(1)
}

type ArticleCommandRepositoryMock struct {
	mock.Mock
}

var _ repository.ArticleCommandRepository = (*ArticleCommandRepositoryMock)(nil)

func (m *ArticleCommandRepositoryMock) CreateArticle(ctx context.Context, tx *sqlx.Tx, article *domain.Article) error {
	args := m.Called(ctx, tx, article)
	return args.Error(0)
}

func (m *ArticleCommandRepositoryMock) GetArticleByIDWithLock(ctx context.Context, tx *sqlx.Tx, articleID string) (*domain.Article, error) {
	args := m.Called(ctx, tx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *ArticleCommandRepositoryMock) UpdateArticleContent(ctx context.Context, tx *sqlx.Tx, articleID string, upd domain.ArticleUpdate, at time.Time) (*domain.Article, error) {
	args := m.Called(ctx, tx, articleID, upd, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *ArticleCommandRepositoryMock) AssignReviewer(ctx context.Context, tx *sqlx.Tx, articleID string, reviewerID string, at time.Time) error {
	args := m.Called(ctx, tx, articleID, reviewerID, at)
	return args.Error(0)
}

func (m *ArticleCommandRepositoryMock) UpdateArticleStatus(ctx context.Context, tx *sqlx.Tx, articleID string, status domain.ArticleStatus, at time.Time) error {
	args := m.Called(ctx, tx, articleID, status, at)
	return args.Error(0)
}

func (m *ArticleCommandRepositoryMock) SetEditorFeedback(ctx context.Context, tx *sqlx.Tx, articleID string, feedback string, status domain.ArticleStatus, publishedAt *time.Time, at time.Time) error {
	args := m.Called(ctx, tx, articleID, feedback, status, publishedAt, at)
	return args.Error(0)
}

func (m *ArticleCommandRepositoryMock) SetArticleIssue(ctx context.Context, tx *sqlx.Tx, articleID string, issueID string) error {
	args := m.Called(ctx, tx, articleID, issueID)
	return args.Error(0)
}

type ReviewRepositoryMock struct {
	mock.Mock
}

var _ repository.ReviewRepository = (*ReviewRepositoryMock)(nil)

func (m *ReviewRepositoryMock) CreatePendingReview(ctx context.Context, tx *sqlx.Tx, review *domain.Review) error {
	args := m.Called(ctx, tx, review)
	return args.Error(0)
}

func (m *ReviewRepositoryMock) OpenPendingReview(ctx context.Context, tx *sqlx.Tx, review *domain.Review) error {
	args := m.Called(ctx, tx, review)
	return args.Error(0)
}

func (m *ReviewRepositoryMock) WithdrawPendingReviews(ctx context.Context, tx *sqlx.Tx, articleID string, keepReviewerID string) (int64, error) {
	args := m.Called(ctx, tx, articleID, keepReviewerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ReviewRepositoryMock) CompleteReview(ctx context.Context, tx *sqlx.Tx, review *domain.Review) (*domain.Review, error) {
	args := m.Called(ctx, tx, review)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *ReviewRepositoryMock) GetReview(ctx context.Context, ext sqlx.ExtContext, articleID string, reviewerID string) (*domain.Review, error) {
	args := m.Called(ctx, ext, articleID, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *ReviewRepositoryMock) ListReviewsByArticle(ctx context.Context, articleID string) ([]domain.Review, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *ReviewRepositoryMock) GetReviewerWorkload(ctx context.Context) ([]domain.ReviewerWorkload, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.ReviewerWorkload), args.Error(1)
}

type NotificationRepositoryMock struct {
	mock.Mock
}

var _ repository.NotificationRepository = (*NotificationRepositoryMock)(nil)

func (m *NotificationRepositoryMock) CreateNotifications(ctx context.Context, tx *sqlx.Tx, notifications []domain.Notification) error {
	args := m.Called(ctx, tx, notifications)
	return args.Error(0)
}

func (m *NotificationRepositoryMock) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *NotificationRepositoryMock) MarkRead(ctx context.Context, userID string, notificationID string) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *NotificationRepositoryMock) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type IssueRepositoryMock struct {
	mock.Mock
}

var _ repository.IssueRepository = (*IssueRepositoryMock)(nil)

func (m *IssueRepositoryMock) CreateIssue(ctx context.Context, issue *domain.Issue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *IssueRepositoryMock) GetIssueByID(ctx context.Context, ext sqlx.ExtContext, issueID string) (*domain.Issue, error) {
	args := m.Called(ctx, ext, issueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Issue), args.Error(1)
}

func (m *IssueRepositoryMock) ListIssues(ctx context.Context) ([]domain.Issue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Issue), args.Error(1)
}

type ConsistencyRepositoryMock struct {
	mock.Mock
}

var _ repository.ConsistencyRepository = (*ConsistencyRepositoryMock)(nil)

func (m *ConsistencyRepositoryMock) ListArticlesMissingReview(ctx context.Context) ([]domain.Article, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *ConsistencyRepositoryMock) ListStatusDrift(ctx context.Context) ([]domain.StatusDrift, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.StatusDrift), args.Error(1)
}

func (m *ConsistencyRepositoryMock) CountArticles(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// NotifierMock records calls but renders emails with the real templates.
type NotifierMock struct {
	mock.Mock
	templates *mailer.Templates
}

var _ Notifier = (*NotifierMock)(nil)

func (m *NotifierMock) Record(ctx context.Context, tx *sqlx.Tx, notifications ...domain.Notification) error {
	args := m.Called(ctx, tx, notifications)
	return args.Error(0)
}

func (m *NotifierMock) Flush(ctx context.Context, outbox *notify.Outbox) {
	m.Called(ctx, outbox)
}

func (m *NotifierMock) Templates() *mailer.Templates {
	return m.templates
}

type TokenIssuerMock struct {
	mock.Mock
}

var _ TokenIssuer = (*TokenIssuerMock)(nil)

func (m *TokenIssuerMock) Issue(user *domain.User) (string, time.Time, error) {
	args := m.Called(user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *TokenIssuerMock) Parse(token string) (*auth.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*auth.Claims), args.Error(1)
}

type BlobStoreMock struct {
	mock.Mock
}

var _ storage.BlobStore = (*BlobStoreMock)(nil)

func (m *BlobStoreMock) Put(ctx context.Context, name string, contentType string, r io.Reader) (string, error) {
	if r != nil {
		_, _ = io.Copy(io.Discard, r)
	}

	args := m.Called(ctx, name, contentType, r)

	return args.String(0), args.Error(1)
}

func (m *BlobStoreMock) Delete(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}
