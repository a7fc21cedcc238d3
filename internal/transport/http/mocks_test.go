package http

import (
	"context"
	"io"

	"github.com/YusovID/journal-review-service/internal/domain"
	"github.com/YusovID/journal-review-service/internal/service"
	"github.com/stretchr/testify/mock"
)

type AuthServiceMock struct {
	mock.Mock
}

var _ service.AuthService = (*AuthServiceMock)(nil)

func (m *AuthServiceMock) Register(ctx context.Context, in service.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *AuthServiceMock) Login(ctx context.Context, email string, password string) (*service.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *AuthServiceMock) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

type UserServiceMock struct {
	mock.Mock
}

var _ service.UserService = (*UserServiceMock)(nil)

func (m *UserServiceMock) ListUsers(ctx context.Context, role domain.Role, approval domain.ApprovalStatus) ([]domain.User, error) {
	args := m.Called(ctx, role, approval)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *UserServiceMock) ApproveUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserServiceMock) ApproveUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserServiceMock) RejectUser(ctx context.Context, userID string, reason string) (*domain.User, error) {
	args := m.Called(ctx, userID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserServiceMock) DeleteUser(ctx context.Context, callerID string, userID string) error {
	args := m.Called(ctx, callerID, userID)
	return args.Error(0)
}

type ArticleServiceMock struct {
	mock.Mock
}

var _ service.ArticleService = (*ArticleServiceMock)(nil)

func (m *ArticleServiceMock) Submit(ctx context.Context, author *domain.User, in service.SubmitInput) (*domain.Article, error) {
	args := m.Called(ctx, author, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *ArticleServiceMock) GetArticle(ctx context.Context, caller *domain.User, articleID string) (*domain.Article, error) {
	args := m.Called(ctx, caller, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *ArticleServiceMock) UpdateArticle(ctx context.Context, caller *domain.User, articleID string, upd domain.ArticleUpdate) (*domain.Article, error) {
	args := m.Called(ctx, caller, articleID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *ArticleServiceMock) ListArticles(ctx context.Context, status domain.ArticleStatus) ([]domain.Article, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *ArticleServiceMock) ListMyArticles(ctx context.Context, authorID string) ([]domain.Article, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *ArticleServiceMock) ListPublished(ctx context.Context, issueID string) ([]domain.Article, error) {
	args := m.Called(ctx, issueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *ArticleServiceMock) ListAssigned(ctx context.Context, reviewerID string) ([]domain.Article, error) {
	args := m.Called(ctx, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *ArticleServiceMock) ListArticleReviews(ctx context.Context, articleID string) ([]domain.Review, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *ArticleServiceMock) GetMyReview(ctx context.Context, reviewerID string, articleID string) (*domain.Review, error) {
	args := m.Called(ctx, reviewerID, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Review), args.Error(1)
}

type WorkflowServiceMock struct {
	mock.Mock
}

var _ service.WorkflowService = (*WorkflowServiceMock)(nil)

func (m *WorkflowServiceMock) AssignReviewer(ctx context.Context, articleID string, reviewerID string) (*domain.Article, error) {
	args := m.Called(ctx, articleID, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *WorkflowServiceMock) SubmitReview(ctx context.Context, reviewer *domain.User, articleID string, in service.ReviewInput) (*service.ReviewResult, error) {
	args := m.Called(ctx, reviewer, articleID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.ReviewResult), args.Error(1)
}

func (m *WorkflowServiceMock) SubmitFeedback(ctx context.Context, articleID string, feedback string) (*service.FeedbackResult, error) {
	args := m.Called(ctx, articleID, feedback)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.FeedbackResult), args.Error(1)
}

type NotificationServiceMock struct {
	mock.Mock
}

var _ service.NotificationService = (*NotificationServiceMock)(nil)

func (m *NotificationServiceMock) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *NotificationServiceMock) MarkRead(ctx context.Context, userID string, notificationID string) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *NotificationServiceMock) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type IssueServiceMock struct {
	mock.Mock
}

var _ service.IssueService = (*IssueServiceMock)(nil)

func (m *IssueServiceMock) CreateIssue(ctx context.Context, in service.IssueInput) (*domain.Issue, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Issue), args.Error(1)
}

func (m *IssueServiceMock) ListIssues(ctx context.Context) ([]domain.Issue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Issue), args.Error(1)
}

func (m *IssueServiceMock) GetIssue(ctx context.Context, issueID string) (*domain.Issue, error) {
	args := m.Called(ctx, issueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Issue), args.Error(1)
}

func (m *IssueServiceMock) AttachArticle(ctx context.Context, issueID string, articleID string) (*domain.Article, error) {
	args := m.Called(ctx, issueID, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Article), args.Error(1)
}

type StatsServiceMock struct {
	mock.Mock
}

var _ service.StatsService = (*StatsServiceMock)(nil)

func (m *StatsServiceMock) GetStats(ctx context.Context) (*domain.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Stats), args.Error(1)
}

type UploadServiceMock struct {
	mock.Mock
}

var _ service.UploadService = (*UploadServiceMock)(nil)

func (m *UploadServiceMock) Upload(ctx context.Context, filename string, size int64, r io.Reader) (string, error) {
	body, _ := io.ReadAll(r)

	args := m.Called(ctx, filename, size, string(body))

	return args.String(0), args.Error(1)
}

func (m *UploadServiceMock) Delete(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}
