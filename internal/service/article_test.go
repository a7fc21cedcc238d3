package service

import (
	"context"
	"strings"
	"testing"

	"github.com/YusovID/journal-review-service/internal/apperrors"
	"github.com/YusovID/journal-review-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type articleMocks struct {
	transactor   *TransactorMock
	articleQuery *ArticleQueryRepositoryMock
	articleCmd   *ArticleCommandRepositoryMock
	reviews      *ReviewRepositoryMock
	notifier     *NotifierMock
}

func newArticleService(t *testing.T) (*ArticleServiceImpl, *articleMocks) {
	t.Helper()

	m := &articleMocks{
		transactor:   new(TransactorMock),
		articleQuery: new(ArticleQueryRepositoryMock),
		articleCmd:   new(ArticleCommandRepositoryMock),
		reviews:      new(ReviewRepositoryMock),
		notifier:     newNotifierMock(t),
	}

	s := NewArticleService(NewBaseService(m.transactor, nil, newTestLogger()), m.articleQuery, m.articleCmd, m.reviews, m.notifier)

	return s, m
}

func (m *articleMocks) assertExpectations(t *testing.T) {
	m.transactor.AssertExpectations(t)
	m.articleQuery.AssertExpectations(t)
	m.articleCmd.AssertExpectations(t)
	m.reviews.AssertExpectations(t)
	m.notifier.AssertExpectations(t)
}

func TestArticleServiceImpl_Submit(t *testing.T) {
	ctx := context.Background()
	author := &domain.User{ID: "author", Email: "ada@journal.test", Name: "Ada", Role: domain.RoleAuthor}

	t.Run("Success", func(t *testing.T) {
		s, m := newArticleService(t)
		tx := beginTx(t, m.transactor, true)

		m.articleCmd.On("CreateArticle", ctx, tx, mock.MatchedBy(func(a *domain.Article) bool {
			return a.Status == domain.StatusSubmitted && a.AuthorID == "author" && a.Title == "Heart study" &&
				assert.ObjectsAreEqual([]string{"cardiology", "ecg"}, []string(a.Keywords))
		})).Return(nil).Once()
		m.notifier.On("Record", ctx, tx, notificationsFor(domain.NotificationArticleSubmitted, "author")).Return(nil).Once()
		m.notifier.On("Flush", ctx, outboxWith(1)).Once()

		article, err := s.Submit(ctx, author, SubmitInput{
			Title:    "  Heart study ",
			Abstract: "A cohort study of arrhythmia in adults.",
			Keywords: []string{" cardiology", "", "ecg "},
			Authors:  []string{"Ada"},
			PDFURL:   "/files/a.pdf",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, article.ID)
		assert.Equal(t, domain.StatusSubmitted, article.Status)
		assert.Nil(t, article.ReviewerID)
		assert.False(t, article.SubmittedAt.IsZero())
		m.assertExpectations(t)
	})

	t.Run("Failure: blank content", func(t *testing.T) {
		valid := func() SubmitInput {
			return SubmitInput{
				Title:    "Heart study",
				Abstract: "A cohort study of arrhythmia in adults.",
				Keywords: []string{"cardiology"},
				Authors:  []string{"Ada"},
				PDFURL:   "/files/a.pdf",
			}
		}

		testCases := []struct {
			name   string
			mutate func(in *SubmitInput)
		}{
			{"whitespace title", func(in *SubmitInput) { in.Title = "      " }},
			{"title short after trimming", func(in *SubmitInput) { in.Title = "  Hi   " }},
			{"whitespace abstract", func(in *SubmitInput) { in.Abstract = strings.Repeat(" ", 30) }},
			{"only blank keywords", func(in *SubmitInput) { in.Keywords = []string{" ", ""} }},
			{"only blank authors", func(in *SubmitInput) { in.Authors = []string{"  "} }},
			{"blank pdf url", func(in *SubmitInput) { in.PDFURL = "   " }},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				s, m := newArticleService(t)

				in := valid()
				tc.mutate(&in)

				article, err := s.Submit(ctx, author, in)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				assert.Nil(t, article)
				m.assertExpectations(t)
			})
		}
	})

	t.Run("Failure: reviewer cannot submit", func(t *testing.T) {
		s, m := newArticleService(t)

		_, err := s.Submit(ctx, &domain.User{ID: "rev", Role: domain.RoleReviewer}, SubmitInput{Title: "X"})
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		m.assertExpectations(t)
	})
}

func TestArticleServiceImpl_GetArticle(t *testing.T) {
	ctx := context.Background()

	submitted := &domain.Article{ID: "a-1", AuthorID: "author", Status: domain.StatusUnderReview, ReviewerID: ptr("rev")}
	published := &domain.Article{ID: "a-2", AuthorID: "author", Status: domain.StatusPublished}

	testCases := []struct {
		name        string
		caller      *domain.User
		article     *domain.Article
		expectedErr error
	}{
		{name: "anonymous sees published", caller: nil, article: published},
		{name: "anonymous cannot see submitted", caller: nil, article: submitted, expectedErr: apperrors.ErrUnauthenticated},
		{name: "author sees own", caller: &domain.User{ID: "author", Role: domain.RoleAuthor}, article: submitted},
		{name: "other author forbidden", caller: &domain.User{ID: "other", Role: domain.RoleAuthor}, article: submitted, expectedErr: apperrors.ErrForbidden},
		{name: "assigned reviewer sees it", caller: &domain.User{ID: "rev", Role: domain.RoleReviewer}, article: submitted},
		{name: "other reviewer forbidden", caller: &domain.User{ID: "rev-2", Role: domain.RoleReviewer}, article: submitted, expectedErr: apperrors.ErrForbidden},
		{name: "editor sees everything", caller: &domain.User{ID: "ed", Role: domain.RoleEditor}, article: submitted},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, m := newArticleService(t)
			m.articleQuery.On("GetArticleByID", ctx, tc.article.ID).Return(tc.article, nil).Once()

			got, err := s.GetArticle(ctx, tc.caller, tc.article.ID)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.article.ID, got.ID)
			}

			m.assertExpectations(t)
		})
	}

	t.Run("not found", func(t *testing.T) {
		s, m := newArticleService(t)
		m.articleQuery.On("GetArticleByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

		_, err := s.GetArticle(ctx, nil, "missing")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		m.assertExpectations(t)
	})
}

func TestArticleServiceImpl_UpdateArticle(t *testing.T) {
	ctx := context.Background()
	author := &domain.User{ID: "author", Role: domain.RoleAuthor}
	title := "Revised"

	t.Run("Success", func(t *testing.T) {
		s, m := newArticleService(t)
		tx := beginTx(t, m.transactor, true)

		m.articleCmd.On("GetArticleByIDWithLock", ctx, tx, "a-1").
			Return(&domain.Article{ID: "a-1", AuthorID: "author", Status: domain.StatusRevisionRequested}, nil).Once()
		m.articleCmd.On("UpdateArticleContent", ctx, tx, "a-1", domain.ArticleUpdate{Title: &title, Keywords: []string{"a"}}, mock.Anything).
			Return(&domain.Article{ID: "a-1", Title: title, Status: domain.StatusRevisionRequested}, nil).Once()

		got, err := s.UpdateArticle(ctx, author, "a-1", domain.ArticleUpdate{Title: ptr("  Revised "), Keywords: []string{" a ", " "}})
		require.NoError(t, err)
		assert.Equal(t, title, got.Title)
		assert.Equal(t, domain.StatusRevisionRequested, got.Status)
		m.assertExpectations(t)
	})

	t.Run("Failure: blank content", func(t *testing.T) {
		testCases := []struct {
			name string
			upd  domain.ArticleUpdate
		}{
			{"whitespace title", domain.ArticleUpdate{Title: ptr("      ")}},
			{"whitespace abstract", domain.ArticleUpdate{Abstract: ptr(strings.Repeat(" ", 25))}},
			{"only blank keywords", domain.ArticleUpdate{Keywords: []string{" "}}},
			{"blank pdf url", domain.ArticleUpdate{PDFURL: ptr("")}},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				s, m := newArticleService(t)

				got, err := s.UpdateArticle(ctx, author, "a-1", tc.upd)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				assert.Nil(t, got)
				m.assertExpectations(t)
			})
		}
	})

	t.Run("Failure: not the author", func(t *testing.T) {
		s, m := newArticleService(t)
		tx := beginTx(t, m.transactor, false)

		m.articleCmd.On("GetArticleByIDWithLock", ctx, tx, "a-1").
			Return(&domain.Article{ID: "a-1", AuthorID: "someone", Status: domain.StatusSubmitted}, nil).Once()

		_, err := s.UpdateArticle(ctx, author, "a-1", domain.ArticleUpdate{Title: &title})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		m.assertExpectations(t)
	})

	t.Run("Failure: published", func(t *testing.T) {
		s, m := newArticleService(t)
		tx := beginTx(t, m.transactor, false)

		m.articleCmd.On("GetArticleByIDWithLock", ctx, tx, "a-1").
			Return(&domain.Article{ID: "a-1", AuthorID: "author", Status: domain.StatusPublished}, nil).Once()

		_, err := s.UpdateArticle(ctx, author, "a-1", domain.ArticleUpdate{Title: &title})
		assert.ErrorIs(t, err, apperrors.ErrArticlePublished)
		m.assertExpectations(t)
	})
}

func TestArticleServiceImpl_Lists(t *testing.T) {
	ctx := context.Background()
	articles := []domain.Article{{ID: "a-1"}}

	t.Run("ListArticles filters by status", func(t *testing.T) {
		s, m := newArticleService(t)
		m.articleQuery.On("ListArticles", ctx, domain.ArticleFilter{Status: domain.StatusAccepted}).Return(articles, nil).Once()

		got, err := s.ListArticles(ctx, domain.StatusAccepted)
		require.NoError(t, err)
		assert.Equal(t, articles, got)
		m.assertExpectations(t)
	})

	t.Run("ListArticles rejects unknown status", func(t *testing.T) {
		s, _ := newArticleService(t)

		_, err := s.ListArticles(ctx, "DRAFT")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("ListMyArticles", func(t *testing.T) {
		s, m := newArticleService(t)
		m.articleQuery.On("ListArticles", ctx, domain.ArticleFilter{AuthorID: "author"}).Return(articles, nil).Once()

		_, err := s.ListMyArticles(ctx, "author")
		require.NoError(t, err)
		m.assertExpectations(t)
	})

	t.Run("ListPublished", func(t *testing.T) {
		s, m := newArticleService(t)
		m.articleQuery.On("ListArticles", ctx, domain.ArticleFilter{Status: domain.StatusPublished, IssueID: "i-1"}).Return(articles, nil).Once()

		_, err := s.ListPublished(ctx, "i-1")
		require.NoError(t, err)
		m.assertExpectations(t)
	})

	t.Run("ListAssigned", func(t *testing.T) {
		s, m := newArticleService(t)
		m.articleQuery.On("ListArticles", ctx, domain.ArticleFilter{ReviewerID: "rev"}).Return(articles, nil).Once()

		_, err := s.ListAssigned(ctx, "rev")
		require.NoError(t, err)
		m.assertExpectations(t)
	})
}

func TestArticleServiceImpl_Reviews(t *testing.T) {
	ctx := context.Background()
	article := &domain.Article{ID: "a-1", Status: domain.StatusUnderReview, ReviewerID: ptr("rev")}

	t.Run("ListArticleReviews", func(t *testing.T) {
		s, m := newArticleService(t)
		reviews := []domain.Review{{ID: "r-1", ArticleID: "a-1"}}
		m.articleQuery.On("GetArticleByID", ctx, "a-1").Return(article, nil).Once()
		m.reviews.On("ListReviewsByArticle", ctx, "a-1").Return(reviews, nil).Once()

		got, err := s.ListArticleReviews(ctx, "a-1")
		require.NoError(t, err)
		assert.Equal(t, reviews, got)
		m.assertExpectations(t)
	})

	t.Run("GetMyReview assigned", func(t *testing.T) {
		s, m := newArticleService(t)
		m.articleQuery.On("GetArticleByID", ctx, "a-1").Return(article, nil).Once()
		m.reviews.On("GetReview", ctx, nil, "a-1", "rev").Return(&domain.Review{ID: "r-1", Status: domain.ReviewPending}, nil).Once()

		got, err := s.GetMyReview(ctx, "rev", "a-1")
		require.NoError(t, err)
		assert.Equal(t, domain.ReviewPending, got.Status)
		m.assertExpectations(t)
	})

	t.Run("GetMyReview not assigned", func(t *testing.T) {
		s, m := newArticleService(t)
		m.articleQuery.On("GetArticleByID", ctx, "a-1").Return(article, nil).Once()

		_, err := s.GetMyReview(ctx, "rev-2", "a-1")
		assert.ErrorIs(t, err, apperrors.ErrNotAssignedReviewer)
		m.assertExpectations(t)
	})
}
