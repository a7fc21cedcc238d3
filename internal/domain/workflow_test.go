package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusForRecommendation(t *testing.T) {
	testCases := []struct {
		rec      Recommendation
		expected ArticleStatus
		ok       bool
	}{
		{rec: RecommendAccept, expected: StatusAccepted, ok: true},
		{rec: RecommendReject, expected: StatusRejected, ok: true},
		{rec: RecommendMajorRevision, expected: StatusRevisionRequested, ok: true},
		{rec: RecommendMinorRevision, expected: StatusRevisionRequested, ok: true},
		{rec: "MAYBE", expected: "", ok: false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.rec), func(t *testing.T) {
			status, ok := StatusForRecommendation(tc.rec)
			assert.Equal(t, tc.expected, status)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.ok, tc.rec.Valid())
		})
	}
}

func TestAfterFeedback(t *testing.T) {
	for _, st := range ArticleStatuses {
		t.Run(string(st), func(t *testing.T) {
			next, publish := AfterFeedback(st)
			if st == StatusAccepted {
				assert.True(t, publish)
				assert.Equal(t, StatusPublished, next)
				return
			}

			assert.False(t, publish)
			assert.Equal(t, st, next)
		})
	}
}

func TestPublishedIsTerminal(t *testing.T) {
	assert.False(t, StatusPublished.CanAssignReviewer())
	assert.False(t, StatusPublished.AcceptsReview())
	assert.False(t, StatusPublished.Editable())

	assert.True(t, StatusSubmitted.CanAssignReviewer())
	assert.True(t, StatusUnderReview.AcceptsReview())
	assert.True(t, StatusRevisionRequested.Editable())
}

func TestInitialApproval(t *testing.T) {
	assert.Equal(t, ApprovalApproved, InitialApproval(RoleAuthor))
	assert.Equal(t, ApprovalPending, InitialApproval(RoleReviewer))
	assert.Equal(t, ApprovalPending, InitialApproval(RoleEditor))
}

func TestArticle_VisibleTo(t *testing.T) {
	reviewerID := "rev-1"
	article := &Article{ID: "a1", AuthorID: "auth-1", ReviewerID: &reviewerID, Status: StatusUnderReview}

	testCases := []struct {
		name     string
		user     *User
		status   ArticleStatus
		expected bool
	}{
		{name: "editor", user: &User{ID: "ed", Role: RoleEditor}, status: StatusUnderReview, expected: true},
		{name: "owner", user: &User{ID: "auth-1", Role: RoleAuthor}, status: StatusUnderReview, expected: true},
		{name: "assigned reviewer", user: &User{ID: "rev-1", Role: RoleReviewer}, status: StatusUnderReview, expected: true},
		{name: "other reviewer", user: &User{ID: "rev-2", Role: RoleReviewer}, status: StatusUnderReview, expected: false},
		{name: "other author", user: &User{ID: "auth-2", Role: RoleAuthor}, status: StatusAccepted, expected: false},
		{name: "anonymous on unpublished", user: nil, status: StatusAccepted, expected: false},
		{name: "anonymous on published", user: nil, status: StatusPublished, expected: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := *article
			a.Status = tc.status
			assert.Equal(t, tc.expected, a.VisibleTo(tc.user))
		})
	}
}

func TestRoleAndStatusValid(t *testing.T) {
	assert.True(t, RoleEditor.Valid())
	assert.False(t, Role("ADMIN").Valid())
	assert.True(t, StatusPublished.Valid())
	assert.False(t, ArticleStatus("DRAFT").Valid())
}
