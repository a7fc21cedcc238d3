package domain

// StatusForRecommendation maps a completed review's verdict to the article status
// it implies. The second result is false for unknown recommendations.
func StatusForRecommendation(r Recommendation) (ArticleStatus, bool) {
	switch r {
	case RecommendAccept:
		return StatusAccepted, true
	case RecommendReject:
		return StatusRejected, true
	case RecommendMajorRevision, RecommendMinorRevision:
		return StatusRevisionRequested, true
	}

	return "", false
}

func (r Recommendation) Valid() bool {
	_, ok := StatusForRecommendation(r)
	return ok
}

// Published articles are terminal for every workflow action.

func (s ArticleStatus) CanAssignReviewer() bool { return s != StatusPublished }
func (s ArticleStatus) AcceptsReview() bool     { return s != StatusPublished }
func (s ArticleStatus) Editable() bool          { return s != StatusPublished }

// AfterFeedback returns the status an article moves to when an editor attaches
// feedback. Only ACCEPTED articles change (to PUBLISHED).
func AfterFeedback(current ArticleStatus) (next ArticleStatus, publish bool) {
	if current == StatusAccepted {
		return StatusPublished, true
	}

	return current, false
}

// InitialApproval is the approval state of a freshly registered account.
// Authors may submit right away, editors and reviewers wait for an editor.
func InitialApproval(role Role) ApprovalStatus {
	if role == RoleAuthor {
		return ApprovalApproved
	}

	return ApprovalPending
}

func (a *Article) IsAuthor(userID string) bool {
	return a.AuthorID == userID
}

func (a *Article) IsAssignedReviewer(userID string) bool {
	return a.ReviewerID != nil && *a.ReviewerID == userID
}

// VisibleTo reports whether u may read the article.
func (a *Article) VisibleTo(u *User) bool {
	if a.Status == StatusPublished {
		return true
	}

	if u == nil {
		return false
	}

	return u.Role == RoleEditor || a.IsAuthor(u.ID) || a.IsAssignedReviewer(u.ID)
}
