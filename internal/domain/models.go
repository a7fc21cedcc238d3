package domain

import (
	"time"

	"github.com/lib/pq"
)

type Role string

const (
	RoleAuthor   Role = "AUTHOR"
	RoleEditor   Role = "EDITOR"
	RoleReviewer Role = "REVIEWER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAuthor, RoleEditor, RoleReviewer:
		return true
	}

	return false
}

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

type ArticleStatus string

const (
	StatusSubmitted         ArticleStatus = "SUBMITTED"
	StatusUnderReview       ArticleStatus = "UNDER_REVIEW"
	StatusAccepted          ArticleStatus = "ACCEPTED"
	StatusRejected          ArticleStatus = "REJECTED"
	StatusRevisionRequested ArticleStatus = "REVISION_REQUESTED"
	StatusPublished         ArticleStatus = "PUBLISHED"
)

var ArticleStatuses = []ArticleStatus{
	StatusSubmitted,
	StatusUnderReview,
	StatusAccepted,
	StatusRejected,
	StatusRevisionRequested,
	StatusPublished,
}

func (s ArticleStatus) Valid() bool {
	for _, st := range ArticleStatuses {
		if s == st {
			return true
		}
	}

	return false
}

type ReviewStatus string

const (
	ReviewPending   ReviewStatus = "PENDING"
	ReviewCompleted ReviewStatus = "COMPLETED"
)

type Recommendation string

const (
	RecommendAccept        Recommendation = "ACCEPT"
	RecommendReject        Recommendation = "REJECT"
	RecommendMajorRevision Recommendation = "MAJOR_REVISION"
	RecommendMinorRevision Recommendation = "MINOR_REVISION"
)

type NotificationType string

const (
	NotificationArticleSubmitted NotificationType = "ARTICLE_SUBMITTED"
	NotificationArticleAssigned  NotificationType = "ARTICLE_ASSIGNED"
	NotificationReviewSubmitted  NotificationType = "REVIEW_SUBMITTED"
	NotificationEditorFeedback   NotificationType = "EDITOR_FEEDBACK"
	NotificationUserApproved     NotificationType = "USER_APPROVED"
)

type User struct {
	ID             string         `db:"id"`
	Email          string         `db:"email"`
	PasswordHash   string         `db:"password_hash"`
	Name           string         `db:"name"`
	Role           Role           `db:"role"`
	ApprovalStatus ApprovalStatus `db:"approval_status"`
	Affiliation    *string        `db:"affiliation"`
	CreatedAt      time.Time      `db:"created_at"`
}

type Article struct {
	ID             string         `db:"id"`
	Title          string         `db:"title"`
	Abstract       string         `db:"abstract"`
	Keywords       pq.StringArray `db:"keywords"`
	Authors        pq.StringArray `db:"authors"`
	AuthorID       string         `db:"author_id"`
	ReviewerID     *string        `db:"reviewer_id"`
	Status         ArticleStatus  `db:"status"`
	PDFURL         string         `db:"pdf_url"`
	EditorFeedback *string        `db:"editor_feedback"`
	IssueID        *string        `db:"issue_id"`
	SubmittedAt    time.Time      `db:"submitted_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	PublishedAt    *time.Time     `db:"published_at"`
}

// ArticleUpdate carries the author-editable fields. Nil fields are left as is.
type ArticleUpdate struct {
	Title    *string
	Abstract *string
	Keywords []string
	Authors  []string
	PDFURL   *string
}

type ArticleFilter struct {
	Status     ArticleStatus
	AuthorID   string
	ReviewerID string
	IssueID    string
}

type Review struct {
	ID             string          `db:"id"`
	ArticleID      string          `db:"article_id"`
	ReviewerID     string          `db:"reviewer_id"`
	Status         ReviewStatus    `db:"status"`
	Recommendation *Recommendation `db:"recommendation"`
	Comments       *string         `db:"comments"`
	Confidential   *string         `db:"confidential"`
	CreatedAt      time.Time       `db:"created_at"`
	SubmittedAt    *time.Time      `db:"submitted_at"`
}

type Notification struct {
	ID        string           `db:"id"`
	UserID    string           `db:"user_id"`
	Type      NotificationType `db:"type"`
	Title     string           `db:"title"`
	Message   string           `db:"message"`
	ArticleID *string          `db:"article_id"`
	Link      *string          `db:"link"`
	IsRead    bool             `db:"is_read"`
	CreatedAt time.Time        `db:"created_at"`
}

type Issue struct {
	ID          string     `db:"id"`
	Volume      int        `db:"volume"`
	Number      int        `db:"number"`
	Year        int        `db:"year"`
	PublishedAt *time.Time `db:"published_at"`
	CreatedAt   time.Time  `db:"created_at"`
	Articles    []Article  `db:"-"`
}

type StatusCount struct {
	Status ArticleStatus `db:"status"`
	Count  int           `db:"count"`
}

type ReviewerWorkload struct {
	ReviewerID string `db:"reviewer_id"`
	Name       string `db:"name"`
	Pending    int    `db:"pending_reviews"`
	Completed  int    `db:"completed_reviews"`
}

type Stats struct {
	Articles  []StatusCount
	Reviewers []ReviewerWorkload
}

// StatusDrift is an article whose status disagrees with its assigned reviewer's completed review.
type StatusDrift struct {
	ArticleID      string         `db:"article_id"`
	Title          string         `db:"title"`
	Status         ArticleStatus  `db:"status"`
	Recommendation Recommendation `db:"recommendation"`
}

// RepairReport describes what a consistency pass found or fixed.
type RepairReport struct {
	MissingReviews  []string
	StatusMismatch  []string
	DryRun          bool
	ArticlesChecked int
}
