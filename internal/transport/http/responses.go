package http

import (
	"time"

	"github.com/YusovID/journal-review-service/internal/domain"
)

type userResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	ApprovalStatus string    `json:"approval_status"`
	Affiliation    *string   `json:"affiliation"`
	CreatedAt      time.Time `json:"created_at"`
}

func toUser(u *domain.User) userResponse {
	return userResponse{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           string(u.Role),
		ApprovalStatus: string(u.ApprovalStatus),
		Affiliation:    u.Affiliation,
		CreatedAt:      u.CreatedAt,
	}
}

func toUsers(users []domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i := range users {
		out[i] = toUser(&users[i])
	}

	return out
}

type articleResponse struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Abstract       string     `json:"abstract"`
	Keywords       []string   `json:"keywords"`
	Authors        []string   `json:"authors"`
	AuthorID       string     `json:"author_id"`
	ReviewerID     *string    `json:"reviewer_id"`
	Status         string     `json:"status"`
	PDFURL         string     `json:"pdf_url"`
	EditorFeedback *string    `json:"editor_feedback"`
	IssueID        *string    `json:"issue_id"`
	SubmittedAt    time.Time  `json:"submitted_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	PublishedAt    *time.Time `json:"published_at"`
}

func toArticle(a *domain.Article) articleResponse {
	return articleResponse{
		ID:             a.ID,
		Title:          a.Title,
		Abstract:       a.Abstract,
		Keywords:       nonNil(a.Keywords),
		Authors:        nonNil(a.Authors),
		AuthorID:       a.AuthorID,
		ReviewerID:     a.ReviewerID,
		Status:         string(a.Status),
		PDFURL:         a.PDFURL,
		EditorFeedback: a.EditorFeedback,
		IssueID:        a.IssueID,
		SubmittedAt:    a.SubmittedAt,
		UpdatedAt:      a.UpdatedAt,
		PublishedAt:    a.PublishedAt,
	}
}

func toArticles(articles []domain.Article) []articleResponse {
	out := make([]articleResponse, len(articles))
	for i := range articles {
		out[i] = toArticle(&articles[i])
	}

	return out
}

type reviewResponse struct {
	ID             string     `json:"id"`
	ArticleID      string     `json:"article_id"`
	ReviewerID     string     `json:"reviewer_id"`
	Status         string     `json:"status"`
	Recommendation *string    `json:"recommendation"`
	Comments       *string    `json:"comments"`
	Confidential   *string    `json:"confidential_notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	SubmittedAt    *time.Time `json:"submitted_at"`
}

// toReview hides the confidential notes from everyone but editors and the
// reviewer who wrote them.
func toReview(r *domain.Review, viewer *domain.User) reviewResponse {
	resp := reviewResponse{
		ID:          r.ID,
		ArticleID:   r.ArticleID,
		ReviewerID:  r.ReviewerID,
		Status:      string(r.Status),
		Comments:    r.Comments,
		CreatedAt:   r.CreatedAt,
		SubmittedAt: r.SubmittedAt,
	}

	if r.Recommendation != nil {
		rec := string(*r.Recommendation)
		resp.Recommendation = &rec
	}

	if viewer != nil && (viewer.Role == domain.RoleEditor || viewer.ID == r.ReviewerID) {
		resp.Confidential = r.Confidential
	}

	return resp
}

func toReviews(reviews []domain.Review, viewer *domain.User) []reviewResponse {
	out := make([]reviewResponse, len(reviews))
	for i := range reviews {
		out[i] = toReview(&reviews[i], viewer)
	}

	return out
}

type notificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	ArticleID *string   `json:"article_id"`
	Link      *string   `json:"link"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func toNotifications(ns []domain.Notification) []notificationResponse {
	out := make([]notificationResponse, len(ns))
	for i, n := range ns {
		out[i] = notificationResponse{
			ID:        n.ID,
			Type:      string(n.Type),
			Title:     n.Title,
			Message:   n.Message,
			ArticleID: n.ArticleID,
			Link:      n.Link,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
	}

	return out
}

type issueResponse struct {
	ID          string            `json:"id"`
	Volume      int               `json:"volume"`
	Number      int               `json:"number"`
	Year        int               `json:"year"`
	PublishedAt *time.Time        `json:"published_at"`
	CreatedAt   time.Time         `json:"created_at"`
	Articles    []articleResponse `json:"articles,omitempty"`
}

func toIssue(i *domain.Issue) issueResponse {
	resp := issueResponse{
		ID:          i.ID,
		Volume:      i.Volume,
		Number:      i.Number,
		Year:        i.Year,
		PublishedAt: i.PublishedAt,
		CreatedAt:   i.CreatedAt,
	}

	if i.Articles != nil {
		resp.Articles = toArticles(i.Articles)
	}

	return resp
}

func toIssues(issues []domain.Issue) []issueResponse {
	out := make([]issueResponse, len(issues))
	for i := range issues {
		out[i] = toIssue(&issues[i])
	}

	return out
}

type statusCountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type workloadResponse struct {
	ReviewerID string `json:"reviewer_id"`
	Name       string `json:"name"`
	Pending    int    `json:"pending_reviews"`
	Completed  int    `json:"completed_reviews"`
}

type statsResponse struct {
	Articles  []statusCountResponse `json:"articles"`
	Reviewers []workloadResponse    `json:"reviewers"`
}

func toStats(st *domain.Stats) statsResponse {
	resp := statsResponse{
		Articles:  make([]statusCountResponse, len(st.Articles)),
		Reviewers: make([]workloadResponse, len(st.Reviewers)),
	}

	for i, c := range st.Articles {
		resp.Articles[i] = statusCountResponse{Status: string(c.Status), Count: c.Count}
	}

	for i, w := range st.Reviewers {
		resp.Reviewers[i] = workloadResponse{
			ReviewerID: w.ReviewerID,
			Name:       w.Name,
			Pending:    w.Pending,
			Completed:  w.Completed,
		}
	}

	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
