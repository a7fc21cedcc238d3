package http

import "time"

type registerRequest struct {
	Email       string  `json:"email" validate:"required,email,max=255"`
	Password    string  `json:"password" validate:"required,min=6,max=72"`
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Role        string  `json:"role" validate:"omitempty,role"`
	Affiliation *string `json:"affiliation" validate:"omitempty,max=255"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type submitArticleRequest struct {
	Title    string   `json:"title" validate:"required,notblank,min=5,max=500"`
	Abstract string   `json:"abstract" validate:"required,notblank,min=20"`
	Keywords []string `json:"keywords" validate:"required,min=1,dive,required,max=100"`
	Authors  []string `json:"authors" validate:"required,min=1,dive,required,max=200"`
	PDFURL   string   `json:"pdf_url" validate:"required,max=2048"`
}

type updateArticleRequest struct {
	Title    *string  `json:"title" validate:"omitempty,notblank,min=5,max=500"`
	Abstract *string  `json:"abstract" validate:"omitempty,notblank,min=20"`
	Keywords []string `json:"keywords" validate:"omitempty,min=1,dive,required,max=100"`
	Authors  []string `json:"authors" validate:"omitempty,min=1,dive,required,max=200"`
	PDFURL   *string  `json:"pdf_url" validate:"omitempty,max=2048"`
}

type assignReviewerRequest struct {
	ReviewerID string `json:"reviewer_id" validate:"required,uuid"`
}

type submitReviewRequest struct {
	Recommendation string `json:"recommendation" validate:"required,recommendation"`
	Comments       string `json:"comments" validate:"max=20000"`
	Confidential   string `json:"confidential_notes" validate:"max=20000"`
}

type feedbackRequest struct {
	Feedback string `json:"feedback" validate:"required,max=20000"`
}

type rejectUserRequest struct {
	Reason string `json:"reason" validate:"max=2000"`
}

type deleteUploadRequest struct {
	URL string `json:"url" validate:"required"`
}

type createIssueRequest struct {
	Volume      int        `json:"volume" validate:"required,min=1"`
	Number      int        `json:"number" validate:"required,min=1"`
	Year        int        `json:"year" validate:"required,min=1900,max=2200"`
	PublishedAt *time.Time `json:"published_at"`
}

type attachArticleRequest struct {
	ArticleID string `json:"article_id" validate:"required,uuid"`
}
