package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("resource not found")
	ErrAlreadyExists  = errors.New("resource already exists")
	ErrInvalidRequest = errors.New("invalid request body")
	ErrValidation     = errors.New("validation failed")

	ErrUnauthenticated    = errors.New("authentication required")
	ErrUnauthorized       = errors.New("insufficient role for this action")
	ErrForbidden          = errors.New("access to this resource is forbidden")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountPending     = errors.New("account is awaiting editor approval")
	ErrAccountRejected    = errors.New("account registration was rejected")

	ErrInvalidReviewer      = errors.New("user is not a reviewer")
	ErrNotAssignedReviewer  = errors.New("you are not assigned to review this article")
	ErrArticlePublished     = errors.New("article is already published")
	ErrArticleNotPublished  = errors.New("article is not published")
	ErrAlreadyApproved      = errors.New("user is already approved")
	ErrAlreadyRejected      = errors.New("user is already rejected")
	ErrCannotDeleteSelf     = errors.New("cannot delete your own account")
	ErrUnsupportedFile      = errors.New("only PDF, DOC and DOCX files are accepted")
	ErrFileTooLarge         = errors.New("file exceeds the 10MB limit")
	ErrForeignStorageObject = errors.New("url does not belong to this storage")
)

type EmailTakenError struct{ Email string }

func (e *EmailTakenError) Error() string {
	return fmt.Sprintf("email '%s' is already registered", e.Email)
}
func (e *EmailTakenError) Is(target error) bool { return target == ErrAlreadyExists }

type ReviewerAlreadyAssignedError struct {
	ArticleID  string
	ReviewerID string
}

func (e *ReviewerAlreadyAssignedError) Error() string {
	return fmt.Sprintf("reviewer '%s' is already assigned to article '%s'", e.ReviewerID, e.ArticleID)
}
func (e *ReviewerAlreadyAssignedError) Is(target error) bool { return target == ErrAlreadyExists }

type IssueExistsError struct{ Volume, Number int }

func (e *IssueExistsError) Error() string {
	return fmt.Sprintf("issue volume %d number %d already exists", e.Volume, e.Number)
}
func (e *IssueExistsError) Is(target error) bool { return target == ErrAlreadyExists }
