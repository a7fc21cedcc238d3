// package http implements the JSON API of the journal. Handlers decode and
// validate requests, check the caller's role, call the services and map their
// errors to HTTP responses.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/YusovID/journal-review-service/internal/apperrors"
	"github.com/YusovID/journal-review-service/internal/domain"
	"github.com/YusovID/journal-review-service/internal/service"
	"github.com/YusovID/journal-review-service/internal/validation"
	"github.com/YusovID/journal-review-service/pkg/logger/sl"
	"github.com/YusovID/journal-review-service/swagger"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services groups everything the handlers call into.
type Services struct {
	Auth          service.AuthService
	Users         service.UserService
	Articles      service.ArticleService
	Workflow      service.WorkflowService
	Notifications service.NotificationService
	Issues        service.IssueService
	Stats         service.StatsService
	Uploads       service.UploadService
}

// SessionCookie configures the cookie that carries the session token.
type SessionCookie struct {
	Name   string
	Secure bool
}

type Server struct {
	log    *slog.Logger
	svc    Services
	cookie SessionCookie

	filesPrefix  string
	filesHandler http.Handler
}

func NewServer(log *slog.Logger, svc Services, cookie SessionCookie) *Server {
	if cookie.Name == "" {
		cookie.Name = "journal_session"
	}

	return &Server{
		log:    log,
		svc:    svc,
		cookie: cookie,
	}
}

// ServeFiles exposes a blob store that keeps its objects on local disk.
func (s *Server) ServeFiles(prefix string, h http.Handler) {
	s.filesPrefix = prefix
	s.filesHandler = h
}

func (s *Server) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(s.requestID)
	mux.Use(s.logRequest)
	mux.Use(s.metricsMiddleware)

	swaggerHandler, err := swagger.GetHandler()
	if err != nil {
		s.log.Error("failed to get swagger handler", sl.Err(err))
	} else {
		mux.Mount("/swagger", http.StripPrefix("/swagger", swaggerHandler))
	}

	mux.Handle("/metrics", promhttp.Handler())
	mux.Get("/health", s.health)

	if s.filesHandler != nil {
		mux.Mount(s.filesPrefix, s.filesHandler)
	}

	mux.Route("/api", func(r chi.Router) {
		r.Use(s.authenticate)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.register)
			r.Post("/login", s.login)
			r.Post("/logout", s.logout)
			r.With(s.requireAuth).Get("/me", s.me)
		})

		r.Route("/articles", func(r chi.Router) {
			r.Get("/published", s.listPublished)
			r.Get("/{id}", s.getArticle)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)

				r.With(s.requireRole(domain.RoleAuthor)).Post("/submit", s.submitArticle)
				r.With(s.requireRole(domain.RoleAuthor)).Get("/mine", s.listMyArticles)
				r.With(s.requireRole(domain.RoleReviewer)).Get("/assigned", s.listAssigned)
				r.With(s.requireRole(domain.RoleEditor)).Get("/", s.listArticles)

				r.Patch("/{id}", s.updateArticle)

				r.With(s.requireRole(domain.RoleEditor)).Post("/{id}/assign", s.assignReviewer)
				r.With(s.requireRole(domain.RoleEditor)).Post("/{id}/feedback", s.submitFeedback)
				r.With(s.requireRole(domain.RoleEditor)).Get("/{id}/reviews", s.listArticleReviews)
				r.With(s.requireRole(domain.RoleReviewer)).Get("/{id}/review", s.getMyReview)
				r.With(s.requireRole(domain.RoleReviewer)).Post("/{id}/review", s.submitReview)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(s.requireAuth, s.requireRole(domain.RoleEditor))

			r.Get("/", s.listUsers)
			r.Post("/{id}/approve", s.approveUser)
			r.Post("/{id}/reject", s.rejectUser)
			r.Delete("/{id}", s.deleteUser)
		})

		r.Route("/uploads", func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Post("/", s.upload)
			r.Post("/delete", s.deleteUpload)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/", s.listNotifications)
			r.Post("/read-all", s.markAllNotificationsRead)
			r.Post("/{id}/read", s.markNotificationRead)
		})

		r.Route("/issues", func(r chi.Router) {
			r.Get("/", s.listIssues)
			r.Get("/{id}", s.getIssue)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth, s.requireRole(domain.RoleEditor))

				r.Post("/", s.createIssue)
				r.Post("/{id}/articles", s.attachArticle)
			})
		})

		r.With(s.requireAuth, s.requireRole(domain.RoleEditor)).Get("/stats", s.getStats)
	})

	return mux
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respond(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.log.Error("failed to encode response", sl.Err(err))
		}
	}
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Server) respondError(w http.ResponseWriter, code int, errCode string, message string) {
	var body errorBody

	body.Error.Code = errCode
	body.Error.Message = message

	s.respond(w, code, body)
}

func (s *Server) decodeAndValidate(r *http.Request, v interface{}) error {
	if err := s.decode(r.Body, v); err != nil {
		return err
	}

	if err := validation.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}

func (s *Server) decode(body io.ReadCloser, v interface{}) error {
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	return nil
}

type errorMapping struct {
	target error
	status int
	code   string
}

// Order matters: typed conflicts come before the ErrAlreadyExists they wrap.
var errorMappings = []errorMapping{
	{apperrors.ErrInvalidRequest, http.StatusBadRequest, "INVALID_REQUEST"},
	{apperrors.ErrValidation, http.StatusBadRequest, "VALIDATION_ERROR"},
	{apperrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{apperrors.ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{apperrors.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{apperrors.ErrNotAssignedReviewer, http.StatusForbidden, "NOT_ASSIGNED"},
	{apperrors.ErrAccountPending, http.StatusForbidden, "ACCOUNT_PENDING"},
	{apperrors.ErrAccountRejected, http.StatusForbidden, "ACCOUNT_REJECTED"},
	{apperrors.ErrInvalidReviewer, http.StatusBadRequest, "INVALID_REVIEWER"},
	{apperrors.ErrCannotDeleteSelf, http.StatusBadRequest, "CANNOT_DELETE_SELF"},
	{apperrors.ErrUnsupportedFile, http.StatusBadRequest, "UNSUPPORTED_FILE"},
	{apperrors.ErrForeignStorageObject, http.StatusBadRequest, "FOREIGN_OBJECT"},
	{apperrors.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
	{apperrors.ErrArticlePublished, http.StatusConflict, "ARTICLE_PUBLISHED"},
	{apperrors.ErrArticleNotPublished, http.StatusConflict, "ARTICLE_NOT_PUBLISHED"},
	{apperrors.ErrAlreadyApproved, http.StatusConflict, "ALREADY_APPROVED"},
	{apperrors.ErrAlreadyRejected, http.StatusConflict, "ALREADY_REJECTED"},
}

// handleServiceError maps an error from any layer to a status code and a
// stable error code. Unknown errors are logged in full and reported as 500.
func (s *Server) handleServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := s.log.With(slog.String("op", op), slog.String("request_id", getRequestID(r.Context())))

	var (
		validationErr  *validation.ValidationError
		emailTakenErr  *apperrors.EmailTakenError
		assignedErr    *apperrors.ReviewerAlreadyAssignedError
		issueExistsErr *apperrors.IssueExistsError
		maxBytesErr    *http.MaxBytesError
	)

	switch {
	case errors.As(err, &validationErr):
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", validationErr.Error())
		return
	case errors.As(err, &maxBytesErr):
		s.respondError(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", apperrors.ErrFileTooLarge.Error())
		return
	case errors.As(err, &emailTakenErr):
		s.respondError(w, http.StatusConflict, "EMAIL_TAKEN", emailTakenErr.Error())
		return
	case errors.As(err, &assignedErr):
		s.respondError(w, http.StatusConflict, "ALREADY_ASSIGNED", "reviewer is already assigned to this article")
		return
	case errors.As(err, &issueExistsErr):
		s.respondError(w, http.StatusConflict, "ISSUE_EXISTS", issueExistsErr.Error())
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			log.Info("request rejected", slog.Int("status", m.status), sl.Err(err))

			message := m.target.Error()
			if m.target == apperrors.ErrValidation {
				message = err.Error()
			}

			s.respondError(w, m.status, m.code, message)

			return
		}
	}

	if errors.Is(err, apperrors.ErrAlreadyExists) {
		s.respondError(w, http.StatusConflict, "ALREADY_EXISTS", apperrors.ErrAlreadyExists.Error())
		return
	}

	log.Error("service error occurred", sl.Err(err))
	s.respondError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
}
