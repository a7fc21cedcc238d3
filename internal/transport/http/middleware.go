package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/YusovID/journal-review-service/internal/apperrors"
	"github.com/YusovID/journal-review-service/internal/domain"
	"github.com/google/uuid"
)

type contextKey string

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = contextKey("requestID")
	userKey         = contextKey("user")
)

func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := getRequestID(r.Context())

		log := s.log.With(
			slog.String("request_id", requestID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("user_agent", r.UserAgent()),
		)
		log.Info("request started")

		t1 := time.Now()

		next.ServeHTTP(w, r)

		log.Info("request completed",
			slog.String("duration", time.Since(t1).String()),
		)
	})
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getRequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey).(string); ok {
		return reqID
	}

	return ""
}

// authenticate resolves the session token, if any, to the current user.
// Requests without a usable token continue anonymously; requireAuth rejects them
// where a user is needed.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const op = "internal.transport.http.authenticate"

		token := s.sessionToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := s.svc.Auth.Authenticate(r.Context(), token)
		if err != nil {
			if errors.Is(err, apperrors.ErrUnauthenticated) {
				next.ServeHTTP(w, r)
				return
			}

			s.handleServiceError(w, r, op, err)

			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r.Context()) == nil {
			s.handleServiceError(w, r, "internal.transport.http.requireAuth", apperrors.ErrUnauthenticated)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requireRole answers 401 when the caller's role is not in roles.
func (s *Server) requireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := currentUser(r.Context())
			if user == nil {
				s.handleServiceError(w, r, "internal.transport.http.requireRole", apperrors.ErrUnauthenticated)
				return
			}

			if !slices.Contains(roles, user.Role) {
				s.handleServiceError(w, r, "internal.transport.http.requireRole", apperrors.ErrUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) sessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}

	if c, err := r.Cookie(s.cookie.Name); err == nil {
		return c.Value
	}

	return ""
}

// currentUser returns nil for anonymous requests.
func currentUser(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userKey).(*domain.User)
	return user
}
