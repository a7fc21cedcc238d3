package http

import (
	"net/http"
	"time"

	"github.com/YusovID/journal-review-service/internal/domain"
	"github.com/YusovID/journal-review-service/internal/service"
)

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.register"

	var req registerRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	user, err := s.svc.Auth.Register(r.Context(), service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		Role:        domain.Role(req.Role),
		Affiliation: req.Affiliation,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]userResponse{"user": toUser(user)})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.login"

	var req loginRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	session, err := s.svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookie.Name,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   s.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	s.respond(w, http.StatusOK, map[string]interface{}{
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
		"user":       toUser(session.User),
	})
}

func (s *Server) logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]userResponse{"user": toUser(currentUser(r.Context()))})
}
