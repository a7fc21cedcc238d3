package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/YusovID/journal-review-service/internal/domain"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listUsers"

	q := r.URL.Query()

	users, err := s.svc.Users.ListUsers(r.Context(), domain.Role(q.Get("role")), domain.ApprovalStatus(q.Get("approval")))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]userResponse{"users": toUsers(users)})
}

func (s *Server) approveUser(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.approveUser"

	user, err := s.svc.Users.ApproveUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]userResponse{"user": toUser(user)})
}

func (s *Server) rejectUser(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.rejectUser"

	// The body is optional: an empty one means no reason.
	var req rejectUserRequest
	if err := s.decodeAndValidate(r, &req); err != nil && !errors.Is(err, io.EOF) {
		s.handleServiceError(w, r, op, err)
		return
	}

	user, err := s.svc.Users.RejectUser(r.Context(), chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]userResponse{"user": toUser(user)})
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.deleteUser"

	if err := s.svc.Users.DeleteUser(r.Context(), currentUser(r.Context()).ID, chi.URLParam(r, "id")); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getStats"

	stats, err := s.svc.Stats.GetStats(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, toStats(stats))
}
