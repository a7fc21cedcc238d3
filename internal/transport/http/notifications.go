package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listNotifications"

	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, err := s.svc.Notifications.ListNotifications(r.Context(), currentUser(r.Context()).ID, unreadOnly)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]notificationResponse{"notifications": toNotifications(notifications)})
}

func (s *Server) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.markNotificationRead"

	if err := s.svc.Notifications.MarkRead(r.Context(), currentUser(r.Context()).ID, chi.URLParam(r, "id")); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) markAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.markAllNotificationsRead"

	updated, err := s.svc.Notifications.MarkAllRead(r.Context(), currentUser(r.Context()).ID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]int64{"updated": updated})
}
