package http

import (
	"net/http"

	"github.com/YusovID/journal-review-service/internal/service"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listIssues(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listIssues"

	issues, err := s.svc.Issues.ListIssues(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]issueResponse{"issues": toIssues(issues)})
}

func (s *Server) getIssue(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getIssue"

	issue, err := s.svc.Issues.GetIssue(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]issueResponse{"issue": toIssue(issue)})
}

func (s *Server) createIssue(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.createIssue"

	var req createIssueRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	issue, err := s.svc.Issues.CreateIssue(r.Context(), service.IssueInput{
		Volume:      req.Volume,
		Number:      req.Number,
		Year:        req.Year,
		PublishedAt: req.PublishedAt,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]issueResponse{"issue": toIssue(issue)})
}

func (s *Server) attachArticle(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.attachArticle"

	var req attachArticleRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	article, err := s.svc.Issues.AttachArticle(r.Context(), chi.URLParam(r, "id"), req.ArticleID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]articleResponse{"article": toArticle(article)})
}
