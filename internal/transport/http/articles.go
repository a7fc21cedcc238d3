package http

import (
	"net/http"

	"github.com/YusovID/journal-review-service/internal/domain"
	"github.com/YusovID/journal-review-service/internal/service"
	"github.com/go-chi/chi/v5"
)

func (s *Server) submitArticle(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.submitArticle"

	var req submitArticleRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	article, err := s.svc.Articles.Submit(r.Context(), currentUser(r.Context()), service.SubmitInput{
		Title:    req.Title,
		Abstract: req.Abstract,
		Keywords: req.Keywords,
		Authors:  req.Authors,
		PDFURL:   req.PDFURL,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]articleResponse{"article": toArticle(article)})
}

func (s *Server) getArticle(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getArticle"

	article, err := s.svc.Articles.GetArticle(r.Context(), currentUser(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]articleResponse{"article": toArticle(article)})
}

func (s *Server) updateArticle(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.updateArticle"

	var req updateArticleRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	article, err := s.svc.Articles.UpdateArticle(r.Context(), currentUser(r.Context()), chi.URLParam(r, "id"), domain.ArticleUpdate{
		Title:    req.Title,
		Abstract: req.Abstract,
		Keywords: req.Keywords,
		Authors:  req.Authors,
		PDFURL:   req.PDFURL,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]articleResponse{"article": toArticle(article)})
}

func (s *Server) listArticles(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listArticles"

	articles, err := s.svc.Articles.ListArticles(r.Context(), domain.ArticleStatus(r.URL.Query().Get("status")))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]articleResponse{"articles": toArticles(articles)})
}

func (s *Server) listMyArticles(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listMyArticles"

	articles, err := s.svc.Articles.ListMyArticles(r.Context(), currentUser(r.Context()).ID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]articleResponse{"articles": toArticles(articles)})
}

func (s *Server) listPublished(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listPublished"

	articles, err := s.svc.Articles.ListPublished(r.Context(), r.URL.Query().Get("issue_id"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]articleResponse{"articles": toArticles(articles)})
}

func (s *Server) listAssigned(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listAssigned"

	articles, err := s.svc.Articles.ListAssigned(r.Context(), currentUser(r.Context()).ID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]articleResponse{"articles": toArticles(articles)})
}

func (s *Server) assignReviewer(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.assignReviewer"

	var req assignReviewerRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	article, err := s.svc.Workflow.AssignReviewer(r.Context(), chi.URLParam(r, "id"), req.ReviewerID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]articleResponse{"article": toArticle(article)})
}

func (s *Server) submitReview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.submitReview"

	var req submitReviewRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	caller := currentUser(r.Context())

	result, err := s.svc.Workflow.SubmitReview(r.Context(), caller, chi.URLParam(r, "id"), service.ReviewInput{
		Recommendation: domain.Recommendation(req.Recommendation),
		Comments:       req.Comments,
		Confidential:   req.Confidential,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]interface{}{
		"review":  toReview(result.Review, caller),
		"article": toArticle(result.Article),
	})
}

func (s *Server) getMyReview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getMyReview"

	caller := currentUser(r.Context())

	review, err := s.svc.Articles.GetMyReview(r.Context(), caller.ID, chi.URLParam(r, "id"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]reviewResponse{"review": toReview(review, caller)})
}

func (s *Server) listArticleReviews(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listArticleReviews"

	reviews, err := s.svc.Articles.ListArticleReviews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]reviewResponse{"reviews": toReviews(reviews, currentUser(r.Context()))})
}

func (s *Server) submitFeedback(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.submitFeedback"

	var req feedbackRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	result, err := s.svc.Workflow.SubmitFeedback(r.Context(), chi.URLParam(r, "id"), req.Feedback)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]interface{}{
		"article":   toArticle(result.Article),
		"published": result.Published,
	})
}
