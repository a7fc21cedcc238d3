package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/YusovID/journal-review-service/internal/apperrors"
	"github.com/YusovID/journal-review-service/internal/service"
)

// multipart framing on top of the file itself
const uploadOverhead = 1 << 20

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.upload"

	r.Body = http.MaxBytesReader(w, r.Body, service.MaxUploadSize+uploadOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.handleServiceError(w, r, op, uploadError(err))
		return
	}
	defer file.Close()

	url, err := s.svc.Uploads.Upload(r.Context(), header.Filename, header.Size, file)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]string{"url": url})
}

func (s *Server) deleteUpload(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.deleteUpload"

	var req deleteUploadRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if err := s.svc.Uploads.Delete(r.Context(), req.URL); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// uploadError keeps *http.MaxBytesError visible and turns everything else into a bad request.
func uploadError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return err
	}

	return fmt.Errorf("%w: multipart field 'file' is required: %w", apperrors.ErrInvalidRequest, err)
}
