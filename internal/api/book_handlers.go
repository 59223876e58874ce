package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ubugingoapp/ubugingo-server/internal/http/response"
)

// handleListBooks returns the book documents for a testament ("old" or "new").
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	testament := chi.URLParam(r, "testament")

	books, err := s.content.ListBooks(r.Context(), testament)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, books, s.logger)
}
