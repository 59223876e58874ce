package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ubugingoapp/ubugingo-server/internal/http/response"
)

// handleListAudio returns every chapter document, sorted by book then chapter.
func (s *Server) handleListAudio(w http.ResponseWriter, r *http.Request) {
	docs, err := s.content.ListAudio(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, docs, s.logger)
}

// handleListBookAudio returns one book's chapter documents.
// An unknown or audio-less book is a 404, matching the legacy server.
func (s *Server) handleListBookAudio(w http.ResponseWriter, r *http.Request) {
	book := chi.URLParam(r, "book")

	docs, err := s.content.ListBookAudio(r.Context(), book)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, docs, s.logger)
}

// handleGetAudio returns a single chapter document.
func (s *Server) handleGetAudio(w http.ResponseWriter, r *http.Request) {
	book := chi.URLParam(r, "book")

	chapter, err := strconv.Atoi(chi.URLParam(r, "chapter"))
	if err != nil || chapter < 1 {
		response.BadRequest(w, "chapter must be a positive integer", s.logger)
		return
	}

	doc, err := s.content.GetAudio(r.Context(), book, chapter)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, doc, s.logger)
}
