package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/tripvote/internal/service"
)

// ListComments handles GET /trips/{tripID}/proposals/{proposalID}/comments.
func (s *Server) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := s.svc.Comments.List(r.Context(), chi.URLParam(r, "tripID"), chi.URLParam(r, "proposalID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// AddComment handles POST /trips/{tripID}/proposals/{proposalID}/comments.
// The author comes from the X-Participant-Name header, falling back to the
// "author" field of the body.
func (s *Server) AddComment(w http.ResponseWriter, r *http.Request) {
	var in service.CommentInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if who := participant(r); who != "" {
		in.Author = who
	}
	c, err := s.svc.Comments.Add(r.Context(), chi.URLParam(r, "tripID"), chi.URLParam(r, "proposalID"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}
