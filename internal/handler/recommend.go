package handler

import (
	"net/http"

	"github.com/pkordes/tripvote/internal/domain"
)

// GetRecommendation handles GET /recommendations?location=&category=.
func (s *Server) GetRecommendation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category, err := domain.ParseCategory(q.Get("category"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	item, err := s.svc.Recommendations.Recommend(r.Context(), q.Get("location"), category)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
