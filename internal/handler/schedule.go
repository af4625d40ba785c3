package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/tripvote/internal/domain"
)

// GetSchedule handles GET /trips/{tripID}/schedule.
func (s *Server) GetSchedule(w http.ResponseWriter, r *http.Request) {
	days, err := s.svc.Schedules.Get(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

// GenerateSchedule handles POST /trips/{tripID}/schedule. The generated
// schedule replaces the stored one.
func (s *Server) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	days, err := s.svc.Schedules.Generate(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

// SaveSchedule handles PUT /trips/{tripID}/schedule with a full day list.
func (s *Server) SaveSchedule(w http.ResponseWriter, r *http.Request) {
	var days []domain.DaySchedule
	if !decodeJSON(w, r, &days) {
		return
	}
	saved, err := s.svc.Schedules.Save(r.Context(), chi.URLParam(r, "tripID"), days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// EditScheduleItem handles PATCH /trips/{tripID}/schedule/items/{itemID}.
func (s *Server) EditScheduleItem(w http.ResponseWriter, r *http.Request) {
	var patch domain.ScheduleItemPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	days, err := s.svc.Schedules.EditItem(r.Context(), chi.URLParam(r, "tripID"), chi.URLParam(r, "itemID"), patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}
