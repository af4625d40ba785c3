package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AddPinRequest names the place to pin.
type AddPinRequest struct {
	Place string `json:"place"`
}

// ListPins handles GET /trips/{tripID}/pins.
func (s *Server) ListPins(w http.ResponseWriter, r *http.Request) {
	pins, err := s.svc.Maps.List(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pins)
}

// AddPin handles POST /trips/{tripID}/pins.
func (s *Server) AddPin(w http.ResponseWriter, r *http.Request) {
	var req AddPinRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	pin, err := s.svc.Maps.AddPin(r.Context(), chi.URLParam(r, "tripID"), req.Place)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, pin)
}

// RemovePin handles DELETE /trips/{tripID}/pins/{pinID}.
func (s *Server) RemovePin(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Maps.RemovePin(r.Context(), chi.URLParam(r, "tripID"), chi.URLParam(r, "pinID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
