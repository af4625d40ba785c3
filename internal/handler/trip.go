package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/tripvote/internal/domain"
	"github.com/pkordes/tripvote/internal/service"
)

// TripResponse is a trip plus its current lifecycle status.
type TripResponse struct {
	domain.Trip
	Status domain.Status `json:"status"`
}

func tripToResponse(t domain.Trip, now time.Time) TripResponse {
	return TripResponse{Trip: t, Status: t.Status(now)}
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var in service.TripInput
	if !decodeJSON(w, r, &in) {
		return
	}
	created, err := s.svc.Trips.Create(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created, time.Now()))
}

// ListTrips handles GET /trips. ?status=active|completed filters by status.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	var (
		trips []domain.Trip
		err   error
	)
	if status := r.URL.Query().Get("status"); status != "" {
		trips, err = s.svc.Trips.ListByStatus(r.Context(), domain.Status(status))
	} else {
		trips, err = s.svc.Trips.List(r.Context())
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	now := time.Now()
	data := make([]TripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t, now)
	}
	writeJSON(w, http.StatusOK, data)
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.svc.Trips.GetByID(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip, time.Now()))
}

// EditTrip handles PUT /trips/{tripID}.
func (s *Server) EditTrip(w http.ResponseWriter, r *http.Request) {
	var in service.TripInput
	if !decodeJSON(w, r, &in) {
		return
	}
	updated, err := s.svc.Trips.Edit(r.Context(), chi.URLParam(r, "tripID"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated, time.Now()))
}

// FindTripByCode handles GET /trips/code/{code}. Matching ignores case.
func (s *Server) FindTripByCode(w http.ResponseWriter, r *http.Request) {
	trip, err := s.svc.Trips.FindByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip, time.Now()))
}
