package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/pkordes/tripvote/internal/domain"
	"github.com/pkordes/tripvote/internal/recommend"
	"github.com/pkordes/tripvote/internal/repo"
)

// MapService manages the pins on a trip's map. Coordinates come from the
// static city table; there is no geocoding.
type MapService struct {
	trips   repo.TripRepo
	pins    repo.PinRepo
	catalog *recommend.Catalog
	opts    options

	mu sync.Mutex
}

// NewMapService constructs a MapService.
func NewMapService(trips repo.TripRepo, pins repo.PinRepo, catalog *recommend.Catalog, opts ...Option) *MapService {
	return &MapService{trips: trips, pins: pins, catalog: catalog, opts: buildOptions(opts)}
}

// AddPin resolves place against the city table and appends a pin.
// Returns domain.ErrValidation listing the supported places when the place
// is unknown.
func (s *MapService) AddPin(ctx context.Context, tripID, place string) (domain.MapPin, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return domain.MapPin{}, fmt.Errorf("%w: place is required", domain.ErrValidation)
	}
	city, ok := s.catalog.LookupCity(place)
	if !ok {
		return domain.MapPin{}, fmt.Errorf("%w: no coordinates for %q; supported places: %s",
			domain.ErrValidation, place, strings.Join(s.catalog.CityNames(), ", "))
	}
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return domain.MapPin{}, fmt.Errorf("service.MapService.AddPin: %w", err)
	}

	pin := domain.MapPin{
		ID:       s.opts.newID(),
		Name:     place,
		Lat:      city.Lat,
		Lng:      city.Lng,
		Category: domain.PinCategory,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	pins, err := s.pins.List(ctx, tripID)
	if err != nil {
		return domain.MapPin{}, fmt.Errorf("service.MapService.AddPin: %w", err)
	}
	if err := s.pins.Save(ctx, tripID, append(pins, pin)); err != nil {
		return domain.MapPin{}, fmt.Errorf("service.MapService.AddPin: %w", err)
	}

	s.opts.metrics.PinAdded()
	s.opts.logger.InfoContext(ctx, "map pin added",
		slog.String("trip_id", tripID),
		slog.String("place", place),
		slog.String("city", city.Name),
	)
	return pin, nil
}

// RemovePin deletes a pin. Removing an unknown pin is not an error.
func (s *MapService) RemovePin(ctx context.Context, tripID, pinID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pins, err := s.pins.List(ctx, tripID)
	if err != nil {
		return fmt.Errorf("service.MapService.RemovePin: %w", err)
	}
	kept := slices.DeleteFunc(pins, func(p domain.MapPin) bool { return p.ID == pinID })
	if err := s.pins.Save(ctx, tripID, kept); err != nil {
		return fmt.Errorf("service.MapService.RemovePin: %w", err)
	}
	s.opts.logger.InfoContext(ctx, "map pin removed", slog.String("trip_id", tripID), slog.String("pin_id", pinID))
	return nil
}

// List returns the trip's pins in the order they were added.
func (s *MapService) List(ctx context.Context, tripID string) ([]domain.MapPin, error) {
	pins, err := s.pins.List(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.MapService.List: %w", err)
	}
	return pins, nil
}
