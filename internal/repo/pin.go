package repo

import (
	"context"
	"fmt"

	"github.com/pkordes/tripvote/internal/domain"
	"github.com/pkordes/tripvote/internal/gateway"
)

// PinRepo defines the persistence operations for a trip's map pins.
// Pins are read and written as a whole list.
type PinRepo interface {
	// List returns the pins of a trip in the order they were added.
	// Always returns a non-nil slice.
	List(ctx context.Context, tripID string) ([]domain.MapPin, error)

	// Save replaces the pins of a trip.
	Save(ctx context.Context, tripID string, pins []domain.MapPin) error
}

type gatewayPinRepo struct {
	gw gateway.Gateway
}

// NewPinRepo constructs a PinRepo over gw.
func NewPinRepo(gw gateway.Gateway) PinRepo {
	return &gatewayPinRepo{gw: gw}
}

func (r *gatewayPinRepo) List(ctx context.Context, tripID string) ([]domain.MapPin, error) {
	pins := []domain.MapPin{}
	if _, err := getJSON(ctx, r.gw, MapPinsKey(tripID), &pins); err != nil {
		return nil, fmt.Errorf("repo.PinRepo.List: %w", err)
	}
	if pins == nil {
		pins = []domain.MapPin{}
	}
	return pins, nil
}

func (r *gatewayPinRepo) Save(ctx context.Context, tripID string, pins []domain.MapPin) error {
	if pins == nil {
		pins = []domain.MapPin{}
	}
	if err := setJSON(ctx, r.gw, MapPinsKey(tripID), pins); err != nil {
		return fmt.Errorf("repo.PinRepo.Save: %w", err)
	}
	return nil
}
