// Package repo maps the application's aggregates onto the flat key schema of
// the persistence gateway. Each resource has its own file with an interface
// and a gateway-backed implementation. No business rules live here.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pkordes/tripvote/internal/domain"
	"github.com/pkordes/tripvote/internal/gateway"
)

// Storage keys. These match the browser local-storage layout of the web
// client so exported data can be loaded unchanged.
const (
	// TripsKey holds a JSON object mapping trip id to trip record.
	TripsKey = "tripPlans"

	// CurrentUserKey holds the process-wide participant name.
	CurrentUserKey = "currentUserName"
)

// CommentsKey returns the key holding the comment list of one proposal.
func CommentsKey(tripID, proposalID string) string {
	return fmt.Sprintf("comments_%s_%s", tripID, proposalID)
}

// MapPinsKey returns the key holding the map pins of one trip.
func MapPinsKey(tripID string) string {
	return fmt.Sprintf("map_locations_%s", tripID)
}

// getJSON decodes the document at key into dst.
// It reports false, with dst untouched, when the key is absent.
func getJSON(ctx context.Context, gw gateway.Gateway, key string, dst any) (bool, error) {
	raw, ok, err := gw.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w: %w", key, domain.ErrPersistence, err)
	}
	return true, nil
}

// setJSON encodes v and stores it at key.
func setJSON(ctx context.Context, gw gateway.Gateway, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w: %w", key, domain.ErrPersistence, err)
	}
	return gw.Set(ctx, key, raw)
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
