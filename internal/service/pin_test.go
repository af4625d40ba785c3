package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripvote/internal/domain"
	"github.com/pkordes/tripvote/internal/recommend"
	"github.com/pkordes/tripvote/internal/repo"
	"github.com/pkordes/tripvote/internal/service"
)

func newMapService(t *testing.T) (*service.MapService, stores) {
	t.Helper()
	s := newStores(t)
	catalog, err := recommend.Default()
	require.NoError(t, err)
	return service.NewMapService(s.trips, s.pins, catalog, testOptions()...), s
}

func TestMapService_AddPin(t *testing.T) {
	svc, _ := newMapService(t)
	ctx := context.Background()

	pin, err := svc.AddPin(ctx, repo.SeedTripID, "Jeju")
	require.NoError(t, err)
	assert.Equal(t, "id-1", pin.ID)
	assert.Equal(t, "Jeju", pin.Name)
	assert.InDelta(t, 33.4996, pin.Lat, 1e-9)
	assert.InDelta(t, 126.5312, pin.Lng, 1e-9)
	assert.Equal(t, domain.PinCategory, pin.Category)

	_, err = svc.AddPin(ctx, repo.SeedTripID, "Seoul Station")
	require.NoError(t, err)

	pins, err := svc.List(ctx, repo.SeedTripID)
	require.NoError(t, err)
	require.Len(t, pins, 2)
	assert.Equal(t, "Seoul Station", pins[1].Name)
	assert.InDelta(t, 37.5665, pins[1].Lat, 1e-9)
}

func TestMapService_AddPin_UnknownPlace(t *testing.T) {
	svc, _ := newMapService(t)

	_, err := svc.AddPin(context.Background(), repo.SeedTripID, "Atlantis")

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "Seoul, Busan")
}

func TestMapService_AddPin_UnknownTrip(t *testing.T) {
	svc, _ := newMapService(t)

	_, err := svc.AddPin(context.Background(), "missing", "Seoul")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMapService_RemovePin(t *testing.T) {
	svc, _ := newMapService(t)
	ctx := context.Background()
	a, err := svc.AddPin(ctx, repo.SeedTripID, "Busan")
	require.NoError(t, err)
	b, err := svc.AddPin(ctx, repo.SeedTripID, "Ulsan")
	require.NoError(t, err)

	require.NoError(t, svc.RemovePin(ctx, repo.SeedTripID, a.ID))
	require.NoError(t, svc.RemovePin(ctx, repo.SeedTripID, "unknown"))

	pins, err := svc.List(ctx, repo.SeedTripID)
	require.NoError(t, err)
	require.Len(t, pins, 1)
	assert.Equal(t, b.ID, pins[0].ID)
}

func TestMapService_List_Empty(t *testing.T) {
	svc, _ := newMapService(t)

	pins, err := svc.List(context.Background(), repo.SeedTripID)

	require.NoError(t, err)
	assert.NotNil(t, pins)
	assert.Empty(t, pins)
}
