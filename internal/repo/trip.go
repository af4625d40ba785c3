package repo

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/pkordes/tripvote/internal/domain"
	"github.com/pkordes/tripvote/internal/gateway"
)

// ErrUnchanged may be returned by an Update callback to leave the trip as
// stored. Update then returns the current trip and a nil error without
// writing.
var ErrUnchanged = errors.New("trip unchanged")

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not on the gateway-backed
// implementation, which lets services be unit-tested with a mock.
type TripRepo interface {
	// GetByID returns the trip with the given id.
	// Returns domain.ErrNotFound if no such trip exists.
	GetByID(ctx context.Context, id string) (domain.Trip, error)

	// GetByCode returns the trip whose join code matches code after trimming
	// and uppercasing. Returns domain.ErrNotFound if none matches.
	GetByCode(ctx context.Context, code string) (domain.Trip, error)

	// List returns the built-in trips followed by persisted trips in
	// creation order.
	List(ctx context.Context) ([]domain.Trip, error)

	// Create persists a new trip. The id must not be in use.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Update applies fn to the current state of trip id and persists the
	// result. fn receives a private copy; if it returns an error nothing is
	// written. Returns domain.ErrNotFound if the trip does not exist.
	Update(ctx context.Context, id string, fn func(domain.Trip) (domain.Trip, error)) (domain.Trip, error)

	// CodeExists reports whether any trip already uses the join code.
	CodeExists(ctx context.Context, code string) (bool, error)
}

// gatewayTripRepo stores every trip in a single document under TripsKey.
// mu serialises read-modify-write cycles within this process; across
// processes the gateway is last-write-wins.
type gatewayTripRepo struct {
	gw    gateway.Gateway
	seeds []domain.Trip
	mu    sync.Mutex
}

// NewTripRepo constructs a TripRepo over gw. seeds are always visible and can
// be overridden by a persisted trip with the same id (which happens on the
// first mutation of a seed trip).
func NewTripRepo(gw gateway.Gateway, seeds []domain.Trip) TripRepo {
	return &gatewayTripRepo{gw: gw, seeds: seeds}
}

func (r *gatewayTripRepo) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	trips, err := r.all(ctx)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	for _, t := range trips {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: trip %s: %w", id, domain.ErrNotFound)
}

func (r *gatewayTripRepo) GetByCode(ctx context.Context, code string) (domain.Trip, error) {
	code = domain.NormalizeJoinCode(code)
	trips, err := r.all(ctx)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByCode: %w", err)
	}
	for _, t := range trips {
		if t.Code == code {
			return t, nil
		}
	}
	return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByCode: code %s: %w", code, domain.ErrNotFound)
}

func (r *gatewayTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := r.all(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	return trips, nil
}

func (r *gatewayTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, err := r.load(ctx)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	if _, ok := stored[trip.ID]; ok || r.isSeed(trip.ID) {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w: trip id %s already exists", domain.ErrValidation, trip.ID)
	}

	trip = trip.Clone()
	trip.Normalize()
	stored[trip.ID] = trip
	if err := setJSON(ctx, r.gw, TripsKey, stored); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return trip.Clone(), nil
}

func (r *gatewayTripRepo) Update(ctx context.Context, id string, fn func(domain.Trip) (domain.Trip, error)) (domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, err := r.load(ctx)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}

	current, ok := stored[id]
	if !ok {
		seed, found := r.seed(id)
		if !found {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: trip %s: %w", id, domain.ErrNotFound)
		}
		current = seed
	}

	updated, err := fn(current.Clone())
	if errors.Is(err, ErrUnchanged) {
		return current.Clone(), nil
	}
	if err != nil {
		return domain.Trip{}, err
	}
	updated.ID = id
	updated.Normalize()

	stored[id] = updated
	if err := setJSON(ctx, r.gw, TripsKey, stored); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return updated.Clone(), nil
}

func (r *gatewayTripRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	_, err := r.GetByCode(ctx, code)
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, err
}

// load reads the persisted trip map. An absent key is an empty map.
func (r *gatewayTripRepo) load(ctx context.Context) (map[string]domain.Trip, error) {
	stored := make(map[string]domain.Trip)
	if _, err := getJSON(ctx, r.gw, TripsKey, &stored); err != nil {
		return nil, err
	}
	for id, t := range stored {
		t.Normalize()
		stored[id] = t
	}
	return stored, nil
}

// all merges seeds with persisted trips: seeds first (unless overridden),
// then persisted trips by creation time.
func (r *gatewayTripRepo) all(ctx context.Context) ([]domain.Trip, error) {
	stored, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Trip, 0, len(r.seeds)+len(stored))
	for _, s := range r.seeds {
		if t, ok := stored[s.ID]; ok {
			out = append(out, t)
			delete(stored, s.ID)
			continue
		}
		s = s.Clone()
		s.Normalize()
		out = append(out, s)
	}

	rest := make([]domain.Trip, 0, len(stored))
	for _, t := range stored {
		rest = append(rest, t)
	}
	slices.SortFunc(rest, func(a, b domain.Trip) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return append(out, rest...), nil
}

func (r *gatewayTripRepo) seed(id string) (domain.Trip, bool) {
	for _, s := range r.seeds {
		if s.ID == id {
			s = s.Clone()
			s.Normalize()
			return s, true
		}
	}
	return domain.Trip{}, false
}

func (r *gatewayTripRepo) isSeed(id string) bool {
	_, ok := r.seed(id)
	return ok
}
