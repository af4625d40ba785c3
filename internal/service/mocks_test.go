package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/pkordes/tripvote/internal/domain"
	"github.com/pkordes/tripvote/internal/gateway"
	"github.com/pkordes/tripvote/internal/repo"
	"github.com/pkordes/tripvote/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	getByID    func(ctx context.Context, id string) (domain.Trip, error)
	getByCode  func(ctx context.Context, code string) (domain.Trip, error)
	list       func(ctx context.Context) ([]domain.Trip, error)
	create     func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	update     func(ctx context.Context, id string, fn func(domain.Trip) (domain.Trip, error)) (domain.Trip, error)
	codeExists func(ctx context.Context, code string) (bool, error)
}

func (m *mockTripRepo) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) GetByCode(ctx context.Context, code string) (domain.Trip, error) {
	return m.getByCode(ctx, code)
}
func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) Update(ctx context.Context, id string, fn func(domain.Trip) (domain.Trip, error)) (domain.Trip, error) {
	return m.update(ctx, id, fn)
}
func (m *mockTripRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	return m.codeExists(ctx, code)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockCommentRepo struct {
	list      func(ctx context.Context, tripID, proposalID string) ([]domain.Comment, error)
	appendFn  func(ctx context.Context, tripID, proposalID string, c domain.Comment) error
	deleteAll func(ctx context.Context, tripID, proposalID string) error
}

func (m *mockCommentRepo) List(ctx context.Context, tripID, proposalID string) ([]domain.Comment, error) {
	return m.list(ctx, tripID, proposalID)
}
func (m *mockCommentRepo) Append(ctx context.Context, tripID, proposalID string, c domain.Comment) error {
	return m.appendFn(ctx, tripID, proposalID, c)
}
func (m *mockCommentRepo) DeleteAll(ctx context.Context, tripID, proposalID string) error {
	return m.deleteAll(ctx, tripID, proposalID)
}

var _ repo.CommentRepo = (*mockCommentRepo)(nil)

type mockPinRepo struct {
	list func(ctx context.Context, tripID string) ([]domain.MapPin, error)
	save func(ctx context.Context, tripID string, pins []domain.MapPin) error
}

func (m *mockPinRepo) List(ctx context.Context, tripID string) ([]domain.MapPin, error) {
	return m.list(ctx, tripID)
}
func (m *mockPinRepo) Save(ctx context.Context, tripID string, pins []domain.MapPin) error {
	return m.save(ctx, tripID, pins)
}

var _ repo.PinRepo = (*mockPinRepo)(nil)

// ---- shared helpers --------------------------------------------------------

// fixedNow is after the seed trip's deadline and before every test trip's.
var fixedNow = time.Date(2025, time.June, 1, 9, 30, 0, 0, time.UTC)

// sequentialIDs returns an id generator producing "id-1", "id-2", ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func testOptions() []service.Option {
	return []service.Option{
		service.WithClock(func() time.Time { return fixedNow }),
		service.WithIDGenerator(sequentialIDs()),
	}
}

// writeCounter wraps a gateway and counts Set calls per key.
type writeCounter struct {
	gateway.Gateway
	sets map[string]int
}

func (w *writeCounter) Set(ctx context.Context, key string, value json.RawMessage) error {
	w.sets[key]++
	return w.Gateway.Set(ctx, key, value)
}

// stores bundles memory-backed repos for tests that exercise real
// read-modify-write behaviour rather than a single repo call.
type stores struct {
	gw       *writeCounter
	trips    repo.TripRepo
	comments repo.CommentRepo
	pins     repo.PinRepo
}

func newStores(t *testing.T) stores {
	t.Helper()
	gw := &writeCounter{Gateway: gateway.NewMemory(), sets: map[string]int{}}
	return stores{
		gw:       gw,
		trips:    repo.NewTripRepo(gw, repo.SeedTrips()),
		comments: repo.NewCommentRepo(gw),
		pins:     repo.NewPinRepo(gw),
	}
}

func date(y int, m time.Month, d int) *domain.Date {
	v := domain.NewDate(y, m, d)
	return &v
}

func openTrip(id string) domain.Trip {
	t := domain.Trip{
		ID:           id,
		Title:        "Seoul weekend",
		Location:     "Seoul",
		Code:         "SEOUL" + id[len(id)-3:],
		Deadline:     domain.NewDate(2025, time.June, 10),
		StartDate:    date(2025, time.June, 20),
		EndDate:      date(2025, time.June, 22),
		Participants: []string{"A", "B"},
		CreatedAt:    fixedNow,
	}
	t.Normalize()
	return t
}
