package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripvote/internal/domain"
	"github.com/pkordes/tripvote/internal/handler"
	"github.com/pkordes/tripvote/internal/recommend"
	"github.com/pkordes/tripvote/internal/service"
	"github.com/pkordes/tripvote/internal/voting"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	create       func(ctx context.Context, in service.TripInput) (domain.Trip, error)
	edit         func(ctx context.Context, id string, in service.TripInput) (domain.Trip, error)
	getByID      func(ctx context.Context, id string) (domain.Trip, error)
	findByCode   func(ctx context.Context, code string) (domain.Trip, error)
	list         func(ctx context.Context) ([]domain.Trip, error)
	listByStatus func(ctx context.Context, status domain.Status) ([]domain.Trip, error)
}

func (m *mockTripServicer) Create(ctx context.Context, in service.TripInput) (domain.Trip, error) {
	return m.create(ctx, in)
}
func (m *mockTripServicer) Edit(ctx context.Context, id string, in service.TripInput) (domain.Trip, error) {
	return m.edit(ctx, id, in)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) FindByCode(ctx context.Context, code string) (domain.Trip, error) {
	return m.findByCode(ctx, code)
}
func (m *mockTripServicer) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripServicer) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Trip, error) {
	return m.listByStatus(ctx, status)
}

// mockProposalServicer is a test double for handler.ProposalServicer.
type mockProposalServicer struct {
	add        func(ctx context.Context, tripID string, c domain.Category, in domain.ProposalInput) (domain.Proposal, error)
	del        func(ctx context.Context, tripID string, c domain.Category, proposalID string) error
	toggleVote func(ctx context.Context, tripID string, c domain.Category, proposalID, participant string) (domain.Trip, error)
	ranking    func(ctx context.Context, tripID string, c domain.Category) ([]voting.Ranked, error)
	standings  func(ctx context.Context, tripID string) ([]voting.Standing, error)
}

func (m *mockProposalServicer) Add(ctx context.Context, tripID string, c domain.Category, in domain.ProposalInput) (domain.Proposal, error) {
	return m.add(ctx, tripID, c, in)
}
func (m *mockProposalServicer) Delete(ctx context.Context, tripID string, c domain.Category, proposalID string) error {
	return m.del(ctx, tripID, c, proposalID)
}
func (m *mockProposalServicer) ToggleVote(ctx context.Context, tripID string, c domain.Category, proposalID, participant string) (domain.Trip, error) {
	return m.toggleVote(ctx, tripID, c, proposalID, participant)
}
func (m *mockProposalServicer) Ranking(ctx context.Context, tripID string, c domain.Category) ([]voting.Ranked, error) {
	return m.ranking(ctx, tripID, c)
}
func (m *mockProposalServicer) Standings(ctx context.Context, tripID string) ([]voting.Standing, error) {
	return m.standings(ctx, tripID)
}

// mockScheduleServicer is a test double for handler.ScheduleServicer.
type mockScheduleServicer struct {
	generate func(ctx context.Context, tripID string) ([]domain.DaySchedule, error)
	get      func(ctx context.Context, tripID string) ([]domain.DaySchedule, error)
	save     func(ctx context.Context, tripID string, days []domain.DaySchedule) ([]domain.DaySchedule, error)
	editItem func(ctx context.Context, tripID, itemID string, patch domain.ScheduleItemPatch) ([]domain.DaySchedule, error)
}

func (m *mockScheduleServicer) Generate(ctx context.Context, tripID string) ([]domain.DaySchedule, error) {
	return m.generate(ctx, tripID)
}
func (m *mockScheduleServicer) Get(ctx context.Context, tripID string) ([]domain.DaySchedule, error) {
	return m.get(ctx, tripID)
}
func (m *mockScheduleServicer) Save(ctx context.Context, tripID string, days []domain.DaySchedule) ([]domain.DaySchedule, error) {
	return m.save(ctx, tripID, days)
}
func (m *mockScheduleServicer) EditItem(ctx context.Context, tripID, itemID string, patch domain.ScheduleItemPatch) ([]domain.DaySchedule, error) {
	return m.editItem(ctx, tripID, itemID, patch)
}

// mockCommentServicer is a test double for handler.CommentServicer.
type mockCommentServicer struct {
	add  func(ctx context.Context, tripID, proposalID string, in service.CommentInput) (domain.Comment, error)
	list func(ctx context.Context, tripID, proposalID string) ([]domain.Comment, error)
}

func (m *mockCommentServicer) Add(ctx context.Context, tripID, proposalID string, in service.CommentInput) (domain.Comment, error) {
	return m.add(ctx, tripID, proposalID, in)
}
func (m *mockCommentServicer) List(ctx context.Context, tripID, proposalID string) ([]domain.Comment, error) {
	return m.list(ctx, tripID, proposalID)
}

// mockMapServicer is a test double for handler.MapServicer.
type mockMapServicer struct {
	addPin    func(ctx context.Context, tripID, place string) (domain.MapPin, error)
	removePin func(ctx context.Context, tripID, pinID string) error
	list      func(ctx context.Context, tripID string) ([]domain.MapPin, error)
}

func (m *mockMapServicer) AddPin(ctx context.Context, tripID, place string) (domain.MapPin, error) {
	return m.addPin(ctx, tripID, place)
}
func (m *mockMapServicer) RemovePin(ctx context.Context, tripID, pinID string) error {
	return m.removePin(ctx, tripID, pinID)
}
func (m *mockMapServicer) List(ctx context.Context, tripID string) ([]domain.MapPin, error) {
	return m.list(ctx, tripID)
}

// mockRecommender is a test double for handler.Recommender.
type mockRecommender struct {
	recommend func(ctx context.Context, location string, c domain.Category) (recommend.Item, error)
}

func (m *mockRecommender) Recommend(ctx context.Context, location string, c domain.Category) (recommend.Item, error) {
	return m.recommend(ctx, location, c)
}

// compile-time checks: every mock must satisfy its handler interface.
var (
	_ handler.TripServicer     = (*mockTripServicer)(nil)
	_ handler.ProposalServicer = (*mockProposalServicer)(nil)
	_ handler.ScheduleServicer = (*mockScheduleServicer)(nil)
	_ handler.CommentServicer  = (*mockCommentServicer)(nil)
	_ handler.MapServicer      = (*mockMapServicer)(nil)
	_ handler.Recommender      = (*mockRecommender)(nil)
)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given services into a chi router.
func newHTTPHandler(svc handler.Services) http.Handler {
	return handler.NewServer(svc, nil).Handler()
}

// do sends a request through h and returns the recorded response.
func do(t *testing.T, h http.Handler, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func tripFixture() domain.Trip {
	start := domain.NewDate(2099, time.March, 10)
	end := domain.NewDate(2099, time.March, 12)
	return domain.Trip{
		ID:           "trip-1",
		Title:        "Seoul spring",
		Location:     "Seoul",
		Code:         "SEOUL123",
		Deadline:     domain.NewDate(2099, time.March, 1),
		StartDate:    &start,
		EndDate:      &end,
		Participants: []string{"Ann", "Ben"},
		Categories: domain.CategoryBuckets{
			Restaurant: []domain.Proposal{
				{ID: "p1", Name: "Bibimbap", Category: domain.CategoryRestaurant, Votes: 1, Voters: []string{"Ann"}},
				{ID: "p2", Name: "Galbi", Category: domain.CategoryRestaurant, Votes: 2, Voters: []string{"Ann", "Ben"}},
			},
		},
		CreatedAt: time.Date(2099, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}
