// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, proposal.go, etc.) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/tripvote/internal/domain"
	"github.com/pkordes/tripvote/internal/recommend"
	"github.com/pkordes/tripvote/internal/service"
	"github.com/pkordes/tripvote/internal/voting"
)

// TripServicer defines the trip operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching storage or the service layer.
type TripServicer interface {
	Create(ctx context.Context, in service.TripInput) (domain.Trip, error)
	Edit(ctx context.Context, id string, in service.TripInput) (domain.Trip, error)
	GetByID(ctx context.Context, id string) (domain.Trip, error)
	FindByCode(ctx context.Context, code string) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.Trip, error)
}

// ProposalServicer defines the proposal and vote operations.
type ProposalServicer interface {
	Add(ctx context.Context, tripID string, category domain.Category, in domain.ProposalInput) (domain.Proposal, error)
	Delete(ctx context.Context, tripID string, category domain.Category, proposalID string) error
	ToggleVote(ctx context.Context, tripID string, category domain.Category, proposalID, participant string) (domain.Trip, error)
	Ranking(ctx context.Context, tripID string, category domain.Category) ([]voting.Ranked, error)
	Standings(ctx context.Context, tripID string) ([]voting.Standing, error)
}

// ScheduleServicer defines the schedule operations.
type ScheduleServicer interface {
	Generate(ctx context.Context, tripID string) ([]domain.DaySchedule, error)
	Get(ctx context.Context, tripID string) ([]domain.DaySchedule, error)
	Save(ctx context.Context, tripID string, days []domain.DaySchedule) ([]domain.DaySchedule, error)
	EditItem(ctx context.Context, tripID, itemID string, patch domain.ScheduleItemPatch) ([]domain.DaySchedule, error)
}

// CommentServicer defines the comment operations.
type CommentServicer interface {
	Add(ctx context.Context, tripID, proposalID string, in service.CommentInput) (domain.Comment, error)
	List(ctx context.Context, tripID, proposalID string) ([]domain.Comment, error)
}

// MapServicer defines the map pin operations.
type MapServicer interface {
	AddPin(ctx context.Context, tripID, place string) (domain.MapPin, error)
	RemovePin(ctx context.Context, tripID, pinID string) error
	List(ctx context.Context, tripID string) ([]domain.MapPin, error)
}

// Recommender defines the recommendation lookup.
type Recommender interface {
	Recommend(ctx context.Context, location string, category domain.Category) (recommend.Item, error)
}

// Services bundles the dependencies of Server. Nil services leave their
// routes unregistered, which keeps focused handler tests small.
type Services struct {
	Trips           TripServicer
	Proposals       ProposalServicer
	Schedules       ScheduleServicer
	Comments        CommentServicer
	Maps            MapServicer
	Recommendations Recommender

	// Metrics is served at /metrics when set.
	Metrics http.Handler
	// OpenAPI is served at /openapi.yaml when set.
	OpenAPI []byte
}

// Server serves every API endpoint.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	svc    Services
	logger *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{svc: svc, logger: logger}
}

// Register mounts every route on r. Middleware should be added to r before
// calling Register.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", s.GetHealth)
	if s.svc.OpenAPI != nil {
		r.Get("/openapi.yaml", s.GetOpenAPI)
	}
	if s.svc.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.svc.Metrics)
	}
	if s.svc.Recommendations != nil {
		r.Get("/recommendations", s.GetRecommendation)
	}

	r.Route("/trips", func(r chi.Router) {
		if s.svc.Trips != nil {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)
			r.Get("/code/{code}", s.FindTripByCode)
		}

		r.Route("/{tripID}", func(r chi.Router) {
			if s.svc.Trips != nil {
				r.Get("/", s.GetTrip)
				r.Put("/", s.EditTrip)
			}
			if s.svc.Proposals != nil {
				r.Get("/standings", s.GetStandings)
				r.Route("/categories/{category}/proposals", func(r chi.Router) {
					r.Get("/", s.ListProposals)
					r.Post("/", s.AddProposal)
					r.Delete("/{proposalID}", s.DeleteProposal)
					r.Post("/{proposalID}/vote", s.ToggleVote)
				})
			}
			if s.svc.Comments != nil {
				r.Get("/proposals/{proposalID}/comments", s.ListComments)
				r.Post("/proposals/{proposalID}/comments", s.AddComment)
			}
			if s.svc.Schedules != nil {
				r.Get("/schedule", s.GetSchedule)
				r.Post("/schedule", s.GenerateSchedule)
				r.Put("/schedule", s.SaveSchedule)
				r.Patch("/schedule/items/{itemID}", s.EditScheduleItem)
			}
			if s.svc.Maps != nil {
				r.Get("/pins", s.ListPins)
				r.Post("/pins", s.AddPin)
				r.Delete("/pins/{pinID}", s.RemovePin)
			}
		})
	})
}

// Handler returns a bare router with every route registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Register(r)
	return r
}
