package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"slices"
	"strings"

	"github.com/pkordes/tripvote/internal/domain"
	"github.com/pkordes/tripvote/internal/repo"
)

// maxCodeAttempts bounds join-code regeneration on collision.
const maxCodeAttempts = 10

// TripInput carries the editable fields of a trip.
// Participants are only read on create.
type TripInput struct {
	Title        string       `json:"title" validate:"required"`
	Description  string       `json:"description"`
	Location     string       `json:"location" validate:"required"`
	Deadline     *domain.Date `json:"deadline" validate:"required"`
	StartDate    *domain.Date `json:"startDate,omitempty"`
	EndDate      *domain.Date `json:"endDate,omitempty"`
	Participants []string     `json:"participants,omitempty"`
}

// TripService implements business logic for Trip operations.
type TripService struct {
	repo    repo.TripRepo
	newCode func() (string, error)
	opts    options
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo, opts ...Option) *TripService {
	return &TripService{repo: r, newCode: randomJoinCode, opts: buildOptions(opts)}
}

// WithCodeGenerator replaces the join-code source. Used by tests to force
// collisions.
func (s *TripService) WithCodeGenerator(gen func() (string, error)) *TripService {
	s.newCode = gen
	return s
}

// Create validates and persists a new trip with a fresh join code.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, in TripInput) (domain.Trip, error) {
	in = in.trimmed()
	if err := validateTripInput(in); err != nil {
		return domain.Trip{}, err
	}

	code, err := s.uniqueCode(ctx)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	trip := domain.Trip{
		ID:           s.opts.newID(),
		Title:        in.Title,
		Description:  in.Description,
		Location:     in.Location,
		Code:         code,
		Deadline:     *in.Deadline,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Participants: uniqueParticipants(in.Participants),
		CreatedAt:    s.opts.now().UTC(),
	}
	trip.Normalize()

	created, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	s.opts.metrics.TripCreated()
	s.opts.logger.InfoContext(ctx, "trip created",
		slog.String("trip_id", created.ID),
		slog.String("code", created.Code),
		slog.Int("participants", len(created.Participants)),
	)
	return created, nil
}

// Edit replaces the title, description, location and dates of a trip.
// Participants and the join code cannot be changed.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// trip does not exist.
func (s *TripService) Edit(ctx context.Context, id string, in TripInput) (domain.Trip, error) {
	in = in.trimmed()
	if err := validateTripInput(in); err != nil {
		return domain.Trip{}, err
	}

	updated, err := s.repo.Update(ctx, id, func(t domain.Trip) (domain.Trip, error) {
		t.Title = in.Title
		t.Description = in.Description
		t.Location = in.Location
		t.Deadline = *in.Deadline
		t.StartDate = in.StartDate
		t.EndDate = in.EndDate
		return t, nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Edit: %w", err)
	}
	s.opts.logger.InfoContext(ctx, "trip edited", slog.String("trip_id", id))
	return updated, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return t, nil
}

// FindByCode looks a trip up by join code, ignoring case and surrounding
// whitespace. Returns domain.ErrNotFound if no trip uses the code.
func (s *TripService) FindByCode(ctx context.Context, code string) (domain.Trip, error) {
	code = domain.NormalizeJoinCode(code)
	if code == "" {
		return domain.Trip{}, fmt.Errorf("%w: code is required", domain.ErrValidation)
	}
	t, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.FindByCode: %w", err)
	}
	return t, nil
}

// List returns all trips. Always returns a non-nil slice.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// ListByStatus returns the trips whose status is currently status.
func (s *TripService) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Trip, error) {
	if status != domain.StatusActive && status != domain.StatusCompleted {
		return nil, fmt.Errorf("%w: status must be %q or %q", domain.ErrValidation, domain.StatusActive, domain.StatusCompleted)
	}
	trips, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.opts.now()
	out := make([]domain.Trip, 0, len(trips))
	for _, t := range trips {
		if t.Status(now) == status {
			out = append(out, t)
		}
	}
	return out, nil
}

// uniqueCode draws join codes until one is unused.
func (s *TripService) uniqueCode(ctx context.Context) (string, error) {
	for range maxCodeAttempts {
		code, err := s.newCode()
		if err != nil {
			return "", err
		}
		exists, err := s.repo.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
		s.opts.logger.WarnContext(ctx, "join code collision, regenerating", slog.String("code", code))
	}
	return "", fmt.Errorf("no free join code after %d attempts", maxCodeAttempts)
}

func (in TripInput) trimmed() TripInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	return in
}

// validateTripInput enforces required fields and date ordering:
// the end date may not precede the start date, and voting must close
// before the trip starts.
func validateTripInput(in TripInput) error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Time.Before(in.StartDate.Time) {
		return fmt.Errorf("%w: endDate must not be before startDate", domain.ErrValidation)
	}
	if in.StartDate != nil && !in.Deadline.Time.Before(in.StartDate.Time) {
		return fmt.Errorf("%w: deadline must be before startDate", domain.ErrValidation)
	}
	return nil
}

// uniqueParticipants trims names and drops blanks and duplicates, keeping
// first occurrence. An empty result is filled in by Trip.Normalize.
func uniqueParticipants(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || slices.Contains(out, n) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// randomJoinCode draws JoinCodeLength characters uniformly from
// JoinCodeAlphabet.
func randomJoinCode() (string, error) {
	n := big.NewInt(int64(len(domain.JoinCodeAlphabet)))
	var b strings.Builder
	b.Grow(domain.JoinCodeLength)
	for range domain.JoinCodeLength {
		i, err := rand.Int(rand.Reader, n)
		if err != nil {
			return "", fmt.Errorf("generate join code: %w", err)
		}
		b.WriteByte(domain.JoinCodeAlphabet[i.Int64()])
	}
	return b.String(), nil
}
