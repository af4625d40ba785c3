package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkordes/tripvote/internal/domain"
	"github.com/pkordes/tripvote/internal/repo"
	"github.com/pkordes/tripvote/internal/schedule"
)

// ScheduleService generates, stores and edits a trip's itinerary.
type ScheduleService struct {
	trips repo.TripRepo
	opts  options
}

// NewScheduleService constructs a ScheduleService backed by the provided TripRepo.
func NewScheduleService(trips repo.TripRepo, opts ...Option) *ScheduleService {
	return &ScheduleService{trips: trips, opts: buildOptions(opts)}
}

// Generate builds a schedule from the trip's current votes and stores it,
// replacing any previous schedule including manual edits.
// Returns domain.ErrValidation if the trip has no start or end date.
func (s *ScheduleService) Generate(ctx context.Context, tripID string) ([]domain.DaySchedule, error) {
	updated, err := s.trips.Update(ctx, tripID, func(t domain.Trip) (domain.Trip, error) {
		days, err := schedule.Generate(t)
		if err != nil {
			return t, err
		}
		t.Schedule = days
		return t, nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.ScheduleService.Generate: %w", err)
	}

	s.opts.metrics.ScheduleGenerated()
	s.opts.logger.InfoContext(ctx, "schedule generated",
		slog.String("trip_id", tripID),
		slog.Int("days", len(updated.Schedule)),
	)
	return updated.Schedule, nil
}

// Get returns the stored schedule, or an empty one if none was generated.
func (s *ScheduleService) Get(ctx context.Context, tripID string) ([]domain.DaySchedule, error) {
	t, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ScheduleService.Get: %w", err)
	}
	if t.Schedule == nil {
		return []domain.DaySchedule{}, nil
	}
	return t.Schedule, nil
}

// Save replaces the stored schedule wholesale. Day dates must be
// "YYYY-MM-DD"; item times are stored as given.
func (s *ScheduleService) Save(ctx context.Context, tripID string, days []domain.DaySchedule) ([]domain.DaySchedule, error) {
	for _, d := range days {
		if _, err := domain.ParseDate(d.Date); err != nil {
			return nil, fmt.Errorf("%w: invalid schedule date %q", domain.ErrValidation, d.Date)
		}
	}

	updated, err := s.trips.Update(ctx, tripID, func(t domain.Trip) (domain.Trip, error) {
		t.Schedule = days
		return t, nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.ScheduleService.Save: %w", err)
	}
	s.opts.logger.InfoContext(ctx, "schedule saved", slog.String("trip_id", tripID), slog.Int("days", len(days)))
	return updated.Schedule, nil
}

// EditItem patches one item of the stored schedule. An unknown item id
// leaves the schedule unchanged.
func (s *ScheduleService) EditItem(ctx context.Context, tripID, itemID string, patch domain.ScheduleItemPatch) ([]domain.DaySchedule, error) {
	updated, err := s.trips.Update(ctx, tripID, func(t domain.Trip) (domain.Trip, error) {
		if _, ok := schedule.FindItem(t.Schedule, itemID); !ok {
			return t, repo.ErrUnchanged
		}
		t.Schedule = schedule.EditItem(t.Schedule, itemID, patch)
		return t, nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.ScheduleService.EditItem: %w", err)
	}
	s.opts.logger.InfoContext(ctx, "schedule item edited", slog.String("trip_id", tripID), slog.String("item_id", itemID))
	return updated.Schedule, nil
}
