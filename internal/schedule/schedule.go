// Package schedule builds a day-by-day itinerary from a trip's proposals.
//
// Generation is a pure function of the trip's date range and its proposals.
// Every slot looks its proposal up in the full vote-ordered list, so the
// same accommodation, attraction or activity recurs across days.
package schedule

import (
	"fmt"
	"math"
	"time"

	"github.com/pkordes/tripvote/internal/domain"
	"github.com/pkordes/tripvote/internal/voting"
)

// Slot labels. An item id is "<date>-<slot>".
const (
	SlotCheckIn   = "checkin"
	SlotCheckOut  = "checkout"
	SlotMorning   = "morning"
	SlotLunch     = "lunch"
	SlotAfternoon = "afternoon"
	SlotDinner    = "dinner"
)

const checkOutDescription = "Pack up and check out"

// Generate returns a fresh schedule covering every day from the trip's start
// date to its end date inclusive. It returns domain.ErrValidation when either
// date is missing or the end precedes the start.
//
// Slots whose category has no proposals are omitted.
func Generate(trip domain.Trip) ([]domain.DaySchedule, error) {
	if !trip.HasDates() {
		return nil, fmt.Errorf("%w: start and end dates are required to generate a schedule", domain.ErrValidation)
	}
	start, end := trip.StartDate.Time, trip.EndDate.Time
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date must not be before start date", domain.ErrValidation)
	}

	lastDay := int(math.Ceil(end.Sub(start).Hours() / 24))
	ranked := voting.SortByVotes(trip.Categories.All())

	accommodations := filter(ranked, domain.CategoryAccommodation)
	restaurants := filter(ranked, domain.CategoryRestaurant)
	attractions := window(filter(ranked, domain.CategoryAttraction), 0, 2)
	activities := window(filter(ranked, domain.CategoryActivity), 0, 1)
	laterRestaurants := window(restaurants, 1, 3)

	days := make([]domain.DaySchedule, 0, lastDay+1)
	for i := 0; i <= lastDay; i++ {
		date := start.AddDate(0, 0, i).Format(domain.DateFormat)
		day := domain.DaySchedule{Date: date, Items: []domain.ScheduleItem{}}

		switch {
		case i == 0:
			if p, ok := first(accommodations); ok {
				day.Items = append(day.Items, item(date, SlotCheckIn, "15:00", "Check in at "+p.Name, p.Description, p))
			}
			if p, ok := first(restaurants); ok {
				day.Items = append(day.Items, item(date, SlotDinner, "18:00", "Dinner at "+p.Name, p.Description, p))
			}
		case i == lastDay:
			if p, ok := first(accommodations); ok {
				day.Items = append(day.Items, item(date, SlotCheckOut, "11:00", "Check out of "+p.Name, checkOutDescription, p))
			}
		default:
			if p, ok := first(attractions); ok {
				day.Items = append(day.Items, item(date, SlotMorning, "09:00", "Visit "+p.Name, p.Description, p))
			}
			if p, ok := first(laterRestaurants); ok {
				day.Items = append(day.Items, item(date, SlotLunch, "12:00", "Lunch at "+p.Name, p.Description, p))
			}
			if p, ok := first(activities); ok {
				day.Items = append(day.Items, item(date, SlotAfternoon, "14:00", p.Name, p.Description, p))
			}
			if len(laterRestaurants) > 1 {
				p := laterRestaurants[1]
				day.Items = append(day.Items, item(date, SlotDinner, "18:00", "Dinner at "+p.Name, p.Description, p))
			}
		}
		days = append(days, day)
	}
	return days, nil
}

// DayCount returns the number of days Generate would produce for the range.
func DayCount(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(math.Ceil(end.Sub(start).Hours()/24)) + 1
}

// EditItem returns a copy of sched with the non-nil fields of patch applied
// to the item with the given id. Times are not validated and items are not
// reordered. An unknown id leaves the schedule unchanged.
func EditItem(sched []domain.DaySchedule, itemID string, patch domain.ScheduleItemPatch) []domain.DaySchedule {
	out := make([]domain.DaySchedule, len(sched))
	for i, d := range sched {
		out[i] = d.Clone()
		for j := range out[i].Items {
			it := &out[i].Items[j]
			if it.ID != itemID {
				continue
			}
			if patch.Time != nil {
				it.Time = *patch.Time
			}
			if patch.Title != nil {
				it.Title = *patch.Title
			}
			if patch.Description != nil {
				it.Description = *patch.Description
			}
		}
	}
	return out
}

// FindItem returns the item with the given id.
func FindItem(sched []domain.DaySchedule, itemID string) (domain.ScheduleItem, bool) {
	for _, d := range sched {
		for _, it := range d.Items {
			if it.ID == itemID {
				return it, true
			}
		}
	}
	return domain.ScheduleItem{}, false
}

func item(date, slot, at, title, description string, p domain.Proposal) domain.ScheduleItem {
	return domain.ScheduleItem{
		ID:               date + "-" + slot,
		Time:             at,
		Title:            title,
		Description:      description,
		Category:         p.Category,
		SourceProposalID: p.ID,
	}
}

func filter(ps []domain.Proposal, c domain.Category) []domain.Proposal {
	var out []domain.Proposal
	for _, p := range ps {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out
}

// window mirrors a half-open slice that clamps out-of-range bounds.
func window(ps []domain.Proposal, from, to int) []domain.Proposal {
	from = min(from, len(ps))
	to = min(to, len(ps))
	return ps[from:to]
}

func first(ps []domain.Proposal) (domain.Proposal, bool) {
	if len(ps) == 0 {
		return domain.Proposal{}, false
	}
	return ps[0], true
}
