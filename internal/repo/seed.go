package repo

import (
	"slices"
	"time"

	"github.com/pkordes/tripvote/internal/domain"
)

// SeedTripID and SeedTripCode identify the built-in example trip that is
// always available, even on an empty store.
const (
	SeedTripID   = "1"
	SeedTripCode = "JEJU2024"
)

// SeedTrips returns the built-in trips merged with persisted ones.
// A fresh copy is returned on every call.
func SeedTrips() []domain.Trip {
	participants := []string{"Chulsoo Kim", "Younghee Lee", "Minsoo Park", "Jieun Jung"}
	p := func(id string, c domain.Category, name, desc string, voters ...string) domain.Proposal {
		return domain.Proposal{ID: id, Name: name, Description: desc, Category: c, Votes: len(voters), Voters: slices.Clone(voters)}
	}

	return []domain.Trip{{
		ID:           SeedTripID,
		Title:        "Jeju Island Trip",
		Description:  "Four days and three nights on Jeju",
		Location:     "Jeju",
		Code:         SeedTripCode,
		Deadline:     domain.NewDate(2024, time.July, 15),
		Participants: participants,
		Categories: domain.CategoryBuckets{
			Restaurant: []domain.Proposal{
				p("1", domain.CategoryRestaurant, "Black Pork BBQ", "Jeju's signature black pork grill", "Chulsoo Kim", "Younghee Lee", "Minsoo Park"),
				p("2", domain.CategoryRestaurant, "Seafood Buffet", "Fresh Jeju seafood", "Jieun Jung", "Minsoo Park"),
			},
			Accommodation: []domain.Proposal{
				p("3", domain.CategoryAccommodation, "Jeju Resort", "Resort with an ocean view", participants...),
				p("4", domain.CategoryAccommodation, "Guesthouse", "Budget stay", "Minsoo Park"),
			},
			Attraction: []domain.Proposal{
				p("5", domain.CategoryAttraction, "Hallasan", "The symbol of Jeju", "Chulsoo Kim", "Younghee Lee", "Jieun Jung"),
				p("6", domain.CategoryAttraction, "Udo", "A beautiful little island", "Younghee Lee", "Minsoo Park"),
			},
			Activity: []domain.Proposal{
				p("7", domain.CategoryActivity, "Scuba Diving", "Explore the Jeju sea", "Chulsoo Kim", "Jieun Jung"),
				p("8", domain.CategoryActivity, "Rental Car Tour", "Drive wherever you like", "Younghee Lee", "Minsoo Park", "Jieun Jung"),
			},
		},
	}}
}
