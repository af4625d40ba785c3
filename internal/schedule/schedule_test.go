package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripvote/internal/domain"
	"github.com/pkordes/tripvote/internal/schedule"
)

func p(id string, c domain.Category, name string, votes int) domain.Proposal {
	voters := make([]string, votes)
	for i := range voters {
		voters[i] = string(rune('a' + i))
	}
	return domain.Proposal{ID: id, Name: name, Description: name + " desc", Category: c, Votes: votes, Voters: voters}
}

func datedTrip(start, end domain.Date) domain.Trip {
	return domain.Trip{
		ID:           "t",
		Participants: []string{"a", "b", "c", "d"},
		StartDate:    &start,
		EndDate:      &end,
		Categories: domain.CategoryBuckets{
			Restaurant: []domain.Proposal{
				p("r1", domain.CategoryRestaurant, "Noodles", 1),
				p("r2", domain.CategoryRestaurant, "BBQ", 3),
				p("r3", domain.CategoryRestaurant, "Sushi", 2),
			},
			Accommodation: []domain.Proposal{
				p("h1", domain.CategoryAccommodation, "Guesthouse", 1),
				p("h2", domain.CategoryAccommodation, "Resort", 4),
			},
			Attraction: []domain.Proposal{
				p("a1", domain.CategoryAttraction, "Hallasan", 2),
				p("a2", domain.CategoryAttraction, "Udo", 2),
			},
			Activity: []domain.Proposal{
				p("x1", domain.CategoryActivity, "Kayak", 0),
				p("x2", domain.CategoryActivity, "Scuba", 1),
			},
		},
	}
}

func ids(day domain.DaySchedule) []string {
	out := make([]string, len(day.Items))
	for i, it := range day.Items {
		out[i] = it.ID
	}
	return out
}

func TestGenerate_DayCountInclusive(t *testing.T) {
	trip := datedTrip(domain.NewDate(2024, time.January, 20), domain.NewDate(2024, time.January, 23))

	days, err := schedule.Generate(trip)

	require.NoError(t, err)
	require.Len(t, days, 4)
	assert.Equal(t, "2024-01-20", days[0].Date)
	assert.Equal(t, "2024-01-21", days[1].Date)
	assert.Equal(t, "2024-01-22", days[2].Date)
	assert.Equal(t, "2024-01-23", days[3].Date)
}

func TestGenerate_Slots(t *testing.T) {
	trip := datedTrip(domain.NewDate(2024, time.January, 20), domain.NewDate(2024, time.January, 23))

	days, err := schedule.Generate(trip)
	require.NoError(t, err)

	first := days[0]
	assert.Equal(t, []string{"2024-01-20-checkin", "2024-01-20-dinner"}, ids(first))
	assert.Equal(t, "15:00", first.Items[0].Time)
	assert.Equal(t, "Check in at Resort", first.Items[0].Title)
	assert.Equal(t, "h2", first.Items[0].SourceProposalID)
	assert.Equal(t, domain.CategoryAccommodation, first.Items[0].Category)
	assert.Equal(t, "Dinner at BBQ", first.Items[1].Title)
	assert.Equal(t, "18:00", first.Items[1].Time)

	middle := days[1]
	assert.Equal(t, []string{
		"2024-01-21-morning", "2024-01-21-lunch", "2024-01-21-afternoon", "2024-01-21-dinner",
	}, ids(middle))
	assert.Equal(t, "Visit Hallasan", middle.Items[0].Title, "ties keep insertion order")
	assert.Equal(t, "Lunch at Sushi", middle.Items[1].Title)
	assert.Equal(t, "Scuba", middle.Items[2].Title)
	assert.Equal(t, "Dinner at Noodles", middle.Items[3].Title)

	// Middle days reuse the same picks.
	for i, it := range days[2].Items {
		assert.Equal(t, middle.Items[i].Title, it.Title)
		assert.Equal(t, middle.Items[i].SourceProposalID, it.SourceProposalID)
	}

	last := days[3]
	require.Len(t, last.Items, 1)
	assert.Equal(t, "2024-01-23-checkout", last.Items[0].ID)
	assert.Equal(t, "11:00", last.Items[0].Time)
	assert.Equal(t, "Check out of Resort", last.Items[0].Title)
	assert.Equal(t, "Pack up and check out", last.Items[0].Description)
}

func TestGenerate_Deterministic(t *testing.T) {
	trip := datedTrip(domain.NewDate(2024, time.March, 1), domain.NewDate(2024, time.March, 5))

	a, err := schedule.Generate(trip)
	require.NoError(t, err)
	b, err := schedule.Generate(trip)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerate_SingleDay(t *testing.T) {
	d := domain.NewDate(2024, time.May, 5)
	trip := datedTrip(d, d)

	days, err := schedule.Generate(trip)

	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, []string{"2024-05-05-checkin", "2024-05-05-dinner"}, ids(days[0]))
}

func TestGenerate_MissingCategoriesOmitSlots(t *testing.T) {
	trip := datedTrip(domain.NewDate(2024, time.January, 1), domain.NewDate(2024, time.January, 3))
	trip.Categories = domain.CategoryBuckets{
		Restaurant: []domain.Proposal{p("r1", domain.CategoryRestaurant, "Only", 1)},
	}

	days, err := schedule.Generate(trip)

	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, []string{"2024-01-01-dinner"}, ids(days[0]))
	assert.Empty(t, days[1].Items, "a single restaurant never reaches the lunch or dinner offsets")
	assert.Empty(t, days[2].Items)
	assert.NotNil(t, days[2].Items)
}

func TestGenerate_RequiresDates(t *testing.T) {
	trip := datedTrip(domain.NewDate(2024, time.January, 1), domain.NewDate(2024, time.January, 3))
	trip.EndDate = nil

	_, err := schedule.Generate(trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGenerate_EndBeforeStart(t *testing.T) {
	trip := datedTrip(domain.NewDate(2024, time.January, 3), domain.NewDate(2024, time.January, 1))

	_, err := schedule.Generate(trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDayCount(t *testing.T) {
	start := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 4, schedule.DayCount(start, start.AddDate(0, 0, 3)))
	assert.Equal(t, 1, schedule.DayCount(start, start))
	assert.Equal(t, 0, schedule.DayCount(start, start.AddDate(0, 0, -1)))
}

func TestEditItem(t *testing.T) {
	trip := datedTrip(domain.NewDate(2024, time.January, 20), domain.NewDate(2024, time.January, 22))
	days, err := schedule.Generate(trip)
	require.NoError(t, err)

	at, title := "07:30", "Sunrise hike"
	edited := schedule.EditItem(days, "2024-01-21-morning", domain.ScheduleItemPatch{Time: &at, Title: &title})

	got, ok := schedule.FindItem(edited, "2024-01-21-morning")
	require.True(t, ok)
	assert.Equal(t, "07:30", got.Time)
	assert.Equal(t, "Sunrise hike", got.Title)
	assert.Equal(t, "Hallasan desc", got.Description, "nil fields are left alone")

	orig, _ := schedule.FindItem(days, "2024-01-21-morning")
	assert.Equal(t, "09:00", orig.Time, "input must not be modified")
}

func TestEditItem_UnknownIDIsNoOp(t *testing.T) {
	trip := datedTrip(domain.NewDate(2024, time.January, 20), domain.NewDate(2024, time.January, 21))
	days, err := schedule.Generate(trip)
	require.NoError(t, err)

	title := "x"
	assert.Equal(t, days, schedule.EditItem(days, "nope", domain.ScheduleItemPatch{Title: &title}))
}
