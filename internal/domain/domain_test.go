package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripvote/internal/domain"
)

func TestParseCategory(t *testing.T) {
	for _, c := range domain.AllCategories {
		got, err := domain.ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	for _, bad := range []string{"", "Restaurant", "nightlife"} {
		_, err := domain.ParseCategory(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidCategory, bad)
	}
}

func TestValidJoinCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"JEJU2024", true},
		{"ABCDEFGH", true},
		{"12345678", true},
		{"jeju2024", false},
		{"JEJU202", false},
		{"JEJU20245", false},
		{"JEJU-024", false},
		{"", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, domain.ValidJoinCode(tc.code), tc.code)
	}
}

func TestNormalizeJoinCode(t *testing.T) {
	assert.Equal(t, "JEJU2024", domain.NormalizeJoinCode("  jeJu2024 "))
}

func TestTrip_IsExpired(t *testing.T) {
	trip := domain.Trip{Deadline: domain.NewDate(2025, time.June, 10)}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"day before", time.Date(2025, 6, 9, 23, 59, 0, 0, time.UTC), false},
		{"exactly at deadline", time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), false},
		{"deadline day afternoon", time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC), true},
		{"deadline day night", time.Date(2025, 6, 10, 23, 59, 59, 0, time.UTC), true},
		{"day after", time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), true},
		// 2025-06-10 08:00 in Seoul is still 2025-06-09 in UTC.
		{"compared in UTC", time.Date(2025, 6, 10, 8, 0, 0, 0, time.FixedZone("KST", 9*3600)), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, trip.IsExpired(tc.now))
		})
	}
}

func TestTrip_Status(t *testing.T) {
	trip := domain.Trip{Deadline: domain.NewDate(2025, time.June, 10)}

	assert.Equal(t, domain.StatusActive, trip.Status(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, domain.StatusCompleted, trip.Status(time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, domain.StatusCompleted, trip.Status(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)))
}

func TestTrip_Normalize(t *testing.T) {
	trip := domain.Trip{
		Categories: domain.CategoryBuckets{
			Attraction: []domain.Proposal{
				{ID: "a", Category: domain.CategoryRestaurant, Votes: 7, Voters: []string{"Ann", "Ben", "Ann"}},
			},
		},
	}

	trip.Normalize()

	assert.Equal(t, []string{domain.DefaultParticipant}, trip.Participants)
	assert.NotNil(t, trip.Categories.Restaurant)
	assert.NotNil(t, trip.Categories.Accommodation)
	assert.NotNil(t, trip.Categories.Activity)
	got := trip.Categories.Attraction[0]
	assert.Equal(t, []string{"Ann", "Ben"}, got.Voters)
	assert.Equal(t, 2, got.Votes)
	assert.Equal(t, domain.CategoryAttraction, got.Category)
}

func TestTrip_CloneDoesNotAlias(t *testing.T) {
	start := domain.NewDate(2025, time.June, 20)
	orig := domain.Trip{
		Participants: []string{"Ann"},
		StartDate:    &start,
		Categories: domain.CategoryBuckets{
			Restaurant: []domain.Proposal{{ID: "r", Voters: []string{"Ann"}, Votes: 1}},
		},
		Schedule: []domain.DaySchedule{{Date: "2025-06-20", Items: []domain.ScheduleItem{{ID: "s", Title: "x"}}}},
	}

	c := orig.Clone()
	c.Participants[0] = "Zed"
	c.Categories.Restaurant[0].Voters[0] = "Zed"
	c.Schedule[0].Items[0].Title = "y"
	c.StartDate.Time = c.StartDate.Time.AddDate(0, 0, 1)

	assert.Equal(t, "Ann", orig.Participants[0])
	assert.Equal(t, "Ann", orig.Categories.Restaurant[0].Voters[0])
	assert.Equal(t, "x", orig.Schedule[0].Items[0].Title)
	assert.Equal(t, 20, orig.StartDate.Time.Day())
}

func TestCategoryBuckets_GetSetAll(t *testing.T) {
	var b domain.CategoryBuckets
	require.NoError(t, b.Set(domain.CategoryActivity, []domain.Proposal{{ID: "act"}}))
	require.NoError(t, b.Set(domain.CategoryRestaurant, []domain.Proposal{{ID: "res"}}))

	got, err := b.Get(domain.CategoryActivity)
	require.NoError(t, err)
	assert.Equal(t, "act", got[0].ID)

	all := b.All()
	require.Len(t, all, 2)
	assert.Equal(t, "res", all[0].ID, "canonical order puts restaurants first")

	_, err = b.Get("spa")
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
	assert.ErrorIs(t, b.Set("spa", nil), domain.ErrInvalidCategory)
}

func TestProposal_HasVoter(t *testing.T) {
	p := domain.Proposal{Voters: []string{"Ann"}}

	assert.True(t, p.HasVoter("Ann"))
	assert.False(t, p.HasVoter("ann"))
}

func TestDate_JSON(t *testing.T) {
	d, err := domain.ParseDate("2024-07-15")
	require.NoError(t, err)

	b, err := json.Marshal(struct {
		Deadline domain.Date `json:"deadline"`
	}{d})
	require.NoError(t, err)
	assert.JSONEq(t, `{"deadline":"2024-07-15"}`, string(b))

	_, err = domain.ParseDate("15/07/2024")
	assert.Error(t, err)
}
