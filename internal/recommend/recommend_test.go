package recommend_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripvote/internal/domain"
	"github.com/pkordes/tripvote/internal/recommend"
)

func catalog(t *testing.T) *recommend.Catalog {
	t.Helper()
	c, err := recommend.Default()
	require.NoError(t, err)
	return c
}

func rng() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func names(items []recommend.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestDefault_HasEveryCategory(t *testing.T) {
	c := catalog(t)

	require.Len(t, c.Regions, 3)
	for _, r := range c.Regions {
		for _, cat := range domain.AllCategories {
			assert.Len(t, r.Categories[cat], 4, "%s/%s", r.Name, cat)
		}
	}
	for _, cat := range domain.AllCategories {
		assert.Len(t, c.Defaults[cat], 2, cat)
	}
}

func TestRecommend_MatchesRegion(t *testing.T) {
	c := catalog(t)
	jeju := names(c.Regions[0].Categories[domain.CategoryRestaurant])

	for _, loc := range []string{"Jeju", "jeju island", "JE"} {
		got := c.Recommend(loc, domain.CategoryRestaurant, rng())
		assert.Contains(t, jeju, got.Name, loc)
	}
}

func TestRecommend_FallsBackToDefaults(t *testing.T) {
	c := catalog(t)
	defaults := names(c.Defaults[domain.CategoryActivity])

	for _, loc := range []string{"Paris", ""} {
		got := c.Recommend(loc, domain.CategoryActivity, rng())
		assert.Contains(t, defaults, got.Name, loc)
	}
}

func TestRecommend_SameSeedSamePick(t *testing.T) {
	c := catalog(t)

	a := c.Recommend("Seoul", domain.CategoryAttraction, rng())
	b := c.Recommend("Seoul", domain.CategoryAttraction, rng())

	assert.Equal(t, a, b)
}

func TestRecommend_FinalFallback(t *testing.T) {
	c, err := recommend.Parse([]byte("regions: []\n"))
	require.NoError(t, err)

	got := c.Recommend("Busan", domain.CategoryRestaurant, rng())

	assert.Equal(t, recommend.FallbackName, got.Name)
	assert.Equal(t, "Restaurant recommendation for Busan", got.Description)
}

func TestParse_RejectsUnknownCategory(t *testing.T) {
	_, err := recommend.Parse([]byte("defaults:\n  museum:\n    - {name: x}\n"))

	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestLookupCity(t *testing.T) {
	c := catalog(t)

	tests := []struct {
		place string
		want  string
		ok    bool
	}{
		{"Seoul", "Seoul", true},
		{"  busan ", "Busan", true},
		{"Jeju Island", "Jeju Island", true},
		{"Gyeongju City", "Gyeongju", true},
		{"Pohang-si", "Pohang", true},
		{"Atlantis", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.place, func(t *testing.T) {
			city, ok := c.LookupCity(tt.place)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, city.Name)
		})
	}
}

func TestCityNames(t *testing.T) {
	got := catalog(t).CityNames()

	assert.Equal(t, "Seoul", got[0])
	assert.Contains(t, got, "Chuncheon")
}
