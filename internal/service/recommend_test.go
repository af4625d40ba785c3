package service_test

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripvote/internal/domain"
	"github.com/pkordes/tripvote/internal/recommend"
	"github.com/pkordes/tripvote/internal/service"
)

func TestRecommendationService_Recommend(t *testing.T) {
	catalog, err := recommend.Default()
	require.NoError(t, err)
	svc := service.NewRecommendationService(catalog, rand.New(rand.NewPCG(7, 7)), testOptions()...)

	got, err := svc.Recommend(context.Background(), "Busan", domain.CategoryAccommodation)

	require.NoError(t, err)
	var names []string
	for _, it := range catalog.Regions[1].Categories[domain.CategoryAccommodation] {
		names = append(names, it.Name)
	}
	assert.Contains(t, names, got.Name)
}

func TestRecommendationService_InvalidCategory(t *testing.T) {
	catalog, err := recommend.Default()
	require.NoError(t, err)
	svc := service.NewRecommendationService(catalog, nil, testOptions()...)

	_, err = svc.Recommend(context.Background(), "Busan", domain.Category("spa"))

	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}
