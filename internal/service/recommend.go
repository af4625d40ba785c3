package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/pkordes/tripvote/internal/domain"
	"github.com/pkordes/tripvote/internal/recommend"
)

// RecommendationService picks a suggestion from the static catalog.
type RecommendationService struct {
	catalog *recommend.Catalog
	opts    options

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRecommendationService constructs a RecommendationService. A nil rng
// is replaced with one seeded from the clock.
func NewRecommendationService(catalog *recommend.Catalog, rng *rand.Rand, opts ...Option) *RecommendationService {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &RecommendationService{catalog: catalog, opts: buildOptions(opts), rng: rng}
}

// Recommend returns one suggestion for the location and category.
func (s *RecommendationService) Recommend(ctx context.Context, location string, category domain.Category) (recommend.Item, error) {
	if !category.Valid() {
		return recommend.Item{}, fmt.Errorf("%w: %q", domain.ErrInvalidCategory, string(category))
	}

	s.mu.Lock()
	item := s.catalog.Recommend(location, category, s.rng)
	s.mu.Unlock()

	s.opts.metrics.RecommendationServed(category)
	s.opts.logger.DebugContext(ctx, "recommendation served",
		slog.String("location", location),
		slog.String("category", string(category)),
		slog.String("name", item.Name),
	)
	return item, nil
}
