package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripvote/internal/metrics"
	"github.com/pkordes/tripvote/internal/middleware"
)

// TestMetrics_RecordsRoutePattern verifies that requests are counted under
// the route pattern, so /trips/1 and /trips/2 share one series.
func TestMetrics_RecordsRoutePattern(t *testing.T) {
	m := metrics.New()
	r := chi.NewRouter()
	r.Use(middleware.NewMetrics(m))
	r.Get("/trips/{tripID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, path := range []string{"/trips/1", "/trips/2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	var found bool
	for _, f := range families {
		if f.GetName() != "tripvote_http_requests_total" {
			continue
		}
		require.Len(t, f.GetMetric(), 1)
		assert.Equal(t, 2.0, f.GetMetric()[0].GetCounter().GetValue())
		for _, l := range f.GetMetric()[0].GetLabel() {
			if l.GetName() == "route" {
				assert.Equal(t, "/trips/{tripID}", l.GetValue())
				found = true
			}
		}
	}
	assert.True(t, found, "route label not recorded")
}
