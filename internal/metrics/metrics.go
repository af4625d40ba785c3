// Package metrics holds the Prometheus instruments for the API and the
// planning use cases. Everything is registered on a private registry so
// tests can build as many collectors as they like.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pkordes/tripvote/internal/domain"
)

const namespace = "tripvote"

// Collector owns the registry and every instrument. A nil *Collector is
// valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	votes            *prometheus.CounterVec
	proposalsAdded   *prometheus.CounterVec
	proposalsDeleted *prometheus.CounterVec
	tripsCreated     prometheus.Counter
	commentsAdded    prometheus.Counter
	schedulesBuilt   prometheus.Counter
	pinsAdded        prometheus.Counter
	recommendations  *prometheus.CounterVec
}

// New builds a Collector with Go runtime and process collectors attached.
func New() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c := &Collector{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		votes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_total",
			Help:      "Vote toggles by category and direction (cast or retracted).",
		}, []string{"category", "direction"}),
		proposalsAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proposals_added_total",
			Help:      "Proposals added by category.",
		}, []string{"category"}),
		proposalsDeleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proposals_deleted_total",
			Help:      "Proposals deleted by category.",
		}, []string{"category"}),
		tripsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trips_created_total",
			Help:      "Trips created.",
		}),
		commentsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_added_total",
			Help:      "Comments posted on proposals.",
		}),
		schedulesBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedules_generated_total",
			Help:      "Schedules generated from proposals.",
		}),
		pinsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "map_pins_added_total",
			Help:      "Map pins added.",
		}),
		recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Recommendations served by category.",
		}, []string{"category"}),
	}

	reg.MustRegister(
		c.httpRequests, c.httpDuration,
		c.votes, c.proposalsAdded, c.proposalsDeleted,
		c.tripsCreated, c.commentsAdded, c.schedulesBuilt, c.pinsAdded,
		c.recommendations,
	)
	return c
}

// Registry exposes the private registry, mainly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveRequest records one finished HTTP request. route is the matched
// route pattern, not the raw path, to keep label cardinality bounded.
func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// VoteToggled records a vote being cast (cast=true) or retracted.
func (c *Collector) VoteToggled(category domain.Category, cast bool) {
	if c == nil {
		return
	}
	direction := "retracted"
	if cast {
		direction = "cast"
	}
	c.votes.WithLabelValues(string(category), direction).Inc()
}

func (c *Collector) ProposalAdded(category domain.Category) {
	if c == nil {
		return
	}
	c.proposalsAdded.WithLabelValues(string(category)).Inc()
}

func (c *Collector) ProposalDeleted(category domain.Category) {
	if c == nil {
		return
	}
	c.proposalsDeleted.WithLabelValues(string(category)).Inc()
}

func (c *Collector) TripCreated() {
	if c == nil {
		return
	}
	c.tripsCreated.Inc()
}

func (c *Collector) CommentAdded() {
	if c == nil {
		return
	}
	c.commentsAdded.Inc()
}

func (c *Collector) ScheduleGenerated() {
	if c == nil {
		return
	}
	c.schedulesBuilt.Inc()
}

func (c *Collector) PinAdded() {
	if c == nil {
		return
	}
	c.pinsAdded.Inc()
}

func (c *Collector) RecommendationServed(category domain.Category) {
	if c == nil {
		return
	}
	c.recommendations.WithLabelValues(string(category)).Inc()
}
