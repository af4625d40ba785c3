// Package service contains the use cases of the trip planner.
// Services validate inputs, enforce the voting deadline, and orchestrate
// the pure engines (voting, schedule) over the repo interfaces.
// No storage details live here.
package service

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripvote/internal/metrics"
)

// Option configures the collaborators shared by every service.
type Option func(*options)

type options struct {
	now     func() time.Time
	newID   func() string
	logger  *slog.Logger
	metrics *metrics.Collector
}

func defaultOptions() options {
	return options{
		now:    time.Now,
		newID:  newUUIDv7,
		logger: slog.Default(),
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock overrides the time source used for expiry checks and timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator overrides how ids for trips, proposals, comments and pins
// are generated.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// WithLogger sets the logger for state-change events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics sets the collector that use-case counters are recorded on.
func WithMetrics(m *metrics.Collector) Option {
	return func(o *options) { o.metrics = m }
}

// newUUIDv7 returns a time-ordered id so that ids sort by creation.
func newUUIDv7() string {
	return uuid.Must(uuid.NewV7()).String()
}
