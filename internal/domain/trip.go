// Package domain contains the core data types for the trip voting application.
// It is imported by every other internal package (repo, voting, schedule,
// service, handler) and holds no I/O.
package domain

import (
	"slices"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// DateFormat is the wire and storage format of every calendar date.
const DateFormat = openapi_types.DateFormat

// Date is a calendar date serialized as "YYYY-MM-DD".
type Date = openapi_types.Date

// NewDate returns the Date for the given calendar day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// DefaultParticipant is the synthetic participant used when a trip is created
// without naming anyone.
const DefaultParticipant = "Me"

// Status is the lifecycle state of a trip as shown in trip listings.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Trip is the top-level aggregate. It owns its participants, proposals and
// generated schedule. Comments and map pins are stored separately.
type Trip struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Location     string          `json:"location"`
	Code         string          `json:"code"`
	Deadline     Date            `json:"deadline"`
	StartDate    *Date           `json:"startDate,omitempty"`
	EndDate      *Date           `json:"endDate,omitempty"`
	Participants []string        `json:"participants"`
	Categories   CategoryBuckets `json:"categories"`
	Schedule     []DaySchedule   `json:"schedule,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// IsExpired reports whether voting has closed, that is whether the deadline
// (midnight UTC of its date) lies before now.
func (t Trip) IsExpired(now time.Time) bool {
	return t.Deadline.Time.Before(now)
}

// Status returns StatusCompleted once the deadline has passed.
func (t Trip) Status(now time.Time) Status {
	if t.IsExpired(now) {
		return StatusCompleted
	}
	return StatusActive
}

// HasDates reports whether both start and end dates are set, which is the
// precondition for generating a schedule.
func (t Trip) HasDates() bool {
	return t.StartDate != nil && t.EndDate != nil
}

// Clone returns a deep copy so callers can derive a new trip without
// aliasing the slices of t.
func (t Trip) Clone() Trip {
	c := t
	c.Participants = slices.Clone(t.Participants)
	c.Categories = t.Categories.Clone()
	if t.Schedule != nil {
		c.Schedule = make([]DaySchedule, len(t.Schedule))
		for i, d := range t.Schedule {
			c.Schedule[i] = d.Clone()
		}
	}
	if t.StartDate != nil {
		sd := *t.StartDate
		c.StartDate = &sd
	}
	if t.EndDate != nil {
		ed := *t.EndDate
		c.EndDate = &ed
	}
	return c
}

// Normalize re-establishes the invariants of a trip loaded from storage:
// every category bucket is non-nil, every proposal's vote count equals its
// voter count, and the participant list is never empty.
func (t *Trip) Normalize() {
	t.Categories.Normalize()
	if len(t.Participants) == 0 {
		t.Participants = []string{DefaultParticipant}
	}
}
