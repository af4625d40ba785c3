package domain

import "slices"

// DaySchedule is one calendar day of a generated itinerary.
type DaySchedule struct {
	Date  string         `json:"date"` // "2006-01-02"
	Items []ScheduleItem `json:"items"`
}

// ScheduleItem is a single timed entry in a DaySchedule.
// SourceProposalID is empty for items not derived from a proposal.
type ScheduleItem struct {
	ID               string   `json:"id"`
	Time             string   `json:"time"` // "15:04"
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Category         Category `json:"category"`
	SourceProposalID string   `json:"sourceProposalId,omitempty"`
}

// ScheduleItemPatch lists the fields of a ScheduleItem that may be edited
// after generation. Nil fields are left unchanged.
type ScheduleItemPatch struct {
	Time        *string `json:"time,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Clone returns a copy of d with its own item slice.
func (d DaySchedule) Clone() DaySchedule {
	c := d
	c.Items = slices.Clone(d.Items)
	return c
}
