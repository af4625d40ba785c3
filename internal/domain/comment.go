package domain

import "time"

// Comment is an append-only remark left by a participant on a proposal.
// Comments are stored per (trip, proposal) pair, outside the Trip aggregate.
type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
