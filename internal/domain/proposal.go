package domain

import "slices"

// Proposal is a votable suggestion within one category of a trip.
// Votes is a cached count of Voters; the two always agree.
type Proposal struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	URL         string   `json:"url,omitempty"`
	Votes       int      `json:"votes"`
	Voters      []string `json:"voters"`
}

// ProposalInput carries the participant-supplied fields of a new proposal.
type ProposalInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	URL         string `json:"url" validate:"omitempty,url"`
}

// HasVoter reports whether participant has voted for p.
func (p Proposal) HasVoter(participant string) bool {
	return slices.Contains(p.Voters, participant)
}

// Clone returns a copy of p with its own voter slice.
func (p Proposal) Clone() Proposal {
	c := p
	c.Voters = slices.Clone(p.Voters)
	if c.Voters == nil {
		c.Voters = []string{}
	}
	return c
}

// Normalize drops duplicate voters (keeping first occurrence) and recomputes
// Votes from the voter set.
func (p *Proposal) Normalize() {
	seen := make(map[string]struct{}, len(p.Voters))
	voters := make([]string, 0, len(p.Voters))
	for _, v := range p.Voters {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		voters = append(voters, v)
	}
	p.Voters = voters
	p.Votes = len(voters)
}
