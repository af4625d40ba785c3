package voting

import (
	"cmp"
	"slices"

	"github.com/pkordes/tripvote/internal/domain"
)

// Ranked is a proposal annotated with its position in a ranking.
type Ranked struct {
	Proposal domain.Proposal
	// Position is 1-indexed.
	Position int
	// Leader is set on the first entry only, and only if it has votes.
	Leader bool
	// Rate is the participation rate in percent. Zero unless filled by
	// RankWithRates.
	Rate float64
}

// Rank orders proposals by votes, highest first. Ties keep their input
// order, so on equal votes the earlier submission ranks higher.
func Rank(proposals []domain.Proposal) []Ranked {
	sorted := SortByVotes(proposals)
	out := make([]Ranked, len(sorted))
	for i, p := range sorted {
		out[i] = Ranked{Proposal: p, Position: i + 1}
	}
	if len(out) > 0 && out[0].Proposal.Votes > 0 {
		out[0].Leader = true
	}
	return out
}

// RankWithRates ranks proposals and fills in each participation rate.
func RankWithRates(proposals []domain.Proposal, totalParticipants int) []Ranked {
	ranked := Rank(proposals)
	for i := range ranked {
		ranked[i].Rate = ParticipationRate(ranked[i].Proposal, totalParticipants)
	}
	return ranked
}

// SortByVotes returns a copy of proposals stably sorted by votes descending.
func SortByVotes(proposals []domain.Proposal) []domain.Proposal {
	sorted := make([]domain.Proposal, len(proposals))
	for i, p := range proposals {
		sorted[i] = p.Clone()
	}
	slices.SortStableFunc(sorted, func(a, b domain.Proposal) int {
		return cmp.Compare(b.Votes, a.Votes)
	})
	return sorted
}

// ParticipationRate returns votes / totalParticipants as a percentage in
// [0, 100]. A trip with no participants has a rate of 0.
//
// The rate can only exceed 100 if voters are not a subset of participants,
// which the engine does not enforce; the result is clamped for display.
func ParticipationRate(p domain.Proposal, totalParticipants int) float64 {
	if totalParticipants <= 0 {
		return 0
	}
	rate := float64(p.Votes) / float64(totalParticipants) * 100
	return min(max(rate, 0), 100)
}

// Standing is the ranking of one category.
type Standing struct {
	Category  domain.Category
	Proposals []Ranked
}

// Standings ranks every category of the trip in canonical order, with rates
// computed against the trip's participant count.
func Standings(trip domain.Trip) []Standing {
	out := make([]Standing, 0, len(domain.AllCategories))
	for _, c := range domain.AllCategories {
		proposals, _ := trip.Categories.Get(c)
		out = append(out, Standing{
			Category:  c,
			Proposals: RankWithRates(proposals, len(trip.Participants)),
		})
	}
	return out
}
