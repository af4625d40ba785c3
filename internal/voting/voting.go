// Package voting is the vote engine: toggle semantics, proposal add/delete,
// ranking and participation rates. Every function is pure. Trips are taken
// and returned by value and the input is never modified.
//
// Unknown proposal ids are a soft no-op for ToggleVote and DeleteProposal:
// the trip comes back unchanged and no error is reported. Unknown categories
// are always rejected with domain.ErrInvalidCategory.
package voting

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pkordes/tripvote/internal/domain"
)

// ToggleVote adds participant to the voters of the proposal if absent, or
// removes them if present. Votes always equals the size of the voter set
// afterwards, so applying the same toggle twice restores the original trip.
func ToggleVote(trip domain.Trip, category domain.Category, proposalID, participant string) (domain.Trip, error) {
	if strings.TrimSpace(participant) == "" {
		return trip, fmt.Errorf("%w: participant name is required", domain.ErrValidation)
	}
	proposals, err := trip.Categories.Get(category)
	if err != nil {
		return trip, err
	}
	i := indexOf(proposals, proposalID)
	if i < 0 {
		return trip, nil
	}

	out := trip.Clone()
	bucket, _ := out.Categories.Get(category)
	p := &bucket[i]
	if j := slices.Index(p.Voters, participant); j >= 0 {
		p.Voters = slices.Delete(p.Voters, j, j+1)
	} else {
		p.Voters = append(p.Voters, participant)
	}
	p.Votes = len(p.Voters)
	return out, nil
}

// AddProposal appends a new proposal with no votes to the category. id is
// supplied by the caller so that id generation stays outside the engine.
func AddProposal(trip domain.Trip, category domain.Category, input domain.ProposalInput, id string) (domain.Trip, domain.Proposal, error) {
	proposals, err := trip.Categories.Get(category)
	if err != nil {
		return trip, domain.Proposal{}, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return trip, domain.Proposal{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if indexOf(proposals, id) >= 0 {
		return trip, domain.Proposal{}, fmt.Errorf("%w: proposal id %s already exists", domain.ErrValidation, id)
	}

	p := domain.Proposal{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Category:    category,
		URL:         strings.TrimSpace(input.URL),
		Votes:       0,
		Voters:      []string{},
	}

	out := trip.Clone()
	bucket, _ := out.Categories.Get(category)
	_ = out.Categories.Set(category, append(bucket, p))
	return out, p, nil
}

// DeleteProposal removes the proposal from the category.
func DeleteProposal(trip domain.Trip, category domain.Category, proposalID string) (domain.Trip, error) {
	proposals, err := trip.Categories.Get(category)
	if err != nil {
		return trip, err
	}
	i := indexOf(proposals, proposalID)
	if i < 0 {
		return trip, nil
	}

	out := trip.Clone()
	bucket, _ := out.Categories.Get(category)
	_ = out.Categories.Set(category, slices.Delete(bucket, i, i+1))
	return out, nil
}

// FindProposal returns the proposal with the given id in the category.
func FindProposal(trip domain.Trip, category domain.Category, proposalID string) (domain.Proposal, bool, error) {
	proposals, err := trip.Categories.Get(category)
	if err != nil {
		return domain.Proposal{}, false, err
	}
	i := indexOf(proposals, proposalID)
	if i < 0 {
		return domain.Proposal{}, false, nil
	}
	return proposals[i].Clone(), true, nil
}

func indexOf(proposals []domain.Proposal, id string) int {
	return slices.IndexFunc(proposals, func(p domain.Proposal) bool { return p.ID == id })
}
