package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkordes/tripvote/internal/domain"
	"github.com/pkordes/tripvote/internal/repo"
	"github.com/pkordes/tripvote/internal/voting"
)

// ProposalService implements proposal and vote operations. Every mutation
// is rejected with domain.ErrTripClosed once the trip's deadline has passed.
type ProposalService struct {
	trips    repo.TripRepo
	comments repo.CommentRepo
	opts     options
}

// NewProposalService constructs a ProposalService. comments is needed
// because deleting a proposal also deletes its comments.
func NewProposalService(trips repo.TripRepo, comments repo.CommentRepo, opts ...Option) *ProposalService {
	return &ProposalService{trips: trips, comments: comments, opts: buildOptions(opts)}
}

// Add appends a new proposal with no votes to the category.
func (s *ProposalService) Add(ctx context.Context, tripID string, category domain.Category, in domain.ProposalInput) (domain.Proposal, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.URL = strings.TrimSpace(in.URL)
	if err := validateStruct(in); err != nil {
		return domain.Proposal{}, err
	}

	var added domain.Proposal
	_, err := s.trips.Update(ctx, tripID, func(t domain.Trip) (domain.Trip, error) {
		if err := s.checkOpen(t); err != nil {
			return t, err
		}
		next, p, err := voting.AddProposal(t, category, in, s.opts.newID())
		added = p
		return next, err
	})
	if err != nil {
		return domain.Proposal{}, fmt.Errorf("service.ProposalService.Add: %w", err)
	}

	s.opts.metrics.ProposalAdded(category)
	s.opts.logger.InfoContext(ctx, "proposal added",
		slog.String("trip_id", tripID),
		slog.String("category", string(category)),
		slog.String("proposal_id", added.ID),
	)
	return added, nil
}

// Delete removes a proposal and its comments. Deleting an id that does not
// exist is not an error.
func (s *ProposalService) Delete(ctx context.Context, tripID string, category domain.Category, proposalID string) error {
	var found bool
	_, err := s.trips.Update(ctx, tripID, func(t domain.Trip) (domain.Trip, error) {
		if err := s.checkOpen(t); err != nil {
			return t, err
		}
		_, ok, err := voting.FindProposal(t, category, proposalID)
		if err != nil {
			return t, err
		}
		if !ok {
			return t, repo.ErrUnchanged
		}
		found = true
		return voting.DeleteProposal(t, category, proposalID)
	})
	if err != nil {
		return fmt.Errorf("service.ProposalService.Delete: %w", err)
	}
	if !found {
		return nil
	}

	if err := s.comments.DeleteAll(ctx, tripID, proposalID); err != nil {
		return fmt.Errorf("service.ProposalService.Delete: %w", err)
	}
	s.opts.metrics.ProposalDeleted(category)
	s.opts.logger.InfoContext(ctx, "proposal deleted",
		slog.String("trip_id", tripID),
		slog.String("category", string(category)),
		slog.String("proposal_id", proposalID),
	)
	return nil
}

// ToggleVote casts participant's vote on the proposal, or retracts it if
// already cast, and returns the updated trip. An unknown proposal id leaves
// the trip unchanged.
func (s *ProposalService) ToggleVote(ctx context.Context, tripID string, category domain.Category, proposalID, participant string) (domain.Trip, error) {
	participant = strings.TrimSpace(participant)
	if participant == "" {
		return domain.Trip{}, fmt.Errorf("%w: participant name is required", domain.ErrValidation)
	}

	updated, err := s.trips.Update(ctx, tripID, func(t domain.Trip) (domain.Trip, error) {
		if err := s.checkOpen(t); err != nil {
			return t, err
		}
		_, ok, err := voting.FindProposal(t, category, proposalID)
		if err != nil {
			return t, err
		}
		if !ok {
			return t, repo.ErrUnchanged
		}
		return voting.ToggleVote(t, category, proposalID, participant)
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.ProposalService.ToggleVote: %w", err)
	}

	p, ok, _ := voting.FindProposal(updated, category, proposalID)
	if !ok {
		return updated, nil
	}
	cast := p.HasVoter(participant)
	s.opts.metrics.VoteToggled(category, cast)
	s.opts.logger.InfoContext(ctx, "vote toggled",
		slog.String("trip_id", tripID),
		slog.String("proposal_id", proposalID),
		slog.String("participant", participant),
		slog.Bool("cast", cast),
		slog.Int("votes", p.Votes),
	)
	return updated, nil
}

// Ranking returns the proposals of one category ordered by votes, with
// participation rates against the trip's participant count.
func (s *ProposalService) Ranking(ctx context.Context, tripID string, category domain.Category) ([]voting.Ranked, error) {
	t, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ProposalService.Ranking: %w", err)
	}
	proposals, err := t.Categories.Get(category)
	if err != nil {
		return nil, fmt.Errorf("service.ProposalService.Ranking: %w", err)
	}
	return voting.RankWithRates(proposals, len(t.Participants)), nil
}

// Standings returns the ranking of every category.
func (s *ProposalService) Standings(ctx context.Context, tripID string) ([]voting.Standing, error) {
	t, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ProposalService.Standings: %w", err)
	}
	return voting.Standings(t), nil
}

func (s *ProposalService) checkOpen(t domain.Trip) error {
	if t.IsExpired(s.opts.now()) {
		return fmt.Errorf("%w: deadline was %s", domain.ErrTripClosed, t.Deadline.Time.Format(domain.DateFormat))
	}
	return nil
}
