package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkordes/tripvote/internal/domain"
	"github.com/pkordes/tripvote/internal/repo"
)

// CommentInput carries a new comment.
type CommentInput struct {
	Author string `json:"author" validate:"required"`
	Text   string `json:"text" validate:"required,max=2000"`
}

// CommentService implements the append-only comment thread of a proposal.
type CommentService struct {
	trips    repo.TripRepo
	comments repo.CommentRepo
	opts     options
}

// NewCommentService constructs a CommentService.
func NewCommentService(trips repo.TripRepo, comments repo.CommentRepo, opts ...Option) *CommentService {
	return &CommentService{trips: trips, comments: comments, opts: buildOptions(opts)}
}

// Add appends a comment to the proposal's thread.
// Returns domain.ErrNotFound if the trip or proposal does not exist.
func (s *CommentService) Add(ctx context.Context, tripID, proposalID string, in CommentInput) (domain.Comment, error) {
	in.Author = strings.TrimSpace(in.Author)
	in.Text = strings.TrimSpace(in.Text)
	if err := validateStruct(in); err != nil {
		return domain.Comment{}, err
	}
	if err := s.requireProposal(ctx, tripID, proposalID); err != nil {
		return domain.Comment{}, fmt.Errorf("service.CommentService.Add: %w", err)
	}

	c := domain.Comment{
		ID:        s.opts.newID(),
		Author:    in.Author,
		Text:      in.Text,
		Timestamp: s.opts.now().UTC(),
	}
	if err := s.comments.Append(ctx, tripID, proposalID, c); err != nil {
		return domain.Comment{}, fmt.Errorf("service.CommentService.Add: %w", err)
	}

	s.opts.metrics.CommentAdded()
	s.opts.logger.InfoContext(ctx, "comment added",
		slog.String("trip_id", tripID),
		slog.String("proposal_id", proposalID),
		slog.String("author", c.Author),
	)
	return c, nil
}

// List returns the proposal's comments oldest first. Always non-nil.
func (s *CommentService) List(ctx context.Context, tripID, proposalID string) ([]domain.Comment, error) {
	if err := s.requireProposal(ctx, tripID, proposalID); err != nil {
		return nil, fmt.Errorf("service.CommentService.List: %w", err)
	}
	cs, err := s.comments.List(ctx, tripID, proposalID)
	if err != nil {
		return nil, fmt.Errorf("service.CommentService.List: %w", err)
	}
	return cs, nil
}

func (s *CommentService) requireProposal(ctx context.Context, tripID, proposalID string) error {
	t, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return err
	}
	for _, p := range t.Categories.All() {
		if p.ID == proposalID {
			return nil
		}
	}
	return fmt.Errorf("proposal %s: %w", proposalID, domain.ErrNotFound)
}
