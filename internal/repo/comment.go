package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkordes/tripvote/internal/domain"
	"github.com/pkordes/tripvote/internal/gateway"
)

// CommentRepo defines the persistence operations for proposal comments.
type CommentRepo interface {
	// List returns the comments of one proposal, oldest first.
	// Always returns a non-nil slice.
	List(ctx context.Context, tripID, proposalID string) ([]domain.Comment, error)

	// Append adds c to the end of the proposal's comment list.
	Append(ctx context.Context, tripID, proposalID string, c domain.Comment) error

	// DeleteAll removes every comment of one proposal.
	DeleteAll(ctx context.Context, tripID, proposalID string) error
}

type gatewayCommentRepo struct {
	gw gateway.Gateway
	mu sync.Mutex
}

// NewCommentRepo constructs a CommentRepo over gw.
func NewCommentRepo(gw gateway.Gateway) CommentRepo {
	return &gatewayCommentRepo{gw: gw}
}

func (r *gatewayCommentRepo) List(ctx context.Context, tripID, proposalID string) ([]domain.Comment, error) {
	comments := []domain.Comment{}
	if _, err := getJSON(ctx, r.gw, CommentsKey(tripID, proposalID), &comments); err != nil {
		return nil, fmt.Errorf("repo.CommentRepo.List: %w", err)
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	return comments, nil
}

func (r *gatewayCommentRepo) Append(ctx context.Context, tripID, proposalID string, c domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	comments, err := r.List(ctx, tripID, proposalID)
	if err != nil {
		return fmt.Errorf("repo.CommentRepo.Append: %w", err)
	}
	comments = append(comments, c)
	if err := setJSON(ctx, r.gw, CommentsKey(tripID, proposalID), comments); err != nil {
		return fmt.Errorf("repo.CommentRepo.Append: %w", err)
	}
	return nil
}

func (r *gatewayCommentRepo) DeleteAll(ctx context.Context, tripID, proposalID string) error {
	if err := r.gw.Delete(ctx, CommentsKey(tripID, proposalID)); err != nil {
		return fmt.Errorf("repo.CommentRepo.DeleteAll: %w", err)
	}
	return nil
}
