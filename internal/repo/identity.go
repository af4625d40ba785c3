package repo

import (
	"context"
	"fmt"

	"github.com/pkordes/tripvote/internal/gateway"
)

// IdentityRepo stores the single, process-wide participant name used by the
// CLI when no explicit name is given. The engine never reads it.
type IdentityRepo interface {
	// CurrentUser returns the stored name, or "" if none has been set.
	CurrentUser(ctx context.Context) (string, error)

	// SetCurrentUser stores name.
	SetCurrentUser(ctx context.Context, name string) error
}

type gatewayIdentityRepo struct {
	gw gateway.Gateway
}

// NewIdentityRepo constructs an IdentityRepo over gw.
func NewIdentityRepo(gw gateway.Gateway) IdentityRepo {
	return &gatewayIdentityRepo{gw: gw}
}

func (r *gatewayIdentityRepo) CurrentUser(ctx context.Context) (string, error) {
	var name string
	if _, err := getJSON(ctx, r.gw, CurrentUserKey, &name); err != nil {
		return "", fmt.Errorf("repo.IdentityRepo.CurrentUser: %w", err)
	}
	return name, nil
}

func (r *gatewayIdentityRepo) SetCurrentUser(ctx context.Context, name string) error {
	if err := setJSON(ctx, r.gw, CurrentUserKey, name); err != nil {
		return fmt.Errorf("repo.IdentityRepo.SetCurrentUser: %w", err)
	}
	return nil
}
