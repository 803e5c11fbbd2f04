// Package pending stores the in-flight login state (commitment and
// challenge) keyed by identity id. At most one entry exists per identity;
// a new challenge replaces the previous one.
package pending

import (
	"context"

	"github.com/dmitrijs2005/zkpauth/internal/server/models"
)

type Repository interface {
	// Put inserts or replaces the entry for p.ID.
	Put(ctx context.Context, p *models.PendingAuth) error
	// Get returns common.ErrorNotFound when there is no entry.
	Get(ctx context.Context, id string) (*models.PendingAuth, error)
	Delete(ctx context.Context, id string) error
	// Take atomically reads and removes the entry. Of several concurrent
	// callers at most one receives it; the rest get common.ErrorNotFound.
	Take(ctx context.Context, id string) (*models.PendingAuth, error)
}
