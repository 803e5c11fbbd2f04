// Package identities stores registered verification pairs keyed by identity id.
package identities

import (
	"context"

	"github.com/dmitrijs2005/zkpauth/internal/server/models"
)

// Repository is the identity store. Records are written once and never
// mutated.
type Repository interface {
	Exists(ctx context.Context, id string) (bool, error)
	// PutIfAbsent stores the record unless the id is already taken. created
	// reports whether this call wrote it.
	PutIfAbsent(ctx context.Context, identity *models.Identity) (created bool, err error)
	// Get returns common.ErrorNotFound for an unknown id.
	Get(ctx context.Context, id string) (*models.Identity, error)
}
