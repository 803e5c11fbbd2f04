package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/zkpauth/internal/common"
	"github.com/dmitrijs2005/zkpauth/internal/server/models"
	"github.com/dmitrijs2005/zkpauth/internal/server/repositories/identities"
	"github.com/dmitrijs2005/zkpauth/internal/zkp"
)

// IdentityRegistry maps identity ids to their verification pair (y1, y2).
// It converts between integers and the hex form kept by the repository.
type IdentityRegistry struct {
	repo identities.Repository
}

func NewIdentityRegistry(repo identities.Repository) *IdentityRegistry {
	return &IdentityRegistry{repo: repo}
}

// Put stores (y1, y2) under id unless id is already registered, in which
// case the existing record is left untouched and created is false.
func (r *IdentityRegistry) Put(ctx context.Context, id string, y1, y2 *big.Int) (bool, error) {
	created, err := r.repo.PutIfAbsent(ctx, &models.Identity{
		ID: id,
		Y1: zkp.EncodeInt(y1),
		Y2: zkp.EncodeInt(y2),
	})
	if err != nil {
		return false, fmt.Errorf("%w: %w", common.ErrStorageFailure, err)
	}
	return created, nil
}

// Get returns the verification pair for id; found is false when id is not
// registered.
func (r *IdentityRegistry) Get(ctx context.Context, id string) (y1, y2 *big.Int, found bool, err error) {
	identity, err := r.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, false, nil
		}
		return nil, nil, false, fmt.Errorf("%w: %w", common.ErrStorageFailure, err)
	}

	y1, err = zkp.DecodeInt(identity.Y1)
	if err != nil {
		return nil, nil, false, fmt.Errorf("%w: identity %s y1: %v", common.ErrStorageFailure, id, err)
	}
	y2, err = zkp.DecodeInt(identity.Y2)
	if err != nil {
		return nil, nil, false, fmt.Errorf("%w: identity %s y2: %v", common.ErrStorageFailure, id, err)
	}
	return y1, y2, true, nil
}

func (r *IdentityRegistry) Exists(ctx context.Context, id string) (bool, error) {
	ok, err := r.repo.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("%w: %w", common.ErrStorageFailure, err)
	}
	return ok, nil
}
