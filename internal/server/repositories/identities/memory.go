package identities

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/zkpauth/internal/common"
	"github.com/dmitrijs2005/zkpauth/internal/server/models"
)

// MemoryRepository keeps identities in a map for the lifetime of the process.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]models.Identity
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]models.Identity), now: time.Now}
}

func (r *MemoryRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[id]
	return ok, nil
}

func (r *MemoryRepository) PutIfAbsent(ctx context.Context, identity *models.Identity) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[identity.ID]; ok {
		return false, nil
	}
	identity.CreatedAt = r.now().UTC()
	r.items[identity.ID] = *identity
	return true, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	identity, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &identity, nil
}
