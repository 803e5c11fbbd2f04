package pending

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/zkpauth/internal/common"
	"github.com/dmitrijs2005/zkpauth/internal/server/models"
	lru "github.com/hashicorp/golang-lru/v2"
)

// MemoryRepository is a bounded pending store. When full, the least
// recently written entry is evicted; its owner's Verify then finds no
// challenge, the same as if it had been replaced.
type MemoryRepository struct {
	// mu makes Take a single step; the cache's own lock only covers
	// individual calls.
	mu    sync.Mutex
	cache *lru.Cache[string, models.PendingAuth]
	now   func() time.Time
}

func NewMemoryRepository(capacity int) (*MemoryRepository, error) {
	cache, err := lru.New[string, models.PendingAuth](capacity)
	if err != nil {
		return nil, fmt.Errorf("pending cache: %w", err)
	}
	return &MemoryRepository{cache: cache, now: time.Now}, nil
}

func (r *MemoryRepository) Put(ctx context.Context, p *models.PendingAuth) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.CreatedAt = r.now().UTC()
	r.cache.Add(p.ID, *p)
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.PendingAuth, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.cache.Peek(id)
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Remove(id)
	return nil
}

func (r *MemoryRepository) Take(ctx context.Context, id string) (*models.PendingAuth, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.cache.Peek(id)
	if !ok {
		return nil, common.ErrorNotFound
	}
	r.cache.Remove(id)
	return &p, nil
}

// Len reports the number of pending entries.
func (r *MemoryRepository) Len() int {
	return r.cache.Len()
}
