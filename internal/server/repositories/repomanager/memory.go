package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/zkpauth/internal/dbx"
	"github.com/dmitrijs2005/zkpauth/internal/server/repositories/identities"
	"github.com/dmitrijs2005/zkpauth/internal/server/repositories/pending"
)

// MemoryRepositoryManager hands out the same process-local repositories on
// every call. State is lost on restart.
type MemoryRepositoryManager struct {
	identities *identities.MemoryRepository
	pending    *pending.MemoryRepository
}

// NewMemoryRepositoryManager builds the in-memory backend; pendingCapacity
// bounds the number of outstanding challenges.
func NewMemoryRepositoryManager(pendingCapacity int) (RepositoryManager, error) {
	p, err := pending.NewMemoryRepository(pendingCapacity)
	if err != nil {
		return nil, err
	}
	return &MemoryRepositoryManager{
		identities: identities.NewMemoryRepository(),
		pending:    p,
	}, nil
}

// RunMigrations is a no-op.
func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *MemoryRepositoryManager) Identities(dbx.DBTX) identities.Repository {
	return m.identities
}

func (m *MemoryRepositoryManager) Pending(dbx.DBTX) pending.Repository {
	return m.pending
}
