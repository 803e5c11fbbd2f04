package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/zkpauth/internal/dbx"
	"github.com/dmitrijs2005/zkpauth/internal/server/repositories/identities"
	"github.com/dmitrijs2005/zkpauth/internal/server/repositories/pending"
)

// RepositoryManager vends repositories bound to a connection or transaction
// and prepares the schema. Backends without a database ignore db.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Identities(db dbx.DBTX) identities.Repository
	Pending(db dbx.DBTX) pending.Repository
}
