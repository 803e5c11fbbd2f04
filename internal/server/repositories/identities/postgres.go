package identities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/zkpauth/internal/common"
	"github.com/dmitrijs2005/zkpauth/internal/dbx"
	"github.com/dmitrijs2005/zkpauth/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM identities WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) PutIfAbsent(ctx context.Context, identity *models.Identity) (bool, error) {
	query :=
		`INSERT INTO identities (id, y1, y2)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO NOTHING
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query, identity.ID, identity.Y1, identity.Y2).Scan(&identity.CreatedAt)
	if err != nil {
		// DO NOTHING returns no row when the id already exists.
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Identity, error) {
	query :=
		`SELECT id, y1, y2, created_at FROM identities
		 WHERE id = $1
		 `

	identity := &models.Identity{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&identity.ID, &identity.Y1, &identity.Y2, &identity.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return identity, nil
}
