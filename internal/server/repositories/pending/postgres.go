package pending

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

func (r *PostgresRepository) Put(ctx context.Context, p *models.PendingAuth) error {
	query :=
		`INSERT INTO pending_authentications (id, r1, r2, c)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE
		 SET r1 = EXCLUDED.r1, r2 = EXCLUDED.r2, c = EXCLUDED.c, created_at = now()
		 RETURNING created_at
		 `

	if err := r.db.QueryRowContext(ctx, query, p.ID, p.R1, p.R2, p.C).Scan(&p.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.PendingAuth, error) {
	query :=
		`SELECT id, r1, r2, c, created_at FROM pending_authentications
		 WHERE id = $1
		 `
	return r.scanOne(ctx, query, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM pending_authentications WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Take relies on DELETE ... RETURNING: the row lock makes a second
// concurrent delete see no row.
func (r *PostgresRepository) Take(ctx context.Context, id string) (*models.PendingAuth, error) {
	query :=
		`DELETE FROM pending_authentications
		 WHERE id = $1
		 RETURNING id, r1, r2, c, created_at
		 `
	return r.scanOne(ctx, query, id)
}

func (r *PostgresRepository) scanOne(ctx context.Context, query, id string) (*models.PendingAuth, error) {
	p := &models.PendingAuth{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.R1, &p.R2, &p.C, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}
