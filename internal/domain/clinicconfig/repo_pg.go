package clinicconfig

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinica/clinica/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) Get(ctx context.Context) (*ClinicConfig, error) {
	var cfg ClinicConfig
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, clinic_name, logo_blob_id, updated_at
		FROM clinic_config ORDER BY updated_at DESC LIMIT 1`).
		Scan(&cfg.ID, &cfg.ClinicName, &cfg.LogoBlobID, &cfg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *repoPG) Upsert(ctx context.Context, cfg *ClinicConfig) error {
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO clinic_config (id, clinic_name, logo_blob_id, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE
		SET clinic_name = EXCLUDED.clinic_name,
			logo_blob_id = EXCLUDED.logo_blob_id,
			updated_at = NOW()
		RETURNING updated_at`,
		cfg.ID, cfg.ClinicName, cfg.LogoBlobID).Scan(&cfg.UpdatedAt)
}
