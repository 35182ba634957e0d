// Package clinicconfig holds the clinic's single configuration record: the
// display name and the logo asset. The record is optional; every read path
// tolerates its absence.
package clinicconfig

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ClinicConfig maps to the clinic_config table. At most one row is written
// in practice.
type ClinicConfig struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ClinicName *string   `db:"clinic_name" json:"clinic_name,omitempty"`
	LogoBlobID *string   `db:"logo_blob_id" json:"logo_blob_id,omitempty"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

type Repository interface {
	// Get returns the configuration row, or pgx.ErrNoRows when none exists.
	Get(ctx context.Context) (*ClinicConfig, error)
	// Upsert writes the row, creating it on first use.
	Upsert(ctx context.Context, cfg *ClinicConfig) error
}
