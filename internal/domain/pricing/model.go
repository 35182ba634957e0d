// Package pricing manages the fee schedule: the copay amount suggested for a
// given insurer and treatment pair. Appointments consult it when they are
// created without an explicit price.
package pricing

import (
	"time"

	"github.com/google/uuid"
)

// FeeSchedule maps to the fee_schedule table. The (insurer_id, treatment_id)
// pair is unique.
type FeeSchedule struct {
	ID             uuid.UUID `db:"id" json:"id"`
	InsurerID      uuid.UUID `db:"insurer_id" json:"insurer_id"`
	TreatmentID    uuid.UUID `db:"treatment_id" json:"treatment_id"`
	SuggestedCopay float64   `db:"suggested_copay" json:"suggested_copay"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
