// Package patient manages the clinic's patient registry.
package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. NationalID is unique.
type Patient struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	FirstName        string     `db:"first_name" json:"first_name"`
	LastName         string     `db:"last_name" json:"last_name"`
	NationalID       string     `db:"national_id" json:"national_id"`
	Phone            *string    `db:"phone" json:"phone,omitempty"`
	Email            *string    `db:"email" json:"email,omitempty"`
	DefaultInsurerID *uuid.UUID `db:"default_insurer_id" json:"default_insurer_id,omitempty"`
	Notes            *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}
