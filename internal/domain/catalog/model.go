// Package catalog holds the clinic's reference records: insurers, treatment
// types and expense categories. They are plain named rows other domains
// point at.
package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Insurer maps to the insurer table (obra social).
type Insurer struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Treatment maps to the treatment table.
type Treatment struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ExpenseCategory maps to the expense_category table.
type ExpenseCategory struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
