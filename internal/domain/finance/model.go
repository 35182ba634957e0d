// Package finance tracks the money that moves outside the appointment book:
// insurer settlements and the clinic's expenses.
package finance

import (
	"time"

	"github.com/google/uuid"
)

// Settlement maps to the settlement table (liquidación): a lump payment
// received from an insurer for a billing period, optionally with the
// insurer's receipt attached.
type Settlement struct {
	ID            uuid.UUID `db:"id" json:"id"`
	ReceivedDate  time.Time `db:"received_date" json:"received_date"`
	InsurerID     uuid.UUID `db:"insurer_id" json:"insurer_id"`
	Period        string    `db:"period" json:"period"`
	TotalAmount   float64   `db:"total_amount" json:"total_amount"`
	ReceiptBlobID *string   `db:"receipt_blob_id" json:"receipt_blob_id,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Expense maps to the expense table.
type Expense struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Date        time.Time `db:"date" json:"date"`
	CategoryID  uuid.UUID `db:"category_id" json:"category_id"`
	Description *string   `db:"description" json:"description,omitempty"`
	Amount      float64   `db:"amount" json:"amount"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
