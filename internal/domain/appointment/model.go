// Package appointment manages the clinic's appointment book: scheduling,
// pricing of each visit against the fee schedule, and the payment state of
// every appointment.
package appointment

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Appointment statuses.
const (
	StatusPending   = "pending"
	StatusFinalized = "finalized"
	StatusCancelled = "cancelled"
)

var validStatuses = map[string]bool{
	StatusPending: true, StatusFinalized: true, StatusCancelled: true,
}

var validPaymentMethods = map[string]bool{
	"cash": true, "transfer": true,
}

// Appointment maps to the appointment table. StartTime is an "HH:MM" wall
// clock slot; together with Date it identifies the slot a conflict check
// guards.
type Appointment struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Date          time.Time `db:"date" json:"date"`
	StartTime     string    `db:"start_time" json:"start_time"`
	PatientID     uuid.UUID `db:"patient_id" json:"patient_id"`
	TreatmentID   uuid.UUID `db:"treatment_id" json:"treatment_id"`
	InsurerID     uuid.UUID `db:"insurer_id" json:"insurer_id"`
	AmountOwed    float64   `db:"amount_owed" json:"amount_owed"`
	AmountPaid    float64   `db:"amount_paid" json:"amount_paid"`
	Paid          bool      `db:"paid" json:"paid"`
	PaymentMethod *string   `db:"payment_method" json:"payment_method,omitempty"`
	Status        string    `db:"status" json:"status"`
	Note          *string   `db:"note" json:"note,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Balance is the outstanding amount. It is derived, never stored.
func (a *Appointment) Balance() float64 {
	return a.AmountOwed - a.AmountPaid
}

// MarshalJSON adds the derived balance field to the wire form.
func (a *Appointment) MarshalJSON() ([]byte, error) {
	type alias Appointment
	return json.Marshal(struct {
		*alias
		Balance float64 `json:"balance"`
	}{(*alias)(a), a.Balance()})
}

// Reconcile applies the pricing and payment rules to an appointment's money
// fields, in order:
//
//  1. A new appointment with no explicit price takes the suggested fee when
//     one exists; with no fee entry the price stays at zero.
//  2. The manual paid flag is authoritative: a flagged appointment is topped
//     up to the full price.
//  3. A priced appointment whose payments cover the price is flagged paid.
//
// It returns the adjusted owed, paid and flag values.
func Reconcile(owed, paid float64, paidFlag, isNew bool, suggested *float64) (float64, float64, bool) {
	if isNew && owed == 0 && suggested != nil {
		owed = *suggested
	}
	if paidFlag && paid < owed {
		paid = owed
	}
	if owed > 0 && paid >= owed {
		paidFlag = true
	}
	return owed, paid, paidFlag
}
