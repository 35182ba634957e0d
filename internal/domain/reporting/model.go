// Package reporting computes the clinic's monthly balance and the list of
// debtors. It reads across the appointment, settlement and expense tables
// without owning any of them.
package reporting

import (
	"github.com/google/uuid"

	"github.com/clinica/clinica/internal/domain/appointment"
	"github.com/clinica/clinica/internal/domain/finance"
)

// BalanceReport is the monthly cash summary:
// appointment income + settlement income - expenses.
type BalanceReport struct {
	Year              int        `json:"year"`
	Month             int        `json:"month"`
	InsurerID         *uuid.UUID `json:"insurer_id,omitempty"`
	AppointmentIncome float64    `json:"appointment_income"`
	SettlementIncome  float64    `json:"settlement_income"`
	Expenses          float64    `json:"expenses"`
	Result            float64    `json:"result"`
	Movements         Movements  `json:"movements"`
}

// Movements lists the rows behind the totals.
type Movements struct {
	Appointments []*appointment.Appointment `json:"appointments"`
	Settlements  []*finance.Settlement      `json:"settlements"`
	Expenses     []*finance.Expense         `json:"expenses"`
}
