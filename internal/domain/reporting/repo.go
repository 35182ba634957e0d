package reporting

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinica/clinica/internal/domain/appointment"
	"github.com/clinica/clinica/internal/domain/finance"
)

// Repository aggregates over the month given by (year, month). The insurer
// filter applies to appointments and settlements, never to expenses.
type Repository interface {
	AppointmentIncome(ctx context.Context, year, month int, insurerID *uuid.UUID) (float64, error)
	SettlementIncome(ctx context.Context, year, month int, insurerID *uuid.UUID) (float64, error)
	ExpenseTotal(ctx context.Context, year, month int) (float64, error)

	// PaidAppointments returns the non-cancelled appointments of the month
	// that collected money.
	PaidAppointments(ctx context.Context, year, month int, insurerID *uuid.UUID) ([]*appointment.Appointment, error)
	Settlements(ctx context.Context, year, month int, insurerID *uuid.UUID) ([]*finance.Settlement, error)
	Expenses(ctx context.Context, year, month int) ([]*finance.Expense, error)

	// Debtors returns finalized, unpaid appointments.
	Debtors(ctx context.Context, limit, offset int) ([]*appointment.Appointment, int, error)
}
