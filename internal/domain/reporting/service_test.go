package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clinica/clinica/internal/domain/appointment"
	"github.com/clinica/clinica/internal/domain/finance"
)

// mockRepo aggregates over in-memory rows the way the SQL does.
type mockRepo struct {
	appointments []*appointment.Appointment
	settlements  []*finance.Settlement
	expenses     []*finance.Expense
}

func inMonth(d time.Time, year, month int) bool {
	return d.Year() == year && int(d.Month()) == month
}

func (m *mockRepo) AppointmentIncome(_ context.Context, year, month int, insurerID *uuid.UUID) (float64, error) {
	var total float64
	for _, a := range m.appointments {
		if a.Status == appointment.StatusCancelled || !inMonth(a.Date, year, month) {
			continue
		}
		if insurerID != nil && a.InsurerID != *insurerID {
			continue
		}
		total += a.AmountPaid
	}
	return total, nil
}

func (m *mockRepo) SettlementIncome(_ context.Context, year, month int, insurerID *uuid.UUID) (float64, error) {
	var total float64
	for _, s := range m.settlements {
		if !inMonth(s.ReceivedDate, year, month) {
			continue
		}
		if insurerID != nil && s.InsurerID != *insurerID {
			continue
		}
		total += s.TotalAmount
	}
	return total, nil
}

func (m *mockRepo) ExpenseTotal(_ context.Context, year, month int) (float64, error) {
	var total float64
	for _, e := range m.expenses {
		if inMonth(e.Date, year, month) {
			total += e.Amount
		}
	}
	return total, nil
}

func (m *mockRepo) PaidAppointments(_ context.Context, year, month int, insurerID *uuid.UUID) ([]*appointment.Appointment, error) {
	var result []*appointment.Appointment
	for _, a := range m.appointments {
		if a.Status == appointment.StatusCancelled || a.AmountPaid <= 0 || !inMonth(a.Date, year, month) {
			continue
		}
		if insurerID != nil && a.InsurerID != *insurerID {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (m *mockRepo) Settlements(_ context.Context, year, month int, insurerID *uuid.UUID) ([]*finance.Settlement, error) {
	var result []*finance.Settlement
	for _, s := range m.settlements {
		if !inMonth(s.ReceivedDate, year, month) {
			continue
		}
		if insurerID != nil && s.InsurerID != *insurerID {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (m *mockRepo) Expenses(_ context.Context, year, month int) ([]*finance.Expense, error) {
	var result []*finance.Expense
	for _, e := range m.expenses {
		if inMonth(e.Date, year, month) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockRepo) Debtors(_ context.Context, limit, offset int) ([]*appointment.Appointment, int, error) {
	var result []*appointment.Appointment
	for _, a := range m.appointments {
		if a.Status == appointment.StatusFinalized && !a.Paid {
			result = append(result, a)
		}
	}
	return result, len(result), nil
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func appt(date string, insurerID uuid.UUID, paidAmount float64, status string, paid bool) *appointment.Appointment {
	return &appointment.Appointment{
		ID:         uuid.New(),
		Date:       day(date),
		InsurerID:  insurerID,
		AmountOwed: paidAmount,
		AmountPaid: paidAmount,
		Paid:       paid,
		Status:     status,
	}
}

func newTestService(repo *mockRepo) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return day("2026-08-15") }
	return svc
}

// -- Tests --

func TestBalance(t *testing.T) {
	insurer := uuid.New()
	repo := &mockRepo{
		appointments: []*appointment.Appointment{
			appt("2026-08-01", insurer, 1000, appointment.StatusFinalized, true),
			appt("2026-08-02", insurer, 500, appointment.StatusPending, false),
			appt("2026-08-03", insurer, 2000, appointment.StatusCancelled, true), // excluded
			appt("2026-07-03", insurer, 4000, appointment.StatusFinalized, true), // wrong month
		},
		settlements: []*finance.Settlement{
			{ID: uuid.New(), ReceivedDate: day("2026-08-10"), InsurerID: insurer, Period: "2026-07", TotalAmount: 30000},
			{ID: uuid.New(), ReceivedDate: day("2026-06-10"), InsurerID: insurer, Period: "2026-05", TotalAmount: 9999},
		},
		expenses: []*finance.Expense{
			{ID: uuid.New(), Date: day("2026-08-20"), CategoryID: uuid.New(), Amount: 4000},
		},
	}
	svc := newTestService(repo)

	report, err := svc.Balance(context.Background(), 2026, 8, nil)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if report.AppointmentIncome != 1500 {
		t.Errorf("appointment_income = %v, want 1500", report.AppointmentIncome)
	}
	if report.SettlementIncome != 30000 {
		t.Errorf("settlement_income = %v, want 30000", report.SettlementIncome)
	}
	if report.Expenses != 4000 {
		t.Errorf("expenses = %v, want 4000", report.Expenses)
	}
	if report.Result != 27500 {
		t.Errorf("result = %v, want 27500", report.Result)
	}
	if len(report.Movements.Appointments) != 2 {
		t.Errorf("movement appointments = %d, want 2", len(report.Movements.Appointments))
	}
	if len(report.Movements.Settlements) != 1 {
		t.Errorf("movement settlements = %d, want 1", len(report.Movements.Settlements))
	}
	if len(report.Movements.Expenses) != 1 {
		t.Errorf("movement expenses = %d, want 1", len(report.Movements.Expenses))
	}
}

func TestBalance_InsurerFilterSkipsExpenses(t *testing.T) {
	insurerA, insurerB := uuid.New(), uuid.New()
	repo := &mockRepo{
		appointments: []*appointment.Appointment{
			appt("2026-08-01", insurerA, 1000, appointment.StatusFinalized, true),
			appt("2026-08-02", insurerB, 700, appointment.StatusFinalized, true),
		},
		settlements: []*finance.Settlement{
			{ID: uuid.New(), ReceivedDate: day("2026-08-10"), InsurerID: insurerA, Period: "2026-07", TotalAmount: 5000},
			{ID: uuid.New(), ReceivedDate: day("2026-08-11"), InsurerID: insurerB, Period: "2026-07", TotalAmount: 8000},
		},
		expenses: []*finance.Expense{
			{ID: uuid.New(), Date: day("2026-08-20"), CategoryID: uuid.New(), Amount: 1000},
		},
	}
	svc := newTestService(repo)

	report, err := svc.Balance(context.Background(), 2026, 8, &insurerA)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if report.AppointmentIncome != 1000 {
		t.Errorf("appointment_income = %v, want 1000", report.AppointmentIncome)
	}
	if report.SettlementIncome != 5000 {
		t.Errorf("settlement_income = %v, want 5000", report.SettlementIncome)
	}
	// Expenses are clinic-wide regardless of the insurer filter.
	if report.Expenses != 1000 {
		t.Errorf("expenses = %v, want 1000", report.Expenses)
	}
	if report.Result != 5000 {
		t.Errorf("result = %v, want 5000", report.Result)
	}
}

func TestBalance_DefaultsPeriodToNow(t *testing.T) {
	insurer := uuid.New()
	repo := &mockRepo{
		appointments: []*appointment.Appointment{
			appt("2026-08-01", insurer, 1000, appointment.StatusFinalized, true),
		},
	}
	svc := newTestService(repo)

	tests := []struct {
		name  string
		year  int
		month int
	}{
		{"both zero", 0, 0},
		{"month out of range", 2026, 13},
		{"negative year", -3, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := svc.Balance(context.Background(), tt.year, tt.month, nil)
			if err != nil {
				t.Fatalf("Balance: %v", err)
			}
			if report.Year != 2026 || report.Month != 8 {
				t.Errorf("period = %d-%d, want 2026-8", report.Year, report.Month)
			}
			if report.AppointmentIncome != 1000 {
				t.Errorf("appointment_income = %v, want 1000", report.AppointmentIncome)
			}
		})
	}
}

func TestDebtors(t *testing.T) {
	insurer := uuid.New()
	repo := &mockRepo{
		appointments: []*appointment.Appointment{
			appt("2026-08-01", insurer, 0, appointment.StatusFinalized, false), // debtor
			appt("2026-08-02", insurer, 500, appointment.StatusFinalized, true),
			appt("2026-08-03", insurer, 0, appointment.StatusPending, false),   // not finalized
			appt("2026-08-04", insurer, 0, appointment.StatusCancelled, false), // cancelled
		},
	}
	svc := newTestService(repo)

	items, total, err := svc.Debtors(context.Background(), 20, 0)
	if err != nil {
		t.Fatalf("Debtors: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Errorf("total = %d, len = %d, want 1 debtor", total, len(items))
	}
}
