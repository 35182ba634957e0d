package reporting

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinica/clinica/internal/domain/appointment"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// normalizePeriod replaces out-of-range year/month with the current ones.
// Bad report input falls back to "this month" instead of erroring.
func (s *Service) normalizePeriod(year, month int) (int, int) {
	now := s.now()
	if year < 1 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	return year, month
}

// Balance computes the month's result: appointment income plus settlement
// income minus expenses, with the movements behind each total.
func (s *Service) Balance(ctx context.Context, year, month int, insurerID *uuid.UUID) (*BalanceReport, error) {
	year, month = s.normalizePeriod(year, month)

	apptIncome, err := s.repo.AppointmentIncome(ctx, year, month, insurerID)
	if err != nil {
		return nil, err
	}
	settlementIncome, err := s.repo.SettlementIncome(ctx, year, month, insurerID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.ExpenseTotal(ctx, year, month)
	if err != nil {
		return nil, err
	}

	appts, err := s.repo.PaidAppointments(ctx, year, month, insurerID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.repo.Settlements(ctx, year, month, insurerID)
	if err != nil {
		return nil, err
	}
	expenseRows, err := s.repo.Expenses(ctx, year, month)
	if err != nil {
		return nil, err
	}

	return &BalanceReport{
		Year:              year,
		Month:             month,
		InsurerID:         insurerID,
		AppointmentIncome: apptIncome,
		SettlementIncome:  settlementIncome,
		Expenses:          expenses,
		Result:            apptIncome + settlementIncome - expenses,
		Movements: Movements{
			Appointments: appts,
			Settlements:  settlements,
			Expenses:     expenseRows,
		},
	}, nil
}

// Debtors lists finalized appointments that were never paid.
func (s *Service) Debtors(ctx context.Context, limit, offset int) ([]*appointment.Appointment, int, error) {
	return s.repo.Debtors(ctx, limit, offset)
}
