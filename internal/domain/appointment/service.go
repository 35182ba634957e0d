package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrSlotTaken means another non-cancelled appointment already occupies the
// requested date and time.
var ErrSlotTaken = errors.New("another appointment already occupies that slot")

// FeeLookup resolves the suggested copay for an insurer/treatment pair. A
// nil amount means no fee entry exists.
type FeeLookup interface {
	SuggestedCopay(ctx context.Context, insurerID, treatmentID uuid.UUID) (*float64, error)
}

// InsurerDefaulter resolves a patient's default insurer, if any.
type InsurerDefaulter interface {
	DefaultInsurer(ctx context.Context, patientID uuid.UUID) (*uuid.UUID, error)
}

// TxRunner runs fn inside a transaction. Wired to db.WithTx in production;
// tests pass nil for a direct call.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	appts    Repository
	fees     FeeLookup
	patients InsurerDefaulter
	runTx    TxRunner
}

func NewService(appts Repository, fees FeeLookup, patients InsurerDefaulter, runTx TxRunner) *Service {
	if runTx == nil {
		runTx = func(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
	}
	return &Service{appts: appts, fees: fees, patients: patients, runTx: runTx}
}

func (s *Service) validate(a *Appointment) error {
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if a.TreatmentID == uuid.Nil {
		return fmt.Errorf("treatment_id is required")
	}
	if a.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if _, err := time.Parse("15:04", a.StartTime); err != nil {
		return fmt.Errorf("start_time must be HH:MM")
	}
	if a.Status == "" {
		a.Status = StatusPending
	}
	if !validStatuses[a.Status] {
		return fmt.Errorf("invalid status: %s", a.Status)
	}
	if a.PaymentMethod != nil && *a.PaymentMethod == "" {
		a.PaymentMethod = nil
	}
	if a.PaymentMethod != nil && !validPaymentMethods[*a.PaymentMethod] {
		return fmt.Errorf("invalid payment_method: %s", *a.PaymentMethod)
	}
	if a.AmountOwed < 0 || a.AmountPaid < 0 {
		return fmt.Errorf("amounts cannot be negative")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if err := s.validate(a); err != nil {
		return err
	}

	if a.InsurerID == uuid.Nil {
		def, err := s.patients.DefaultInsurer(ctx, a.PatientID)
		if err != nil {
			return fmt.Errorf("resolving patient insurer: %w", err)
		}
		if def == nil {
			return fmt.Errorf("insurer_id is required")
		}
		a.InsurerID = *def
	}

	taken, err := s.appts.SlotTaken(ctx, a.Date, a.StartTime, nil)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlotTaken
	}

	var suggested *float64
	if a.AmountOwed == 0 {
		suggested, err = s.fees.SuggestedCopay(ctx, a.InsurerID, a.TreatmentID)
		if err != nil {
			return err
		}
	}
	a.AmountOwed, a.AmountPaid, a.Paid = Reconcile(a.AmountOwed, a.AmountPaid, a.Paid, true, suggested)

	return s.appts.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appts.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, a *Appointment) error {
	if err := s.validate(a); err != nil {
		return err
	}
	if a.InsurerID == uuid.Nil {
		return fmt.Errorf("insurer_id is required")
	}

	taken, err := s.appts.SlotTaken(ctx, a.Date, a.StartTime, &a.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlotTaken
	}

	a.AmountOwed, a.AmountPaid, a.Paid = Reconcile(a.AmountOwed, a.AmountPaid, a.Paid, false, nil)

	return s.appts.Update(ctx, a)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.appts.Delete(ctx, id)
}

// ListResult carries a page of appointments plus the owed total of the paid
// ones in the filtered view.
type ListResult struct {
	Items     []*Appointment
	Total     int
	PaidTotal float64
}

func (s *Service) List(ctx context.Context, f ListFilter, limit, offset int) (*ListResult, error) {
	items, total, err := s.appts.List(ctx, f, limit, offset)
	if err != nil {
		return nil, err
	}
	paidTotal, err := s.appts.PaidTotal(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: items, Total: total, PaidTotal: paidTotal}, nil
}

// RegisterPayment adds a partial or full payment against the appointment's
// debt. Once payments cover the price the paid flag flips on; overpayment is
// accepted as-is.
func (s *Service) RegisterPayment(ctx context.Context, id uuid.UUID, amount float64) (*Appointment, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	var out *Appointment
	err := s.runTx(ctx, func(ctx context.Context) error {
		a, err := s.appts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		a.AmountPaid += amount
		if a.AmountOwed > 0 && a.AmountPaid >= a.AmountOwed {
			a.Paid = true
		}
		if err := s.appts.Update(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	return out, err
}

// TogglePaid flips the payment state: unpaid appointments are settled in
// full, paid ones are reset to zero.
func (s *Service) TogglePaid(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	var out *Appointment
	err := s.runTx(ctx, func(ctx context.Context) error {
		a, err := s.appts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if a.Paid {
			a.Paid = false
			a.AmountPaid = 0
		} else {
			a.Paid = true
			a.AmountPaid = a.AmountOwed
		}
		if err := s.appts.Update(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	return out, err
}

// ToggleAttended flips a pending appointment to finalized and back.
// Cancelled appointments cannot be toggled.
func (s *Service) ToggleAttended(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	var out *Appointment
	err := s.runTx(ctx, func(ctx context.Context) error {
		a, err := s.appts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		switch a.Status {
		case StatusPending:
			a.Status = StatusFinalized
		case StatusFinalized:
			a.Status = StatusPending
		default:
			return fmt.Errorf("cannot toggle a cancelled appointment")
		}
		if err := s.appts.Update(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	return out, err
}
