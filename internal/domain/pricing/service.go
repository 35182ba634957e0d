package pricing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinica/clinica/internal/platform/db"
)

type Service struct {
	fees FeeScheduleRepository
}

func NewService(fees FeeScheduleRepository) *Service {
	return &Service{fees: fees}
}

func (s *Service) validate(fs *FeeSchedule) error {
	if fs.InsurerID == uuid.Nil {
		return fmt.Errorf("insurer_id is required")
	}
	if fs.TreatmentID == uuid.Nil {
		return fmt.Errorf("treatment_id is required")
	}
	if fs.SuggestedCopay < 0 {
		return fmt.Errorf("suggested_copay cannot be negative")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, fs *FeeSchedule) error {
	if err := s.validate(fs); err != nil {
		return err
	}
	if err := s.fees.Create(ctx, fs); err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("a fee is already defined for this insurer and treatment")
		}
		return err
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*FeeSchedule, error) {
	return s.fees.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, fs *FeeSchedule) error {
	if err := s.validate(fs); err != nil {
		return err
	}
	if err := s.fees.Update(ctx, fs); err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("a fee is already defined for this insurer and treatment")
		}
		return err
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.fees.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, insurerID *uuid.UUID, limit, offset int) ([]*FeeSchedule, int, error) {
	return s.fees.List(ctx, insurerID, limit, offset)
}

// SuggestedCopay returns the fee for an insurer/treatment pair, or nil when
// no fee is defined. Missing entries are not an error.
func (s *Service) SuggestedCopay(ctx context.Context, insurerID, treatmentID uuid.UUID) (*float64, error) {
	fs, err := s.fees.GetByPair(ctx, insurerID, treatmentID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	amount := fs.SuggestedCopay
	return &amount, nil
}
