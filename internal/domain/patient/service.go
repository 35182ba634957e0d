package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinica/clinica/internal/platform/db"
)

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

func validate(p *Patient) error {
	if p.FirstName == "" {
		return fmt.Errorf("first_name is required")
	}
	if p.LastName == "" {
		return fmt.Errorf("last_name is required")
	}
	if p.NationalID == "" {
		return fmt.Errorf("national_id is required")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if err := validate(p); err != nil {
		return err
	}
	if err := s.patients.Create(ctx, p); err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("a patient with national_id %s already exists", p.NationalID)
		}
		return err
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	if err := validate(p); err != nil {
		return err
	}
	if err := s.patients.Update(ctx, p); err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("a patient with national_id %s already exists", p.NationalID)
		}
		return err
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.patients.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, q string, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, q, limit, offset)
}

// DefaultInsurer returns the patient's default insurer, or nil when none is
// set. Appointments fall back to it when created without an insurer.
func (s *Service) DefaultInsurer(ctx context.Context, patientID uuid.UUID) (*uuid.UUID, error) {
	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return p.DefaultInsurerID, nil
}
