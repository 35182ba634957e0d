package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	insurers   InsurerRepository
	treatments TreatmentRepository
	categories ExpenseCategoryRepository
}

func NewService(ins InsurerRepository, tr TreatmentRepository, ec ExpenseCategoryRepository) *Service {
	return &Service{insurers: ins, treatments: tr, categories: ec}
}

// -- Insurer --

func (s *Service) CreateInsurer(ctx context.Context, ins *Insurer) error {
	if ins.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.insurers.Create(ctx, ins)
}

func (s *Service) GetInsurer(ctx context.Context, id uuid.UUID) (*Insurer, error) {
	return s.insurers.GetByID(ctx, id)
}

func (s *Service) UpdateInsurer(ctx context.Context, ins *Insurer) error {
	if ins.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.insurers.Update(ctx, ins)
}

func (s *Service) DeleteInsurer(ctx context.Context, id uuid.UUID) error {
	return s.insurers.Delete(ctx, id)
}

func (s *Service) ListInsurers(ctx context.Context, limit, offset int) ([]*Insurer, int, error) {
	return s.insurers.List(ctx, limit, offset)
}

// -- Treatment --

func (s *Service) CreateTreatment(ctx context.Context, t *Treatment) error {
	if t.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.treatments.Create(ctx, t)
}

func (s *Service) GetTreatment(ctx context.Context, id uuid.UUID) (*Treatment, error) {
	return s.treatments.GetByID(ctx, id)
}

func (s *Service) UpdateTreatment(ctx context.Context, t *Treatment) error {
	if t.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.treatments.Update(ctx, t)
}

func (s *Service) DeleteTreatment(ctx context.Context, id uuid.UUID) error {
	return s.treatments.Delete(ctx, id)
}

func (s *Service) ListTreatments(ctx context.Context, limit, offset int) ([]*Treatment, int, error) {
	return s.treatments.List(ctx, limit, offset)
}

// -- ExpenseCategory --

func (s *Service) CreateExpenseCategory(ctx context.Context, ec *ExpenseCategory) error {
	if ec.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.categories.Create(ctx, ec)
}

func (s *Service) GetExpenseCategory(ctx context.Context, id uuid.UUID) (*ExpenseCategory, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *Service) UpdateExpenseCategory(ctx context.Context, ec *ExpenseCategory) error {
	if ec.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.categories.Update(ctx, ec)
}

func (s *Service) DeleteExpenseCategory(ctx context.Context, id uuid.UUID) error {
	return s.categories.Delete(ctx, id)
}

func (s *Service) ListExpenseCategories(ctx context.Context, limit, offset int) ([]*ExpenseCategory, int, error) {
	return s.categories.List(ctx, limit, offset)
}
