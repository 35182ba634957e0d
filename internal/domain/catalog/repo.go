package catalog

import (
	"context"

	"github.com/google/uuid"
)

type InsurerRepository interface {
	Create(ctx context.Context, ins *Insurer) error
	GetByID(ctx context.Context, id uuid.UUID) (*Insurer, error)
	Update(ctx context.Context, ins *Insurer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Insurer, int, error)
}

type TreatmentRepository interface {
	Create(ctx context.Context, t *Treatment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Treatment, error)
	Update(ctx context.Context, t *Treatment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Treatment, int, error)
}

type ExpenseCategoryRepository interface {
	Create(ctx context.Context, ec *ExpenseCategory) error
	GetByID(ctx context.Context, id uuid.UUID) (*ExpenseCategory, error)
	Update(ctx context.Context, ec *ExpenseCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*ExpenseCategory, int, error)
}
