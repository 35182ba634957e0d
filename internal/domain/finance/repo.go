package finance

import (
	"context"

	"github.com/google/uuid"
)

type SettlementRepository interface {
	Create(ctx context.Context, s *Settlement) error
	GetByID(ctx context.Context, id uuid.UUID) (*Settlement, error)
	Update(ctx context.Context, s *Settlement) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, insurerID *uuid.UUID, limit, offset int) ([]*Settlement, int, error)
	SetReceipt(ctx context.Context, id uuid.UUID, blobID *string) error
}

type ExpenseRepository interface {
	Create(ctx context.Context, e *Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	Update(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, categoryID *uuid.UUID, limit, offset int) ([]*Expense, int, error)
}
