package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List filters by a case-insensitive last-name substring when q is
	// non-empty.
	List(ctx context.Context, q string, limit, offset int) ([]*Patient, int, error)
}
