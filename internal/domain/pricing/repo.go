package pricing

import (
	"context"

	"github.com/google/uuid"
)

type FeeScheduleRepository interface {
	Create(ctx context.Context, fs *FeeSchedule) error
	GetByID(ctx context.Context, id uuid.UUID) (*FeeSchedule, error)
	GetByPair(ctx context.Context, insurerID, treatmentID uuid.UUID) (*FeeSchedule, error)
	Update(ctx context.Context, fs *FeeSchedule) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, insurerID *uuid.UUID, limit, offset int) ([]*FeeSchedule, int, error)
}
