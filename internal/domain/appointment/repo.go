package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows appointment listings. Zero values mean "no filter".
type ListFilter struct {
	Date    *time.Time // exact day
	Year    int        // with Month: calendar month
	Month   int
	Surname string // patient last-name substring, case-insensitive
}

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns appointments ordered date DESC, start_time DESC.
	List(ctx context.Context, f ListFilter, limit, offset int) ([]*Appointment, int, error)
	// PaidTotal sums amount_owed over the paid appointments matching f.
	PaidTotal(ctx context.Context, f ListFilter) (float64, error)
	// SlotTaken reports whether a non-cancelled appointment other than
	// excludeID already occupies (date, startTime).
	SlotTaken(ctx context.Context, date time.Time, startTime string, excludeID *uuid.UUID) (bool, error)
}
