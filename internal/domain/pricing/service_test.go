package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// -- Mock Repository --

type mockFeeRepo struct {
	items map[uuid.UUID]*FeeSchedule
}

func newMockFeeRepo() *mockFeeRepo {
	return &mockFeeRepo{items: make(map[uuid.UUID]*FeeSchedule)}
}

func (m *mockFeeRepo) Create(_ context.Context, fs *FeeSchedule) error {
	for _, existing := range m.items {
		if existing.InsurerID == fs.InsurerID && existing.TreatmentID == fs.TreatmentID {
			return duplicatePairErr()
		}
	}
	fs.ID = uuid.New()
	fs.CreatedAt = time.Now()
	m.items[fs.ID] = fs
	return nil
}

func (m *mockFeeRepo) GetByID(_ context.Context, id uuid.UUID) (*FeeSchedule, error) {
	fs, ok := m.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return fs, nil
}

func (m *mockFeeRepo) GetByPair(_ context.Context, insurerID, treatmentID uuid.UUID) (*FeeSchedule, error) {
	for _, fs := range m.items {
		if fs.InsurerID == insurerID && fs.TreatmentID == treatmentID {
			return fs, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockFeeRepo) Update(_ context.Context, fs *FeeSchedule) error {
	m.items[fs.ID] = fs
	return nil
}

func (m *mockFeeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

func (m *mockFeeRepo) List(_ context.Context, insurerID *uuid.UUID, limit, offset int) ([]*FeeSchedule, int, error) {
	var result []*FeeSchedule
	for _, fs := range m.items {
		if insurerID != nil && fs.InsurerID != *insurerID {
			continue
		}
		result = append(result, fs)
	}
	return result, len(result), nil
}

func duplicatePairErr() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "fee_schedule_insurer_id_treatment_id_key"}
}

// -- Tests --

func TestCreateFee(t *testing.T) {
	svc := NewService(newMockFeeRepo())
	ctx := context.Background()

	fs := &FeeSchedule{InsurerID: uuid.New(), TreatmentID: uuid.New(), SuggestedCopay: 1500}
	if err := svc.Create(ctx, fs); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if fs.ID == uuid.Nil {
		t.Error("expected generated id")
	}
}

func TestCreateFee_Validation(t *testing.T) {
	svc := NewService(newMockFeeRepo())
	ctx := context.Background()

	tests := []struct {
		name string
		fee  FeeSchedule
	}{
		{"missing insurer", FeeSchedule{TreatmentID: uuid.New(), SuggestedCopay: 100}},
		{"missing treatment", FeeSchedule{InsurerID: uuid.New(), SuggestedCopay: 100}},
		{"negative copay", FeeSchedule{InsurerID: uuid.New(), TreatmentID: uuid.New(), SuggestedCopay: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.Create(ctx, &tt.fee); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCreateFee_DuplicatePair(t *testing.T) {
	svc := NewService(newMockFeeRepo())
	ctx := context.Background()

	insurerID, treatmentID := uuid.New(), uuid.New()
	if err := svc.Create(ctx, &FeeSchedule{InsurerID: insurerID, TreatmentID: treatmentID, SuggestedCopay: 1000}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Create(ctx, &FeeSchedule{InsurerID: insurerID, TreatmentID: treatmentID, SuggestedCopay: 2000}); err == nil {
		t.Error("expected error for duplicate insurer/treatment pair")
	}
}

func TestSuggestedCopay(t *testing.T) {
	svc := NewService(newMockFeeRepo())
	ctx := context.Background()

	insurerID, treatmentID := uuid.New(), uuid.New()
	if err := svc.Create(ctx, &FeeSchedule{InsurerID: insurerID, TreatmentID: treatmentID, SuggestedCopay: 1800}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	amount, err := svc.SuggestedCopay(ctx, insurerID, treatmentID)
	if err != nil {
		t.Fatalf("SuggestedCopay: %v", err)
	}
	if amount == nil || *amount != 1800 {
		t.Errorf("amount = %v, want 1800", amount)
	}
}

func TestSuggestedCopay_Missing(t *testing.T) {
	svc := NewService(newMockFeeRepo())

	amount, err := svc.SuggestedCopay(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("SuggestedCopay: %v", err)
	}
	if amount != nil {
		t.Errorf("amount = %v, want nil for missing entry", amount)
	}
}

func TestListFees_InsurerFilter(t *testing.T) {
	svc := NewService(newMockFeeRepo())
	ctx := context.Background()

	insurerA, insurerB := uuid.New(), uuid.New()
	for _, insurerID := range []uuid.UUID{insurerA, insurerA, insurerB} {
		if err := svc.Create(ctx, &FeeSchedule{InsurerID: insurerID, TreatmentID: uuid.New(), SuggestedCopay: 500}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	_, total, err := svc.List(ctx, &insurerA, 20, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}

	_, total, err = svc.List(ctx, nil, 20, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
}
