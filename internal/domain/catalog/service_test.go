package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repositories --

type mockInsurerRepo struct {
	items map[uuid.UUID]*Insurer
}

func newMockInsurerRepo() *mockInsurerRepo {
	return &mockInsurerRepo{items: make(map[uuid.UUID]*Insurer)}
}

func (m *mockInsurerRepo) Create(_ context.Context, ins *Insurer) error {
	ins.ID = uuid.New()
	ins.CreatedAt = time.Now()
	m.items[ins.ID] = ins
	return nil
}

func (m *mockInsurerRepo) GetByID(_ context.Context, id uuid.UUID) (*Insurer, error) {
	ins, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return ins, nil
}

func (m *mockInsurerRepo) Update(_ context.Context, ins *Insurer) error {
	m.items[ins.ID] = ins
	return nil
}

func (m *mockInsurerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

func (m *mockInsurerRepo) List(_ context.Context, limit, offset int) ([]*Insurer, int, error) {
	var result []*Insurer
	for _, ins := range m.items {
		result = append(result, ins)
	}
	return result, len(result), nil
}

type mockTreatmentRepo struct {
	items map[uuid.UUID]*Treatment
}

func newMockTreatmentRepo() *mockTreatmentRepo {
	return &mockTreatmentRepo{items: make(map[uuid.UUID]*Treatment)}
}

func (m *mockTreatmentRepo) Create(_ context.Context, t *Treatment) error {
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	m.items[t.ID] = t
	return nil
}

func (m *mockTreatmentRepo) GetByID(_ context.Context, id uuid.UUID) (*Treatment, error) {
	t, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return t, nil
}

func (m *mockTreatmentRepo) Update(_ context.Context, t *Treatment) error {
	m.items[t.ID] = t
	return nil
}

func (m *mockTreatmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

func (m *mockTreatmentRepo) List(_ context.Context, limit, offset int) ([]*Treatment, int, error) {
	var result []*Treatment
	for _, t := range m.items {
		result = append(result, t)
	}
	return result, len(result), nil
}

type mockExpenseCategoryRepo struct {
	items map[uuid.UUID]*ExpenseCategory
}

func newMockExpenseCategoryRepo() *mockExpenseCategoryRepo {
	return &mockExpenseCategoryRepo{items: make(map[uuid.UUID]*ExpenseCategory)}
}

func (m *mockExpenseCategoryRepo) Create(_ context.Context, ec *ExpenseCategory) error {
	ec.ID = uuid.New()
	ec.CreatedAt = time.Now()
	m.items[ec.ID] = ec
	return nil
}

func (m *mockExpenseCategoryRepo) GetByID(_ context.Context, id uuid.UUID) (*ExpenseCategory, error) {
	ec, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return ec, nil
}

func (m *mockExpenseCategoryRepo) Update(_ context.Context, ec *ExpenseCategory) error {
	m.items[ec.ID] = ec
	return nil
}

func (m *mockExpenseCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

func (m *mockExpenseCategoryRepo) List(_ context.Context, limit, offset int) ([]*ExpenseCategory, int, error) {
	var result []*ExpenseCategory
	for _, ec := range m.items {
		result = append(result, ec)
	}
	return result, len(result), nil
}

func newTestService() *Service {
	return NewService(newMockInsurerRepo(), newMockTreatmentRepo(), newMockExpenseCategoryRepo())
}

// -- Tests --

func TestCreateInsurer(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	ins := &Insurer{Name: "OSDE"}
	if err := svc.CreateInsurer(ctx, ins); err != nil {
		t.Fatalf("CreateInsurer: %v", err)
	}
	if ins.ID == uuid.Nil {
		t.Error("expected generated id")
	}

	got, err := svc.GetInsurer(ctx, ins.ID)
	if err != nil {
		t.Fatalf("GetInsurer: %v", err)
	}
	if got.Name != "OSDE" {
		t.Errorf("name = %q", got.Name)
	}
}

func TestCreateInsurer_RequiresName(t *testing.T) {
	svc := newTestService()
	if err := svc.CreateInsurer(context.Background(), &Insurer{}); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestUpdateInsurer(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	ins := &Insurer{Name: "OSDE"}
	if err := svc.CreateInsurer(ctx, ins); err != nil {
		t.Fatalf("CreateInsurer: %v", err)
	}

	ins.Name = "OSDE 310"
	if err := svc.UpdateInsurer(ctx, ins); err != nil {
		t.Fatalf("UpdateInsurer: %v", err)
	}
	got, _ := svc.GetInsurer(ctx, ins.ID)
	if got.Name != "OSDE 310" {
		t.Errorf("name = %q", got.Name)
	}

	ins.Name = ""
	if err := svc.UpdateInsurer(ctx, ins); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestDeleteInsurer(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	ins := &Insurer{Name: "IOMA"}
	if err := svc.CreateInsurer(ctx, ins); err != nil {
		t.Fatalf("CreateInsurer: %v", err)
	}
	if err := svc.DeleteInsurer(ctx, ins.ID); err != nil {
		t.Fatalf("DeleteInsurer: %v", err)
	}
	if _, err := svc.GetInsurer(ctx, ins.ID); err == nil {
		t.Error("expected not found after delete")
	}
}

func TestCreateTreatment(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	desc := "weekly session"
	tr := &Treatment{Name: "Kinesiology", Description: &desc}
	if err := svc.CreateTreatment(ctx, tr); err != nil {
		t.Fatalf("CreateTreatment: %v", err)
	}

	got, err := svc.GetTreatment(ctx, tr.ID)
	if err != nil {
		t.Fatalf("GetTreatment: %v", err)
	}
	if got.Description == nil || *got.Description != desc {
		t.Errorf("description = %v", got.Description)
	}

	if err := svc.CreateTreatment(ctx, &Treatment{}); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestCreateExpenseCategory(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	ec := &ExpenseCategory{Name: "Supplies"}
	if err := svc.CreateExpenseCategory(ctx, ec); err != nil {
		t.Fatalf("CreateExpenseCategory: %v", err)
	}

	items, total, err := svc.ListExpenseCategories(ctx, 20, 0)
	if err != nil {
		t.Fatalf("ListExpenseCategories: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Errorf("total = %d, len = %d", total, len(items))
	}

	if err := svc.CreateExpenseCategory(ctx, &ExpenseCategory{}); err == nil {
		t.Error("expected error for empty name")
	}
}
