package finance

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/clinica/clinica/internal/platform/blobstore"
)

type Service struct {
	settlements SettlementRepository
	expenses    ExpenseRepository
	blobs       blobstore.Store
}

func NewService(st SettlementRepository, ex ExpenseRepository, blobs blobstore.Store) *Service {
	return &Service{settlements: st, expenses: ex, blobs: blobs}
}

// -- Settlement --

func validateSettlement(s *Settlement) error {
	if s.InsurerID == uuid.Nil {
		return fmt.Errorf("insurer_id is required")
	}
	if s.ReceivedDate.IsZero() {
		return fmt.Errorf("received_date is required")
	}
	if s.Period == "" {
		return fmt.Errorf("period is required")
	}
	if s.TotalAmount < 0 {
		return fmt.Errorf("total_amount cannot be negative")
	}
	return nil
}

func (s *Service) CreateSettlement(ctx context.Context, st *Settlement) error {
	if err := validateSettlement(st); err != nil {
		return err
	}
	return s.settlements.Create(ctx, st)
}

func (s *Service) GetSettlement(ctx context.Context, id uuid.UUID) (*Settlement, error) {
	return s.settlements.GetByID(ctx, id)
}

func (s *Service) UpdateSettlement(ctx context.Context, st *Settlement) error {
	if err := validateSettlement(st); err != nil {
		return err
	}
	return s.settlements.Update(ctx, st)
}

// DeleteSettlement removes the settlement and its receipt blob, if any.
func (s *Service) DeleteSettlement(ctx context.Context, id uuid.UUID) error {
	st, err := s.settlements.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.settlements.Delete(ctx, id); err != nil {
		return err
	}
	if st.ReceiptBlobID != nil {
		_ = s.blobs.Delete(ctx, *st.ReceiptBlobID)
	}
	return nil
}

func (s *Service) ListSettlements(ctx context.Context, insurerID *uuid.UUID, limit, offset int) ([]*Settlement, int, error) {
	return s.settlements.List(ctx, insurerID, limit, offset)
}

// UploadReceipt stores the receipt file and attaches it to the settlement,
// replacing any previous receipt.
func (s *Service) UploadReceipt(ctx context.Context, id uuid.UUID, fileName, contentType string, content io.Reader) (*Settlement, error) {
	st, err := s.settlements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	meta, err := s.blobs.Save(ctx, blobstore.BlobMetadata{
		FileName:    fileName,
		ContentType: contentType,
		Category:    "settlement-receipt",
	}, content)
	if err != nil {
		return nil, err
	}

	if err := s.settlements.SetReceipt(ctx, id, &meta.ID); err != nil {
		_ = s.blobs.Delete(ctx, meta.ID)
		return nil, err
	}
	if st.ReceiptBlobID != nil {
		_ = s.blobs.Delete(ctx, *st.ReceiptBlobID)
	}

	st.ReceiptBlobID = &meta.ID
	return st, nil
}

// OpenReceipt streams the settlement's receipt.
func (s *Service) OpenReceipt(ctx context.Context, id uuid.UUID) (io.ReadCloser, *blobstore.BlobMetadata, error) {
	st, err := s.settlements.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if st.ReceiptBlobID == nil {
		return nil, nil, blobstore.ErrBlobNotFound
	}
	return s.blobs.Open(ctx, *st.ReceiptBlobID)
}

// -- Expense --

func validateExpense(e *Expense) error {
	if e.CategoryID == uuid.Nil {
		return fmt.Errorf("category_id is required")
	}
	if e.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if e.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	return nil
}

func (s *Service) CreateExpense(ctx context.Context, e *Expense) error {
	if err := validateExpense(e); err != nil {
		return err
	}
	return s.expenses.Create(ctx, e)
}

func (s *Service) GetExpense(ctx context.Context, id uuid.UUID) (*Expense, error) {
	return s.expenses.GetByID(ctx, id)
}

func (s *Service) UpdateExpense(ctx context.Context, e *Expense) error {
	if err := validateExpense(e); err != nil {
		return err
	}
	return s.expenses.Update(ctx, e)
}

func (s *Service) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return s.expenses.Delete(ctx, id)
}

func (s *Service) ListExpenses(ctx context.Context, categoryID *uuid.UUID, limit, offset int) ([]*Expense, int, error) {
	return s.expenses.List(ctx, categoryID, limit, offset)
}
