package finance

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinica/clinica/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// =========== Settlement Repository ===========

type settlementRepoPG struct{ pool *pgxpool.Pool }

func NewSettlementRepoPG(pool *pgxpool.Pool) SettlementRepository {
	return &settlementRepoPG{pool: pool}
}

func (r *settlementRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const settlementCols = `id, received_date, insurer_id, period, total_amount, receipt_blob_id, created_at`

func scanSettlement(row pgx.Row) (*Settlement, error) {
	var s Settlement
	err := row.Scan(&s.ID, &s.ReceivedDate, &s.InsurerID, &s.Period, &s.TotalAmount,
		&s.ReceiptBlobID, &s.CreatedAt)
	return &s, err
}

func (r *settlementRepoPG) Create(ctx context.Context, s *Settlement) error {
	s.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO settlement (id, received_date, insurer_id, period, total_amount, receipt_blob_id)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`,
		s.ID, s.ReceivedDate, s.InsurerID, s.Period, s.TotalAmount, s.ReceiptBlobID).
		Scan(&s.CreatedAt)
}

func (r *settlementRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Settlement, error) {
	return scanSettlement(r.conn(ctx).QueryRow(ctx,
		`SELECT `+settlementCols+` FROM settlement WHERE id = $1`, id))
}

func (r *settlementRepoPG) Update(ctx context.Context, s *Settlement) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE settlement SET received_date = $2, insurer_id = $3, period = $4, total_amount = $5
		WHERE id = $1`,
		s.ID, s.ReceivedDate, s.InsurerID, s.Period, s.TotalAmount)
	return err
}

func (r *settlementRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM settlement WHERE id = $1`, id)
	return err
}

func (r *settlementRepoPG) List(ctx context.Context, insurerID *uuid.UUID, limit, offset int) ([]*Settlement, int, error) {
	where := ``
	args := []interface{}{}
	if insurerID != nil {
		where = ` WHERE insurer_id = $1`
		args = append(args, *insurerID)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM settlement`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT `+settlementCols+` FROM settlement`+where+
		` ORDER BY received_date DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Settlement
	for rows.Next() {
		s, err := scanSettlement(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}

func (r *settlementRepoPG) SetReceipt(ctx context.Context, id uuid.UUID, blobID *string) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE settlement SET receipt_blob_id = $2 WHERE id = $1`, id, blobID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// =========== Expense Repository ===========

type expenseRepoPG struct{ pool *pgxpool.Pool }

func NewExpenseRepoPG(pool *pgxpool.Pool) ExpenseRepository {
	return &expenseRepoPG{pool: pool}
}

func (r *expenseRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const expenseCols = `id, date, category_id, description, amount, created_at`

func scanExpense(row pgx.Row) (*Expense, error) {
	var e Expense
	err := row.Scan(&e.ID, &e.Date, &e.CategoryID, &e.Description, &e.Amount, &e.CreatedAt)
	return &e, err
}

func (r *expenseRepoPG) Create(ctx context.Context, e *Expense) error {
	e.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO expense (id, date, category_id, description, amount)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at`,
		e.ID, e.Date, e.CategoryID, e.Description, e.Amount).Scan(&e.CreatedAt)
}

func (r *expenseRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Expense, error) {
	return scanExpense(r.conn(ctx).QueryRow(ctx,
		`SELECT `+expenseCols+` FROM expense WHERE id = $1`, id))
}

func (r *expenseRepoPG) Update(ctx context.Context, e *Expense) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE expense SET date = $2, category_id = $3, description = $4, amount = $5
		WHERE id = $1`,
		e.ID, e.Date, e.CategoryID, e.Description, e.Amount)
	return err
}

func (r *expenseRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM expense WHERE id = $1`, id)
	return err
}

func (r *expenseRepoPG) List(ctx context.Context, categoryID *uuid.UUID, limit, offset int) ([]*Expense, int, error) {
	where := ``
	args := []interface{}{}
	if categoryID != nil {
		where = ` WHERE category_id = $1`
		args = append(args, *categoryID)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM expense`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT `+expenseCols+` FROM expense`+where+
		` ORDER BY date DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, rows.Err()
}
