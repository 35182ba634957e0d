package reporting

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinica/clinica/internal/domain/appointment"
	"github.com/clinica/clinica/internal/domain/finance"
	"github.com/clinica/clinica/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) AppointmentIncome(ctx context.Context, year, month int, insurerID *uuid.UUID) (float64, error) {
	query := `
		SELECT COALESCE(SUM(amount_paid), 0) FROM appointment
		WHERE status <> 'cancelled'
		  AND EXTRACT(YEAR FROM date) = $1 AND EXTRACT(MONTH FROM date) = $2`
	args := []interface{}{year, month}
	if insurerID != nil {
		query += ` AND insurer_id = $3`
		args = append(args, *insurerID)
	}

	var total float64
	err := r.conn(ctx).QueryRow(ctx, query, args...).Scan(&total)
	return total, err
}

func (r *repoPG) SettlementIncome(ctx context.Context, year, month int, insurerID *uuid.UUID) (float64, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0) FROM settlement
		WHERE EXTRACT(YEAR FROM received_date) = $1 AND EXTRACT(MONTH FROM received_date) = $2`
	args := []interface{}{year, month}
	if insurerID != nil {
		query += ` AND insurer_id = $3`
		args = append(args, *insurerID)
	}

	var total float64
	err := r.conn(ctx).QueryRow(ctx, query, args...).Scan(&total)
	return total, err
}

func (r *repoPG) ExpenseTotal(ctx context.Context, year, month int) (float64, error) {
	var total float64
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM expense
		WHERE EXTRACT(YEAR FROM date) = $1 AND EXTRACT(MONTH FROM date) = $2`,
		year, month).Scan(&total)
	return total, err
}

const apptCols = `id, date, start_time, patient_id, treatment_id, insurer_id,
	amount_owed, amount_paid, paid, payment_method, status, note, created_at, updated_at`

func scanAppointments(rows pgx.Rows) ([]*appointment.Appointment, error) {
	defer rows.Close()

	var items []*appointment.Appointment
	for rows.Next() {
		var a appointment.Appointment
		if err := rows.Scan(&a.ID, &a.Date, &a.StartTime, &a.PatientID, &a.TreatmentID,
			&a.InsurerID, &a.AmountOwed, &a.AmountPaid, &a.Paid, &a.PaymentMethod,
			&a.Status, &a.Note, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}

func (r *repoPG) PaidAppointments(ctx context.Context, year, month int, insurerID *uuid.UUID) ([]*appointment.Appointment, error) {
	query := `
		SELECT ` + apptCols + ` FROM appointment
		WHERE status <> 'cancelled' AND amount_paid > 0
		  AND EXTRACT(YEAR FROM date) = $1 AND EXTRACT(MONTH FROM date) = $2`
	args := []interface{}{year, month}
	if insurerID != nil {
		query += ` AND insurer_id = $3`
		args = append(args, *insurerID)
	}
	query += ` ORDER BY date DESC, start_time DESC`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanAppointments(rows)
}

func (r *repoPG) Settlements(ctx context.Context, year, month int, insurerID *uuid.UUID) ([]*finance.Settlement, error) {
	query := `
		SELECT id, received_date, insurer_id, period, total_amount, receipt_blob_id, created_at
		FROM settlement
		WHERE EXTRACT(YEAR FROM received_date) = $1 AND EXTRACT(MONTH FROM received_date) = $2`
	args := []interface{}{year, month}
	if insurerID != nil {
		query += ` AND insurer_id = $3`
		args = append(args, *insurerID)
	}
	query += ` ORDER BY received_date DESC`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*finance.Settlement
	for rows.Next() {
		var s finance.Settlement
		if err := rows.Scan(&s.ID, &s.ReceivedDate, &s.InsurerID, &s.Period,
			&s.TotalAmount, &s.ReceiptBlobID, &s.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &s)
	}
	return items, rows.Err()
}

func (r *repoPG) Expenses(ctx context.Context, year, month int) ([]*finance.Expense, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, date, category_id, description, amount, created_at
		FROM expense
		WHERE EXTRACT(YEAR FROM date) = $1 AND EXTRACT(MONTH FROM date) = $2
		ORDER BY date DESC`, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*finance.Expense
	for rows.Next() {
		var e finance.Expense
		if err := rows.Scan(&e.ID, &e.Date, &e.CategoryID, &e.Description,
			&e.Amount, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &e)
	}
	return items, rows.Err()
}

func (r *repoPG) Debtors(ctx context.Context, limit, offset int) ([]*appointment.Appointment, int, error) {
	const where = ` FROM appointment WHERE status = 'finalized' AND NOT paid`

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*)`+where).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+apptCols+where+` ORDER BY date DESC, start_time DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	items, err := scanAppointments(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
