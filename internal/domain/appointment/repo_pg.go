package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

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

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const apptCols = `a.id, a.date, a.start_time, a.patient_id, a.treatment_id, a.insurer_id,
	a.amount_owed, a.amount_paid, a.paid, a.payment_method, a.status, a.note,
	a.created_at, a.updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.Date, &a.StartTime, &a.PatientID, &a.TreatmentID, &a.InsurerID,
		&a.AmountOwed, &a.AmountPaid, &a.Paid, &a.PaymentMethod, &a.Status, &a.Note,
		&a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO appointment (id, date, start_time, patient_id, treatment_id, insurer_id,
			amount_owed, amount_paid, paid, payment_method, status, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`,
		a.ID, a.Date, a.StartTime, a.PatientID, a.TreatmentID, a.InsurerID,
		a.AmountOwed, a.AmountPaid, a.Paid, a.PaymentMethod, a.Status, a.Note).
		Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanAppointment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+apptCols+` FROM appointment a WHERE a.id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointment SET date = $2, start_time = $3, patient_id = $4,
			treatment_id = $5, insurer_id = $6, amount_owed = $7, amount_paid = $8,
			paid = $9, payment_method = $10, status = $11, note = $12,
			updated_at = NOW()
		WHERE id = $1`,
		a.ID, a.Date, a.StartTime, a.PatientID, a.TreatmentID, a.InsurerID,
		a.AmountOwed, a.AmountPaid, a.Paid, a.PaymentMethod, a.Status, a.Note)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointment WHERE id = $1`, id)
	return err
}

// filterSQL builds the WHERE clause for f. The patient join is always
// present so the surname filter can apply.
func filterSQL(f ListFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if f.Date != nil {
		args = append(args, *f.Date)
		clauses = append(clauses, fmt.Sprintf("a.date = $%d", len(args)))
	}
	if f.Year != 0 && f.Month != 0 {
		args = append(args, f.Year)
		clauses = append(clauses, fmt.Sprintf("EXTRACT(YEAR FROM a.date) = $%d", len(args)))
		args = append(args, f.Month)
		clauses = append(clauses, fmt.Sprintf("EXTRACT(MONTH FROM a.date) = $%d", len(args)))
	}
	if f.Surname != "" {
		args = append(args, "%"+f.Surname+"%")
		clauses = append(clauses, fmt.Sprintf("p.last_name ILIKE $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

const apptFrom = ` FROM appointment a JOIN patient p ON p.id = a.patient_id`

func (r *repoPG) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Appointment, int, error) {
	where, args := filterSQL(f)

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*)`+apptFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT `+apptCols+apptFrom+where+
		` ORDER BY a.date DESC, a.start_time DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *repoPG) PaidTotal(ctx context.Context, f ListFilter) (float64, error) {
	where, args := filterSQL(f)
	if where == "" {
		where = " WHERE a.paid"
	} else {
		where += " AND a.paid"
	}

	var total float64
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COALESCE(SUM(a.amount_owed), 0)`+apptFrom+where, args...).Scan(&total)
	return total, err
}

func (r *repoPG) SlotTaken(ctx context.Context, date time.Time, startTime string, excludeID *uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointment
			WHERE date = $1 AND start_time = $2 AND status <> $3`
	args := []interface{}{date, startTime, StatusCancelled}
	if excludeID != nil {
		query += ` AND id <> $4`
		args = append(args, *excludeID)
	}
	query += `)`

	var taken bool
	err := r.conn(ctx).QueryRow(ctx, query, args...).Scan(&taken)
	return taken, err
}
