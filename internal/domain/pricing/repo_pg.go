package pricing

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

type feeScheduleRepoPG struct{ pool *pgxpool.Pool }

func NewFeeScheduleRepoPG(pool *pgxpool.Pool) FeeScheduleRepository {
	return &feeScheduleRepoPG{pool: pool}
}

func (r *feeScheduleRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const feeScheduleCols = `id, insurer_id, treatment_id, suggested_copay, created_at`

func scanFeeSchedule(row pgx.Row) (*FeeSchedule, error) {
	var fs FeeSchedule
	err := row.Scan(&fs.ID, &fs.InsurerID, &fs.TreatmentID, &fs.SuggestedCopay, &fs.CreatedAt)
	return &fs, err
}

func (r *feeScheduleRepoPG) Create(ctx context.Context, fs *FeeSchedule) error {
	fs.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO fee_schedule (id, insurer_id, treatment_id, suggested_copay)
		VALUES ($1, $2, $3, $4) RETURNING created_at`,
		fs.ID, fs.InsurerID, fs.TreatmentID, fs.SuggestedCopay).Scan(&fs.CreatedAt)
}

func (r *feeScheduleRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*FeeSchedule, error) {
	return scanFeeSchedule(r.conn(ctx).QueryRow(ctx,
		`SELECT `+feeScheduleCols+` FROM fee_schedule WHERE id = $1`, id))
}

func (r *feeScheduleRepoPG) GetByPair(ctx context.Context, insurerID, treatmentID uuid.UUID) (*FeeSchedule, error) {
	return scanFeeSchedule(r.conn(ctx).QueryRow(ctx,
		`SELECT `+feeScheduleCols+` FROM fee_schedule WHERE insurer_id = $1 AND treatment_id = $2`,
		insurerID, treatmentID))
}

func (r *feeScheduleRepoPG) Update(ctx context.Context, fs *FeeSchedule) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE fee_schedule SET insurer_id = $2, treatment_id = $3, suggested_copay = $4
		WHERE id = $1`,
		fs.ID, fs.InsurerID, fs.TreatmentID, fs.SuggestedCopay)
	return err
}

func (r *feeScheduleRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM fee_schedule WHERE id = $1`, id)
	return err
}

func (r *feeScheduleRepoPG) List(ctx context.Context, insurerID *uuid.UUID, limit, offset int) ([]*FeeSchedule, int, error) {
	where := ``
	args := []interface{}{}
	if insurerID != nil {
		where = ` WHERE insurer_id = $1`
		args = append(args, *insurerID)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM fee_schedule`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT `+feeScheduleCols+` FROM fee_schedule`+where+
		` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*FeeSchedule
	for rows.Next() {
		fs, err := scanFeeSchedule(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, fs)
	}
	return items, total, rows.Err()
}
