package catalog

import (
	"context"

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

// =========== Insurer Repository ===========

type insurerRepoPG struct{ pool *pgxpool.Pool }

func NewInsurerRepoPG(pool *pgxpool.Pool) InsurerRepository { return &insurerRepoPG{pool: pool} }

func (r *insurerRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const insurerCols = `id, name, created_at`

func scanInsurer(row pgx.Row) (*Insurer, error) {
	var ins Insurer
	err := row.Scan(&ins.ID, &ins.Name, &ins.CreatedAt)
	return &ins, err
}

func (r *insurerRepoPG) Create(ctx context.Context, ins *Insurer) error {
	ins.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx,
		`INSERT INTO insurer (id, name) VALUES ($1, $2) RETURNING created_at`,
		ins.ID, ins.Name).Scan(&ins.CreatedAt)
}

func (r *insurerRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Insurer, error) {
	return scanInsurer(r.conn(ctx).QueryRow(ctx,
		`SELECT `+insurerCols+` FROM insurer WHERE id = $1`, id))
}

func (r *insurerRepoPG) Update(ctx context.Context, ins *Insurer) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE insurer SET name = $2 WHERE id = $1`, ins.ID, ins.Name)
	return err
}

func (r *insurerRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM insurer WHERE id = $1`, id)
	return err
}

func (r *insurerRepoPG) List(ctx context.Context, limit, offset int) ([]*Insurer, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM insurer`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+insurerCols+` FROM insurer ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Insurer
	for rows.Next() {
		ins, err := scanInsurer(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, ins)
	}
	return items, total, rows.Err()
}

// =========== Treatment Repository ===========

type treatmentRepoPG struct{ pool *pgxpool.Pool }

func NewTreatmentRepoPG(pool *pgxpool.Pool) TreatmentRepository { return &treatmentRepoPG{pool: pool} }

func (r *treatmentRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const treatmentCols = `id, name, description, created_at`

func scanTreatment(row pgx.Row) (*Treatment, error) {
	var t Treatment
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt)
	return &t, err
}

func (r *treatmentRepoPG) Create(ctx context.Context, t *Treatment) error {
	t.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx,
		`INSERT INTO treatment (id, name, description) VALUES ($1, $2, $3) RETURNING created_at`,
		t.ID, t.Name, t.Description).Scan(&t.CreatedAt)
}

func (r *treatmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Treatment, error) {
	return scanTreatment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+treatmentCols+` FROM treatment WHERE id = $1`, id))
}

func (r *treatmentRepoPG) Update(ctx context.Context, t *Treatment) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE treatment SET name = $2, description = $3 WHERE id = $1`,
		t.ID, t.Name, t.Description)
	return err
}

func (r *treatmentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM treatment WHERE id = $1`, id)
	return err
}

func (r *treatmentRepoPG) List(ctx context.Context, limit, offset int) ([]*Treatment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM treatment`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+treatmentCols+` FROM treatment ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Treatment
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, t)
	}
	return items, total, rows.Err()
}

// =========== ExpenseCategory Repository ===========

type expenseCategoryRepoPG struct{ pool *pgxpool.Pool }

func NewExpenseCategoryRepoPG(pool *pgxpool.Pool) ExpenseCategoryRepository {
	return &expenseCategoryRepoPG{pool: pool}
}

func (r *expenseCategoryRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const expenseCategoryCols = `id, name, created_at`

func scanExpenseCategory(row pgx.Row) (*ExpenseCategory, error) {
	var ec ExpenseCategory
	err := row.Scan(&ec.ID, &ec.Name, &ec.CreatedAt)
	return &ec, err
}

func (r *expenseCategoryRepoPG) Create(ctx context.Context, ec *ExpenseCategory) error {
	ec.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx,
		`INSERT INTO expense_category (id, name) VALUES ($1, $2) RETURNING created_at`,
		ec.ID, ec.Name).Scan(&ec.CreatedAt)
}

func (r *expenseCategoryRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*ExpenseCategory, error) {
	return scanExpenseCategory(r.conn(ctx).QueryRow(ctx,
		`SELECT `+expenseCategoryCols+` FROM expense_category WHERE id = $1`, id))
}

func (r *expenseCategoryRepoPG) Update(ctx context.Context, ec *ExpenseCategory) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE expense_category SET name = $2 WHERE id = $1`, ec.ID, ec.Name)
	return err
}

func (r *expenseCategoryRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM expense_category WHERE id = $1`, id)
	return err
}

func (r *expenseCategoryRepoPG) List(ctx context.Context, limit, offset int) ([]*ExpenseCategory, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM expense_category`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+expenseCategoryCols+` FROM expense_category ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*ExpenseCategory
	for rows.Next() {
		ec, err := scanExpenseCategory(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, ec)
	}
	return items, total, rows.Err()
}
