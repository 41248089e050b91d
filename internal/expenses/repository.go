package expenses

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/riohost/riohost/internal/shared"
)

// Repository persists expenses.
type Repository interface {
	ListBetween(ctx context.Context, q ListQuery) ([]Expense, error)
	Get(ctx context.Context, id string) (Expense, error)
	Create(ctx context.Context, e Expense) (Expense, error)
	Update(ctx context.Context, id string, e Expense) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository wires a pgx-backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const expenseColumns = `id, COALESCE(property_id::text, ''), COALESCE(description, ''), amount,
	COALESCE(category, ''), COALESCE(to_char(expense_date, 'YYYY-MM-DD'), ''), created_at`

// ListBetween pushes the date predicate down to the store, unlike the mobile
// client which had to filter a full fetch locally.
func (r *repository) ListBetween(ctx context.Context, q ListQuery) ([]Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_date >= $1 AND expense_date <= $2`
	args := []interface{}{q.Start, q.End}

	if len(q.PropertyIDs) > 0 {
		query += ` AND property_id = ANY($` + strconv.Itoa(len(args)+1) + `)`
		args = append(args, q.PropertyIDs)
	}
	query += ` ORDER BY expense_date ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("expenses: list between: %w", err)
	}
	defer rows.Close()

	var out []Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (Expense, error) {
	row := r.db.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id)
	e, err := scanExpense(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Expense{}, shared.ErrNotFound
	}
	return e, err
}

func (r *repository) Create(ctx context.Context, e Expense) (Expense, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedAt = time.Now()
	_, err := r.db.Exec(ctx, `INSERT INTO expenses (id, property_id, description, amount, category, expense_date, created_at)
		VALUES ($1, NULLIF($2,'')::uuid, NULLIF($3,''), $4, NULLIF($5,''), $6, $7)`,
		e.ID, e.PropertyID, e.Description, e.Amount, e.Category, e.ExpenseDate, e.CreatedAt)
	if err != nil {
		return Expense{}, err
	}
	return e, nil
}

func (r *repository) Update(ctx context.Context, id string, e Expense) error {
	tag, err := r.db.Exec(ctx, `UPDATE expenses SET property_id = NULLIF($1,'')::uuid, description = NULLIF($2,''),
		amount = $3, category = NULLIF($4,''), expense_date = $5 WHERE id = $6`,
		e.PropertyID, e.Description, e.Amount, e.Category, e.ExpenseDate, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanExpense(row pgx.Row) (Expense, error) {
	var e Expense
	err := row.Scan(&e.ID, &e.PropertyID, &e.Description, &e.Amount, &e.Category, &e.ExpenseDate, &e.CreatedAt)
	return e, err
}
