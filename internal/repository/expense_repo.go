package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tripflux/internal/domain"
)

// ExpenseRepository define el contrato de persistencia para gastos.
type ExpenseRepository interface {
	Create(ctx context.Context, expense domain.Expense) error
	GetByID(ctx context.Context, id string) (domain.Expense, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Expense, error)
	Update(ctx context.Context, expense domain.Expense) error
	Delete(ctx context.Context, id string) error
}

const expenseColumns = `
	e.id, e.user_id, e.description, e.amount, e.category, e.expense_date,
	e.travel_log_id, COALESCE(t.title, ''), e.group_trip_id, e.created_at, e.updated_at
`

// PgExpenseRepository implementa ExpenseRepository usando pgxpool.
type PgExpenseRepository struct {
	pool *pgxpool.Pool
}

func NewPgExpenseRepository(pool *pgxpool.Pool) *PgExpenseRepository {
	return &PgExpenseRepository{pool: pool}
}

func (r *PgExpenseRepository) Create(ctx context.Context, expense domain.Expense) error {
	const query = `
		INSERT INTO expenses
			(id, user_id, description, amount, category, expense_date,
			 travel_log_id, group_trip_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.pool.Exec(ctx, query,
		expense.ID, expense.UserID, expense.Description, expense.Amount,
		expense.Category, expense.Date, expense.TravelLogID, expense.GroupTripID,
		expense.CreatedAt, expense.UpdatedAt,
	)
	return err
}

func (r *PgExpenseRepository) GetByID(ctx context.Context, id string) (domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		LEFT JOIN travel_logs t ON t.id = e.travel_log_id
		WHERE e.id = $1
	`
	return scanExpense(r.pool.QueryRow(ctx, query, id))
}

func (r *PgExpenseRepository) ListByUser(ctx context.Context, userID string) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		LEFT JOIN travel_logs t ON t.id = e.travel_log_id
		WHERE e.user_id = $1
		ORDER BY e.expense_date DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]domain.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *PgExpenseRepository) Update(ctx context.Context, expense domain.Expense) error {
	const query = `
		UPDATE expenses
		SET description = $2, amount = $3, category = $4, expense_date = $5,
			travel_log_id = $6, group_trip_id = $7, updated_at = $8
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		expense.ID, expense.Description, expense.Amount, expense.Category,
		expense.Date, expense.TravelLogID, expense.GroupTripID, expense.UpdatedAt,
	)
	return err
}

func (r *PgExpenseRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	return err
}

func scanExpense(row pgx.Row) (domain.Expense, error) {
	var e domain.Expense
	err := row.Scan(
		&e.ID, &e.UserID, &e.Description, &e.Amount, &e.Category, &e.Date,
		&e.TravelLogID, &e.TravelLogTitle, &e.GroupTripID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return domain.Expense{}, err
	}
	return e, nil
}
