package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const expenseColumns = `id, owner_id, title, amount, category, date, note, recurrence, created_at, updated_at`

type ExpenseRepository struct {
	pool *pgxpool.Pool
}

func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *domain.Expense) (*domain.Expense, error) {
	query := `
		INSERT INTO expenses (owner_id, title, amount, category, date, note, recurrence)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + expenseColumns

	row := r.pool.QueryRow(ctx, query,
		e.Owner, e.Title, e.Amount, e.Category, e.Date, e.Note, e.Recurrence)
	return scanExpense(row)
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id)
	return scanExpense(row)
}

func (r *ExpenseRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Expense, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE owner_id = $1 ORDER BY date DESC, id DESC`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []*domain.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

// Update rewrites the mutable columns. owner_id is part of the filter so a row
// can never change hands.
func (r *ExpenseRepository) Update(ctx context.Context, e *domain.Expense) (*domain.Expense, error) {
	query := `
		UPDATE expenses
		SET title = $3, amount = $4, category = $5, date = $6, note = $7,
		    recurrence = $8, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + expenseColumns

	row := r.pool.QueryRow(ctx, query,
		e.ID, e.Owner, e.Title, e.Amount, e.Category, e.Date, e.Note, e.Recurrence)
	return scanExpense(row)
}

func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	var e domain.Expense
	err := row.Scan(&e.ID, &e.Owner, &e.Title, &e.Amount, &e.Category, &e.Date,
		&e.Note, &e.Recurrence, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("scan expense: %w", err)
	}
	return &e, nil
}
