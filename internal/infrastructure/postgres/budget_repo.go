package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const budgetColumns = `id, owner_id, name, category, limit_amount, period_start, period_end, created_at, updated_at`

type BudgetRepository struct {
	pool *pgxpool.Pool
}

func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

func (r *BudgetRepository) Create(ctx context.Context, b *domain.Budget) (*domain.Budget, error) {
	query := `
		INSERT INTO budgets (owner_id, name, category, limit_amount, period_start, period_end)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + budgetColumns

	row := r.pool.QueryRow(ctx, query,
		b.Owner, b.Name, b.Category, b.Limit, b.PeriodStart, b.PeriodEnd)
	created, err := scanBudget(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrResourceNameConflict
		}
		return nil, err
	}
	return created, nil
}

func (r *BudgetRepository) GetByID(ctx context.Context, id string) (*domain.Budget, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE id = $1`, id)
	return scanBudget(row)
}

func (r *BudgetRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Budget, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE owner_id = $1 ORDER BY period_start DESC, id DESC`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	budgets := []*domain.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}
	return budgets, nil
}

func (r *BudgetRepository) Update(ctx context.Context, b *domain.Budget) (*domain.Budget, error) {
	query := `
		UPDATE budgets
		SET name = $3, category = $4, limit_amount = $5, period_start = $6, period_end = $7,
		    updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + budgetColumns

	row := r.pool.QueryRow(ctx, query,
		b.ID, b.Owner, b.Name, b.Category, b.Limit, b.PeriodStart, b.PeriodEnd)
	updated, err := scanBudget(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrResourceNameConflict
		}
		return nil, err
	}
	return updated, nil
}

func (r *BudgetRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

func scanBudget(row rowScanner) (*domain.Budget, error) {
	var b domain.Budget
	err := row.Scan(&b.ID, &b.Owner, &b.Name, &b.Category, &b.Limit,
		&b.PeriodStart, &b.PeriodEnd, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("scan budget: %w", err)
	}
	return &b, nil
}
