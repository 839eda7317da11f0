package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const incomeColumns = `id, owner_id, source, amount, date, note, recurrence, created_at, updated_at`

type IncomeRepository struct {
	pool *pgxpool.Pool
}

func NewIncomeRepository(pool *pgxpool.Pool) *IncomeRepository {
	return &IncomeRepository{pool: pool}
}

func (r *IncomeRepository) Create(ctx context.Context, i *domain.Income) (*domain.Income, error) {
	query := `
		INSERT INTO incomes (owner_id, source, amount, date, note, recurrence)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + incomeColumns

	row := r.pool.QueryRow(ctx, query, i.Owner, i.Source, i.Amount, i.Date, i.Note, i.Recurrence)
	return scanIncome(row)
}

func (r *IncomeRepository) GetByID(ctx context.Context, id string) (*domain.Income, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+incomeColumns+` FROM incomes WHERE id = $1`, id)
	return scanIncome(row)
}

func (r *IncomeRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Income, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+incomeColumns+` FROM incomes WHERE owner_id = $1 ORDER BY date DESC, id DESC`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	defer rows.Close()

	incomes := []*domain.Income{}
	for rows.Next() {
		i, err := scanIncome(rows)
		if err != nil {
			return nil, err
		}
		incomes = append(incomes, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate incomes: %w", err)
	}
	return incomes, nil
}

func (r *IncomeRepository) Update(ctx context.Context, i *domain.Income) (*domain.Income, error) {
	query := `
		UPDATE incomes
		SET source = $3, amount = $4, date = $5, note = $6, recurrence = $7, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + incomeColumns

	row := r.pool.QueryRow(ctx, query, i.ID, i.Owner, i.Source, i.Amount, i.Date, i.Note, i.Recurrence)
	return scanIncome(row)
}

func (r *IncomeRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM incomes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

func scanIncome(row rowScanner) (*domain.Income, error) {
	var i domain.Income
	err := row.Scan(&i.ID, &i.Owner, &i.Source, &i.Amount, &i.Date, &i.Note,
		&i.Recurrence, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("scan income: %w", err)
	}
	return &i, nil
}
