package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const savingsColumns = `id, owner_id, name, target_amount, current_amount, deadline, created_at, updated_at`

type SavingsRepository struct {
	pool *pgxpool.Pool
}

func NewSavingsRepository(pool *pgxpool.Pool) *SavingsRepository {
	return &SavingsRepository{pool: pool}
}

func (r *SavingsRepository) Create(ctx context.Context, s *domain.Savings) (*domain.Savings, error) {
	query := `
		INSERT INTO savings (owner_id, name, target_amount, current_amount, deadline)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + savingsColumns

	row := r.pool.QueryRow(ctx, query, s.Owner, s.Name, s.TargetAmount, s.CurrentAmount, s.Deadline)
	created, err := scanSavings(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrResourceNameConflict
		}
		return nil, err
	}
	return created, nil
}

func (r *SavingsRepository) GetByID(ctx context.Context, id string) (*domain.Savings, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+savingsColumns+` FROM savings WHERE id = $1`, id)
	return scanSavings(row)
}

func (r *SavingsRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Savings, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+savingsColumns+` FROM savings WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("list savings: %w", err)
	}
	defer rows.Close()

	goals := []*domain.Savings{}
	for rows.Next() {
		s, err := scanSavings(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate savings: %w", err)
	}
	return goals, nil
}

func (r *SavingsRepository) Update(ctx context.Context, s *domain.Savings) (*domain.Savings, error) {
	query := `
		UPDATE savings
		SET name = $3, target_amount = $4, current_amount = $5, deadline = $6, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + savingsColumns

	row := r.pool.QueryRow(ctx, query,
		s.ID, s.Owner, s.Name, s.TargetAmount, s.CurrentAmount, s.Deadline)
	updated, err := scanSavings(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrResourceNameConflict
		}
		return nil, err
	}
	return updated, nil
}

func (r *SavingsRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM savings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete savings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

func scanSavings(row rowScanner) (*domain.Savings, error) {
	var s domain.Savings
	err := row.Scan(&s.ID, &s.Owner, &s.Name, &s.TargetAmount, &s.CurrentAmount,
		&s.Deadline, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("scan savings: %w", err)
	}
	return &s, nil
}
