package repository

import (
	"context"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
)

// ResourceFinder is the read side the ownership guard needs.
type ResourceFinder[T domain.Owned] interface {
	// GetByID returns domain.ErrResourceNotFound when no row has this id.
	// It does not filter by owner; ownership is checked by the caller.
	GetByID(ctx context.Context, id string) (T, error)
}

type ResourceRepository[T domain.Owned] interface {
	ResourceFinder[T]
	Create(ctx context.Context, r T) (T, error)
	// ListByOwner only returns rows whose owner equals ownerID.
	ListByOwner(ctx context.Context, ownerID string) ([]T, error)
	Update(ctx context.Context, r T) (T, error)
	Delete(ctx context.Context, id string) error
}

type (
	ExpenseRepository = ResourceRepository[*domain.Expense]
	IncomeRepository  = ResourceRepository[*domain.Income]
	BudgetRepository  = ResourceRepository[*domain.Budget]
	SavingsRepository = ResourceRepository[*domain.Savings]
)
