package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
	"github.com/ErlanBelekov/finance-tracker/internal/identity"
	"github.com/ErlanBelekov/finance-tracker/internal/repository"
)

// ResourceUsecase implements CRUD for one kind of owned resource. Every
// single-resource operation goes through AssertOwner.
type ResourceUsecase[T domain.Ownable] struct {
	kind     domain.Kind
	repo     repository.ResourceRepository[T]
	validate func(T) error
}

func NewResourceUsecase[T domain.Ownable](kind domain.Kind, repo repository.ResourceRepository[T], validate func(T) error) *ResourceUsecase[T] {
	if validate == nil {
		validate = func(T) error { return nil }
	}
	return &ResourceUsecase[T]{kind: kind, repo: repo, validate: validate}
}

func (u *ResourceUsecase[T]) Kind() domain.Kind { return u.kind }

// Create stores r owned by caller. Any id or owner set on r is discarded.
func (u *ResourceUsecase[T]) Create(ctx context.Context, caller identity.Caller, r T) (T, error) {
	var zero T
	r.Stamp("", caller.UserID())

	if err := u.validate(r); err != nil {
		return zero, err
	}

	created, err := u.repo.Create(ctx, r)
	if err != nil {
		if errors.Is(err, domain.ErrResourceNameConflict) {
			return zero, err
		}
		return zero, fmt.Errorf("create %s: %w", u.kind, err)
	}
	return created, nil
}

func (u *ResourceUsecase[T]) List(ctx context.Context, caller identity.Caller) ([]T, error) {
	items, err := u.repo.ListByOwner(ctx, caller.UserID())
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", u.kind, err)
	}
	return items, nil
}

func (u *ResourceUsecase[T]) Get(ctx context.Context, caller identity.Caller, id string) (T, error) {
	return AssertOwner[T](ctx, u.repo, u.kind, domain.ActionView, id, caller.UserID())
}

// Update replaces the mutable fields of the resource with those of patch.
// The id and owner always come from the stored row.
func (u *ResourceUsecase[T]) Update(ctx context.Context, caller identity.Caller, id string, patch T) (T, error) {
	var zero T

	existing, err := AssertOwner[T](ctx, u.repo, u.kind, domain.ActionUpdate, id, caller.UserID())
	if err != nil {
		return zero, err
	}

	patch.Stamp(existing.ResourceID(), existing.OwnerID())
	if err := u.validate(patch); err != nil {
		return zero, err
	}

	updated, err := u.repo.Update(ctx, patch)
	if err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) || errors.Is(err, domain.ErrResourceNameConflict) {
			return zero, err
		}
		return zero, fmt.Errorf("update %s: %w", u.kind, err)
	}
	return updated, nil
}

// Delete removes the resource and returns its id.
func (u *ResourceUsecase[T]) Delete(ctx context.Context, caller identity.Caller, id string) (string, error) {
	existing, err := AssertOwner[T](ctx, u.repo, u.kind, domain.ActionDelete, id, caller.UserID())
	if err != nil {
		return "", err
	}

	if err := u.repo.Delete(ctx, existing.ResourceID()); err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) {
			return "", err
		}
		return "", fmt.Errorf("delete %s: %w", u.kind, err)
	}
	return existing.ResourceID(), nil
}

func NewExpenseUsecase(repo repository.ExpenseRepository) *ResourceUsecase[*domain.Expense] {
	return NewResourceUsecase(domain.KindExpense, repo, func(e *domain.Expense) error {
		return ValidateRecurrence(e.Recurrence)
	})
}

func NewIncomeUsecase(repo repository.IncomeRepository) *ResourceUsecase[*domain.Income] {
	return NewResourceUsecase(domain.KindIncome, repo, func(i *domain.Income) error {
		return ValidateRecurrence(i.Recurrence)
	})
}

func NewBudgetUsecase(repo repository.BudgetRepository) *ResourceUsecase[*domain.Budget] {
	return NewResourceUsecase(domain.KindBudget, repo, func(b *domain.Budget) error {
		if b.PeriodEnd.Before(b.PeriodStart) {
			return domain.ErrInvalidPeriod
		}
		return nil
	})
}

func NewSavingsUsecase(repo repository.SavingsRepository) *ResourceUsecase[*domain.Savings] {
	return NewResourceUsecase[*domain.Savings](domain.KindSavings, repo, nil)
}
