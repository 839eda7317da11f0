package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidID            = errors.New("invalid resource id")
	ErrResourceNotFound     = errors.New("resource not found")
	ErrForbidden            = errors.New("forbidden")
	ErrResourceNameConflict = errors.New("resource with this name already exists")
	ErrInvalidRecurrence    = errors.New("invalid recurrence expression")
	ErrInvalidPeriod        = errors.New("period end must not be before period start")
)

type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
	KindBudget  Kind = "budget"
	KindSavings Kind = "savings"
)

type Action string

const (
	ActionView   Action = "view"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// OwnershipError is returned when the caller does not own the resource.
// It matches ErrForbidden with errors.Is.
type OwnershipError struct {
	Kind   Kind
	Action Action
}

func (e *OwnershipError) Error() string {
	return fmt.Sprintf("not authorized to %s this %s", e.Action, e.Kind)
}

func (e *OwnershipError) Is(target error) bool {
	return target == ErrForbidden
}

// Owned is implemented by every user-owned resource.
type Owned interface {
	ResourceID() string
	OwnerID() string
}

// Ownable resources let the usecase layer stamp the id and owner. Request
// payloads never set either field.
type Ownable interface {
	Owned
	Stamp(id, owner string)
}

type Expense struct {
	ID         string
	Owner      string
	Title      string
	Amount     float64
	Category   string
	Date       time.Time
	Note       string
	Recurrence *string // standard cron expression, nil for one-off expenses
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (e *Expense) ResourceID() string { return e.ID }
func (e *Expense) OwnerID() string    { return e.Owner }
func (e *Expense) Stamp(id, owner string) { e.ID, e.Owner = id, owner }

type Income struct {
	ID         string
	Owner      string
	Source     string
	Amount     float64
	Date       time.Time
	Note       string
	Recurrence *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (i *Income) ResourceID() string { return i.ID }
func (i *Income) OwnerID() string    { return i.Owner }
func (i *Income) Stamp(id, owner string) { i.ID, i.Owner = id, owner }

type Budget struct {
	ID          string
	Owner       string
	Name        string
	Category    string
	Limit       float64
	PeriodStart time.Time
	PeriodEnd   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (b *Budget) ResourceID() string { return b.ID }
func (b *Budget) OwnerID() string    { return b.Owner }
func (b *Budget) Stamp(id, owner string) { b.ID, b.Owner = id, owner }

type Savings struct {
	ID            string
	Owner         string
	Name          string
	TargetAmount  float64
	CurrentAmount float64
	Deadline      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (s *Savings) ResourceID() string { return s.ID }
func (s *Savings) OwnerID() string    { return s.Owner }
func (s *Savings) Stamp(id, owner string) { s.ID, s.Owner = id, owner }
