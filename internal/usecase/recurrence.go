package usecase

import (
	"strings"
	"time"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
	"github.com/robfig/cron/v3"
)

// ValidateRecurrence accepts nil (one-off) or a standard five-field cron expression.
func ValidateRecurrence(expr *string) error {
	if expr == nil {
		return nil
	}
	if _, err := cron.ParseStandard(strings.TrimSpace(*expr)); err != nil {
		return domain.ErrInvalidRecurrence
	}
	return nil
}

// NextOccurrence returns the first occurrence strictly after from, or nil
// for one-off entries and unparsable expressions.
func NextOccurrence(expr *string, from time.Time) *time.Time {
	if expr == nil {
		return nil
	}
	sched, err := cron.ParseStandard(strings.TrimSpace(*expr))
	if err != nil {
		return nil
	}
	next := sched.Next(from)
	if next.IsZero() {
		return nil
	}
	return &next
}
