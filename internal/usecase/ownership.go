package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
	"github.com/ErlanBelekov/finance-tracker/internal/metrics"
	"github.com/ErlanBelekov/finance-tracker/internal/repository"
	"github.com/google/uuid"
)

// AssertOwner loads the resource with the given id and returns it only when
// callerID owns it. A malformed id fails before any lookup.
func AssertOwner[T domain.Owned](
	ctx context.Context,
	finder repository.ResourceFinder[T],
	kind domain.Kind,
	action domain.Action,
	id, callerID string,
) (T, error) {
	var zero T

	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return zero, domain.ErrInvalidID
	}

	resource, err := finder.GetByID(ctx, parsed.String())
	if err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) {
			return zero, err
		}
		return zero, fmt.Errorf("get %s: %w", kind, err)
	}

	if !sameUser(resource.OwnerID(), callerID) {
		metrics.OwnershipDeniedTotal.WithLabelValues(string(kind), string(action)).Inc()
		return zero, &domain.OwnershipError{Kind: kind, Action: action}
	}
	return resource, nil
}

// sameUser compares user ids as strings after trimming. UUIDs are compared
// in canonical form so case differences do not matter.
func sameUser(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	ua, errA := uuid.Parse(a)
	ub, errB := uuid.Parse(b)
	if errA == nil && errB == nil {
		return ua == ub
	}
	return a == b
}
