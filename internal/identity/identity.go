// Package identity carries the authenticated caller through request contexts.
package identity

import (
	"context"
	"strings"
)

// Caller is the authenticated principal a handler acts on behalf of.
type Caller interface {
	UserID() string
}

type user struct {
	id string
}

func (u user) UserID() string { return u.id }

// New returns a Caller for the given user id.
func New(userID string) Caller {
	return user{id: strings.TrimSpace(userID)}
}

type ctxKey struct{}

// WithCaller returns a copy of ctx carrying c.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the caller, or false when the request is unauthenticated.
func FromContext(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(ctxKey{}).(Caller)
	if !ok || c == nil || c.UserID() == "" {
		return nil, false
	}
	return c, true
}

// UserID returns the caller's user id, or "" when absent.
func UserID(ctx context.Context) string {
	c, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return c.UserID()
}
