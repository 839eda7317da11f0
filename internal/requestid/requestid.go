package requestid

import (
	"context"

	"github.com/google/uuid"
)

const maxLen = 64

type ctxKey struct{}

// New generates a random UUID v4 request ID.
func New() string {
	return uuid.NewString()
}

// FromHeader keeps a client-supplied X-Request-ID only when it is short and
// made of [A-Za-z0-9-_.]; anything else is replaced so it cannot smuggle
// arbitrary bytes into logs.
func FromHeader(h string) string {
	if h == "" || len(h) > maxLen {
		return New()
	}
	for _, r := range h {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '.':
		default:
			return New()
		}
	}
	return h
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext extracts the request ID from ctx. Returns "" if absent.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
