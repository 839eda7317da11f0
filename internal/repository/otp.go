package repository

import (
	"context"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
)

// OTPStore keeps at most one active code per user.
type OTPStore interface {
	// Put replaces whatever code the user currently holds.
	Put(ctx context.Context, otp *domain.OTP) error
	// Get returns domain.ErrInvalidOTP when the user holds no code.
	Get(ctx context.Context, userID string) (*domain.OTP, error)
	// Consume deletes the code. It returns domain.ErrInvalidOTP when the code
	// was already gone, so a code can only be consumed once.
	Consume(ctx context.Context, userID string) error
}
