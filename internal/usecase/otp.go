package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
	"github.com/ErlanBelekov/finance-tracker/internal/email"
	"github.com/ErlanBelekov/finance-tracker/internal/metrics"
	"github.com/ErlanBelekov/finance-tracker/internal/repository"
)

const (
	otpDigits     = 6
	defaultOTPTTL = 10 * time.Minute
)

var otpUpperBound = big.NewInt(1_000_000)

// OTPIssuer generates one-time codes, keeps their hash in the OTP store and
// mails the plain code to the user.
type OTPIssuer struct {
	store    repository.OTPStore
	email    email.Sender
	ttl      time.Duration
	now      func() time.Time
	generate func() (string, error)
}

func NewOTPIssuer(store repository.OTPStore, sender email.Sender, ttl time.Duration) *OTPIssuer {
	if ttl <= 0 {
		ttl = defaultOTPTTL
	}
	return &OTPIssuer{
		store:    store,
		email:    sender,
		ttl:      ttl,
		now:      time.Now,
		generate: generateOTP,
	}
}

// Issue replaces the user's current code with a fresh one for purpose and
// emails it. Storing and sending are separate steps: when sending fails the
// stored code is simply never used, and calling Issue again overwrites it.
func (i *OTPIssuer) Issue(ctx context.Context, user *domain.User, purpose domain.OTPPurpose) error {
	code, err := i.generate()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	otp := &domain.OTP{
		UserID:    user.ID,
		Purpose:   purpose,
		CodeHash:  hashOTP(code),
		ExpiresAt: i.now().Add(i.ttl),
	}
	if err := i.store.Put(ctx, otp); err != nil {
		metrics.OTPIssuedTotal.WithLabelValues(string(purpose), "store_failed").Inc()
		return fmt.Errorf("store otp: %w", err)
	}

	subject, body := otpEmail(user.Fullname, code, purpose, i.ttl)
	if err := i.email.Send(ctx, user.Email, subject, body); err != nil {
		metrics.OTPIssuedTotal.WithLabelValues(string(purpose), "send_failed").Inc()
		return fmt.Errorf("send otp email: %w", err)
	}

	metrics.OTPIssuedTotal.WithLabelValues(string(purpose), "sent").Inc()
	return nil
}

// Verify checks code against the user's active code and consumes it on
// success. Any mismatch, including purpose and expiry, is domain.ErrInvalidOTP.
func (i *OTPIssuer) Verify(ctx context.Context, userID string, purpose domain.OTPPurpose, code string) error {
	otp, err := i.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidOTP) {
			i.countVerification(purpose, "missing")
			return domain.ErrInvalidOTP
		}
		return fmt.Errorf("load otp: %w", err)
	}

	switch {
	case otp.Purpose != purpose:
		i.countVerification(purpose, "wrong_purpose")
		return domain.ErrInvalidOTP
	case otp.Expired(i.now()):
		i.countVerification(purpose, "expired")
		return domain.ErrInvalidOTP
	case subtle.ConstantTimeCompare([]byte(otp.CodeHash), []byte(hashOTP(code))) != 1:
		i.countVerification(purpose, "mismatch")
		return domain.ErrInvalidOTP
	}

	// Del reports whether we removed the key, so two concurrent submissions
	// of the same code cannot both succeed.
	if err := i.store.Consume(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrInvalidOTP) {
			i.countVerification(purpose, "missing")
			return domain.ErrInvalidOTP
		}
		return fmt.Errorf("consume otp: %w", err)
	}

	i.countVerification(purpose, "ok")
	return nil
}

func (i *OTPIssuer) countVerification(purpose domain.OTPPurpose, outcome string) {
	metrics.OTPVerificationsTotal.WithLabelValues(string(purpose), outcome).Inc()
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpUpperBound)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}

func hashOTP(code string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(code)))
}

func otpEmail(name, code string, purpose domain.OTPPurpose, ttl time.Duration) (subject, body string) {
	minutes := int(ttl.Minutes())
	switch purpose {
	case domain.OTPPurposeLogin:
		subject = "Your login code"
	case domain.OTPPurposeReset:
		subject = "Reset your password"
	default:
		subject = "Verify your email"
	}
	body = fmt.Sprintf(
		`<p>Hi %s,</p><p>Your code is <strong>%s</strong>. It expires in %d minutes.</p>`+
			`<p>If you did not request it, you can ignore this email.</p>`,
		name, code, minutes,
	)
	return subject, body
}
