package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
	"github.com/ErlanBelekov/finance-tracker/internal/metrics"
	"github.com/ErlanBelekov/finance-tracker/internal/repository"
	"github.com/ErlanBelekov/finance-tracker/internal/token"
	"golang.org/x/crypto/bcrypt"
)

type tokenIssuer interface {
	IssueAccess(user *domain.User) (string, error)
	IssueReset(userID string) (string, error)
	ParseReset(raw string) (*token.Claims, error)
}

type AuthUsecase struct {
	users      repository.UserRepository
	otp        *OTPIssuer
	tokens     tokenIssuer
	bcryptCost int
}

func NewAuthUsecase(users repository.UserRepository, otp *OTPIssuer, tokens tokenIssuer, bcryptCost int) *AuthUsecase {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthUsecase{
		users:      users,
		otp:        otp,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

type RegisterInput struct {
	Fullname string
	Email    string
	Password string
}

type LoginResult struct {
	Token string
	User  domain.PublicUser
}

// Register creates an unverified account and mails the signup code.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	emailAddr := strings.TrimSpace(input.Email)

	_, err := u.users.FindByEmail(ctx, emailAddr)
	switch {
	case err == nil:
		return nil, domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), u.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// The insert can still hit the unique index if two registrations race;
	// the repository reports that as ErrUserExists as well.
	user, err := u.users.Create(ctx, repository.CreateUserInput{
		Fullname:     strings.TrimSpace(input.Fullname),
		Email:        emailAddr,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := u.otp.Issue(ctx, user, domain.OTPPurposeSignup); err != nil {
		return nil, err
	}
	return user, nil
}

// VerifySignupOTP marks the account verified. It does not log the user in.
func (u *AuthUsecase) VerifySignupOTP(ctx context.Context, emailAddr, code string) (*domain.User, error) {
	user, err := u.findByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}

	if err := u.otp.Verify(ctx, user.ID, domain.OTPPurposeSignup, code); err != nil {
		return nil, err
	}

	if err := u.users.MarkVerified(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("mark verified: %w", err)
	}
	user.IsVerified = true
	return user, nil
}

// ResendSignupOTP replaces the pending signup code with a fresh one.
func (u *AuthUsecase) ResendSignupOTP(ctx context.Context, emailAddr string) (*domain.User, error) {
	user, err := u.findByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if user.IsVerified {
		return nil, domain.ErrAlreadyVerified
	}
	if err := u.otp.Issue(ctx, user, domain.OTPPurposeSignup); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the password and mails a login code. The account status is
// checked first, so an unverified account is reported as such regardless of
// the password.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (*domain.User, error) {
	user, err := u.findByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("unknown_user").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsVerified {
		metrics.LoginAttemptsTotal.WithLabelValues("unverified").Inc()
		return nil, domain.ErrUnverifiedAccount
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("bad_password").Inc()
		return nil, domain.ErrInvalidCredentials
	}
	metrics.LoginAttemptsTotal.WithLabelValues("ok").Inc()

	if err := u.otp.Issue(ctx, user, domain.OTPPurposeLogin); err != nil {
		return nil, err
	}
	return user, nil
}

// VerifyLoginOTP completes login and returns the bearer token.
func (u *AuthUsecase) VerifyLoginOTP(ctx context.Context, emailAddr, code string) (*LoginResult, error) {
	user, err := u.findByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}

	if err := u.otp.Verify(ctx, user.ID, domain.OTPPurposeLogin, code); err != nil {
		return nil, err
	}

	signed, err := u.tokens.IssueAccess(user)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	metrics.TokensIssuedTotal.WithLabelValues(token.TypeAccess).Inc()

	return &LoginResult{Token: signed, User: user.Public()}, nil
}

func (u *AuthUsecase) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	user, err := u.findByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	return u.otp.Issue(ctx, user, domain.OTPPurposeReset)
}

// VerifyPasswordResetOTP exchanges a reset code for a short-lived reset token.
func (u *AuthUsecase) VerifyPasswordResetOTP(ctx context.Context, emailAddr, code string) (string, error) {
	user, err := u.findByEmail(ctx, emailAddr)
	if err != nil {
		return "", err
	}

	if err := u.otp.Verify(ctx, user.ID, domain.OTPPurposeReset, code); err != nil {
		return "", err
	}

	signed, err := u.tokens.IssueReset(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue reset token: %w", err)
	}
	metrics.TokensIssuedTotal.WithLabelValues(token.TypePasswordReset).Inc()
	return signed, nil
}

type ResetPasswordInput struct {
	Email       string
	NewPassword string
	ResetToken  string
}

// ResetPassword overwrites the password of the user the reset token was minted for.
func (u *AuthUsecase) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	user, err := u.findByEmail(ctx, input.Email)
	if err != nil {
		return err
	}

	claims, err := u.tokens.ParseReset(input.ResetToken)
	if err != nil || claims.Subject != user.ID {
		return domain.ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), u.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := u.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (u *AuthUsecase) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (u *AuthUsecase) findByEmail(ctx context.Context, emailAddr string) (*domain.User, error) {
	user, err := u.users.FindByEmail(ctx, strings.TrimSpace(emailAddr))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
