package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnverifiedAccount  = errors.New("account is not verified")
	ErrAlreadyVerified    = errors.New("account is already verified")
	ErrInvalidOTP         = errors.New("otp is invalid or expired")
	ErrInvalidResetToken  = errors.New("reset token is invalid or expired")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
	ErrUnauthorized       = errors.New("unauthorized")
)

type ProfilePicture struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type User struct {
	ID             string
	Fullname       string
	Email          string
	PasswordHash   string
	IsVerified     bool
	ProfilePicture *ProfilePicture // nil when the user never uploaded one
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PublicUser is the projection that is safe to return to clients.
type PublicUser struct {
	ID             string          `json:"id"`
	Fullname       string          `json:"fullname"`
	Email          string          `json:"email"`
	ProfilePicture *ProfilePicture `json:"profilePicture"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID,
		Fullname:       u.Fullname,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
	}
}

type OTPPurpose string

const (
	OTPPurposeSignup OTPPurpose = "signup"
	OTPPurposeLogin  OTPPurpose = "login"
	OTPPurposeReset  OTPPurpose = "reset"
)

// OTP is the single active one-time code of a user. Issuing a code for any
// purpose replaces the previous one.
type OTP struct {
	UserID    string     `json:"user_id"`
	Purpose   OTPPurpose `json:"purpose"`
	CodeHash  string     `json:"code_hash"`
	ExpiresAt time.Time  `json:"expires_at"`
}

func (o *OTP) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}
