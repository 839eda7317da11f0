package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

const (
	TypeAccess        = "access"
	TypePasswordReset = "password_reset"
)

// Claims carries the user id in the standard "sub" claim. Typ keeps access
// and password-reset tokens from being used in place of each other.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Typ   string `json:"typ"`
}

type Issuer struct {
	key      []byte
	ttl      time.Duration
	resetTTL time.Duration
	now      func() time.Time
}

func NewIssuer(key []byte, ttl, resetTTL time.Duration) *Issuer {
	return &Issuer{key: key, ttl: ttl, resetTTL: resetTTL, now: time.Now}
}

// IssueAccess mints the bearer token handed out at the end of the login flow.
func (i *Issuer) IssueAccess(user *domain.User) (string, error) {
	return i.sign(user.ID, user.Email, TypeAccess, i.ttl)
}

// IssueReset mints the proof that a password-reset code was verified.
func (i *Issuer) IssueReset(userID string) (string, error) {
	return i.sign(userID, "", TypePasswordReset, i.resetTTL)
}

func (i *Issuer) ParseAccess(raw string) (*Claims, error) {
	return i.parse(raw, TypeAccess)
}

func (i *Issuer) ParseReset(raw string) (*Claims, error) {
	return i.parse(raw, TypePasswordReset)
}

func (i *Issuer) sign(subject, email, typ string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
		Typ:   typ,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

func (i *Issuer) parse(raw, typ string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.key, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(i.now))
	if err != nil || !tok.Valid {
		return nil, domain.ErrTokenInvalid
	}
	if claims.Typ != typ || claims.Subject == "" {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
