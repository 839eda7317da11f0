package token

import (
	"errors"
	"testing"
	"time"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

const testKey = "token-test-secret-at-least-32-chars!"

var testUser = &domain.User{ID: "user-1", Email: "alice@example.com"}

func TestIssueAccess_RoundTrip(t *testing.T) {
	t.Parallel()

	iss := NewIssuer([]byte(testKey), time.Hour, time.Minute)
	raw, err := iss.IssueAccess(testUser)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	claims, err := iss.ParseAccess(raw)
	if err != nil {
		t.Fatalf("ParseAccess: %v", err)
	}
	if claims.Subject != testUser.ID {
		t.Errorf("sub = %q, want %q", claims.Subject, testUser.ID)
	}
	if claims.Email != testUser.Email {
		t.Errorf("email = %q, want %q", claims.Email, testUser.Email)
	}
}

func TestParseAccess_Expired(t *testing.T) {
	t.Parallel()

	iss := NewIssuer([]byte(testKey), time.Hour, time.Minute)
	iss.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	raw, err := iss.IssueAccess(testUser)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	iss.now = time.Now
	if _, err := iss.ParseAccess(raw); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("want ErrTokenInvalid, got %v", err)
	}
}

func TestParseAccess_WrongKey(t *testing.T) {
	t.Parallel()

	raw, err := NewIssuer([]byte("another-secret-that-is-32-chars!!"), time.Hour, time.Minute).IssueAccess(testUser)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	if _, err := NewIssuer([]byte(testKey), time.Hour, time.Minute).ParseAccess(raw); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("want ErrTokenInvalid, got %v", err)
	}
}

func TestParseAccess_RejectsResetToken(t *testing.T) {
	t.Parallel()

	iss := NewIssuer([]byte(testKey), time.Hour, time.Minute)
	raw, err := iss.IssueReset(testUser.ID)
	if err != nil {
		t.Fatalf("IssueReset: %v", err)
	}

	if _, err := iss.ParseAccess(raw); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("reset token accepted as access token: %v", err)
	}
	claims, err := iss.ParseReset(raw)
	if err != nil {
		t.Fatalf("ParseReset: %v", err)
	}
	if claims.Subject != testUser.ID {
		t.Errorf("sub = %q, want %q", claims.Subject, testUser.ID)
	}
}

func TestParseAccess_RejectsNonHMAC(t *testing.T) {
	t.Parallel()

	tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Typ: TypeAccess,
	})
	raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	if _, err := NewIssuer([]byte(testKey), time.Hour, time.Minute).ParseAccess(raw); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("want ErrTokenInvalid, got %v", err)
	}
}

func TestParseAccess_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := NewIssuer([]byte(testKey), time.Hour, time.Minute).ParseAccess("not.a.jwt"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("want ErrTokenInvalid, got %v", err)
	}
}
