package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
	"github.com/ErlanBelekov/finance-tracker/internal/identity"
	"github.com/ErlanBelekov/finance-tracker/internal/token"
	"github.com/ErlanBelekov/finance-tracker/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testKey = "middleware-test-secret-32-chars!!"

func init() {
	gin.SetMode(gin.TestMode)
}

var testIssuer = token.NewIssuer([]byte(testKey), time.Hour, 15*time.Minute)

// newEngine builds a minimal gin engine with the Auth middleware protecting GET /protected.
// The handler writes the caller id from the request context so we can assert it was set.
func newEngine() *gin.Engine {
	r := gin.New()
	r.GET("/protected", middleware.Auth(testIssuer), func(c *gin.Context) {
		c.String(http.StatusOK, "%s|%s", identity.UserID(c.Request.Context()), c.GetString("userID"))
	})
	return r
}

func makeJWT(t *testing.T, key []byte, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString(key)
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}
	return s
}

func doProtected(t *testing.T, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	newEngine().ServeHTTP(w, req)
	return w
}

func TestAuth_MissingHeader_Returns401(t *testing.T) {
	w := doProtected(t, "")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"code":"UNAUTHORIZED"`) {
		t.Errorf("body = %s, want UNAUTHORIZED code", w.Body.String())
	}
}

func TestAuth_NonBearerScheme_Returns401(t *testing.T) {
	w := doProtected(t, "Basic dXNlcjpwYXNz")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_InvalidToken_Returns401(t *testing.T) {
	w := doProtected(t, "Bearer not.a.jwt")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_ExpiredToken_Returns401(t *testing.T) {
	tok := makeJWT(t, []byte(testKey), jwt.MapClaims{
		"sub": "user-1",
		"typ": token.TypeAccess,
		"exp": time.Now().Add(-time.Hour).Unix(),
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
	})

	w := doProtected(t, "Bearer "+tok)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_WrongSigningKey_Returns401(t *testing.T) {
	tok := makeJWT(t, []byte("different-key-that-is-32-chars!!"), jwt.MapClaims{
		"sub": "user-1",
		"typ": token.TypeAccess,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := doProtected(t, "Bearer "+tok)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_ResetToken_Returns401(t *testing.T) {
	tok, err := testIssuer.IssueReset("user-1")
	if err != nil {
		t.Fatalf("issue reset: %v", err)
	}

	w := doProtected(t, "Bearer "+tok)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_ValidToken_PassesAndSetsCaller(t *testing.T) {
	const userID = "user-abc"
	tok, err := testIssuer.IssueAccess(&domain.User{ID: userID, Email: "a@example.com"})
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}

	w := doProtected(t, "Bearer "+tok)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if got, want := w.Body.String(), userID+"|"+userID; got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}
