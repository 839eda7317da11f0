package middleware_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
	"github.com/ErlanBelekov/finance-tracker/internal/identity"
	"github.com/ErlanBelekov/finance-tracker/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

type fakeUserFinder struct {
	findByID func(ctx context.Context, id string) (*domain.User, error)
}

func (f *fakeUserFinder) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return f.findByID(ctx, id)
}

func newEnsureUserEngine(finder *fakeUserFinder, callerID string) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := gin.New()
	r.GET("/expenses",
		func(c *gin.Context) {
			if callerID != "" {
				ctx := identity.WithCaller(c.Request.Context(), identity.New(callerID))
				c.Request = c.Request.WithContext(ctx)
			}
			c.Next()
		},
		middleware.EnsureUser(finder, logger),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return r
}

func TestEnsureUser(t *testing.T) {
	tests := []struct {
		name     string
		callerID string
		user     *domain.User
		err      error
		want     int
	}{
		{"verified user passes", "u1", &domain.User{ID: "u1", IsVerified: true}, nil, http.StatusOK},
		{"unverified user", "u1", &domain.User{ID: "u1"}, nil, http.StatusUnauthorized},
		{"deleted user", "u1", nil, domain.ErrUserNotFound, http.StatusUnauthorized},
		{"no caller", "", nil, nil, http.StatusUnauthorized},
		{"lookup failure", "u1", nil, errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finder := &fakeUserFinder{
				findByID: func(_ context.Context, id string) (*domain.User, error) {
					if id != tt.callerID {
						t.Errorf("FindByID(%q), want %q", id, tt.callerID)
					}
					return tt.user, tt.err
				},
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/expenses", nil)
			newEnsureUserEngine(finder, tt.callerID).ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
