package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
	"github.com/ErlanBelekov/finance-tracker/internal/identity"
	"github.com/gin-gonic/gin"
)

type userFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// EnsureUser runs after Auth on resource routes. It rejects tokens whose user
// no longer exists or is not verified, so resource rows always reference a
// live account.
func EnsureUser(users userFinder, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		caller, ok := identity.FromContext(ctx)
		if !ok {
			abortUnauthorized(c)
			return
		}

		user, err := users.FindByID(ctx, caller.UserID())
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				abortUnauthorized(c)
				return
			}
			logger.ErrorContext(ctx, "ensure user lookup", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				gin.H{"code": codeServerError, "error": errInternalServer})
			return
		}
		if !user.IsVerified {
			abortUnauthorized(c)
			return
		}
		c.Next()
	}
}
