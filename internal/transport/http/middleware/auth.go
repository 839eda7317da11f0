package middleware

import (
	"net/http"
	"strings"

	"github.com/ErlanBelekov/finance-tracker/internal/identity"
	"github.com/ErlanBelekov/finance-tracker/internal/token"
	"github.com/gin-gonic/gin"
)

const (
	codeUnauthorized = "UNAUTHORIZED"
	errUnauthorized  = "Unauthorized"

	codeServerError   = "SERVER_ERROR"
	errInternalServer = "Internal server error"
)

type accessTokenParser interface {
	ParseAccess(raw string) (*token.Claims, error)
}

// Auth validates a Bearer access token and attaches the caller to the request
// context. The user id is also set as "userID" in the gin context for the
// access log.
func Auth(tokens accessTokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c)
			return
		}

		rawToken := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		claims, err := tokens.ParseAccess(rawToken)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		caller := identity.New(claims.Subject)
		c.Request = c.Request.WithContext(identity.WithCaller(c.Request.Context(), caller))
		c.Set("userID", caller.UserID())
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": codeUnauthorized, "error": errUnauthorized})
}
