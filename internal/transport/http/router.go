package httptransport

import (
	"log/slog"

	"github.com/ErlanBelekov/finance-tracker/internal/domain"
	"github.com/ErlanBelekov/finance-tracker/internal/repository"
	"github.com/ErlanBelekov/finance-tracker/internal/token"
	"github.com/ErlanBelekov/finance-tracker/internal/transport/http/handler"
	"github.com/ErlanBelekov/finance-tracker/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Expenses *handler.ResourceHandler[*domain.Expense]
	Incomes  *handler.ResourceHandler[*domain.Income]
	Budgets  *handler.ResourceHandler[*domain.Budget]
	Savings  *handler.ResourceHandler[*domain.Savings]
}

func NewRouter(logger *slog.Logger, h Handlers, users repository.UserRepository, tokens *token.Issuer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.NewWithConfig(logger, sloggin.Config{
		WithRequestID: false,
		WithUserAgent: true,
	}))
	r.Use(middleware.Metrics())

	// Account lifecycle, unauthenticated
	r.POST("/register", h.Auth.Register)
	r.POST("/verify-otp", h.Auth.VerifyOTP)
	r.POST("/resend-otp", h.Auth.ResendOTP)
	r.POST("/login", h.Auth.Login)
	r.POST("/verify-login-otp", h.Auth.VerifyLoginOTP)

	reset := r.Group("/password-reset")
	reset.POST("/request", h.Auth.RequestPasswordReset)
	reset.POST("/verify", h.Auth.VerifyPasswordReset)
	reset.POST("/reset", h.Auth.ResetPassword)

	authMW := middleware.Auth(tokens)
	ensureUser := middleware.EnsureUser(users, logger)

	r.GET("/current-user", authMW, h.Auth.CurrentUser)

	registerResource(r.Group("/expenses", authMW, ensureUser), h.Expenses)
	registerResource(r.Group("/incomes", authMW, ensureUser), h.Incomes)
	registerResource(r.Group("/budgets", authMW, ensureUser), h.Budgets)
	registerResource(r.Group("/savings", authMW, ensureUser), h.Savings)

	return r
}

func registerResource[T domain.Ownable](g *gin.RouterGroup, h *handler.ResourceHandler[T]) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
