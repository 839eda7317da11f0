package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/finance-tracker/config"
	"github.com/ErlanBelekov/finance-tracker/internal/email"
	"github.com/ErlanBelekov/finance-tracker/internal/health"
	"github.com/ErlanBelekov/finance-tracker/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/finance-tracker/internal/infrastructure/redis"
	ctxlog "github.com/ErlanBelekov/finance-tracker/internal/log"
	"github.com/ErlanBelekov/finance-tracker/internal/metrics"
	"github.com/ErlanBelekov/finance-tracker/internal/token"
	httptransport "github.com/ErlanBelekov/finance-tracker/internal/transport/http"
	"github.com/ErlanBelekov/finance-tracker/internal/transport/http/handler"
	"github.com/ErlanBelekov/finance-tracker/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := ctxlog.New(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			stop()
			pool.Close()
			log.Fatalf("migrate: %v", err)
		}
		logger.Info("migrations applied")
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		stop()
		pool.Close()
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()

	tokens := token.NewIssuer([]byte(cfg.JWTSecret), cfg.JWTTTL, cfg.ResetTokenTTL)

	// Accounts
	userRepo := postgres.NewUserRepository(pool)
	sender := email.NewSender(email.Options{
		Provider:     cfg.EmailProvider,
		From:         cfg.EmailFrom,
		ResendAPIKey: cfg.ResendAPIKey,
		SMTPHost:     cfg.SMTPHost,
		SMTPPort:     cfg.SMTPPort,
		SMTPUsername: cfg.SMTPUsername,
		SMTPPassword: cfg.SMTPPassword,
	}, logger)
	otpIssuer := usecase.NewOTPIssuer(redis.NewOTPStore(redisClient), sender, cfg.OTPTTL)
	authUsecase := usecase.NewAuthUsecase(userRepo, otpIssuer, tokens, cfg.BcryptCost)

	// Resources
	handlers := httptransport.Handlers{
		Auth: handler.NewAuthHandler(authUsecase, logger),
		Expenses: handler.NewExpenseHandler(
			usecase.NewExpenseUsecase(postgres.NewExpenseRepository(pool)), logger),
		Incomes: handler.NewIncomeHandler(
			usecase.NewIncomeUsecase(postgres.NewIncomeRepository(pool)), logger),
		Budgets: handler.NewBudgetHandler(
			usecase.NewBudgetUsecase(postgres.NewBudgetRepository(pool)), logger),
		Savings: handler.NewSavingsHandler(
			usecase.NewSavingsUsecase(postgres.NewSavingsRepository(pool)), logger),
	}

	metrics.Register()
	checker := health.NewChecker(map[string]health.Pinger{
		"postgres": pool,
		"redis":    redis.Pinger{Client: redisClient},
	}, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httptransport.NewRouter(logger, handlers, userRepo, tokens),
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port, "email_provider", cfg.EmailProvider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}
