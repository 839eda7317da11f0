package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `env:"ENV"       envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT"      envDefault:"8080"  validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"  validate:"oneof=debug info warn error"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`
	AutoMigrate bool   `env:"AUTO_MIGRATE"          envDefault:"false"`
	RedisURL    string `env:"REDIS_URL,required"    validate:"required"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	JWTSecret     string        `env:"JWT_SECRET,required" validate:"required,min=32"`
	JWTTTL        time.Duration `env:"JWT_TTL"             envDefault:"24h" validate:"min=1m"`
	OTPTTL        time.Duration `env:"OTP_TTL"             envDefault:"10m" validate:"min=1m,max=1h"`
	ResetTokenTTL time.Duration `env:"RESET_TOKEN_TTL"     envDefault:"15m" validate:"min=1m,max=1h"`
	BcryptCost    int           `env:"BCRYPT_COST"         envDefault:"10"  validate:"min=4,max=31"`

	// EmailProvider selects the OTP delivery backend. "log" only writes to the logger.
	EmailProvider string `env:"EMAIL_PROVIDER" envDefault:"log" validate:"oneof=log resend smtp"`
	EmailFrom     string `env:"EMAIL_FROM"     validate:"required_unless=EmailProvider log"`
	ResendAPIKey  string `env:"RESEND_API_KEY" validate:"required_if=EmailProvider resend"`
	SMTPHost      string `env:"SMTP_HOST"      validate:"required_if=EmailProvider smtp"`
	SMTPPort      string `env:"SMTP_PORT"      envDefault:"587"`
	SMTPUsername  string `env:"SMTP_USERNAME"`
	SMTPPassword  string `env:"SMTP_PASSWORD"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if cfg.Env != "local" && cfg.EmailProvider == "log" {
		return nil, fmt.Errorf("invalid config: EMAIL_PROVIDER=log is only allowed with ENV=local")
	}

	return cfg, nil
}

// SlogLevel maps LOG_LEVEL onto slog levels.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
