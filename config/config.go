package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"conciergerie-backend/utils"

	"github.com/joho/godotenv"
)

const devJWTSecret = "dev-secret-change-me"

type AppConfig struct {
	Port string
	Env  string

	DBDriver string

	JWTSecret string
	JWTTTL    time.Duration

	CORSOrigins string
	FrontendURL string

	RedisURL       string
	BookedDatesTTL time.Duration

	KafkaBrokers      []string
	KafkaBookingTopic string

	SMTP utils.SMTPConfig

	SeedDatabase bool
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// Load reads the environment, after merging a .env file when one exists.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{
		Port:              utils.EnvOrDefault("PORT", "8080"),
		Env:               utils.EnvOrDefault("ENV", "development"),
		DBDriver:          strings.ToLower(utils.EnvOrDefault("DB_DRIVER", "mysql")),
		JWTSecret:         utils.EnvOrDefault("JWT_SECRET", ""),
		JWTTTL:            utils.EnvDuration("JWT_TTL", 7*24*time.Hour),
		CORSOrigins:       utils.EnvOrDefault("CORS_ORIGINS", ""),
		FrontendURL:       utils.EnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
		RedisURL:          utils.EnvOrDefault("REDIS_URL", ""),
		BookedDatesTTL:    utils.EnvDuration("BOOKED_DATES_TTL", 5*time.Minute),
		KafkaBrokers:      utils.EnvList("KAFKA_BROKERS"),
		KafkaBookingTopic: utils.EnvOrDefault("KAFKA_BOOKING_TOPIC", "booking-events"),
		SMTP: utils.SMTPConfig{
			Host:     utils.EnvOrDefault("SMTP_HOST", ""),
			Port:     utils.EnvOrDefault("SMTP_PORT", ""),
			Username: utils.EnvOrDefault("SMTP_USERNAME", ""),
			Password: utils.EnvOrDefault("SMTP_PASSWORD", ""),
			FromName: utils.EnvOrDefault("SMTP_FROM_NAME", "Conciergerie Marrakech"),
		},
		SeedDatabase: utils.EnvBool("SEED_DATABASE", false),
	}

	if cfg.DBDriver != "mysql" && cfg.DBDriver != "postgres" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q: use mysql or postgres", cfg.DBDriver)
	}
	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = devJWTSecret
	}
	return cfg, nil
}
