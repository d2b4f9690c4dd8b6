package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"storefront/internal/database"

	"go.uber.org/zap"
)

type Config struct {
	Port    string
	BaseURL string // public base URL for payment callbacks

	JWT     JWT
	DB      database.Config
	Payment Payment
	Cart    Cart
	Redis   Redis
	Kafka   Kafka
	SMTP    SMTP
	Admin   Admin
}

type JWT struct {
	Issuer    string
	Audience  string
	Secret    string
	AccessExp time.Duration
}

type Payment struct {
	APIURL   string
	APIKey   string
	Currency string
}

type Cart struct {
	// TTL after which an unpaid reservation is released back to the catalog.
	TTL time.Duration
}

type Redis struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type Kafka struct {
	Enabled bool
	Brokers []string
	Topic   string
}

type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	TMPLDir  string
}

type Admin struct {
	Email    string
	Password string
}

func Load(log *zap.Logger) *Config {
	return &Config{
		Port:    getEnv("APP_PORT", log),
		BaseURL: getEnv("PUBLIC_BASE_URL", log),
		JWT: JWT{
			Issuer:    getEnv("JWT_ISSUER", log),
			Audience:  getEnv("JWT_AUDIENCE", log),
			Secret:    getEnv("JWT_SECRET", log),
			AccessExp: parseDurationWithDays(getEnvDefault("ACCESS_EXP", "24h")),
		},
		DB: database.Config{
			Host:     getEnv("DB_HOST", log),
			Port:     getEnv("DB_PORT", log),
			User:     getEnv("DB_USER", log),
			Password: getEnv("DB_PASSWORD", log),
			Name:     getEnv("DB_NAME", log),
			SSLMode:  getEnvDefault("DB_SSLMODE", "disable"),
		},
		Payment: Payment{
			APIURL:   getEnv("PAYMENT_API_URL", log),
			APIKey:   getEnv("PAYMENT_API_KEY", log),
			Currency: strings.ToLower(getEnvDefault("CURRENCY", "gbp")),
		},
		Cart: Cart{
			TTL: parseDurationWithDays(getEnvDefault("CART_TTL", "24h")),
		},
		Redis: Redis{
			Enabled:  getEnvDefault("REDIS_ENABLED", "false") == "true",
			Addr:     getEnvDefault("REDIS_ADDR", "localhost:6379"),
			Password: getEnvDefault("REDIS_PASSWORD", ""),
			DB:       atoiDefault(getEnvDefault("REDIS_DB", "0"), 0),
		},
		Kafka: Kafka{
			Enabled: getEnvDefault("KAFKA_ENABLED", "false") == "true",
			Brokers: strings.Split(getEnvDefault("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnvDefault("KAFKA_EMAIL_TOPIC", "shop.emails"),
		},
		SMTP: SMTP{
			Host:     getEnvDefault("SMTP_HOST", ""),
			Port:     atoiDefault(getEnvDefault("SMTP_PORT", "465"), 465),
			User:     getEnvDefault("SMTP_USER", ""),
			Password: getEnvDefault("SMTP_PASSWORD", ""),
			From:     getEnvDefault("SMTP_FROM", ""),
			TMPLDir:  getEnvDefault("SMTP_TMPL_DIR", "templates"),
		},
		Admin: Admin{
			Email:    getEnvDefault("ADMIN_EMAIL", ""),
			Password: getEnvDefault("ADMIN_PASSWORD", ""),
		},
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("required environment variable is not set", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return def
}

// parseDurationWithDays accepts the usual time.ParseDuration syntax plus a
// "d" suffix for days ("30d").
func parseDurationWithDays(s string) time.Duration {
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0
		}
		return time.Duration(days) * 24 * time.Hour
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
