package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App      AppConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Telegram TelegramConfig
	MinIO    MinIOConfig
	Admin    AdminConfig
	Business BusinessConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type TelegramConfig struct {
	BotToken      string
	AdminChatID   int64  // chat that receives new-order notifications
	WebhookSecret string // X-Telegram-Bot-Api-Secret-Token value
	APIBaseURL    string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AdminConfig carries the credentials for the admin REST API.
// The password is stored as a bcrypt hash, never in plain text.
type AdminConfig struct {
	Username     string
	PasswordHash string
}

// BusinessConfig carries business rules that are configuration, not code:
// the delivery fee and currency, the default bot language, and operational
// tuning values.
type BusinessConfig struct {
	DeliveryFee        decimal.Decimal
	Currency           string
	DefaultLanguage    string
	RateLimitPerMinute int
	StaleCartDays      int
	CatalogCacheTTLMin int
	Timezone           string
}

// Location resolves the business timezone. Availability windows, order
// number dates and daily reports all evaluate on this clock, not the
// host's. An unknown zone falls back to UTC.
func (b BusinessConfig) Location() *time.Location {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Orderbot API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			ExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),
		},
		Telegram: TelegramConfig{
			BotToken:      getEnv("TELEGRAM_BOT_TOKEN", ""),
			AdminChatID:   getEnvInt64("TELEGRAM_ADMIN_CHAT_ID", 0),
			WebhookSecret: getEnv("TELEGRAM_WEBHOOK_SECRET", ""),
			APIBaseURL:    getEnv("TELEGRAM_API_BASE_URL", "https://api.telegram.org"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "orderbot"),
			UseSSL:    false,
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Business: BusinessConfig{
			DeliveryFee:        getEnvDecimal("DELIVERY_FEE", "5.00"),
			Currency:           getEnv("CURRENCY", "ILS"),
			DefaultLanguage:    getEnv("DEFAULT_LANGUAGE", "he"),
			RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
			StaleCartDays:      getEnvInt("STALE_CART_DAYS", 7),
			CatalogCacheTTLMin: getEnvInt("CATALOG_CACHE_TTL_MIN", 5),
			Timezone:           getEnv("BUSINESS_TIMEZONE", "Asia/Jerusalem"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks production-critical values.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN must be set")
	}
	if c.Telegram.AdminChatID == 0 {
		return fmt.Errorf("TELEGRAM_ADMIN_CHAT_ID must be set")
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Admin.PasswordHash == "" {
			return fmt.Errorf("ADMIN_PASSWORD_HASH must be set in production")
		}
		if c.Telegram.WebhookSecret == "" {
			return fmt.Errorf("TELEGRAM_WEBHOOK_SECRET must be set in production")
		}
	}

	if c.Business.DeliveryFee.IsNegative() {
		return fmt.Errorf("DELIVERY_FEE must not be negative")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDecimal(key, defaultValue string) decimal.Decimal {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}
	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		value, _ = decimal.NewFromString(defaultValue)
	}
	return value
}
