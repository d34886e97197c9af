package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const defaultJWTSecret = "change-me-in-production"

// Config is populated from environment variables (optionally loaded from .env).
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	JWT     JWTConfig
	MinIO   MinIOConfig
	Storage StorageConfig
	SMTP    SMTPConfig
	Shop    ShopConfig
	CORS    CORSConfig
	Worker  WorkerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	Issuer string
	Expiry time.Duration
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// StorageConfig limits what the image module accepts.
type StorageConfig struct {
	MaxImageBytes int64
	ThumbnailSize int
	PublicBaseURL string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// ShopConfig holds business defaults used when pricing an order.
type ShopConfig struct {
	ShippingAmount decimal.Decimal
	Currency       string
	CompanyName    string
	CartTTL        time.Duration
}

// WorkerConfig tunes the background task server.
type WorkerConfig struct {
	Concurrency     int
	ExpireCartsSpec string
	HealthPort      string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	shipping, err := decimal.NewFromString(getEnv("SHOP_SHIPPING_AMOUNT", "4.90"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHOP_SHIPPING_AMOUNT: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Shop API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", defaultJWTSecret),
			Issuer: getEnv("JWT_ISSUER", "shop-backend"),
			Expiry: getEnvDuration("JWT_EXPIRY", 24*time.Hour),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "shop"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Storage: StorageConfig{
			MaxImageBytes: int64(getEnvInt("IMAGE_MAX_BYTES", 10*1024*1024)),
			ThumbnailSize: getEnvInt("IMAGE_THUMBNAIL_SIZE", 300),
			PublicBaseURL: getEnv("STORAGE_PUBLIC_BASE_URL", ""),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     getEnvInt("SMTP_PORT", 1025),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "noreply@shop.local"),
		},
		Shop: ShopConfig{
			ShippingAmount: shipping,
			Currency:       getEnv("SHOP_CURRENCY", "EUR"),
			CompanyName:    getEnv("SHOP_COMPANY_NAME", "Shop"),
			CartTTL:        getEnvDuration("SHOP_CART_TTL", 30*24*time.Hour),
		},
		Worker: WorkerConfig{
			Concurrency:     getEnvInt("WORKER_CONCURRENCY", 10),
			ExpireCartsSpec: getEnv("WORKER_EXPIRE_CARTS_SPEC", "@every 30m"),
			HealthPort:      getEnv("WORKER_HEALTH_PORT", "9999"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate rejects insecure defaults outside development.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.MinIO.AccessKey == "minioadmin" {
			return fmt.Errorf("MINIO_ACCESS_KEY must be set in production")
		}
	}
	if c.Shop.ShippingAmount.IsNegative() {
		return fmt.Errorf("SHOP_SHIPPING_AMOUNT must not be negative")
	}
	if c.JWT.Expiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
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

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
