package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	S3        S3Config
	Extractor ExtractorConfig
	Analysis  AnalysisConfig
	Payment   PaymentConfig
	Email     EmailConfig
	CORS      CORSConfig
	Queue     QueueConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// ExtractorConfig holds vision LLM extraction settings.
type ExtractorConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// AnalysisConfig holds analysis engine settings.
type AnalysisConfig struct {
	// BenchmarksPath overrides the compiled-in benchmark catalogue.
	BenchmarksPath string `mapstructure:"benchmarks_path"`
}

// PaymentConfig holds Stripe settings.
type PaymentConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	PriceCents    int64  `mapstructure:"price_cents"`
	Currency      string `mapstructure:"currency"`
	ProductName   string `mapstructure:"product_name"`
	ProductDesc   string `mapstructure:"product_desc"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// QueueConfig holds extract queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	MaxRetries       int `mapstructure:"max_retries"`
	Concurrency      int `mapstructure:"concurrency"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the NEBENSCAN_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("NEBENSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "nebenscan")
	v.SetDefault("db.password", "nebenscan_secret")
	v.SetDefault("db.name", "nebenscan_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "eu-central-1")
	v.SetDefault("s3.bucket", "nebenscan-bills")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 10)
	v.SetDefault("s3.presign_expiry", 3600)

	// Extractor defaults
	v.SetDefault("extractor.provider", "openai")
	v.SetDefault("extractor.api_key", "")
	v.SetDefault("extractor.default_model", "gpt-4o")
	v.SetDefault("extractor.timeout_secs", 120)

	// Analysis defaults
	v.SetDefault("analysis.benchmarks_path", "")

	// Payment defaults
	v.SetDefault("payment.secret_key", "")
	v.SetDefault("payment.webhook_secret", "")
	v.SetDefault("payment.price_cents", 1499)
	v.SetDefault("payment.currency", "eur")
	v.SetDefault("payment.product_name", "NebenScan Full Report")
	v.SetDefault("payment.product_desc", "Complete analysis of your utility bill with error detection and objection letter")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-central-1")
	v.SetDefault("email.from_address", "noreply@nebenscan.de")
	v.SetDefault("email.from_name", "NebenScan")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 10)
	v.SetDefault("queue.max_retries", 3)
	v.SetDefault("queue.concurrency", 3)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "NEBENSCAN_SERVER_PORT",
		"server.read_timeout":      "NEBENSCAN_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "NEBENSCAN_SERVER_WRITE_TIMEOUT",
		"server.environment":       "NEBENSCAN_SERVER_ENVIRONMENT",
		"db.host":                  "NEBENSCAN_DB_HOST",
		"db.port":                  "NEBENSCAN_DB_PORT",
		"db.user":                  "NEBENSCAN_DB_USER",
		"db.password":              "NEBENSCAN_DB_PASSWORD",
		"db.name":                  "NEBENSCAN_DB_NAME",
		"db.sslmode":               "NEBENSCAN_DB_SSLMODE",
		"db.max_open":              "NEBENSCAN_DB_MAX_OPEN",
		"db.max_idle":              "NEBENSCAN_DB_MAX_IDLE",
		"s3.region":                "NEBENSCAN_S3_REGION",
		"s3.bucket":                "NEBENSCAN_S3_BUCKET",
		"s3.endpoint":              "NEBENSCAN_S3_ENDPOINT",
		"s3.access_key":            "NEBENSCAN_S3_ACCESS_KEY",
		"s3.secret_key":            "NEBENSCAN_S3_SECRET_KEY",
		"s3.max_file_size_mb":      "NEBENSCAN_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":        "NEBENSCAN_S3_PRESIGN_EXPIRY",
		"extractor.provider":       "NEBENSCAN_EXTRACTOR_PROVIDER",
		"extractor.api_key":        "NEBENSCAN_EXTRACTOR_API_KEY",
		"extractor.default_model":  "NEBENSCAN_EXTRACTOR_DEFAULT_MODEL",
		"extractor.timeout_secs":   "NEBENSCAN_EXTRACTOR_TIMEOUT_SECS",
		"analysis.benchmarks_path": "NEBENSCAN_ANALYSIS_BENCHMARKS_PATH",
		"payment.secret_key":       "NEBENSCAN_PAYMENT_SECRET_KEY",
		"payment.webhook_secret":   "NEBENSCAN_PAYMENT_WEBHOOK_SECRET",
		"payment.price_cents":      "NEBENSCAN_PAYMENT_PRICE_CENTS",
		"payment.currency":         "NEBENSCAN_PAYMENT_CURRENCY",
		"payment.product_name":     "NEBENSCAN_PAYMENT_PRODUCT_NAME",
		"payment.product_desc":     "NEBENSCAN_PAYMENT_PRODUCT_DESC",
		"email.provider":           "NEBENSCAN_EMAIL_PROVIDER",
		"email.region":             "NEBENSCAN_EMAIL_REGION",
		"email.from_address":       "NEBENSCAN_EMAIL_FROM_ADDRESS",
		"email.from_name":          "NEBENSCAN_EMAIL_FROM_NAME",
		"email.frontend_url":       "NEBENSCAN_EMAIL_FRONTEND_URL",
		"cors.allowed_origins":     "NEBENSCAN_CORS_ALLOWED_ORIGINS",
		"queue.poll_interval_secs": "NEBENSCAN_QUEUE_POLL_INTERVAL_SECS",
		"queue.max_retries":        "NEBENSCAN_QUEUE_MAX_RETRIES",
		"queue.concurrency":        "NEBENSCAN_QUEUE_CONCURRENCY",
		"log.level":                "NEBENSCAN_LOG_LEVEL",
		"log.format":               "NEBENSCAN_LOG_FORMAT",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding env %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// viper delivers comma-separated origins as a single string
	if len(cfg.CORS.AllowedOrigins) == 1 && strings.Contains(cfg.CORS.AllowedOrigins[0], ",") {
		cfg.CORS.AllowedOrigins = strings.Split(cfg.CORS.AllowedOrigins[0], ",")
	}

	return &cfg, nil
}
