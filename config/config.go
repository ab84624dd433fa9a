package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort    string
	ServerHost    string
	PublicBaseURL string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Image storage configuration
	ImageStorage   string
	ImageDirectory string
	S3BucketName   string
	S3Prefix       string
	S3Endpoint     string
	AWSRegion      string
	MaxUploadBytes int64

	// Upload rate limiting; a zero limit disables it
	UploadRateLimit  int
	UploadRateWindow time.Duration

	CORSAllowedOrigins []string

	LogLevel  string
	LogFormat string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	StorageLocal = "local"
	StorageS3    = "s3"
)

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{Environment: env}

	switch env {
	case CI:
		if err := loadCIConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load CI configuration: %w", err)
		}
	case Development, Test, Production:
		if err := loadConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadConfig reads plain settings from the environment and sensitive values
// from the environment first, then Docker secrets.
func loadConfig(cfg *Config) error {
	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.PublicBaseURL = strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:"+cfg.ServerPort), "/")

	var err error
	if cfg.ReadTimeout, err = getDuration("SERVER_READ_TIMEOUT", 15*time.Second); err != nil {
		return err
	}
	if cfg.WriteTimeout, err = getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second); err != nil {
		return err
	}

	cfg.DBDriver = getEnv("DB_DRIVER", DriverSQLite)
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = getSecret("DB_USER", "db_user", "postgres")
	cfg.DBPassword = getSecret("DB_PASSWORD", "db_password", "")
	cfg.DBName = getEnv("DB_NAME", "recipebox")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.SQLitePath = getEnv("SQLITE_PATH", "recipebox.db")

	cfg.RedisHost = getEnv("REDIS_HOST", "")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisPassword = getSecret("REDIS_PASSWORD", "redis_password", "")
	cfg.RedisURL = getSecret("REDIS_URL", "redis_url", "")
	cfg.RedisDB = 0 // This is a constant, not a secret

	cfg.ImageStorage = getEnv("IMAGE_STORAGE", StorageLocal)
	cfg.ImageDirectory = getEnv("IMAGE_DIRECTORY", filepath.Join(os.TempDir(), "recipebox", "images"))
	cfg.S3BucketName = getEnv("S3_BUCKET_NAME", "")
	cfg.S3Prefix = getEnv("S3_PREFIX", "recipe-images")
	cfg.S3Endpoint = getEnv("S3_ENDPOINT", "")
	cfg.AWSRegion = getEnv("AWS_REGION", "us-east-1")
	if cfg.MaxUploadBytes, err = getInt64("MAX_UPLOAD_BYTES", 10<<20); err != nil {
		return err
	}

	limit, err := getInt64("UPLOAD_RATE_LIMIT", 30)
	if err != nil {
		return err
	}
	cfg.UploadRateLimit = int(limit)
	if cfg.UploadRateWindow, err = getDuration("UPLOAD_RATE_WINDOW", time.Minute); err != nil {
		return err
	}

	cfg.CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"))

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "text")

	return nil
}

// loadCIConfig loads configuration for CI environment using ONLY environment variables
func loadCIConfig(cfg *Config) error {
	if err := loadConfig(cfg); err != nil {
		return err
	}

	// CI never reads Docker secrets
	cfg.DBUser = getEnv("DB_USER", "postgres")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.LogFormat = getEnv("LOG_FORMAT", "json")

	return nil
}

// RedisEnabled reports whether a Redis endpoint was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// PostgresDSN builds a postgres:// URL for the postgres drivers. Credentials
// and the database name are escaped, so any characters are allowed.
func (c *Config) PostgresDSN() string {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   net.JoinHostPort(c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	if c.DBSSLMode != "" {
		dsn.RawQuery = url.Values{"sslmode": {c.DBSSLMode}}.Encode()
	}
	return dsn.String()
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

// getSecret prefers the environment variable, then the Docker secret file.
func getSecret(envKey, secretName, fallback string) string {
	if v := getEnv(envKey, ""); v != "" {
		return v
	}
	if v := readSecret(secretName); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return d, nil
}

func getInt64(key string, fallback int64) (int64, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
