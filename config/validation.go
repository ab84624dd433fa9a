package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := cfg.Environment
	if env == "" {
		env = GetEnvironment()
	}

	var errs []string
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg}.Error())
	}

	if cfg.ServerPort == "" {
		add("SERVER_PORT", "must be set")
	}
	if u, err := url.Parse(cfg.PublicBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		add("PUBLIC_BASE_URL", "must be an absolute URL")
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DBHost == "" || cfg.DBName == "" {
			add("DB_HOST", "postgres requires DB_HOST and DB_NAME")
		}
		if cfg.DBPassword == "" {
			if !env.ReadsSecretFiles() {
				add("DB_PASSWORD", "environment variable is required in CI environment")
			} else {
				add("db_password", "secret is required")
			}
		}
	case DriverSQLite:
		if !env.AllowsSQLite() {
			add("DB_DRIVER", "sqlite is not allowed in production")
		}
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "must be set")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	switch cfg.ImageStorage {
	case StorageLocal:
		if cfg.ImageDirectory == "" {
			add("IMAGE_DIRECTORY", "must be set for local image storage")
		}
	case StorageS3:
		if cfg.S3BucketName == "" {
			add("S3_BUCKET_NAME", "must be set for s3 image storage")
		}
	default:
		add("IMAGE_STORAGE", fmt.Sprintf("unsupported backend %q", cfg.ImageStorage))
	}

	if cfg.MaxUploadBytes <= 0 {
		add("MAX_UPLOAD_BYTES", "must be positive")
	}
	if cfg.UploadRateLimit < 0 {
		add("UPLOAD_RATE_LIMIT", "must not be negative")
	}
	if cfg.UploadRateLimit > 0 && cfg.UploadRateWindow <= 0 {
		add("UPLOAD_RATE_WINDOW", "must be positive when rate limiting is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
