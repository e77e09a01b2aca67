// Package config has the configuration file for the app
package config

import (
	"fmt"
	"net"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	EnvDevelopment = "dev"
	EnvStaging     = "staging"
	EnvProduction  = "prod"
	EnvTest        = "test"
)

// Config holds all application configuration
type Config struct {
	Port              string        `env:"PORT" envDefault:"8000"`
	Address           string        `env:"ADDRESS" envDefault:"127.0.0.1"`
	Env               string        `env:"ENV" envDefault:"dev"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	LogDir            string        `env:"LOG_DIR" envDefault:"logs"`
	LogRetentionWeeks int           `env:"LOG_RETENTION_WEEKS" envDefault:"4"`          // Number of weeks to keep log files
	MaxLogFileSize    int64         `env:"MAX_LOG_FILE_SIZE" envDefault:"104857600"`    // 100MB
	MaxRequestBody    int64         `env:"MAX_REQUEST_BODY" envDefault:"10485760"`      // 10MB, label photos
	MaxHeaderSize     int64         `env:"MAX_HEADER_SIZE" envDefault:"1048576"`        // 1MB
	CatalogFile       string        `env:"CATALOG_FILE"`                                // Empty uses the built-in catalog
	OCRLatency        time.Duration `env:"OCR_LATENCY" envDefault:"2s"`                 // Simulated recognition latency
	OCRTimeout        time.Duration `env:"OCR_TIMEOUT" envDefault:"10s"`                // Per-request extraction deadline
	AllowedOrigins    []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	TrustedProxyOnly  bool          `env:"TRUSTED_PROXY_ONLY" envDefault:"false"` // Reject direct non-local access
}

// Load loads and validates configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.Env = strings.ToLower(cfg.Env)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// validateConfig validates all configuration values
func validateConfig(cfg *Config) error {
	if err := validatePort(cfg.Port); err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	if err := validateAddress(cfg.Address); err != nil {
		return fmt.Errorf("invalid ADDRESS: %w", err)
	}

	if err := validateEnv(cfg.Env); err != nil {
		return fmt.Errorf("invalid ENV: %w", err)
	}

	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if err := validateSizeLimit(cfg.MaxRequestBody, "MAX_REQUEST_BODY"); err != nil {
		return fmt.Errorf("invalid MAX_REQUEST_BODY: %w", err)
	}

	if err := validateSizeLimit(cfg.MaxHeaderSize, "MAX_HEADER_SIZE"); err != nil {
		return fmt.Errorf("invalid MAX_HEADER_SIZE: %w", err)
	}

	if err := validateLogRetentionWeeks(cfg.LogRetentionWeeks); err != nil {
		return fmt.Errorf("invalid LOG_RETENTION_WEEKS: %w", err)
	}

	if err := validateMaxLogFileSize(cfg.MaxLogFileSize); err != nil {
		return fmt.Errorf("invalid MAX_LOG_FILE_SIZE: %w", err)
	}

	if err := validateOCRDurations(cfg.OCRLatency, cfg.OCRTimeout); err != nil {
		return fmt.Errorf("invalid OCR settings: %w", err)
	}

	if err := validateCatalogFile(cfg.CatalogFile); err != nil {
		return fmt.Errorf("invalid CATALOG_FILE: %w", err)
	}

	return nil
}

// validatePort validates the PORT environment variable
func validatePort(port string) error {
	if port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid number: %w", err)
	}

	if portNum < 1 || portNum > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}

	if portNum < 1024 {
		return fmt.Errorf("PORT %d is privileged (less than 1024), use ports 1024-65535", portNum)
	}

	return nil
}

// validateAddress validates the ADDRESS environment variable
func validateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("ADDRESS cannot be empty")
	}

	if address == "localhost" {
		return nil
	}

	ip := net.ParseIP(address)
	if ip == nil {
		return fmt.Errorf("ADDRESS must be a valid IP address or 'localhost', got: %s", address)
	}

	// Private ranges only (10.0.0.0/8, 172.16.0.0/12, 192.168.0.0/16) plus loopback
	if !ip.IsLoopback() && !ip.IsPrivate() && !ip.IsUnspecified() {
		return fmt.Errorf("ADDRESS %s is a public IP, consider using private network ranges for security", address)
	}

	return nil
}

// validateEnv validates the ENV environment variable
func validateEnv(env string) error {
	validEnvs := []string{EnvDevelopment, EnvStaging, EnvProduction, EnvTest}
	if !slices.Contains(validEnvs, env) {
		return fmt.Errorf("ENV must be one of: %v, got: %q", validEnvs, env)
	}
	return nil
}

// validateLogLevel validates the LOG_LEVEL environment variable
func validateLogLevel(logLevel string) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, logLevel) {
		return fmt.Errorf("LOG_LEVEL must be one of: %v, got: %q", validLevels, logLevel)
	}
	return nil
}

// validateSizeLimit validates size limit configuration values
func validateSizeLimit(size int64, configName string) error {
	if size <= 0 {
		return fmt.Errorf("%s must be positive, got: %d", configName, size)
	}

	if size > 100*1024*1024 { // 100MB
		return fmt.Errorf("%s is too large (max 100MB), got: %d bytes", configName, size)
	}

	return nil
}

// validateLogRetentionWeeks validates the LOG_RETENTION_WEEKS environment variable
func validateLogRetentionWeeks(weeks int) error {
	if weeks <= 0 {
		return fmt.Errorf("LOG_RETENTION_WEEKS must be positive, got: %d", weeks)
	}

	if weeks > 52 {
		return fmt.Errorf("LOG_RETENTION_WEEKS is too large (max 52 weeks), got: %d", weeks)
	}

	return nil
}

// validateMaxLogFileSize validates the MAX_LOG_FILE_SIZE environment variable
func validateMaxLogFileSize(size int64) error {
	if size < 1024*1024 {
		return fmt.Errorf("MAX_LOG_FILE_SIZE is too small (min 1MB), got: %d bytes", size)
	}

	if size > 1024*1024*1024 {
		return fmt.Errorf("MAX_LOG_FILE_SIZE is too large (max 1GB), got: %d bytes", size)
	}

	return nil
}

// validateOCRDurations checks the simulated latency fits inside the request deadline
func validateOCRDurations(latency, timeout time.Duration) error {
	if latency < 0 {
		return fmt.Errorf("OCR_LATENCY cannot be negative, got: %s", latency)
	}

	if timeout <= 0 {
		return fmt.Errorf("OCR_TIMEOUT must be positive, got: %s", timeout)
	}

	if latency >= timeout {
		return fmt.Errorf("OCR_LATENCY (%s) must be shorter than OCR_TIMEOUT (%s)", latency, timeout)
	}

	return nil
}

// validateCatalogFile checks an explicitly configured catalog file is readable
func validateCatalogFile(path string) error {
	if path == "" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	return nil
}

// IsDevelopment reports whether the dev-only surfaces (pprof) are enabled
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// GetEnvVars returns a list of all expected environment variables
func GetEnvVars() []string {
	return []string{
		"PORT",
		"ADDRESS",
		"ENV",
		"LOG_LEVEL",
		"LOG_DIR",
		"LOG_RETENTION_WEEKS",
		"MAX_LOG_FILE_SIZE",
		"MAX_REQUEST_BODY",
		"MAX_HEADER_SIZE",
		"CATALOG_FILE",
		"OCR_LATENCY",
		"OCR_TIMEOUT",
		"ALLOWED_ORIGINS",
		"TRUSTED_PROXY_ONLY",
	}
}
