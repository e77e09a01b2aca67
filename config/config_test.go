package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range GetEnvVars() {
		if value, ok := os.LookupEnv(name); ok {
			_ = os.Unsetenv(name)
			t.Cleanup(func() { _ = os.Setenv(name, value) })
		}
	}
}

func TestLoadWithDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Address != "127.0.0.1" {
		t.Errorf("Expected default address 127.0.0.1, got %s", cfg.Address)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Expected default env dev, got %s", cfg.Env)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.OCRLatency != 2*time.Second {
		t.Errorf("Expected default OCR latency 2s, got %s", cfg.OCRLatency)
	}
	if cfg.OCRTimeout != 10*time.Second {
		t.Errorf("Expected default OCR timeout 10s, got %s", cfg.OCRTimeout)
	}
	if cfg.MaxRequestBody != 10*1024*1024 {
		t.Errorf("Expected default max request body 10MB, got %d", cfg.MaxRequestBody)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("Expected default origins [*], got %v", cfg.AllowedOrigins)
	}
	if cfg.CatalogFile != "" {
		t.Errorf("Expected no catalog file by default, got %s", cfg.CatalogFile)
	}
	if !cfg.IsDevelopment() {
		t.Error("Default config should be development")
	}
}

func TestLoadValidConfig(t *testing.T) {
	clearEnv(t)
	catalogPath := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(catalogPath, []byte("medicines: []\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PORT", "8002")
	t.Setenv("ADDRESS", "192.168.1.10")
	t.Setenv("ENV", "PROD")
	t.Setenv("LOG_LEVEL", "Debug")
	t.Setenv("OCR_LATENCY", "500ms")
	t.Setenv("OCR_TIMEOUT", "3s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("TRUSTED_PROXY_ONLY", "true")
	t.Setenv("CATALOG_FILE", catalogPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8002" {
		t.Errorf("Expected port 8002, got %s", cfg.Port)
	}
	if cfg.Env != EnvProduction {
		t.Errorf("Expected env prod, got %s", cfg.Env)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.LogLevel)
	}
	if cfg.OCRLatency != 500*time.Millisecond || cfg.OCRTimeout != 3*time.Second {
		t.Errorf("Unexpected OCR durations: %s / %s", cfg.OCRLatency, cfg.OCRTimeout)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Errorf("Expected 2 origins, got %v", cfg.AllowedOrigins)
	}
	if !cfg.TrustedProxyOnly {
		t.Error("Expected TrustedProxyOnly")
	}
	if cfg.CatalogFile != catalogPath {
		t.Errorf("Expected catalog file %s, got %s", catalogPath, cfg.CatalogFile)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"non numeric port", "PORT", "abc", "PORT must be a valid number"},
		{"privileged port", "PORT", "80", "privileged"},
		{"port out of range", "PORT", "70000", "between 1 and 65535"},
		{"public address", "ADDRESS", "8.8.8.8", "public IP"},
		{"bad address", "ADDRESS", "not-an-ip", "valid IP address"},
		{"unknown env", "ENV", "qa", "ENV must be one of"},
		{"unknown log level", "LOG_LEVEL", "trace", "LOG_LEVEL must be one of"},
		{"zero body limit", "MAX_REQUEST_BODY", "0", "MAX_REQUEST_BODY must be positive"},
		{"huge header limit", "MAX_HEADER_SIZE", "209715200", "too large"},
		{"retention too long", "LOG_RETENTION_WEEKS", "53", "max 52 weeks"},
		{"log file too small", "MAX_LOG_FILE_SIZE", "1024", "too small"},
		{"latency above timeout", "OCR_LATENCY", "30s", "must be shorter than OCR_TIMEOUT"},
		{"negative latency", "OCR_LATENCY", "-1s", "cannot be negative"},
		{"malformed duration", "OCR_TIMEOUT", "soon", "parse env"},
		{"malformed int", "LOG_RETENTION_WEEKS", "four", "parse env"},
		{"missing catalog file", "CATALOG_FILE", "/nonexistent/catalog.yaml", "cannot access"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("Expected error for %s=%s", tt.key, tt.value)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateAddress(t *testing.T) {
	valid := []string{"localhost", "127.0.0.1", "::1", "10.0.0.5", "172.16.4.2", "0.0.0.0"}
	for _, addr := range valid {
		if err := validateAddress(addr); err != nil {
			t.Errorf("validateAddress(%q) unexpected error: %v", addr, err)
		}
	}

	if err := validateAddress(""); err == nil {
		t.Error("Empty address should be rejected")
	}
}

func TestValidateCatalogFileRejectsDirectory(t *testing.T) {
	if err := validateCatalogFile(t.TempDir()); err == nil {
		t.Error("A directory should not be accepted as catalog file")
	}
}
