// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// LogFile, when set, receives a rotated copy of every log line.
	LogFile string

	// DataFile is the JSON file holding every driver record.
	DataFile string

	// UploadDir is the root of the per-driver file archive.
	UploadDir string

	// BackupDir is where backup archives are written before download.
	BackupDir string

	// MaxUploadBytes caps request bodies. Set in megabytes via MAX_UPLOAD_MB.
	MaxUploadBytes int64

	// WarnWindowDays is how many days ahead an expiry date counts as expiring.
	WarnWindowDays int

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the working directory is loaded first when present;
// variables already set in the environment win over it.
// Returns an error naming every numeric variable that is not a positive number.
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFile:     os.Getenv("LOG_FILE"),
		DataFile:    getEnv("DATA_FILE", "data/motoristas.json"),
		UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
		BackupDir:   getEnv("BACKUP_DIR", "."),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	var invalid []string

	maxMB, err := cast.ToInt64E(getEnv("MAX_UPLOAD_MB", "16"))
	if err != nil || maxMB <= 0 {
		invalid = append(invalid, "MAX_UPLOAD_MB")
	}
	cfg.MaxUploadBytes = maxMB << 20

	cfg.WarnWindowDays, err = cast.ToIntE(getEnv("WARN_WINDOW_DAYS", "30"))
	if err != nil || cfg.WarnWindowDays <= 0 {
		invalid = append(invalid, "WARN_WINDOW_DAYS")
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("environment variables must be positive integers: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
