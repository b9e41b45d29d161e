package server

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the HTTP server configuration.
type Config struct {
	Port        int
	MaxWorkers  int   // 0 = derived from GOMAXPROCS
	MaxUploadMB int64 // request body cap for POST /v1/invoices

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PDFTimeout   time.Duration // per-invoice render timeout; 0 = library default

	ConfigRef string // INVOICE2PDF_CONFIG: config file name or path for every batch
	LogFormat string // "json" or "pretty"
}

// LoadConfig reads the configuration from the environment, loading a .env
// file from the working directory first when one exists. Variables already
// set in the environment win over the file.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded; using environment variables")
	}
	return configFromEnv()
}

// configFromEnv builds a Config from the current environment.
func configFromEnv() *Config {
	cfg := &Config{
		Port:         getEnvInt("PORT", 8080),
		MaxWorkers:   getEnvInt("MAX_WORKERS", 0),
		MaxUploadMB:  int64(getEnvInt("MAX_UPLOAD_MB", 32)),
		ReadTimeout:  getEnvDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout: getEnvDuration("WRITE_TIMEOUT", 5*time.Minute),
		PDFTimeout:   getEnvDuration("PDF_TIMEOUT", 0),
		ConfigRef:    os.Getenv("INVOICE2PDF_CONFIG"),
		LogFormat:    strings.ToLower(getEnvString("LOG_FORMAT", "json")),
	}
	validateConfig(cfg)
	return cfg
}

// validateConfig replaces unusable values with defaults and says so.
func validateConfig(cfg *Config) {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		log.Printf("Warning: invalid PORT %d, using 8080", cfg.Port)
		cfg.Port = 8080
	}
	if cfg.MaxUploadMB <= 0 {
		log.Printf("Warning: invalid MAX_UPLOAD_MB %d, using 32", cfg.MaxUploadMB)
		cfg.MaxUploadMB = 32
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "pretty" {
		log.Printf("Warning: unknown LOG_FORMAT %q, using json", cfg.LogFormat)
		cfg.LogFormat = "json"
	}
}

// MaxUploadBytes returns the upload cap in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// getEnvInt gets an integer from an environment variable with a default value.
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// getEnvDuration accepts Go durations ("90s", "2m") or plain seconds ("90").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	if d, err := time.ParseDuration(valueStr); err == nil && d >= 0 {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}

	log.Printf("Invalid value for %s: %s, using default: %v", key, valueStr, defaultValue)
	return defaultValue
}

// getEnvString gets a string from an environment variable with a default value.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
