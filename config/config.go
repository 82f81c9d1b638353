package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"fxledger/internal/adapters/logger" // Import the logger package for LogLevel
)

// Log output formats.
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
	LogFormatStd     = "std"
)

// Config holds all application configuration.
type Config struct {
	// Database
	DBPath string

	// Logging
	LogLevel  logger.LogLevel // Use the LogLevel type from the logger adapter
	LogFormat string          // json, console or std

	// Ledger
	BaseCurrency string // Fixed to USD in this domain, but kept configurable
	TxListLimit  int    // Default row cap for transaction listings
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var errs []string // Collect validation errors

	// Database
	cfg.DBPath = getEnv("DB_PATH", "./data/fxledger.db")
	if cfg.DBPath == "" {
		errs = append(errs, "DB_PATH must be set")
	}

	// Logging
	logLevelStr := getEnv("LOG_LEVEL", "INFO")
	cfg.LogLevel = logger.ParseLevel(logLevelStr) // Use the parser from the logger package

	cfg.LogFormat = strings.ToLower(getEnv("LOG_FORMAT", LogFormatConsole))
	switch cfg.LogFormat {
	case LogFormatJSON, LogFormatConsole, LogFormatStd:
	default:
		errs = append(errs, fmt.Sprintf("invalid LOG_FORMAT %q (want json, console or std)", cfg.LogFormat))
	}

	// Ledger
	cfg.BaseCurrency = strings.ToUpper(getEnv("BASE_CURRENCY", "USD"))
	if len(cfg.BaseCurrency) != 3 {
		errs = append(errs, fmt.Sprintf("invalid BASE_CURRENCY %q (want a 3-letter code)", cfg.BaseCurrency))
	}

	cfg.TxListLimit = getEnvAsInt("TX_LIST_LIMIT", 100)
	if cfg.TxListLimit <= 0 {
		errs = append(errs, "TX_LIST_LIMIT must be positive")
	}

	// Combine validation errors
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
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
