// Package config loads process settings from the environment, after reading an
// optional .env file.
package config

import (
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/cxd309/intercept-engine/internal/monitoring"
)

type Config struct {
	// Environment
	Environment string
	Debug       bool

	// Physics defaults for requests that leave them out
	Gravity   float64
	DefaultDT float64

	// Search
	SearchWorkers int

	// Output
	OutputDir string

	// Server
	Port           string
	AllowedOrigins []string // CORS; empty allows any origin outside production
}

// Load reads the .env file named by envFiles (".env" when none) if present, then
// builds a Config from the environment. Variables already set in the environment
// win over the file.
func Load(envFiles ...string) *Config {
	if err := godotenv.Load(envFiles...); err != nil {
		monitoring.Debugf("no .env file loaded: %v", err)
	}

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Debug:       getEnvBool("DEBUG", false),

		Gravity:   getEnvFloat("GRAVITY", 9.81),
		DefaultDT: getEnvFloat("DEFAULT_DT", 0.02),

		SearchWorkers: getEnvInt("SEARCH_WORKERS", runtime.NumCPU()),

		OutputDir: getEnv("OUTPUT_DIR", "./output"),

		Port:           getEnv("APP_PORT", "8080"),
		AllowedOrigins: getEnvList("CORS_ORIGINS"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		monitoring.Logf("config: could not parse %s=%q as int, using %d", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		monitoring.Logf("config: could not parse %s=%q as float, using %g", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvList splits a comma-separated variable, dropping blank entries.
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvBool accepts anything strconv.ParseBool understands ("1", "true", ...).
func getEnvBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		monitoring.Logf("config: could not parse %s=%q as bool, using %t", key, value, defaultValue)
		return defaultValue
	}
	return b
}
