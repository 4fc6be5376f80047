package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SourceModeDatabase = "database"
	SourceModeHTTP     = "http"
)

type AppConfig struct {
	Port         string
	DatabasePath string
	LogLevel     string

	// SourceMode selects where raw broker batches come from: the local
	// document store or a remote broker API.
	SourceMode       string
	BrokerAPIBaseURL string
	SourceTimeout    time.Duration
	SourceCacheTTL   time.Duration

	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	sourceMode := strings.ToLower(getEnv("SOURCE_MODE", SourceModeDatabase))
	if sourceMode != SourceModeDatabase && sourceMode != SourceModeHTTP {
		log.Printf("WARNING: Invalid SOURCE_MODE '%s'. Using default '%s'.", sourceMode, SourceModeDatabase)
		sourceMode = SourceModeDatabase
	}

	Cfg = &AppConfig{
		Port:         getEnv("PORT", "8080"),
		DatabasePath: getEnv("DATABASE_PATH", "./brokers.db"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),

		SourceMode:       sourceMode,
		BrokerAPIBaseURL: strings.TrimRight(getEnv("BROKER_API_BASE_URL", "http://localhost:8080"), "/"),
		SourceTimeout:    getEnvAsDuration("SOURCE_TIMEOUT", 10*time.Second),
		SourceCacheTTL:   getEnvAsDuration("SOURCE_CACHE_TTL", 30*time.Second),

		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 30),
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, DBPath=%s, SourceMode=%s, SourceTimeout=%s",
		Cfg.Port, Cfg.LogLevel, Cfg.DatabasePath, Cfg.SourceMode, Cfg.SourceTimeout)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Integer value for %s not set or empty, using default: %d", key, fallback)
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil && value > 0 {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Float value for %s not set or empty, using default: %g", key, fallback)
		return fallback
	}
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil && value > 0 {
		return value
	}
	log.Printf("Invalid float value for %s ('%s'), using default: %g", key, valueStr, fallback)
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Duration value for %s not set or empty, using default: %s", key, fallback.String())
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}

// splitList turns a comma separated value into a trimmed list, dropping blanks.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
