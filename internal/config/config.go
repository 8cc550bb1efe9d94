package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all process-level configuration. The numeric analyzer knobs
// live in models.AnalyzerConfig; this covers the surrounding bot.
type Config struct {
	// Trading pair.
	Symbol        string
	StableToken   string
	VolatileToken string

	// Inference service.
	InferenceURL    string
	InferenceAPIKey string
	InferenceModel  string
	RequestTimeout  int // seconds

	// Ledger event feed.
	LedgerWSURL string

	// Market data service.
	MarketDataURL string

	// Postgres append-only store.
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Bot behavior.
	CooldownSeconds int
	LenientValidate bool
	MetricsAddr     string
	LogLevel        string

	// Optional JSON overrides for the analyzer knobs.
	AnalyzerOverrides string
}

// Load initializes configuration from environment variables, reading a .env
// file first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	cfg := Config{
		Symbol:            getEnvWithDefault("SYMBOL", "WETH/USDC"),
		StableToken:       os.Getenv("STABLE_TOKEN"),
		VolatileToken:     os.Getenv("VOLATILE_TOKEN"),
		InferenceURL:      getEnvWithDefault("INFERENCE_URL", "https://api.openai.com/v1/chat/completions"),
		InferenceAPIKey:   os.Getenv("INFERENCE_API_KEY"),
		InferenceModel:    getEnvWithDefault("INFERENCE_MODEL", "gpt-4"),
		RequestTimeout:    getEnvIntWithDefault("REQUEST_TIMEOUT", 30),
		LedgerWSURL:       getEnvWithDefault("LEDGER_WS_URL", "ws://localhost:8546/events"),
		MarketDataURL:     getEnvWithDefault("MARKET_DATA_URL", "http://localhost:8080"),
		DBHost:            getEnvWithDefault("DB_HOST", "localhost"),
		DBPort:            getEnvWithDefault("DB_PORT", "5432"),
		DBUser:            getEnvWithDefault("DB_USER", "postgres"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            getEnvWithDefault("DB_NAME", "trader"),
		DBSSLMode:         getEnvWithDefault("DB_SSLMODE", "disable"),
		CooldownSeconds:   getEnvIntWithDefault("COOLDOWN_SECONDS", 300),
		LenientValidate:   getEnvBoolWithDefault("LENIENT_VALIDATE", false),
		MetricsAddr:       getEnvWithDefault("METRICS_ADDR", ":9100"),
		LogLevel:          getEnvWithDefault("LOG_LEVEL", "info"),
		AnalyzerOverrides: os.Getenv("ANALYZER_CONFIG"),
	}

	return &cfg, nil
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
