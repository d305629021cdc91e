// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mrosetti/btcarb/internal/arbitrage"
	"github.com/mrosetti/btcarb/internal/fees"
)

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel string
	HTTPPort string

	// Kalshi API
	KalshiAPIURL      string
	KalshiCategoryURL string

	// Polymarket API
	PolymarketGammaURL string
	GammaEventLimit    int

	// Scanning
	FetchInterval time.Duration
	AssetKeywords []string

	// Arbitrage
	MinProfitPct      float64
	PolymarketFeeMode string

	// Storage
	StorageMode  string // "postgres", "file" or "console"
	PostgresHost string
	PostgresPort string
	PostgresUser string
	PostgresPass string
	PostgresDB   string
	PostgresSSL  string

	MarketsJSONPath       string
	MarketsCSVPath        string
	OpportunitiesJSONPath string
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		// Application defaults
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		HTTPPort: getEnvOrDefault("HTTP_PORT", "8080"),

		// Kalshi defaults
		KalshiAPIURL:      getEnvOrDefault("KALSHI_API_URL", "https://api.elections.kalshi.com/trade-api/v2"),
		KalshiCategoryURL: getEnvOrDefault("KALSHI_CATEGORY_URL", "https://kalshi.com/categories/crypto/bitcoin"),

		// Polymarket defaults
		PolymarketGammaURL: getEnvOrDefault("POLYMARKET_GAMMA_API_URL", "https://gamma-api.polymarket.com"),
		GammaEventLimit:    getIntOrDefault("GAMMA_EVENT_LIMIT", 100),

		// Scanning defaults
		FetchInterval: getDurationOrDefault("FETCH_INTERVAL", 15*time.Minute),
		AssetKeywords: getListOrDefault("ASSET_KEYWORDS", []string{"btc", "bitcoin"}),

		// Arbitrage defaults
		MinProfitPct:      getFloat64OrDefault("MIN_PROFIT_PCT", arbitrage.DefaultMinProfitPct),
		PolymarketFeeMode: getEnvOrDefault("POLYMARKET_FEE_MODE", string(fees.PolymarketStandard)),

		// Storage defaults
		StorageMode:  getEnvOrDefault("STORAGE_MODE", "file"),
		PostgresHost: getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort: getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser: getEnvOrDefault("POSTGRES_USER", "btcarb"),
		PostgresPass: getEnvOrDefault("POSTGRES_PASSWORD", "btcarb123"),
		PostgresDB:   getEnvOrDefault("POSTGRES_DB", "btcarb"),
		PostgresSSL:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),

		MarketsJSONPath:       getEnvOrDefault("MARKETS_JSON_PATH", "data/btc_markets.json"),
		MarketsCSVPath:        getEnvOrDefault("MARKETS_CSV_PATH", "data/btc_markets.csv"),
		OpportunitiesJSONPath: getEnvOrDefault("OPPORTUNITIES_JSON_PATH", "data/arbitrage_opportunities.json"),
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT cannot be empty")
	}

	if c.KalshiAPIURL == "" {
		return fmt.Errorf("KALSHI_API_URL cannot be empty")
	}

	if c.PolymarketGammaURL == "" {
		return fmt.Errorf("POLYMARKET_GAMMA_API_URL cannot be empty")
	}

	if c.GammaEventLimit <= 0 {
		return fmt.Errorf("GAMMA_EVENT_LIMIT must be positive, got %d", c.GammaEventLimit)
	}

	if c.FetchInterval <= 0 {
		return fmt.Errorf("FETCH_INTERVAL must be positive, got %s", c.FetchInterval)
	}

	if math.IsNaN(c.MinProfitPct) || math.IsInf(c.MinProfitPct, 0) || c.MinProfitPct < 0 {
		return fmt.Errorf("MIN_PROFIT_PCT must be a non-negative finite number, got %v", c.MinProfitPct)
	}

	if _, err := fees.ParsePolymarketMode(c.PolymarketFeeMode); err != nil {
		return fmt.Errorf("POLYMARKET_FEE_MODE: %w", err)
	}

	if c.StorageMode != "postgres" && c.StorageMode != "file" && c.StorageMode != "console" {
		return fmt.Errorf("STORAGE_MODE must be 'postgres', 'file' or 'console', got %q", c.StorageMode)
	}

	return nil
}

func getEnvOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getFloat64OrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	floatVal, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}

	return floatVal
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

func getListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
