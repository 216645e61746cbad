package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            string
	Env             string
	DataPath        string
	DatabaseURL     string
	JWTSecret       string
	TokenExpiration time.Duration
	DefaultCurrency string
	LogLevel        string

	AIBaseURL string
	AIModel   string
	AIAPIKey  string

	MarketAPIURL   string
	MarketCacheTTL time.Duration
}

func Load() *Config {
	tokenExp, _ := strconv.Atoi(getEnv("TOKEN_EXPIRATION_DAYS", "7"))
	marketTTL, _ := strconv.Atoi(getEnv("MARKET_CACHE_TTL_MINUTES", "3"))

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		DataPath:        getEnv("DATA_PATH", "finvi.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		JWTSecret:       getEnv("JWT_SECRET", "finvi-dev-secret"),
		TokenExpiration: time.Duration(tokenExp) * 24 * time.Hour,
		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "VND"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),

		AIBaseURL: getEnv("AI_BASE_URL", "https://generativelanguage.googleapis.com"),
		AIModel:   getEnv("AI_MODEL", "gemini-2.0-flash"),
		AIAPIKey:  getEnv("AI_API_KEY", ""),

		MarketAPIURL:   getEnv("MARKET_API_URL", "https://api.coingecko.com/api/v3"),
		MarketCacheTTL: time.Duration(marketTTL) * time.Minute,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
