package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// API Configuration
	APIPort        string
	APIHost        string
	APIEnvironment string

	// Database backends. DBProvider can pin one explicitly ("neon" or
	// "supabase"); otherwise the store detects the backend from the URLs.
	DBProvider      string
	DatabaseURL     string
	SupabaseDBURL   string
	SupabaseURL     string
	SupabaseAnonKey string

	// Redis
	RedisURL string

	// Site identity used in generated metadata and templated copy
	SiteURL      string
	SiteName     string
	DisplayPhone string

	// SEO niche configuration
	NicheConfigDir string
	Niche          string

	// CORS
	CORSAllowedOrigins []string

	// Rate Limiting
	RateLimitRequestsPerMinute int
	RateLimitBurst             int

	// Error tracking. Sentry stays off without a DSN.
	SentryDSN         string
	SentryEnvironment string

	// Logging
	LogLevel  string
	LogFormat string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		// API
		APIPort:        getEnv("API_PORT", "8080"),
		APIHost:        getEnv("API_HOST", "0.0.0.0"),
		APIEnvironment: getEnv("API_ENVIRONMENT", "development"),

		// Database
		DBProvider:      getEnv("DB_PROVIDER", ""),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		SupabaseDBURL:   getEnv("SUPABASE_DB_URL", ""),
		SupabaseURL:     getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey: getEnv("SUPABASE_ANON_KEY", ""),

		// Redis
		RedisURL: getEnv("REDIS_URL", ""),

		// Site
		SiteURL:      getEnv("SITE_URL", "https://dumpsterly.com"),
		SiteName:     getEnv("SITE_NAME", "Dumpsterly"),
		DisplayPhone: getEnv("DISPLAY_PHONE", "(888) 555-0199"),

		// SEO
		NicheConfigDir: getEnv("NICHE_CONFIG_DIR", "./configs/niches"),
		Niche:          getEnv("NICHE", "dumpster-rental"),

		// CORS
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),

		// Rate Limiting
		RateLimitRequestsPerMinute: getEnvAsInt("RATE_LIMIT_REQUESTS_PER_MINUTE", 60),
		RateLimitBurst:             getEnvAsInt("RATE_LIMIT_BURST", 10),

		// Error tracking
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		SentryEnvironment: getEnv("SENTRY_ENVIRONMENT", "development"),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

// Helper functions
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

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
