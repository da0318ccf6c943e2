// internal/config/config.go

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Geocoder    GeocoderConfig
	Transport   TransportConfig
	Social      SocialConfig
	Analysis    AnalysisConfig
	Cache       CacheConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
	SSLMode      string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// GeocoderConfig holds Nominatim geocoder configuration
type GeocoderConfig struct {
	BaseURL        string
	UserAgent      string
	RequestTimeout time.Duration
	RatePerSecond  float64
}

// TransportConfig holds transport analysis configuration
type TransportConfig struct {
	OverpassURL    string
	UserAgent      string
	RequestTimeout time.Duration
	SearchRadius   int
}

// SocialConfig holds resident-commentary scraping configuration
type SocialConfig struct {
	RedditBaseURL  string
	Subreddit      string
	RequestTimeout time.Duration
	MaxPosts       int
}

// AnalysisConfig holds language-model configuration
type AnalysisConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
}

// CacheConfig holds report cache configuration
type CacheConfig struct {
	TTL time.Duration
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"http://localhost:5173"}),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Database:     getEnv("DB_NAME", "chezvous"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 5*time.Minute),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Geocoder: GeocoderConfig{
			BaseURL:        getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org/search"),
			UserAgent:      getEnv("GEOCODER_USER_AGENT", "Chez-vous/1.0 (Paris neighborhood finder)"),
			RequestTimeout: getEnvAsDuration("GEOCODER_TIMEOUT", 10*time.Second),
			RatePerSecond:  getEnvAsFloat("GEOCODER_RATE_PER_SECOND", 1.0),
		},
		Transport: TransportConfig{
			OverpassURL:    getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
			UserAgent:      getEnv("TRANSPORT_USER_AGENT", "Chez-vous/1.0 (Paris neighborhood finder)"),
			RequestTimeout: getEnvAsDuration("TRANSPORT_TIMEOUT", 15*time.Second),
			SearchRadius:   getEnvAsInt("TRANSPORT_SEARCH_RADIUS", 500),
		},
		Social: SocialConfig{
			RedditBaseURL:  getEnv("REDDIT_BASE_URL", "https://www.reddit.com"),
			Subreddit:      getEnv("REDDIT_SUBREDDIT", "paris"),
			RequestTimeout: getEnvAsDuration("REDDIT_TIMEOUT", 10*time.Second),
			MaxPosts:       getEnvAsInt("REDDIT_MAX_POSTS", 15),
		},
		Analysis: AnalysisConfig{
			APIKey:    getEnv("ANTHROPIC_API_KEY", ""),
			Model:     getEnv("ANALYSIS_MODEL", "claude-haiku-4-5-20251001"),
			MaxTokens: getEnvAsInt("ANALYSIS_MAX_TOKENS", 4096),
		},
		Cache: CacheConfig{
			TTL: getEnvAsDuration("CACHE_TTL", 24*time.Hour),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.Analysis.APIKey == "" && config.Environment != "development" {
		return fmt.Errorf("ANTHROPIC_API_KEY must be set in non-development environments")
	}

	if config.Transport.SearchRadius <= 0 {
		return fmt.Errorf("transport search radius must be positive")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
