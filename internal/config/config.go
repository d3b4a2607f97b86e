package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Server struct {
		Port         string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
		LogLevel     string
	}

	Google struct {
		APIKey        string
		DirectionsURL string
	}

	BMKG struct {
		BaseURL       string
		DefaultRegion string
	}

	Corridor struct {
		Origin      string
		Destination string
		Regions     []string
	}

	Scheduler struct {
		CronSpec string
	}

	Cache struct {
		Duration time.Duration
	}

	CircuitBreaker struct {
		Timeout time.Duration
	}

	Retry struct {
		MaxRetries int
		Delay      time.Duration
		Multiplier float64
	}

	Client struct {
		Timeout time.Duration
	}
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		zap.L().Info("No .env file found, using environment variables")
	}

	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnv("FIBER_PORT", "8080")
	cfg.Server.ReadTimeout = parseDuration(getEnv("FIBER_READ_TIMEOUT", "10s"))
	cfg.Server.WriteTimeout = parseDuration(getEnv("FIBER_WRITE_TIMEOUT", "10s"))
	cfg.Server.LogLevel = getEnv("LOG_LEVEL", "info")

	// External API configuration
	cfg.Google.APIKey = getEnv("GOOGLE_MAPS_API_KEY", "")
	cfg.Google.DirectionsURL = getEnv("GOOGLE_DIRECTIONS_URL", "")
	cfg.BMKG.BaseURL = getEnv("BMKG_BASE_URL", "")
	cfg.BMKG.DefaultRegion = getEnv("BMKG_DEFAULT_REGION", "32.73.09.1002") // Bandung

	// Corridor configuration
	cfg.Corridor.Origin = getEnv("CORRIDOR_ORIGIN", "Bandung")
	cfg.Corridor.Destination = getEnv("CORRIDOR_DESTINATION", "Jakarta")
	regions := getEnv("CORRIDOR_REGIONS", "32.73.09.1002,32.77.21.1001,31.71.01.1001")
	cfg.Corridor.Regions = strings.Split(regions, ",")

	// Scheduler configuration
	cfg.Scheduler.CronSpec = getEnv("WEATHER_REFRESH_CRON", "@every 15m")

	// Cache configuration
	cfg.Cache.Duration = parseDuration(getEnv("CACHE_DURATION", "10m"))

	// Circuit breaker configuration
	cfg.CircuitBreaker.Timeout = parseDuration(getEnv("CIRCUIT_BREAKER_TIMEOUT", "30s"))

	// Retry configuration
	cfg.Retry.MaxRetries = parseInt(getEnv("MAX_RETRIES", "3"))
	cfg.Retry.Delay = parseDuration(getEnv("RETRY_DELAY", "1s"))
	cfg.Retry.Multiplier = parseFloat(getEnv("RETRY_MULTIPLIER", "2"))

	// HTTP client configuration
	cfg.Client.Timeout = parseDuration(getEnv("CLIENT_TIMEOUT", "10s"))

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		zap.L().Warn("Failed to parse duration", zap.String("value", value), zap.Error(err))
		return 0
	}
	return duration
}

func parseInt(value string) int {
	intValue, err := strconv.Atoi(value)
	if err != nil {
		zap.L().Warn("Failed to parse int", zap.String("value", value), zap.Error(err))
		return 0
	}
	return intValue
}

func parseFloat(value string) float64 {
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		zap.L().Warn("Failed to parse float", zap.String("value", value), zap.Error(err))
		return 0
	}
	return floatValue
}
