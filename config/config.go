package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config holds all configuration for the capital service
type Config struct {
	Port      string
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

// RedisConfig configures the quote cache. An empty Addr selects the in-memory cache.
type RedisConfig struct {
	Addr     string
	CacheTTL time.Duration
}

type RateLimitConfig struct {
	Capacity int
	Window   time.Duration
}

// Load reads configuration from a .env file, when present, and environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cacheTTL, err := getSeconds("CACHE_TTL_SECONDS", 3600)
	if err != nil {
		return nil, err
	}
	capacity, err := getInt("RATE_LIMIT_CAPACITY", 5)
	if err != nil {
		return nil, err
	}
	if capacity <= 0 {
		return nil, errors.Errorf("RATE_LIMIT_CAPACITY must be positive, got %d", capacity)
	}
	window, err := getSeconds("RATE_LIMIT_WINDOW_SECONDS", 60)
	if err != nil {
		return nil, err
	}
	if window <= 0 {
		return nil, errors.Errorf("RATE_LIMIT_WINDOW_SECONDS must be positive, got %v", window)
	}

	return &Config{
		Port: getEnv("PORT", "8080"),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			CacheTTL: cacheTTL,
		},
		RateLimit: RateLimitConfig{
			Capacity: capacity,
			Window:   window,
		},
	}, nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) UsesRedis() bool {
	return c.Redis.Addr != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return n, nil
}

func getSeconds(key string, defaultValue int) (time.Duration, error) {
	n, err := getInt(key, defaultValue)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.Errorf("%s must not be negative, got %d", key, n)
	}
	return time.Duration(n) * time.Second, nil
}
