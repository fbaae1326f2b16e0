package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config captures everything the hmis command reads from the environment.
type Config struct {
	// DatabaseURL selects the postgres store; empty keeps data in memory.
	DatabaseURL string
	TxTimeout   time.Duration

	Redis RedisConfig
	// LockTTL bounds how long a crashed load can hold the import lock.
	LockTTL time.Duration

	LogLevel  string
	LogFormat string

	Interactive     bool
	StrongMatching  bool
	EquivalentsFile string
	MetricsTextfile string
}

// RedisConfig configures the redis client behind the import lock.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultLockTTL is used when HMIS_LOCK_TTL is unset.
var DefaultLockTTL = 30 * time.Minute

// FromEnv builds a Config from HMIS_* environment variables so main stays lean.
func FromEnv() (Config, error) {
	cfg := Config{
		DatabaseURL:     os.Getenv("HMIS_DATABASE_URL"),
		LogLevel:        getEnv("HMIS_LOG_LEVEL", "info"),
		LogFormat:       getEnv("HMIS_LOG_FORMAT", "text"),
		EquivalentsFile: os.Getenv("HMIS_EQUIVALENTS_FILE"),
		MetricsTextfile: os.Getenv("HMIS_METRICS_TEXTFILE"),
		Redis: RedisConfig{
			URL:          os.Getenv("HMIS_REDIS_URL"),
			PoolSize:     4,
			MinIdleConns: 1,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
	}

	var err error
	if cfg.Interactive, err = getBool("HMIS_INTERACTIVE"); err != nil {
		return Config{}, err
	}
	if cfg.StrongMatching, err = getBool("HMIS_STRONG_MATCHING"); err != nil {
		return Config{}, err
	}
	if cfg.LockTTL, err = getDuration("HMIS_LOCK_TTL", DefaultLockTTL); err != nil {
		return Config{}, err
	}
	if cfg.TxTimeout, err = getDuration("HMIS_TX_TIMEOUT", 0); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
