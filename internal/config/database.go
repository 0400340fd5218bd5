package config

import (
	"fmt"
	"time"

	"book-catalog-backend/internal/infrastructure/database"
)

// LoadDatabaseConfig combines the connection settings with pool and retry tuning
// read from the environment.
func LoadDatabaseConfig(db DatabaseConfig) (*database.DBConfig, error) {
	if db.MaxConns <= 0 {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %d", db.MaxConns)
	}
	if db.MinConns < 0 || db.MinConns > db.MaxConns {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %d", db.MinConns)
	}

	maxRetries := getEnvInt("DB_MAX_RETRIES", 5)
	if maxRetries < 1 {
		return nil, fmt.Errorf("invalid DB_MAX_RETRIES: %d", maxRetries)
	}

	// Parse durations
	maxConnLifetime, err := parseDurationEnv("DB_MAX_CONN_LIFETIME", "5m")
	if err != nil {
		return nil, err
	}

	maxConnIdleTime, err := parseDurationEnv("DB_MAX_CONN_IDLE_TIME", "1m")
	if err != nil {
		return nil, err
	}

	healthCheckPeriod, err := parseDurationEnv("DB_HEALTH_CHECK_PERIOD", "1m")
	if err != nil {
		return nil, err
	}

	retryDelay, err := parseDurationEnv("DB_RETRY_DELAY", "1s")
	if err != nil {
		return nil, err
	}

	connectTimeout, err := parseDurationEnv("DB_CONNECT_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	return &database.DBConfig{
		DSN:               db.DSN(),
		MaxConns:          int32(db.MaxConns),
		MinConns:          int32(db.MinConns),
		MaxConnLifetime:   maxConnLifetime,
		MaxConnIdleTime:   maxConnIdleTime,
		HealthCheckPeriod: healthCheckPeriod,
		MaxRetries:        maxRetries,
		RetryDelay:        retryDelay,
		ConnectTimeout:    connectTimeout,
	}, nil
}

func parseDurationEnv(key, defaultValue string) (time.Duration, error) {
	value, err := time.ParseDuration(getEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
