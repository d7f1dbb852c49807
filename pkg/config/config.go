// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPAddr        string
	ShutdownTimeout time.Duration

	InventoryBaseURL string
	RemoteTimeout    time.Duration

	// StockPolicy is "readonly" or "reserving".
	StockPolicy string

	// SnapshotBackend is "memory", "redis" or "mysql".
	SnapshotBackend string
	RedisAddr       string
	MySQLDSN        string
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		AppEnv:           getenv("APP_ENV", "dev"),
		LogLevel:         getenv("LOG_LEVEL", "info"),
		HTTPAddr:         getenv("HTTP_ADDR", ":8080"),
		ShutdownTimeout:  durenvs("SHUTDOWN_TIMEOUT", 15),
		InventoryBaseURL: getenv("INVENTORY_BASE_URL", "http://localhost:3333"),
		RemoteTimeout:    durenvms("REMOTE_TIMEOUT_MS", 5000),
		StockPolicy:      getenv("STOCK_POLICY", "readonly"),
		SnapshotBackend:  getenv("SNAPSHOT_BACKEND", "memory"),
		RedisAddr:        getenv("REDIS_ADDR", "localhost:6379"),
		MySQLDSN:         getenv("MYSQL_DSN", "user:pass@tcp(mysql:3306)/appdb?parseTime=true"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvms(key string, defMs int) time.Duration {
	return time.Duration(atoienv(key, defMs)) * time.Millisecond
}

func durenvs(key string, defSec int) time.Duration {
	return time.Duration(atoienv(key, defSec)) * time.Second
}
