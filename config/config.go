package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
	BackendPostgres  = "postgres"
	BackendSQLite    = "sqlite"
)

type Config struct {
	Port        string
	LogLevel    string
	FrontendURL string
	// Content store
	StoreBackend        string
	ContentRoot         string
	FirestoreProjectID  string
	FirestoreDatabaseID string
	FirestoreCredsFile  string
	DBUrl               string
	SQLitePath          string
	// Query cache
	CacheStaleTime time.Duration
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	RateLimitWriteThreshold  int
}

func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),

		StoreBackend:        strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
		ContentRoot:         strings.Trim(getEnv("CONTENT_ROOT", "portfolio"), "/"),
		FirestoreProjectID:  getEnv("FIRESTORE_PROJECT_ID", getEnv("GOOGLE_CLOUD_PROJECT", "")),
		FirestoreDatabaseID: getEnv("FIRESTORE_DATABASE_ID", ""),
		FirestoreCredsFile:  getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		DBUrl:               getEnv("DATABASE_URL", ""),
		SQLitePath:          getEnv("SQLITE_PATH", "portfolio.db"),

		CacheStaleTime: time.Duration(getEnvInt("CACHE_STALE_SECONDS", 300)) * time.Second,

		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 120),
		RateLimitWriteThreshold:  getEnvInt("RATE_LIMIT_WRITE_THRESHOLD", 10),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected backend has what it needs.
func (c *Config) Validate() error {
	if c.ContentRoot == "" {
		return fmt.Errorf("config: CONTENT_ROOT must not be empty")
	}
	if c.CacheStaleTime < 0 {
		return fmt.Errorf("config: CACHE_STALE_SECONDS must not be negative")
	}
	switch c.StoreBackend {
	case BackendMemory:
	case BackendFirestore:
		if c.FirestoreProjectID == "" {
			return fmt.Errorf("config: FIRESTORE_PROJECT_ID is required for the firestore backend")
		}
	case BackendPostgres:
		if c.DBUrl == "" {
			return fmt.Errorf("config: DATABASE_URL is required for the postgres backend")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("config: SQLITE_PATH is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.StoreBackend)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
