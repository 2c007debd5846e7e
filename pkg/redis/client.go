package redis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotConfigured is returned when no Redis URL is set.
var ErrNotConfigured = errors.New("redis: UPSTASH_REDIS_URL not configured")

var (
	mu     sync.RWMutex
	client *redis.Client
)

// Config holds Redis connection configuration
type Config struct {
	URL      string // redis://host:port or rediss://host:port for TLS
	Password string // overrides any password in URL
}

// Options converts cfg into go-redis options.
func Options(cfg Config) (*redis.Options, error) {
	if cfg.URL == "" {
		return nil, ErrNotConfigured
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if opts.TLSConfig != nil {
		opts.TLSConfig.MinVersion = tls.VersionTLS12
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolSize = 10
	opts.MinIdleConns = 1
	return opts, nil
}

// Client returns the shared client, or nil when Redis is not in use.
func Client() *redis.Client {
	mu.RLock()
	defer mu.RUnlock()
	return client
}

// Initialize connects the shared client. On failure the client stays nil and
// callers fall back to in-process behavior.
func Initialize(ctx context.Context, cfg Config) error {
	opts, err := Options(cfg)
	if err != nil {
		return err
	}
	c := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx).Err(); err != nil {
		_ = c.Close()
		return fmt.Errorf("redis: connection failed: %w", err)
	}

	mu.Lock()
	old := client
	client = c
	mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	return nil
}

// Close closes the Redis connection gracefully.
func Close() error {
	mu.Lock()
	c := client
	client = nil
	mu.Unlock()
	if c != nil {
		return c.Close()
	}
	return nil
}

// HealthCheck pings Redis. It reports ErrNotConfigured when no client is set.
func HealthCheck(ctx context.Context) error {
	c := Client()
	if c == nil {
		return ErrNotConfigured
	}
	return c.Ping(ctx).Err()
}
