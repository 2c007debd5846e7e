package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("CONTENT_ROOT", "portfolio")
	t.Setenv("CACHE_STALE_SECONDS", "300")
	t.Setenv("PORT", "8080")
	t.Setenv("FRONTEND_URL", "http://localhost:5173/")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, "portfolio", cfg.ContentRoot)
	assert.Equal(t, 5*time.Minute, cfg.CacheStaleTime)
	assert.Equal(t, "http://localhost:5173", cfg.FrontendURL)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/content.db")
	t.Setenv("CONTENT_ROOT", "/site/")
	t.Setenv("CACHE_STALE_SECONDS", "30")
	t.Setenv("RATE_LIMIT_WRITE_THRESHOLD", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, "site", cfg.ContentRoot)
	assert.Equal(t, 30*time.Second, cfg.CacheStaleTime)
	assert.Equal(t, 10, cfg.RateLimitWriteThreshold)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"memory", Config{StoreBackend: BackendMemory, ContentRoot: "portfolio"}, ""},
		{"firestore without project", Config{StoreBackend: BackendFirestore, ContentRoot: "portfolio"}, "FIRESTORE_PROJECT_ID"},
		{"postgres without url", Config{StoreBackend: BackendPostgres, ContentRoot: "portfolio"}, "DATABASE_URL"},
		{"sqlite without path", Config{StoreBackend: BackendSQLite, ContentRoot: "portfolio"}, "SQLITE_PATH"},
		{"unknown backend", Config{StoreBackend: "mongo", ContentRoot: "portfolio"}, "unknown STORE_BACKEND"},
		{"empty root", Config{StoreBackend: BackendMemory}, "CONTENT_ROOT"},
		{"negative stale time", Config{StoreBackend: BackendMemory, ContentRoot: "portfolio", CacheStaleTime: -time.Second}, "CACHE_STALE_SECONDS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
