package backend

import (
	"context"
	"path/filepath"
	"testing"

	"portfolio-backend/config"
	"portfolio-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMemory(t *testing.T) {
	b, err := Open(context.Background(), &config.Config{StoreBackend: config.BackendMemory})
	require.NoError(t, err)
	assert.Equal(t, config.BackendMemory, b.Name)
	assert.NoError(t, b.Close())
}

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "content.db")
	b, err := Open(ctx, &config.Config{StoreBackend: config.BackendSQLite, SQLitePath: path})
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, b.Store.Set(ctx, "portfolio/profile", map[string]interface{}{"name": "Ada"}))
	doc, err := b.Store.Get(ctx, "portfolio/profile")
	require.NoError(t, err)
	assert.Equal(t, "Ada", doc.Data["name"])

	_, err = b.Store.Get(ctx, "portfolio/home")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOpenUnknown(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{StoreBackend: "mongo"})
	assert.Error(t, err)
}

func TestOpenFirestoreNeedsProject(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{StoreBackend: config.BackendFirestore})
	assert.Error(t, err)
}
