package usecase_test

import (
	"context"
	"errors"
	"testing"

	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/repository/memory"
	"portfolio-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	store := memory.New()

	t.Run("all healthy", func(t *testing.T) {
		uc := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
			"store": usecase.StoreCheck(store, "portfolio/profile"),
			"redis": func(context.Context) error { return usecase.ErrCheckDisabled },
		})
		status, ok := uc.Check(context.Background())
		assert.True(t, ok)
		assert.Equal(t, map[string]string{"status": "ok", "store": "ok", "redis": "disabled"}, status)
	})

	t.Run("failing dependency", func(t *testing.T) {
		uc := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
			"store": func(context.Context) error { return errors.New("unavailable") },
		})
		status, ok := uc.Check(context.Background())
		assert.False(t, ok)
		assert.Equal(t, "degraded", status["status"])
		assert.Equal(t, "error", status["store"])
	})
}

func TestStoreCheckPropagatesErrors(t *testing.T) {
	store := memory.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := usecase.StoreCheck(store, "portfolio/profile")(ctx)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}
