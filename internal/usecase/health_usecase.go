package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"portfolio-backend/internal/domain"

	"golang.org/x/sync/errgroup"
)

// ErrCheckDisabled marks a dependency that is intentionally not configured.
var ErrCheckDisabled = errors.New("check disabled")

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

type HealthUsecase interface {
	// Check reports "ok", "disabled" or "error" per component, and whether
	// every enabled component is healthy.
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	checks  map[string]HealthCheck
	timeout time.Duration
}

func NewHealthUsecase(checks map[string]HealthCheck) HealthUsecase {
	return &healthUsecase{checks: checks, timeout: 2 * time.Second}
}

// StoreCheck treats a readable store as healthy even when path is absent.
func StoreCheck(store domain.DocumentStore, path string) HealthCheck {
	return func(ctx context.Context) error {
		_, err := store.Get(ctx, path)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		status  = map[string]string{"status": "ok"}
		healthy = true
	)
	var g errgroup.Group
	for name, check := range u.checks {
		g.Go(func() error {
			err := check(ctx)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				status[name] = "ok"
			case errors.Is(err, ErrCheckDisabled):
				status[name] = "disabled"
			default:
				status[name] = "error"
				healthy = false
			}
			return nil
		})
	}
	_ = g.Wait()
	if !healthy {
		status["status"] = "degraded"
	}
	return status, healthy
}
