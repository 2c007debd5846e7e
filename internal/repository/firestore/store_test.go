package firestore

import (
	"context"
	"errors"
	"testing"

	"portfolio-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError("get", "portfolio/profile", nil))

	notFound := translateError("get", "portfolio/profile", status.Error(codes.NotFound, "no such document"))
	assert.ErrorIs(t, notFound, domain.ErrNotFound)

	index := translateError("list", "portfolio/blog/posts",
		status.Error(codes.FailedPrecondition, "The query requires an index. You can create it here: https://console.firebase.google.com/..."))
	assert.ErrorIs(t, index, domain.ErrIndexRequired)
	assert.Contains(t, index.Error(), "requires an index")

	unavailable := status.Error(codes.Unavailable, "connection reset")
	other := translateError("list", "portfolio/projects/items", unavailable)
	assert.ErrorIs(t, other, unavailable)
	assert.False(t, errors.Is(other, domain.ErrIndexRequired))
	assert.False(t, errors.Is(other, domain.ErrNotFound))
}

func TestOpenRequiresProject(t *testing.T) {
	_, err := Open(context.Background(), Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project id is required")
}

func TestCloseNilStore(t *testing.T) {
	var s *Store
	assert.NoError(t, s.Close())
}
