package sqlite

import (
	"context"
	"testing"

	"portfolio-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(" ")
	assert.Error(t, err)
}

func TestSetGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "portfolio/profile", map[string]interface{}{"name": "Ada", "title": "Dev"}))
	require.NoError(t, s.Set(ctx, "portfolio/profile", map[string]interface{}{"name": "Ada L."}))

	doc, err := s.Get(ctx, "portfolio/profile")
	require.NoError(t, err)
	assert.Equal(t, "profile", doc.ID)
	assert.Equal(t, map[string]interface{}{"name": "Ada L."}, doc.Data)

	_, err = s.Get(ctx, "portfolio/missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListFilterOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	posts := map[string]map[string]interface{}{
		"a": {"published": true, "date": "2024-01-01"},
		"b": {"published": false, "date": "2024-05-01"},
		"c": {"published": true, "date": "2024-03-01"},
		"d": {"published": true},
	}
	for id, data := range posts {
		require.NoError(t, s.Set(ctx, "portfolio/blog/posts/"+id, data))
	}
	require.NoError(t, s.Set(ctx, "portfolio/other/posts/z", map[string]interface{}{"published": true, "date": "2030-01-01"}))

	docs, err := s.List(ctx, "portfolio/blog/posts", domain.Query{}.Where("published", true).Order("date", domain.Desc))
	require.NoError(t, err)
	var ids []string
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"c", "a"}, ids)

	docs, err = s.List(ctx, "portfolio/blog/posts", domain.Query{}.Where("published", true))
	require.NoError(t, err)
	assert.Len(t, docs, 3)
}

func TestListOrderField(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "portfolio/home/skills/x", map[string]interface{}{"order": 10}))
	require.NoError(t, s.Set(ctx, "portfolio/home/skills/y", map[string]interface{}{"order": 2}))

	docs, err := s.List(ctx, "portfolio/home/skills", domain.Query{}.Order("order", domain.Asc))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "y", docs[0].ID)
	assert.Equal(t, float64(2), docs[0].Data["order"])
}

func TestAdd(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.Add(ctx, "portfolio/about/experience", map[string]interface{}{"title": "Dev"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	doc, err := s.Get(ctx, "portfolio/about/experience/"+id)
	require.NoError(t, err)
	assert.Equal(t, "Dev", doc.Data["title"])
}
