package memory_test

import (
	"context"
	"testing"
	"time"

	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(docs []domain.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}

func seedPosts(t *testing.T, s *memory.Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "portfolio/blog/posts/a", map[string]interface{}{"published": true, "date": "2024-01-01"}))
	require.NoError(t, s.Set(ctx, "portfolio/blog/posts/b", map[string]interface{}{"published": false, "date": "2024-03-01"}))
	require.NoError(t, s.Set(ctx, "portfolio/blog/posts/c", map[string]interface{}{"published": true, "date": "2024-02-01"}))
	require.NoError(t, s.Set(ctx, "portfolio/blog/posts/d", map[string]interface{}{"published": true}))
}

func TestGet(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "portfolio/profile", map[string]interface{}{"name": "Ada"}))

	doc, err := s.Get(ctx, "portfolio/profile")
	require.NoError(t, err)
	assert.Equal(t, "profile", doc.ID)
	assert.Equal(t, "Ada", doc.Data["name"])

	doc.Data["name"] = "mutated"
	again, err := s.Get(ctx, "portfolio/profile")
	require.NoError(t, err)
	assert.Equal(t, "Ada", again.Data["name"])

	_, err = s.Get(ctx, "portfolio/missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.Get(ctx, "portfolio")
	assert.Error(t, err)
}

func TestListFilterAndOrder(t *testing.T) {
	s := memory.New()
	seedPosts(t, s)
	ctx := context.Background()

	docs, err := s.List(ctx, "portfolio/blog/posts", domain.Query{}.Where("published", true).Order("date", domain.Desc))
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, ids(docs), "documents without the order field are excluded")

	docs, err = s.List(ctx, "portfolio/blog/posts", domain.Query{}.Where("published", true))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "d"}, ids(docs))
}

func TestListOrdersNumbersAcrossTypes(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "portfolio/home/skills/x", map[string]interface{}{"order": int64(2)}))
	require.NoError(t, s.Set(ctx, "portfolio/home/skills/y", map[string]interface{}{"order": 1.0}))
	require.NoError(t, s.Set(ctx, "portfolio/home/skills/z", map[string]interface{}{"order": 3}))

	docs, err := s.List(ctx, "portfolio/home/skills", domain.Query{}.Order("order", domain.Asc))
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "x", "z"}, ids(docs))
}

func TestListTimestamps(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "c/old", map[string]interface{}{"date": time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)}))
	require.NoError(t, s.Set(ctx, "c/new", map[string]interface{}{"date": time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}))

	docs, err := s.List(ctx, "c", domain.Query{}.Order("date", domain.Desc))
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old"}, ids(docs))
}

func TestIndexEnforcement(t *testing.T) {
	s := memory.New(memory.WithIndexEnforcement())
	seedPosts(t, s)
	ctx := context.Background()
	q := domain.Query{}.Where("published", true).Order("date", domain.Desc)

	_, err := s.List(ctx, "portfolio/blog/posts", q)
	require.ErrorIs(t, err, domain.ErrIndexRequired)

	_, err = s.List(ctx, "portfolio/blog/posts", domain.Query{}.Where("published", true))
	require.NoError(t, err, "single field queries never need a composite index")

	s.AddIndex("portfolio/blog/posts", q)
	docs, err := s.List(ctx, "portfolio/blog/posts", q)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestAdd(t *testing.T) {
	s := memory.New(memory.WithIDGenerator(func() string { return "fixed-id" }))
	ctx := context.Background()

	id, err := s.Add(ctx, "portfolio/about/experience", map[string]interface{}{"title": "Engineer"})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)

	doc, err := s.Get(ctx, "portfolio/about/experience/fixed-id")
	require.NoError(t, err)
	assert.Equal(t, "Engineer", doc.Data["title"])

	_, err = s.Add(ctx, "portfolio/about", map[string]interface{}{})
	assert.Error(t, err, "document paths cannot take appends")
}

func TestCanceledContext(t *testing.T) {
	s := memory.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Get(ctx, "portfolio/profile")
	assert.ErrorIs(t, err, context.Canceled)
}
