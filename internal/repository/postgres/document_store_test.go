package postgres

import (
	"testing"

	"portfolio-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListQuery(t *testing.T) {
	t.Run("plain collection", func(t *testing.T) {
		sql, args, err := buildListQuery("portfolio/projects/items", domain.Query{})
		require.NoError(t, err)
		assert.Equal(t, `SELECT id, data FROM documents WHERE collection = $1 ORDER BY id ASC`, sql)
		assert.Equal(t, []interface{}{"portfolio/projects/items"}, args)
	})

	t.Run("ordered collection", func(t *testing.T) {
		sql, args, err := buildListQuery("portfolio/home/skills", domain.Query{}.Order("order", domain.Asc))
		require.NoError(t, err)
		assert.Equal(t, `SELECT id, data FROM documents WHERE collection = $1 AND data ? $2::text ORDER BY data -> $2::text ASC, id ASC`, sql)
		assert.Equal(t, []interface{}{"portfolio/home/skills", "order"}, args)
	})

	t.Run("filter and order", func(t *testing.T) {
		q := domain.Query{}.Where("published", true).Order("date", domain.Desc)
		sql, args, err := buildListQuery("portfolio/blog/posts", q)
		require.NoError(t, err)
		assert.Equal(t, `SELECT id, data FROM documents WHERE collection = $1 AND data @> $2::jsonb AND data ? $3::text ORDER BY data -> $3::text DESC, id ASC`, sql)
		assert.Equal(t, []interface{}{"portfolio/blog/posts", `{"published":true}`, "date"}, args)
	})

	t.Run("unencodable filter", func(t *testing.T) {
		_, _, err := buildListQuery("c", domain.Query{}.Where("bad", make(chan int)))
		assert.Error(t, err)
	})
}
