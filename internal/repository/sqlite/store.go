// Package sqlite provides a SQLite-backed DocumentStore for local development.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"portfolio-backend/internal/domain"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id         TEXT NOT NULL,
	data       TEXT NOT NULL DEFAULT '{}',
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (collection, id)
);`

// Store persists documents as JSON text, one row per document.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite document store and creates its table. Use ":memory:"
// for a throwaway database.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == ":memory:" {
		// Every connection to :memory: is a separate database.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func jsonPath(field string) string {
	return `$."` + strings.ReplaceAll(field, `"`, ``) + `"`
}

// buildListQuery relies on json_extract, which turns JSON booleans into 0/1.
// Filter values are extracted the same way so both sides compare alike.
// Rows lacking an ordered field are skipped, matching Firestore.
func buildListQuery(collection string, q domain.Query) (string, []interface{}, error) {
	args := []interface{}{collection}
	var sb strings.Builder
	sb.WriteString(`SELECT id, data FROM documents WHERE collection = ?`)
	for _, f := range q.Filters {
		raw, err := json.Marshal(f.Value)
		if err != nil {
			return "", nil, fmt.Errorf("encode filter %s: %w", f.Field, err)
		}
		sb.WriteString(` AND json_extract(data, ?) = json_extract(?, '$')`)
		args = append(args, jsonPath(f.Field), string(raw))
	}
	orderBy := make([]string, 0, len(q.OrderBy)+1)
	var orderArgs []interface{}
	for _, o := range q.OrderBy {
		sb.WriteString(` AND json_type(data, ?) != 'null'`)
		args = append(args, jsonPath(o.Field))
		dir := "ASC"
		if o.Direction == domain.Desc {
			dir = "DESC"
		}
		orderBy = append(orderBy, "json_extract(data, ?) "+dir)
		orderArgs = append(orderArgs, jsonPath(o.Field))
	}
	orderBy = append(orderBy, "id ASC")
	sb.WriteString(" ORDER BY " + strings.Join(orderBy, ", "))
	args = append(args, orderArgs...)
	return sb.String(), args, nil
}

func (s *Store) Get(ctx context.Context, path string) (*domain.Document, error) {
	collection, id := domain.SplitPath(path)
	if collection == "" || id == "" {
		return nil, fmt.Errorf("sqlite: %q is not a document path", path)
	}
	var raw string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT data FROM documents WHERE collection = ? AND id = ?`, collection, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sqlite: get %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("sqlite: get %s: %w", path, err)
	}
	data, err := decodeData(raw)
	if err != nil {
		return nil, fmt.Errorf("sqlite: get %s: %w", path, err)
	}
	return &domain.Document{ID: id, Path: domain.JoinPath(collection, id), Data: data}, nil
}

func (s *Store) List(ctx context.Context, collectionPath string, q domain.Query) ([]domain.Document, error) {
	collection := strings.Trim(collectionPath, "/")
	query, args, err := buildListQuery(collection, q)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list %s: %w", collection, err)
	}
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("sqlite: list %s: %w", collection, err)
		}
		data, err := decodeData(raw)
		if err != nil {
			return nil, fmt.Errorf("sqlite: list %s/%s: %w", collection, id, err)
		}
		docs = append(docs, domain.Document{ID: id, Path: domain.JoinPath(collection, id), Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list %s: %w", collection, err)
	}
	return docs, nil
}

func (s *Store) Add(ctx context.Context, collectionPath string, data map[string]interface{}) (string, error) {
	id := uuid.NewString()
	if err := s.Set(ctx, domain.JoinPath(collectionPath, id), data); err != nil {
		return "", err
	}
	return id, nil
}

// Set creates or replaces the document at path.
func (s *Store) Set(ctx context.Context, path string, data map[string]interface{}) error {
	collection, id := domain.SplitPath(path)
	if collection == "" || id == "" {
		return fmt.Errorf("sqlite: %q is not a document path", path)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("sqlite: encode %s: %w", path, err)
	}
	_, err = s.sqlDB.ExecContext(ctx, `
		INSERT INTO documents (collection, id, data, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (collection, id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		collection, id, string(raw), time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("sqlite: set %s: %w", path, err)
	}
	return nil
}

func decodeData(raw string) (map[string]interface{}, error) {
	data := map[string]interface{}{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return data, nil
}
