package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"portfolio-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema holds every document in one JSONB table keyed by collection path.
const Schema = `
	CREATE TABLE IF NOT EXISTS documents (
		collection TEXT NOT NULL,
		id         TEXT NOT NULL,
		data       JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (collection, id)
	);
	CREATE INDEX IF NOT EXISTS documents_data_gin ON documents USING GIN (data jsonb_path_ops);`

// DocumentStore implements domain.DocumentStore on a single JSONB table.
type DocumentStore struct {
	db *pgxpool.Pool
}

// NewDocumentStore creates a Postgres backed document store.
func NewDocumentStore(db *pgxpool.Pool) *DocumentStore {
	return &DocumentStore{db: db}
}

// EnsureSchema creates the documents table if needed.
func (r *DocumentStore) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, Schema)
	return err
}

func (r *DocumentStore) Get(ctx context.Context, path string) (*domain.Document, error) {
	collection, id := domain.SplitPath(path)
	if collection == "" || id == "" {
		return nil, fmt.Errorf("postgres: %q is not a document path", path)
	}

	var data map[string]interface{}
	err := r.db.QueryRow(ctx, `SELECT data FROM documents WHERE collection = $1 AND id = $2`, collection, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("postgres: get %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("postgres: get %s: %w", path, err)
	}
	return &domain.Document{ID: id, Path: domain.JoinPath(collection, id), Data: data}, nil
}

// buildListQuery turns a domain query into SQL. Equality filters become a
// JSONB containment test; ordered fields must be present, as in Firestore.
func buildListQuery(collection string, q domain.Query) (string, []interface{}, error) {
	args := []interface{}{collection}
	var sb strings.Builder
	sb.WriteString(`SELECT id, data FROM documents WHERE collection = $1`)

	if len(q.Filters) > 0 {
		match := make(map[string]interface{}, len(q.Filters))
		for _, f := range q.Filters {
			match[f.Field] = f.Value
		}
		raw, err := json.Marshal(match)
		if err != nil {
			return "", nil, fmt.Errorf("encode filters: %w", err)
		}
		args = append(args, string(raw))
		sb.WriteString(` AND data @> $` + strconv.Itoa(len(args)) + `::jsonb`)
	}

	orderBy := make([]string, 0, len(q.OrderBy)+1)
	for _, o := range q.OrderBy {
		args = append(args, o.Field)
		n := strconv.Itoa(len(args))
		sb.WriteString(` AND data ? $` + n + `::text`)
		dir := "ASC"
		if o.Direction == domain.Desc {
			dir = "DESC"
		}
		orderBy = append(orderBy, `data -> $`+n+`::text `+dir)
	}
	orderBy = append(orderBy, "id ASC")
	sb.WriteString(" ORDER BY " + strings.Join(orderBy, ", "))
	return sb.String(), args, nil
}

func (r *DocumentStore) List(ctx context.Context, collectionPath string, q domain.Query) ([]domain.Document, error) {
	collection := strings.Trim(collectionPath, "/")
	query, args, err := buildListQuery(collection, q)
	if err != nil {
		return nil, fmt.Errorf("postgres: list %s: %w", collection, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: list %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var (
			id   string
			data map[string]interface{}
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("postgres: list %s: %w", collection, err)
		}
		docs = append(docs, domain.Document{ID: id, Path: domain.JoinPath(collection, id), Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list %s: %w", collection, err)
	}
	return docs, nil
}

func (r *DocumentStore) Add(ctx context.Context, collectionPath string, data map[string]interface{}) (string, error) {
	id := uuid.NewString()
	if err := r.Set(ctx, domain.JoinPath(collectionPath, id), data); err != nil {
		return "", err
	}
	return id, nil
}

// Set creates or replaces the document at path.
func (r *DocumentStore) Set(ctx context.Context, path string, data map[string]interface{}) error {
	collection, id := domain.SplitPath(path)
	if collection == "" || id == "" {
		return fmt.Errorf("postgres: %q is not a document path", path)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("postgres: encode %s: %w", path, err)
	}

	now := time.Now()
	query := `
		INSERT INTO documents (collection, id, data, created_at, updated_at)
		VALUES ($1, $2, $3::jsonb, $4, $4)
		ON CONFLICT (collection, id) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at`
	if _, err := r.db.Exec(ctx, query, collection, id, string(raw), now); err != nil {
		return fmt.Errorf("postgres: set %s: %w", path, err)
	}
	return nil
}
