package domain

import (
	"context"
	"errors"
	"strings"
)

// Common domain errors
var (
	ErrNotFound = errors.New("resource not found")
	// ErrIndexRequired is returned by a DocumentStore when a compound
	// filter+order query needs a composite index that does not exist.
	ErrIndexRequired = errors.New("query requires a composite index")
)

type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// Filter is an equality predicate on a top-level document field.
type Filter struct {
	Field string
	Value interface{}
}

type Order struct {
	Field     string
	Direction Direction
}

// Query narrows a collection read. The zero value lists the whole collection
// in backend order.
type Query struct {
	Filters []Filter
	OrderBy []Order
}

func (q Query) Where(field string, value interface{}) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Field: field, Value: value})
	return q
}

func (q Query) Order(field string, dir Direction) Query {
	q.OrderBy = append(append([]Order(nil), q.OrderBy...), Order{Field: field, Direction: dir})
	return q
}

// IsCompound reports whether the query mixes filters with ordering, the shape
// that needs a composite index on Firestore-like backends.
func (q Query) IsCompound() bool {
	return len(q.Filters) > 0 && len(q.OrderBy) > 0
}

// Document is a raw backend record. Data keeps backend-native values
// (time.Time for timestamps, []interface{} for arrays).
type Document struct {
	ID   string
	Path string
	Data map[string]interface{}
}

// DocumentStore is the backend boundary: point reads, collection reads and
// appends over slash separated paths (collection/doc/subcollection/...).
type DocumentStore interface {
	// Get returns ErrNotFound when the document does not exist.
	Get(ctx context.Context, path string) (*Document, error)
	List(ctx context.Context, collectionPath string, q Query) ([]Document, error)
	// Add appends a document with a generated id and returns that id.
	Add(ctx context.Context, collectionPath string, data map[string]interface{}) (string, error)
}

// WritableStore is a DocumentStore that can also create or replace whole
// documents at a known path. Every backend implements it; seeding needs it.
type WritableStore interface {
	DocumentStore
	Set(ctx context.Context, path string, data map[string]interface{}) error
}

// JoinPath builds a store path from segments, skipping empty ones.
func JoinPath(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.Trim(s, "/")
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "/")
}

// SplitPath splits a store path into its parent (collection) and last segment.
func SplitPath(path string) (parent, id string) {
	path = strings.Trim(path, "/")
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}
