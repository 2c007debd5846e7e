// Package memory provides an in-process DocumentStore. It mirrors Firestore
// query semantics closely enough to exercise the data access layer: ordering
// drops documents lacking the order field, and compound filter+order queries
// can be made to fail until a matching index is declared.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"portfolio-backend/internal/domain"

	"github.com/google/uuid"
)

type Option func(*Store)

// WithIndexEnforcement makes compound queries fail with
// domain.ErrIndexRequired unless declared through AddIndex.
func WithIndexEnforcement() Option {
	return func(s *Store) { s.enforceIndexes = true }
}

// WithIDGenerator replaces the uuid based id generator used by Add.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// Store keeps documents keyed by collection path, then document id.
type Store struct {
	mu             sync.RWMutex
	collections    map[string]map[string]map[string]interface{}
	indexes        map[string]struct{}
	enforceIndexes bool
	newID          func() string
}

func New(opts ...Option) *Store {
	s := &Store{
		collections: make(map[string]map[string]map[string]interface{}),
		indexes:     make(map[string]struct{}),
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func segments(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func checkDocPath(path string) error {
	n := len(segments(path))
	if n == 0 || n%2 != 0 {
		return fmt.Errorf("memory: %q is not a document path", path)
	}
	return nil
}

func checkCollectionPath(path string) error {
	if n := len(segments(path)); n%2 != 1 {
		return fmt.Errorf("memory: %q is not a collection path", path)
	}
	return nil
}

func indexKey(collection string, q domain.Query) string {
	var b strings.Builder
	b.WriteString(strings.Trim(collection, "/"))
	for _, f := range q.Filters {
		b.WriteString("|" + f.Field + "==")
	}
	for _, o := range q.OrderBy {
		b.WriteString("|" + o.Field + ":" + o.Direction.String())
	}
	return b.String()
}

// AddIndex declares a composite index covering queries shaped like q.
func (s *Store) AddIndex(collectionPath string, q domain.Query) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexes[indexKey(collectionPath, q)] = struct{}{}
}

func (s *Store) Get(ctx context.Context, path string) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkDocPath(path); err != nil {
		return nil, err
	}
	parent, id := domain.SplitPath(path)

	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.collections[parent][id]
	if !ok {
		return nil, fmt.Errorf("memory: get %s: %w", path, domain.ErrNotFound)
	}
	return &domain.Document{ID: id, Path: domain.JoinPath(parent, id), Data: copyMap(data)}, nil
}

func (s *Store) List(ctx context.Context, collectionPath string, q domain.Query) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkCollectionPath(collectionPath); err != nil {
		return nil, err
	}
	collectionPath = strings.Trim(collectionPath, "/")

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.enforceIndexes && q.IsCompound() {
		if _, ok := s.indexes[indexKey(collectionPath, q)]; !ok {
			return nil, fmt.Errorf("memory: list %s: %w", collectionPath, domain.ErrIndexRequired)
		}
	}

	docs := make([]domain.Document, 0, len(s.collections[collectionPath]))
	for id, data := range s.collections[collectionPath] {
		if !matches(data, q.Filters) || !hasFields(data, q.OrderBy) {
			continue
		}
		docs = append(docs, domain.Document{ID: id, Path: domain.JoinPath(collectionPath, id), Data: copyMap(data)})
	}
	sort.SliceStable(docs, func(i, j int) bool {
		for _, o := range q.OrderBy {
			c := compare(docs[i].Data[o.Field], docs[j].Data[o.Field])
			if c == 0 {
				continue
			}
			if o.Direction == domain.Desc {
				return c > 0
			}
			return c < 0
		}
		return docs[i].ID < docs[j].ID
	})
	return docs, nil
}

func (s *Store) Add(ctx context.Context, collectionPath string, data map[string]interface{}) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := checkCollectionPath(collectionPath); err != nil {
		return "", err
	}
	id := s.newID()
	if err := s.Set(ctx, domain.JoinPath(collectionPath, id), data); err != nil {
		return "", err
	}
	return id, nil
}

// Set creates or replaces the document at path.
func (s *Store) Set(ctx context.Context, path string, data map[string]interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkDocPath(path); err != nil {
		return err
	}
	parent, id := domain.SplitPath(path)

	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.collections[parent]
	if !ok {
		coll = make(map[string]map[string]interface{})
		s.collections[parent] = coll
	}
	coll[id] = copyMap(data)
	return nil
}

func matches(data map[string]interface{}, filters []domain.Filter) bool {
	for _, f := range filters {
		v, ok := data[f.Field]
		if !ok || compare(v, f.Value) != 0 {
			return false
		}
	}
	return true
}

func hasFields(data map[string]interface{}, orders []domain.Order) bool {
	for _, o := range orders {
		if v, ok := data[o.Field]; !ok || v == nil {
			return false
		}
	}
	return true
}

func copyMap(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return copyMap(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i := range t {
			out[i] = copyValue(t[i])
		}
		return out
	case []string:
		return append([]string(nil), t...)
	}
	return v
}
