// Package firestore provides the Cloud Firestore DocumentStore.
package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portfolio-backend/internal/domain"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Config selects the Firestore database. Credentials come from the standard
// Google application default chain unless CredentialsFile is set.
type Config struct {
	ProjectID       string
	DatabaseID      string
	CredentialsFile string
}

type Store struct {
	client *firestore.Client
}

func Open(ctx context.Context, cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, errors.New("firestore: project id is required")
	}
	dbID := cfg.DatabaseID
	if dbID == "" {
		dbID = firestore.DefaultDatabaseID
	}
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := firestore.NewClientWithDatabase(ctx, cfg.ProjectID, dbID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore: new client: %w", err)
	}
	return &Store{client: client}, nil
}

// New wraps an existing client.
func New(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

// translateError maps gRPC status codes onto domain errors.
func translateError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("firestore: %s %s: %w", op, path, domain.ErrNotFound)
	case codes.FailedPrecondition:
		// Firestore answers FailedPrecondition with a console link when a
		// composite index is missing.
		return fmt.Errorf("firestore: %s %s: %w: %v", op, path, domain.ErrIndexRequired, err)
	}
	return fmt.Errorf("firestore: %s %s: %w", op, path, err)
}

func (s *Store) Get(ctx context.Context, path string) (*domain.Document, error) {
	ref := s.client.Doc(path)
	if ref == nil {
		return nil, fmt.Errorf("firestore: %q is not a document path", path)
	}
	snap, err := ref.Get(ctx)
	if err != nil {
		return nil, translateError("get", path, err)
	}
	if !snap.Exists() {
		return nil, fmt.Errorf("firestore: get %s: %w", path, domain.ErrNotFound)
	}
	return &domain.Document{ID: ref.ID, Path: strings.Trim(path, "/"), Data: snap.Data()}, nil
}

func (s *Store) List(ctx context.Context, collectionPath string, q domain.Query) ([]domain.Document, error) {
	coll := s.client.Collection(collectionPath)
	if coll == nil {
		return nil, fmt.Errorf("firestore: %q is not a collection path", collectionPath)
	}
	query := coll.Query
	for _, f := range q.Filters {
		query = query.Where(f.Field, "==", f.Value)
	}
	for _, o := range q.OrderBy {
		dir := firestore.Asc
		if o.Direction == domain.Desc {
			dir = firestore.Desc
		}
		query = query.OrderBy(o.Field, dir)
	}

	snaps, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, translateError("list", collectionPath, err)
	}
	base := strings.Trim(collectionPath, "/")
	docs := make([]domain.Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, domain.Document{
			ID:   snap.Ref.ID,
			Path: domain.JoinPath(base, snap.Ref.ID),
			Data: snap.Data(),
		})
	}
	return docs, nil
}

func (s *Store) Add(ctx context.Context, collectionPath string, data map[string]interface{}) (string, error) {
	coll := s.client.Collection(collectionPath)
	if coll == nil {
		return "", fmt.Errorf("firestore: %q is not a collection path", collectionPath)
	}
	ref, _, err := coll.Add(ctx, data)
	if err != nil {
		return "", translateError("add", collectionPath, err)
	}
	return ref.ID, nil
}

// Set creates or replaces the document at path.
func (s *Store) Set(ctx context.Context, path string, data map[string]interface{}) error {
	ref := s.client.Doc(path)
	if ref == nil {
		return fmt.Errorf("firestore: %q is not a document path", path)
	}
	_, err := ref.Set(ctx, data)
	return translateError("set", path, err)
}
