package storage

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
)

// Config holds SurrealDB connection settings for the key-value store.
type Config struct {
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
}

// SurrealStore implements Store on top of SurrealDB. Every key lives as one
// record in the kv_entry table, so a Get/Set pair touches exactly one row.
type SurrealStore struct {
	db     *surrealdb.DB
	config Config
}

type kvEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// NewSurrealStore creates a new SurrealDB-backed store.
func NewSurrealStore(cfg Config) *SurrealStore {
	return &SurrealStore{config: cfg}
}

// Connect establishes a connection to SurrealDB.
func (s *SurrealStore) Connect(ctx context.Context) error {
	endpoint := fmt.Sprintf("ws://%s:%s", s.config.Host, s.config.Port)

	db, err := surrealdb.FromEndpointURLString(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	_, err = db.SignIn(ctx, &surrealdb.Auth{
		Username: s.config.User,
		Password: s.config.Password,
	})
	if err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: signin failed: %v", ErrConnection, err)
	}

	if err := db.Use(ctx, s.config.Namespace, s.config.Database); err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: use failed: %v", ErrConnection, err)
	}

	s.db = db
	return nil
}

// Close closes the database connection.
func (s *SurrealStore) Close() error {
	if s.db != nil {
		return s.db.Close(context.Background())
	}
	return nil
}

// Ping checks the database connection.
func (s *SurrealStore) Ping(ctx context.Context) error {
	if s.db == nil {
		return ErrConnection
	}
	if _, err := s.db.Version(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Get returns the value stored under key, or ErrNotFound.
func (s *SurrealStore) Get(ctx context.Context, key string) (string, error) {
	if s.db == nil {
		return "", ErrConnection
	}

	results, err := surrealdb.Query[[]kvEntry](ctx, s.db,
		`SELECT key, value FROM kv_entry WHERE key = $key LIMIT 1`,
		map[string]any{"key": key},
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrQuery, err)
	}
	if results == nil || len(*results) == 0 {
		return "", ErrNotFound
	}

	first := (*results)[0]
	if first.Status != "OK" {
		return "", fmt.Errorf("%w: status %s", ErrQuery, first.Status)
	}
	if len(first.Result) == 0 {
		return "", ErrNotFound
	}
	return first.Result[0].Value, nil
}

// Set writes value under key, creating the entry if it does not exist.
func (s *SurrealStore) Set(ctx context.Context, key, value string) error {
	if s.db == nil {
		return ErrConnection
	}

	_, err := surrealdb.Query[any](ctx, s.db,
		`UPSERT kv_entry SET key = $key, value = $value, updated_on = time::now() WHERE key = $key`,
		map[string]any{"key": key, "value": value},
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return nil
}

// Delete removes the entry under key. Deleting an absent key is not an error.
func (s *SurrealStore) Delete(ctx context.Context, key string) error {
	if s.db == nil {
		return ErrConnection
	}

	_, err := surrealdb.Query[any](ctx, s.db,
		`DELETE kv_entry WHERE key = $key`,
		map[string]any{"key": key},
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return nil
}
