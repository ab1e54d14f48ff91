package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Document-store collection names. Documents are keyed "<collection>:<id>",
// simulating per-entity tables the way the relational side has them.
const (
	CollectionSneakers   = "sneakers"
	CollectionBrands     = "brands"
	CollectionCategories = "categories"
	CollectionCarts      = "carts"
)

// ErrDocumentNotFound is returned by Get when no document exists under the
// given collection and id.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore is the denormalized read model. Every write is a full-state
// overwrite keyed by the relational id, which makes syncs idempotent and
// order-independent within a fan-out.
type DocumentStore interface {
	Put(ctx context.Context, collection, id string, doc any) error
	Get(ctx context.Context, collection, id string) ([]byte, error)
	Delete(ctx context.Context, collection, id string) error
	List(ctx context.Context, collection string) ([][]byte, error)
}

// RedisDocumentStore keeps documents as JSON strings in Redis.
type RedisDocumentStore struct {
	client *redis.Client
}

// NewRedisDocumentStore creates a document store backed by the given client.
func NewRedisDocumentStore(client *redis.Client) *RedisDocumentStore {
	return &RedisDocumentStore{client: client}
}

func documentKey(collection, id string) string {
	return collection + ":" + id
}

// Put marshals the document to JSON and overwrites any previous state.
func (s *RedisDocumentStore) Put(ctx context.Context, collection, id string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document %s/%s: %w", collection, id, err)
	}
	if err := s.client.Set(ctx, documentKey(collection, id), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store document %s/%s: %w", collection, id, err)
	}
	return nil
}

// Get retrieves the raw JSON of a single document.
func (s *RedisDocumentStore) Get(ctx context.Context, collection, id string) ([]byte, error) {
	data, err := s.client.Get(ctx, documentKey(collection, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s/%s: %w", collection, id, err)
	}
	return data, nil
}

// Delete removes a single document. Deleting an absent document is not an
// error, matching the overwrite semantics of Put.
func (s *RedisDocumentStore) Delete(ctx context.Context, collection, id string) error {
	if err := s.client.Del(ctx, documentKey(collection, id)).Err(); err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", collection, id, err)
	}
	return nil
}

// List returns the raw JSON of every document in a collection. SCAN keeps
// the server responsive on large collections; the values are fetched with a
// single MGET per key batch.
func (s *RedisDocumentStore) List(ctx context.Context, collection string) ([][]byte, error) {
	var docs [][]byte
	iter := s.client.Scan(ctx, 0, collection+":*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == 100 {
			batch, err := s.fetch(ctx, keys)
			if err != nil {
				return nil, err
			}
			docs = append(docs, batch...)
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan collection %s: %w", collection, err)
	}
	if len(keys) > 0 {
		batch, err := s.fetch(ctx, keys)
		if err != nil {
			return nil, err
		}
		docs = append(docs, batch...)
	}
	return docs, nil
}

func (s *RedisDocumentStore) fetch(ctx context.Context, keys []string) ([][]byte, error) {
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}
	docs := make([][]byte, 0, len(values))
	for _, v := range values {
		if str, ok := v.(string); ok {
			docs = append(docs, []byte(str))
		}
	}
	return docs, nil
}
