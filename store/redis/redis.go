// Package redis provides a world.Store backed by Redis. States are stored as
// JSON blobs under a "world:" key prefix with a set index for listing.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hupe1980/agentville/world"
)

const (
	keyPrefix = "world:"
	indexKey  = "worlds"
)

// Store implements world.Store using Redis.
type Store struct {
	client *redis.Client
}

// New creates a store from a Redis URL (redis://host:port/db) and verifies
// connectivity.
func New(ctx context.Context, redisURL string) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &Store{client: client}, nil
}

// NewFromClient wraps an existing client.
func NewFromClient(client *redis.Client) *Store {
	return &Store{client: client}
}

func key(id string) string { return keyPrefix + id }

// Save stores the state JSON and indexes the id.
func (s *Store) Save(ctx context.Context, id string, state *world.State) error {
	if state == nil {
		return fmt.Errorf("save world %q: nil state", id)
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("save world %q: marshal: %w", id, err)
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key(id), data, 0)
	pipe.SAdd(ctx, indexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save world %q: %w", id, err)
	}
	return nil
}

// Load returns the state for the id or world.ErrNotFound.
func (s *Store) Load(ctx context.Context, id string) (*world.State, error) {
	data, err := s.client.Get(ctx, key(id)).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("load world %q: %w", id, world.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load world %q: %w", id, err)
	}
	var state world.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("load world %q: unmarshal: %w", id, err)
	}
	return &state, nil
}

// Delete removes the state and its index entry, reporting whether it
// existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := s.client.Del(ctx, key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("delete world %q: %w", id, err)
	}
	if err := s.client.SRem(ctx, indexKey, id).Err(); err != nil {
		return false, fmt.Errorf("delete world %q: %w", id, err)
	}
	return removed > 0, nil
}

// List returns metadata for every indexed world.
func (s *Store) List(ctx context.Context) ([]world.Metadata, error) {
	ids, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list worlds: %w", err)
	}
	metas := make([]world.Metadata, 0, len(ids))
	for _, id := range ids {
		state, err := s.Load(ctx, id)
		if err != nil {
			// index entry with no blob; skip rather than fail the listing
			continue
		}
		metas = append(metas, world.Metadata{ID: id, Name: state.Config.Name, UpdatedAt: state.UpdatedAt})
	}
	return metas, nil
}

// Exists reports whether a blob is stored for the id.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("world exists %q: %w", id, err)
	}
	return n > 0, nil
}
