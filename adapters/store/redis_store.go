package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/lil-gargs/portal/ports"
)

// RedisStore is a Redis implementation of the Persistence interface, for
// deployments where the portal agent must survive host restarts.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a new Redis store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		key:    "lil-gargs-session",
	}
}

// Save stores the session record
func (s *RedisStore) Save(ctx context.Context, state ports.PersistedState) error {
	payload, err := json.Marshal(envelope{Version: envelopeVersion, State: state})
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}

	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to save session record: %w", err)
	}

	return nil
}

// Load returns the stored record, or nil when none exists
func (s *RedisStore) Load(ctx context.Context) (*ports.PersistedState, error) {
	payload, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session record: %w", err)
	}

	var e envelope
	if err := json.Unmarshal(payload, &e); err != nil {
		return nil, fmt.Errorf("failed to decode session record: %w", err)
	}

	return &e.State, nil
}

// Clear removes the stored record
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to clear session record: %w", err)
	}
	return nil
}
