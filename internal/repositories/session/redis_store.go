// Package session keeps per-user session values such as the operative client selection.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	portsrepo "github.com/SscSPs/currency_exchange_app/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps selections as plain string keys that expire after ttl.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ portsrepo.OperativeClientStore = (*RedisStore)(nil)

func NewRedisStore(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(userID string) string {
	return s.prefix + "session:" + userID + ":operative_client"
}

func (s *RedisStore) GetOperativeClientID(ctx context.Context, userID string) (string, bool, error) {
	clientID, err := s.client.Get(ctx, s.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read operative client of user %s: %w", userID, err)
	}
	return clientID, true, nil
}

// SetOperativeClientID stores the selection and restarts its expiry.
func (s *RedisStore) SetOperativeClientID(ctx context.Context, userID, clientID string) error {
	if err := s.client.Set(ctx, s.key(userID), clientID, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store operative client of user %s: %w", userID, err)
	}
	return nil
}

func (s *RedisStore) ClearOperativeClientID(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear operative client of user %s: %w", userID, err)
	}
	return nil
}
