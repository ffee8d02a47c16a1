package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSessionStore keeps sessions as plain string keys in Redis so that
// several processes can share them.
type RedisSessionStore struct {
	client   redis.UniversalClient
	prefix   string
	lifetime time.Duration
}

// NewRedisSessionStore stores sessions under prefix+sessionID. A zero
// lifetime sets no TTL.
func NewRedisSessionStore(client redis.UniversalClient, prefix string, lifetime time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, prefix: prefix, lifetime: lifetime}
}

func (s *RedisSessionStore) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *RedisSessionStore) CreateSession(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrInvalidSessionInput
	}
	return insertWithFreshID(func(id string) error {
		ok, err := s.client.SetNX(ctx, s.key(id), userID, s.lifetime).Result()
		if err != nil {
			return fmt.Errorf("failed to store session: %w", err)
		}
		if !ok {
			return errSessionIDTaken
		}
		return nil
	})
}

func (s *RedisSessionStore) UserIDForSession(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrInvalidSessionInput
	}
	userID, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	return userID, nil
}

func (s *RedisSessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrInvalidSessionInput
	}
	deleted, err := s.client.Del(ctx, s.key(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if deleted == 0 {
		return ErrSessionNotFound
	}
	return nil
}
