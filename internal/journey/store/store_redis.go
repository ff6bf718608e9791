package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"claimflow/pkg/domain"
)

const completedKeyPrefix = "journey:completed:"

// RedisStore keeps completed sets in Redis so journeys survive instance
// restarts but still expire after the session inactivity window.
type RedisStore struct {
	client     *redis.Client
	sessionTTL time.Duration
}

// NewRedis constructs a Redis-backed completed-slugs store. sessionTTL is
// the inactivity window after which the journey instance is discarded.
func NewRedis(client *redis.Client, sessionTTL time.Duration) *RedisStore {
	return &RedisStore{client: client, sessionTTL: sessionTTL}
}

func (s *RedisStore) key(claim domain.ClaimID) string {
	return completedKeyPrefix + claim.String()
}

func (s *RedisStore) Completed(ctx context.Context, claim domain.ClaimID) ([]domain.Slug, error) {
	values, err := s.client.LRange(ctx, s.key(claim), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read completed slugs: %w", err)
	}
	out := make([]domain.Slug, len(values))
	for i, v := range values {
		out[i] = domain.Slug(v)
	}
	return out, nil
}

// MarkCompleted appends slug to the completed list and refreshes the
// session TTL. Appending is idempotent per slug.
func (s *RedisStore) MarkCompleted(ctx context.Context, claim domain.ClaimID, slug domain.Slug) error {
	key := s.key(claim)
	existing, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("read completed slugs: %w", err)
	}
	for _, v := range existing {
		if v == string(slug) {
			return s.touch(ctx, key)
		}
	}
	if err := s.client.RPush(ctx, key, string(slug)).Err(); err != nil {
		return fmt.Errorf("mark slug completed: %w", err)
	}
	return s.touch(ctx, key)
}

func (s *RedisStore) Reset(ctx context.Context, claim domain.ClaimID) error {
	if err := s.client.Del(ctx, s.key(claim)).Err(); err != nil {
		return fmt.Errorf("reset completed slugs: %w", err)
	}
	return nil
}

func (s *RedisStore) touch(ctx context.Context, key string) error {
	if err := s.client.Expire(ctx, key, s.sessionTTL).Err(); err != nil {
		return fmt.Errorf("refresh session ttl: %w", err)
	}
	return nil
}
