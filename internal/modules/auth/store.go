package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const tokenKey = "partner:token"

// Store caches the partner token in Redis.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Get returns the cached token, or "" when none is cached.
func (s *Store) Get(ctx context.Context) (string, error) {
	token, err := s.rdb.Get(ctx, tokenKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return token, err
}

func (s *Store) Set(ctx context.Context, token string, ttl time.Duration) error {
	return s.rdb.Set(ctx, tokenKey, token, ttl).Err()
}

func (s *Store) Delete(ctx context.Context) error {
	return s.rdb.Del(ctx, tokenKey).Err()
}
