package auth

import (
	"context"
	"time"

	"skybook/internal/logger"
)

// TokenCache is implemented by Store.
type TokenCache interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string, ttl time.Duration) error
	Delete(ctx context.Context) error
}

// TokenSource is implemented by Client.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Service hands out the partner bearer token, fetching it only on a cache miss.
// Cache failures are logged and never block a search.
type Service struct {
	source TokenSource
	cache  TokenCache
	ttl    time.Duration
	log    *logger.Logger
}

func NewService(source TokenSource, cache TokenCache, ttl time.Duration, log *logger.Logger) *Service {
	return &Service{source: source, cache: cache, ttl: ttl, log: log.Named("auth")}
}

func (s *Service) Token(ctx context.Context) (string, error) {
	if s.cache != nil {
		token, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn("token cache read failed", logger.Error(err))
		} else if token != "" {
			return token, nil
		}
	}

	token, err := s.source.Token(ctx)
	if err != nil {
		return "", err
	}

	if s.cache != nil && s.ttl > 0 {
		if err := s.cache.Set(ctx, token, s.ttl); err != nil {
			s.log.Warn("token cache write failed", logger.Error(err))
		}
	}
	return token, nil
}

// Invalidate drops the cached token after a provider rejected it.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx); err != nil {
		s.log.Warn("token cache delete failed", logger.Error(err))
	}
}
