package aiusage

import (
	"context"
	"errors"

	"skybook/internal/logger"
)

// Service orchestrates AI token-usage logic.
type Service struct {
	store *Store
	log   *logger.Logger
}

// NewService creates a Service backed by the given Store.
func NewService(store *Store, log *logger.Logger) *Service {
	return &Service{store: store, log: log.Named("aiusage")}
}

// UseToken deducts one token from the caller's monthly allowance.
// If the caller row does not exist yet it is initialised and the token is immediately consumed.
// Returns ErrInsufficientTokens when the quota for the current month is exhausted.
func (s *Service) UseToken(ctx context.Context, uid string) error {
	err := s.store.UseToken(ctx, uid)
	if !errors.Is(err, ErrInsufficientTokens) {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.store.EnsureUser(ctx, uid); initErr != nil {
		return initErr
	}
	err = s.store.UseToken(ctx, uid)
	if errors.Is(err, ErrInsufficientTokens) {
		s.log.Info("extraction quota exhausted", logger.String("uid", uid))
	}
	return err
}

func (s *Service) Remaining(ctx context.Context, uid string) (int, error) {
	return s.store.Remaining(ctx, uid)
}
