package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"skybook/internal/config"
	"skybook/internal/logger"
	"skybook/internal/metrics"
	"skybook/internal/modules/booking"
)

// Tokens supplies the partner bearer token. Implemented by auth.Service.
type Tokens interface {
	Token(ctx context.Context) (string, error)
	Invalidate(ctx context.Context)
}

// Service queries every selected provider for a canonical record.
// A provider failure is recorded in its ProviderResult and never aborts the others.
type Service struct {
	endpoint  string
	providers []string
	currency  string
	tokens    Tokens
	http      *http.Client
	log       *logger.Logger
}

func NewService(cfg config.SearchConfig, tokens Tokens, log *logger.Logger) *Service {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	currency := cfg.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Service{
		endpoint:  cfg.Endpoint,
		providers: cfg.Providers,
		currency:  currency,
		tokens:    tokens,
		http:      &http.Client{Timeout: timeout},
		log:       log.Named("search"),
	}
}

// Providers returns the integrated provider set.
func (s *Service) Providers() []string {
	return s.providers
}

func (s *Service) Search(ctx context.Context, record booking.Record) Result {
	requests := Assemble(record, s.providers)
	result := Result{
		TripType:      record.TripType,
		Currency:      s.currency,
		SameDayReturn: record.TripType == booking.RoundTrip && record.DepartureDate == record.ReturnDate,
		Providers:     make([]ProviderResult, len(requests)),
	}

	token, err := s.tokens.Token(ctx)
	if err != nil {
		s.log.Error("partner token unavailable", logger.Error(err))
		for i, req := range requests {
			result.Providers[i] = ProviderResult{Provider: req.Provider, Err: fmt.Errorf("partner token: %w", err)}
			metrics.ProviderSearches.WithLabelValues(req.Provider, "error").Inc()
		}
		return result
	}

	// Each goroutine writes only its own slot.
	var g errgroup.Group
	for i, req := range requests {
		req.Payload.Currency = s.currency
		g.Go(func() error {
			result.Providers[i] = s.searchProvider(ctx, token, req)
			return nil
		})
	}
	_ = g.Wait()

	if failed := result.Failed(); len(failed) > 0 {
		s.log.Warn("providers failed", logger.Strings("providers", failed))
	}
	return result
}

func (s *Service) searchProvider(ctx context.Context, token string, req Request) ProviderResult {
	start := time.Now()
	offers, err := s.post(ctx, token, req)
	metrics.ProviderSearchDuration.WithLabelValues(req.Provider).Observe(time.Since(start).Seconds())

	outcome := "offers"
	switch {
	case err != nil:
		outcome = "error"
		s.log.Warn("provider search failed", logger.String("provider", req.Provider), logger.Error(err))
	case len(offers) == 0:
		outcome = "empty"
	}
	metrics.ProviderSearches.WithLabelValues(req.Provider, outcome).Inc()

	return ProviderResult{Provider: req.Provider, Offers: offers, Err: err}
}

func (s *Service) post(ctx context.Context, token string, req Request) ([]Offer, error) {
	body, err := json.Marshal(req.Payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		s.tokens.Invalidate(ctx)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrProviderStatus, resp.StatusCode)
	}
	return ParseResponse(respBody, req.Provider)
}
