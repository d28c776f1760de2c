package followup

import (
	"context"
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"skybook/internal/logger"
)

// NewQueryMarker in a filter reply means the query is not a follow-up.
const NewQueryMarker = "NEW_QUERY"

const (
	searchK         = 3
	sessionCapacity = 50
	// MaxSessions bounds how many session indexes are held; the least recently used is dropped.
	MaxSessions = 1000
)

// SessionKey scopes a client session id to its caller. It is "" when the
// turn has neither, and such turns never use the cache.
func SessionKey(uid, session string) string {
	if uid == "" && session == "" {
		return ""
	}
	return uid + ":" + session
}

// Embedder turns text into a vector. Implemented by ai.GeminiProvider.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Filter narrows a past reply to what a follow-up query asks for, or
// answers with NewQueryMarker. Implemented by ai.GeminiProvider.
type Filter interface {
	FilterFollowUp(ctx context.Context, query, pastReply string) (string, error)
}

// Service answers follow-up questions from earlier replies of the same session.
type Service struct {
	embedder  Embedder
	filter    Filter
	threshold float64
	log       *logger.Logger

	mu       sync.Mutex
	sessions *lru.Cache[string, *Index]
}

func NewService(embedder Embedder, filter Filter, threshold float64, log *logger.Logger) *Service {
	return newService(embedder, filter, threshold, MaxSessions, log)
}

func newService(embedder Embedder, filter Filter, threshold float64, maxSessions int, log *logger.Logger) *Service {
	sessions, err := lru.New[string, *Index](maxSessions)
	if err != nil {
		panic(fmt.Sprintf("followup: %v", err))
	}
	return &Service{
		embedder:  embedder,
		filter:    filter,
		threshold: threshold,
		log:       log.Named("followup"),
		sessions:  sessions,
	}
}

// Sessions is the number of session indexes currently held.
func (s *Service) Sessions() int {
	return s.sessions.Len()
}

func (s *Service) index(session string, create bool) *Index {
	if session == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.sessions.Get(session)
	if !ok && create {
		idx = NewIndex(sessionCapacity)
		s.sessions.Add(session, idx)
	}
	return idx
}

// Lookup returns a filtered past reply when query is a follow-up of one.
// ok is false when the query should be handled as a new request.
func (s *Service) Lookup(ctx context.Context, session, query string) (reply string, ok bool, err error) {
	idx := s.index(session, false)
	if idx == nil || idx.Len() == 0 {
		return "", false, nil
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return "", false, fmt.Errorf("embed query: %w", err)
	}

	for _, m := range idx.Search(vector, searchK, s.threshold) {
		filtered, err := s.filter.FilterFollowUp(ctx, query, m.Reply)
		if err != nil {
			return "", false, fmt.Errorf("filter follow-up: %w", err)
		}
		if strings.Contains(filtered, NewQueryMarker) {
			continue
		}
		s.log.Debug("answered from earlier reply", logger.String("past_query", m.Query), logger.Float64("score", m.Score))
		return strings.TrimSpace(filtered), true, nil
	}
	return "", false, nil
}

// Remember stores an answered query for later follow-ups. An empty session is ignored.
func (s *Service) Remember(ctx context.Context, session, query, reply string) error {
	if session == "" {
		return nil
	}
	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return fmt.Errorf("embed query: %w", err)
	}
	s.index(session, true).Add(Entry{Query: query, Reply: reply, Vector: vector})
	return nil
}

// Forget drops everything remembered for session.
func (s *Service) Forget(session string) {
	s.sessions.Remove(session)
}
