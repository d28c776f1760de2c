// README: Assistant orchestrates one conversational turn: follow-up cache, extraction, normalization, search.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skybook/internal/ai"
	"skybook/internal/logger"
	"skybook/internal/metrics"
	"skybook/internal/modules/booking"
	"skybook/internal/modules/followup"
	"skybook/internal/modules/search"
)

// ErrEmptyMessage is returned for a blank user message.
var ErrEmptyMessage = errors.New("empty message")

type ReplyKind string

const (
	ReplyOffers        ReplyKind = "offers"
	ReplyFollowUp      ReplyKind = "followup"
	ReplyClarification ReplyKind = "clarification"
	ReplyRejection     ReplyKind = "rejection"
)

// Quota is implemented by aiusage.Service.
type Quota interface {
	UseToken(ctx context.Context, uid string) error
}

// Searcher is implemented by search.Service.
type Searcher interface {
	Search(ctx context.Context, record booking.Record) search.Result
}

// FollowUps is implemented by followup.Service.
type FollowUps interface {
	Lookup(ctx context.Context, session, query string) (string, bool, error)
	Remember(ctx context.Context, session, query, reply string) error
}

// Turn is one user message with the conversation so far.
// Session is the client's conversation id; follow-ups are scoped to UID and Session together.
type Turn struct {
	Session string
	UID     string
	Message string
	History followup.History
}

type Reply struct {
	Kind          ReplyKind              `json:"kind"`
	Text          string                 `json:"text"`
	Record        *booking.Record        `json:"record,omitempty"`
	Clarification *booking.Clarification `json:"clarification,omitempty"`
	Offers        []search.Offer         `json:"offers,omitempty"`
	Failed        []string               `json:"failed_providers,omitempty"`
	History       followup.History       `json:"history"`
}

type AssistantDeps struct {
	Extractor  ai.Extractor
	Normalizer *booking.Normalizer
	Searcher   Searcher
	FollowUps  FollowUps // optional
	Quota      Quota     // optional
	Logger     *logger.Logger
}

type Assistant struct {
	extractor  ai.Extractor
	normalizer *booking.Normalizer
	searcher   Searcher
	followups  FollowUps
	quota      Quota
	log        *logger.Logger
}

func NewAssistant(deps AssistantDeps) *Assistant {
	return &Assistant{
		extractor:  deps.Extractor,
		normalizer: deps.Normalizer,
		searcher:   deps.Searcher,
		followups:  deps.FollowUps,
		quota:      deps.Quota,
		log:        deps.Logger.Named("assistant"),
	}
}

// Handle answers one turn. Clarifications and rejections are replies;
// errors are reserved for turns the user must re-submit (or quota/oracle failures).
func (a *Assistant) Handle(ctx context.Context, turn Turn) (Reply, error) {
	message := strings.TrimSpace(turn.Message)
	if message == "" {
		return Reply{}, ErrEmptyMessage
	}

	// 1. Quota
	if a.quota != nil && turn.UID != "" {
		if err := a.quota.UseToken(ctx, turn.UID); err != nil {
			return Reply{}, err
		}
	}

	// 2. Follow-up on an earlier answer
	sessionKey := followup.SessionKey(turn.UID, turn.Session)
	if a.followups != nil && sessionKey != "" {
		text, ok, err := a.followups.Lookup(ctx, sessionKey, message)
		if err != nil {
			a.log.Warn("follow-up lookup failed", logger.Error(err))
		} else if ok {
			return a.reply(turn, message, Reply{Kind: ReplyFollowUp, Text: text}), nil
		}
	}

	// 3. Extraction
	data, err := a.extractor.ExtractBooking(ctx, message, turn.History.Context())
	if err != nil {
		a.log.Error("extraction failed", logger.Error(err))
		return Reply{}, fmt.Errorf("ai error: %w", err)
	}
	raw, err := booking.DecodeExtraction(data)
	if err != nil {
		a.log.Warn("oracle returned unparseable output", logger.String("raw", string(data)))
		return Reply{}, err
	}

	// 4. Normalization
	outcome, err := a.normalizer.Normalize(raw)
	if err != nil {
		return Reply{}, err
	}

	switch outcome.Kind {
	case booking.OutcomeRejection:
		return a.reply(turn, message, Reply{Kind: ReplyRejection, Text: outcome.Rejection}), nil
	case booking.OutcomeClarification:
		c := outcome.Clarification
		return a.reply(turn, message, Reply{Kind: ReplyClarification, Text: c.Message, Clarification: c}), nil
	}

	// 5. Search
	record := *outcome.Record
	result := a.searcher.Search(ctx, record)
	text := result.Summary()

	if a.followups != nil && sessionKey != "" && !result.Empty() {
		if err := a.followups.Remember(ctx, sessionKey, message, text); err != nil {
			a.log.Warn("follow-up remember failed", logger.Error(err))
		}
	}

	return a.reply(turn, message, Reply{
		Kind:   ReplyOffers,
		Text:   text,
		Record: &record,
		Offers: result.Offers(),
		Failed: result.Failed(),
	}), nil
}

func (a *Assistant) reply(turn Turn, message string, r Reply) Reply {
	metrics.AssistantReplies.WithLabelValues(string(r.Kind)).Inc()
	r.History = turn.History.Append(message, r.Text)
	return r
}
