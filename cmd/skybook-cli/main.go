// Interactive console for the booking assistant.
// Type "exit" to quit and "reset" to start a new conversation.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"skybook/internal/ai"
	"skybook/internal/config"
	"skybook/internal/infra"
	"skybook/internal/logger"
	"skybook/internal/modules/auth"
	"skybook/internal/modules/booking"
	"skybook/internal/modules/followup"
	"skybook/internal/modules/search"
	"skybook/internal/service"
)

const session = "console"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	lg, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal(err)
	}

	provider, err := ai.NewGeminiProvider(ctx, ai.Config{
		APIKey:         cfg.AI.GeminiKey,
		Model:          cfg.AI.Model,
		EmbeddingModel: cfg.AI.EmbeddingModel,
		Location:       loc,
	})
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	// The token cache is optional here; a missing Redis only costs extra token fetches.
	var cache auth.TokenCache
	if rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr); err != nil {
		lg.Warn("running without token cache", logger.Error(err))
	} else {
		defer rdb.Close()
		cache = auth.NewStore(rdb)
	}

	partner := auth.NewClient(cfg.Partner.AuthURL, cfg.Partner.Username, cfg.Partner.Password, nil)
	followups := followup.NewService(provider, provider, cfg.AI.FollowUpThreshold, lg)
	assistant := service.NewAssistant(service.AssistantDeps{
		Extractor:  provider,
		Normalizer: booking.NewNormalizer(booking.NewDateResolver(loc, time.Now)),
		Searcher:   search.NewService(cfg.Search, auth.NewService(partner, cache, cfg.Partner.TokenTTL, lg), lg),
		FollowUps:  followups,
		Logger:     lg,
	})

	fmt.Println("Where would you like to fly? (type 'exit' to quit)")
	history := followup.NewHistory()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			return
		}
		message := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(message) {
		case "":
			continue
		case "exit", "quit":
			return
		case "reset":
			history = followup.NewHistory()
			followups.Forget(followup.SessionKey("", session))
			fmt.Println("Assistant: Starting over. Where would you like to fly?")
			continue
		}

		reply, err := assistant.Handle(ctx, service.Turn{Session: session, Message: message, History: history})
		switch {
		case errors.Is(err, booking.ErrOracleParse):
			fmt.Println("Assistant: Couldn't understand your request. Please try again.")
			continue
		case err != nil:
			if ctx.Err() != nil {
				return
			}
			fmt.Printf("Assistant: something went wrong: %v\n", err)
			continue
		}

		history = reply.History
		fmt.Printf("Assistant: %s\n", reply.Text)
		if len(reply.Failed) > 0 {
			lg.Debug("providers failed", logger.Strings("providers", reply.Failed))
		}
	}
}
