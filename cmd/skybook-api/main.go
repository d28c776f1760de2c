// README: Entry point; loads config, wires the booking assistant and serves HTTP until SIGTERM.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skybook/internal/ai"
	"skybook/internal/config"
	httptransport "skybook/internal/http"
	"skybook/internal/http/handlers"
	"skybook/internal/infra"
	"skybook/internal/logger"
	"skybook/internal/modules/aiusage"
	"skybook/internal/modules/auth"
	"skybook/internal/modules/booking"
	"skybook/internal/modules/followup"
	"skybook/internal/modules/search"
	"skybook/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		lg.Fatal("timezone", logger.Error(err))
	}
	normalizer := booking.NewNormalizer(booking.NewDateResolver(loc, time.Now))

	gemini, err := ai.NewGeminiProvider(ctx, ai.Config{
		APIKey:         cfg.AI.GeminiKey,
		Model:          cfg.AI.Model,
		EmbeddingModel: cfg.AI.EmbeddingModel,
		Location:       loc,
	})
	if err != nil {
		lg.Fatal("gemini init", logger.Error(err))
	}
	defer gemini.Close()

	redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		lg.Fatal("redis init", logger.Error(err))
	}
	defer redisClient.Close()

	partner := auth.NewClient(cfg.Partner.AuthURL, cfg.Partner.Username, cfg.Partner.Password, nil)
	tokens := auth.NewService(partner, auth.NewStore(redisClient), cfg.Partner.TokenTTL, lg)
	searchSvc := search.NewService(cfg.Search, tokens, lg)
	followups := followup.NewService(gemini, gemini, cfg.AI.FollowUpThreshold, lg)

	deps := service.AssistantDeps{
		Extractor:  gemini,
		Normalizer: normalizer,
		Searcher:   searchSvc,
		FollowUps:  followups,
		Logger:     lg,
	}

	verifier, err := infra.NewCallerVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		lg.Fatal("firebase init", logger.Error(err))
	}
	// Anonymous callers have no uid, so quota only exists with a verifier.
	var quota handlers.QuotaReader
	if verifier != nil {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			lg.Fatal("postgres init", logger.Error(err))
		}
		defer dbPool.Close()
		usage := aiusage.NewService(aiusage.NewStore(dbPool), lg)
		deps.Quota = usage
		quota = usage
	} else {
		lg.Warn("SKYBOOK_FIREBASE_PROJECT_ID not set; serving anonymous callers without quota")
	}

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Assistant:  service.NewAssistant(deps),
		Normalizer: normalizer,
		Verifier:   verifier,
		Quota:      quota,
		Logger:     lg,
		Timeout:    cfg.Search.Timeout + 30*time.Second,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("shutdown", logger.Error(err))
		}
	}()

	lg.Info("listening", logger.String("addr", cfg.HTTP.Addr), logger.Strings("providers", searchSvc.Providers()))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Fatal("serve", logger.Error(err))
	}
}
