package main

import (
	"context"
	"errors"
	stdlog "log"
	"os"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"

	"github.com/lil-gargs/portal/adapters/api"
	"github.com/lil-gargs/portal/adapters/events"
	"github.com/lil-gargs/portal/adapters/store"
	"github.com/lil-gargs/portal/adapters/wallet"
	"github.com/lil-gargs/portal/core"
	"github.com/lil-gargs/portal/internal/config"
	"github.com/lil-gargs/portal/internal/log"
	"github.com/lil-gargs/portal/ports"
	"github.com/lil-gargs/portal/service"
)

// Headless portal agent: loads (or resumes) a verification session, signs its
// challenge with a local keypair wallet and reports the outcome. The session
// token is passed as the first argument; without one the agent resumes the
// persisted session.
func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	format := log.OutputText
	if cfg.LogJSON {
		format = log.OutputJSON
	}
	ctx := log.NewContext(context.Background(), cfg.LogLevel, format, os.Stdout)

	var persistence ports.Persistence = store.NewMemoryStore()
	var publisher ports.EventPublisher = events.NopPublisher{}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			stdlog.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opts)
		persistence = store.NewRedisStore(redisClient)

		wmPublisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: redisClient},
			watermill.NewStdLogger(false, false),
		)
		if err != nil {
			stdlog.Fatalf("Failed to create Redis publisher: %v", err)
		}
		publisher = events.NewWatermillPublisher(wmPublisher)
	} else if cfg.StateFile != "" {
		persistence = store.NewFileStore(cfg.StateFile)
	}

	keypair, err := wallet.GenerateKeypair("Local Keypair")
	if err != nil {
		stdlog.Fatalf("Failed to create wallet: %v", err)
	}
	registry := wallet.NewRegistry(keypair)

	apiClient := api.New(cfg.APIBaseURL, nil)
	sessions := service.NewSessionStore(apiClient, persistence, publisher)
	flow := service.NewSignatureFlow(sessions, apiClient, registry, publisher)

	if len(os.Args) > 1 {
		sessions.LoadSession(ctx, os.Args[1])
	} else if !sessions.Resume(ctx) {
		stdlog.Fatal("No session token given and nothing to resume")
	}

	state := sessions.State()
	if state.Status != core.FetchLoaded || state.Session == nil {
		log.Error(ctx, "session unavailable", errors.New(state.Err))
		os.Exit(1)
	}

	countdown := service.NewCountdown()
	defer countdown.Stop()
	countdown.Start(ctx, state.Session.ExpiresAt, func(remaining time.Duration, expired bool) {
		log.Info(ctx, "session countdown", "remaining", core.FormatClock(remaining), "expired", expired)
	})

	if state.Session.WalletAddress != "" {
		log.Info(ctx, "session expects wallet", "address", state.Session.WalletAddress)
	}

	// Mobile hand-off links for continuing this session in a wallet app.
	portalURL := cfg.PortalURL + "/session/" + state.Token
	for _, w := range service.FallbackWallets() {
		log.Debug(ctx, "wallet deep link", "wallet", w.Name, "url", w.BuildLink(portalURL))
	}

	active, err := registry.Select(keypair.Name())
	if err != nil {
		stdlog.Fatalf("Failed to select wallet: %v", err)
	}
	if err := active.Connect(ctx); err != nil {
		stdlog.Fatalf("Failed to connect wallet: %v", err)
	}

	flow.Sign(ctx)

	signingState, signingErr := flow.State()
	switch signingState {
	case core.SigningSuccess:
		result := flow.Result()
		log.Info(ctx, "verification submitted",
			"verified", result.IsVerified,
			"nft_count", result.NFTCount,
		)
	default:
		log.Error(ctx, "signing did not complete", errors.New(signingErr), "state", string(signingState))
		os.Exit(1)
	}
}
