package main

import (
	"context"
	stdlog "log"
	"os"

	"github.com/lil-gargs/portal/adapters/tokenizer"
	"github.com/lil-gargs/portal/internal/config"
	"github.com/lil-gargs/portal/internal/log"
	transport "github.com/lil-gargs/portal/transport/http"
)

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

	tok := tokenizer.NewJWTTokenizer([]byte(cfg.JWTSecret))
	issuer := transport.NewIssuer(tok, cfg.SessionTTL)
	router := transport.SetupRouter(issuer)

	log.Info(ctx, "development verification backend listening", "port", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
