package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sjounng/team-draft-lol/internal/config"
	"github.com/sjounng/team-draft-lol/internal/logging"
	"github.com/sjounng/team-draft-lol/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "team-draft-lol",
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("server startup failed", "error", err)
		os.Exit(1)
	}
	srv.Run(ctx, stop)
}
