package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/voxplan/voxplan/adapter/cli"
	"github.com/voxplan/voxplan/internal/app"
	"github.com/voxplan/voxplan/pkg/config"
	"github.com/voxplan/voxplan/pkg/observability"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       observability.LogLevel(cfg.LogLevel),
		Format:      observability.LogFormat(cfg.LogFormat),
		ServiceName: "voxplan",
	})
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer container.Close()
	cli.SetContainer(container)

	if cfg.UserID != "" {
		userID, err := uuid.Parse(cfg.UserID)
		if err != nil {
			logger.Error("invalid VOXPLAN_USER_ID", "error", err)
			os.Exit(1)
		}
		cli.SetCurrentUserID(userID)
	}

	cli.Execute(ctx)
}
