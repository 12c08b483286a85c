// Package main содержит точку входа HTTP-шлюза ASPPIBRA DAO.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/asppibra-dao/core-api/internal/app/coreapi"
	"github.com/asppibra-dao/core-api/internal/config"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting core-api", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := coreapi.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize core-api app", slog.Any("err", err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("core-api app stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("core-api app stopped gracefully")
}
