package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/EvgrafovDR/todolist-clone/internal/app"
	"github.com/EvgrafovDR/todolist-clone/internal/bot"
	"github.com/EvgrafovDR/todolist-clone/internal/config"
	"github.com/EvgrafovDR/todolist-clone/internal/logger"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	if cfg.BotToken == "" {
		slog.Error("BOT_TOKEN is required for the bot process")
		os.Exit(1)
	}

	app, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		panic(err)
	}
	defer func() {
		closeErr := app.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	b, err := bot.New(cfg, slog.Default(), app.BotLinkService, app.GoalRepository)
	if err != nil {
		slog.Error("failed to initialize bot", "error", err)
		panic(err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		b.Stop()
	}()

	slog.Info("bot starting", "env", cfg.AppEnv)
	b.Start()
}
