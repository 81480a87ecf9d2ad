package main

import (
	"log/slog"
	"net/http"

	"github.com/EvgrafovDR/todolist-clone/internal/app"
	"github.com/EvgrafovDR/todolist-clone/internal/config"
	"github.com/EvgrafovDR/todolist-clone/internal/logger"
	"github.com/EvgrafovDR/todolist-clone/internal/routes"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

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

	handler := routes.SetupRoutes(app)
	slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)

	err = http.ListenAndServe(":"+cfg.Port, handler)
	if err != nil {
		slog.Error("server failed", "error", err)
		panic(err)
	}
}
