package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pagebrief/internal/config"
	"pagebrief/internal/database"
	"pagebrief/internal/scheduler"
	"pagebrief/internal/scraper"
	"pagebrief/internal/server"
	"pagebrief/internal/summarizer"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		log.InfoContext(ctx, "No .env file is loaded",
			"error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.ErrorContext(ctx, "Failed to load config",
			"error", err)

		return
	}

	db, err := database.New(ctx, cfg.DBPath, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize db",
			"error", err,
			"dbPath", cfg.DBPath)

		return
	}
	defer func() {
		if err = db.Close(); err != nil {
			log.ErrorContext(ctx, "Failed to close db",
				"error", err,
				"dbPath", cfg.DBPath)
		}
	}()
	log.InfoContext(ctx, "DB is initialized",
		"dbPath", cfg.DBPath)

	scr := scraper.New(
		cfg.FetchTimeout,
		cfg.MaxContentChars,
		cfg.CacheTTL,
		cfg.CacheMaxEntries,
		log,
	)

	factory := summarizer.NewFactory(summarizer.Keys{
		OpenAIAPIKey:     cfg.OpenAIAPIKey,
		OpenRouterAPIKey: cfg.OpenRouterAPIKey,
		OllamaBaseURL:    cfg.OllamaBaseURL,
	})

	srv := server.New(
		db,
		scr,
		func(provider, model, keyOverride string) (server.SummaryClient, error) {
			return factory.New(provider, model, keyOverride)
		},
		log,
	)

	sched := scheduler.New(ctx, db, cfg.HistoryRetention, log)
	if err = sched.Start(); err != nil {
		log.ErrorContext(ctx, "Failed to start scheduler",
			"error", err,
			"spec", scheduler.HourlyPruneSpec)

		return
	}
	defer sched.Stop()
	log.InfoContext(ctx, "Scheduler is started",
		"spec", scheduler.HourlyPruneSpec,
		"retention", cfg.HistoryRetention)

	go func() {
		if startErr := srv.Start(cfg.ListenAddr); startErr != nil &&
			!errors.Is(startErr, http.ErrServerClosed) {
			log.ErrorContext(ctx, "Server stopped unexpectedly",
				"error", startErr,
				"listenAddr", cfg.ListenAddr)
			cancel()
		}
	}()
	log.InfoContext(ctx, "Server is started",
		"listenAddr", cfg.ListenAddr)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-c:
		log.InfoContext(ctx, "Shutdown signal is received",
			"signal", sig.String())
	case <-ctx.Done():
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorContext(shutdownCtx, "Failed to shut down server",
			"error", err)
	}

	log.InfoContext(ctx, "Exiting...",
		"uptimeSeconds", time.Since(start).Seconds())
}
