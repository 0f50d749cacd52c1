package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"rekakata/internal/config"
	"rekakata/internal/engine"
	"rekakata/internal/export"
	"rekakata/internal/groq"
	"rekakata/internal/handlers"
	"rekakata/internal/httpclient"
	"rekakata/internal/telegram"
	"rekakata/internal/trends"
	"rekakata/internal/validate"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadBot()
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg)

	catalog, err := trends.Load(cfg.TrendDataPath)
	if err != nil {
		// No trend data means the injector has nothing to work with;
		// refuse to start.
		logger.Error("trend catalog load failed", "err", err)
		os.Exit(1)
	}

	httpClient := httpclient.New(httpclient.Options{
		Timeout: cfg.HTTPTimeout,
	})

	tg, err := telegram.New(telegram.Options{
		Token:      cfg.TelegramToken,
		HTTPClient: httpClient,
		Logger:     logger,
		Debug:      cfg.Debug,
	})
	if err != nil {
		logger.Error("telegram init failed", "err", err)
		os.Exit(1)
	}

	inference := groq.New(groq.Options{
		APIKey:      cfg.GroqAPIKey,
		BaseURL:     cfg.GroqBaseURL,
		Model:       cfg.GroqModel,
		Temperature: cfg.GroqTemperature,
		MaxTokens:   cfg.GroqMaxTokens,
		MaxRetries:  cfg.GroqMaxRetries,
		HTTPClient:  httpClient,
		Logger:      logger,
	})

	eng := engine.New(engine.Options{
		Validator: validate.New(cfg.MaxInputLength),
		Injector:  trends.NewInjector(catalog, trends.InjectorOptions{}),
		Completer: inference,
		Logger:    logger,
	})

	exports := export.NewStore(export.Options{
		Dir:         cfg.OutputDir,
		HTMLPreview: true,
		Logger:      logger,
	})

	handler := handlers.New(handlers.Options{
		Telegram: tg,
		Engine:   eng,
		Exports:  exports,
		Logger:   logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("bot started", "username", tg.Username())

	updates := tg.Updates(telegram.UpdatesOptions{
		Timeout: 30 * time.Second,
	})
	defer tg.StopUpdates()

	sem := make(chan struct{}, cfg.MaxConcurrent)
	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return
		case update, ok := <-updates:
			if !ok {
				logger.Info("updates channel closed")
				return
			}

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}

			go func(update telegram.Update) {
				defer func() { <-sem }()

				reqCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
				defer cancel()

				if err := handler.HandleUpdate(reqCtx, update); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("handle update failed", "err", err)
				}
			}(update)
		}
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}
