package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gym-buddy-bot/config"
	"gym-buddy-bot/internal/bot"
	"gym-buddy-bot/internal/db"
	"gym-buddy-bot/internal/gpt"
	"gym-buddy-bot/internal/gymstatus"
	"gym-buddy-bot/internal/screens"
	"gym-buddy-bot/internal/server"
	"gym-buddy-bot/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info").Fatal("Failed to load config", "error", err)
	}

	l := logger.New(cfg.Log.Level)
	if cfg.Log.Development {
		l = logger.NewDevelopment()
	}
	defer func() { _ = l.Sync() }()

	l.Info("Starting Gym Buddy bot...")

	if err := cfg.Validate(); err != nil {
		l.Fatal("Invalid configuration", "error", err)
	}

	// Initialize the store with retry
	var store db.Backend
	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		store, err = db.Open(cfg)
		if err == nil {
			break
		}
		l.Error("Failed to open store, retrying...", "driver", cfg.Store.Driver, "error", err)
		time.Sleep(time.Duration(i+1) * time.Second)
	}
	if store == nil {
		l.Fatal("Failed to open store after multiple attempts", "driver", cfg.Store.Driver, "error", err)
	}
	defer store.Close()
	l.Info("Store ready", "driver", cfg.Store.Driver)

	var opts []screens.Option
	if cfg.GPT.APIKey != "" {
		opts = append(opts, screens.WithCoach(gpt.NewClient(cfg.GPT.APIKey).WithModel(cfg.GPT.Model)))
	} else {
		l.Warn("GPT API key is not configured, /coach is disabled")
	}
	router := screens.NewRouter(store, cfg.Auth.EmailSuffix, l, opts...)

	telegramBot, err := bot.NewTelegramBot(cfg.Telegram.Token, cfg.Telegram.Debug, router, l)
	if err != nil {
		l.Fatal("Failed to create Telegram bot", "error", err)
	}

	ctx, cancelUpdates := context.WithCancel(context.Background())
	defer cancelUpdates()

	if err := telegramBot.Start(ctx); err != nil {
		l.Fatal("Failed to start Telegram bot", "error", err)
	}
	l.Info("Telegram bot started successfully")

	httpServer := server.NewServer(cfg.Server.Port, gymstatus.NewGenerator(), l)
	go func() {
		if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("Failed to start HTTP server", "error", err)
		}
	}()

	// Wait for termination signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("Shutting down bot...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// Stop HTTP server first
	if err := httpServer.Stop(shutdownCtx); err != nil {
		l.Error("Error during HTTP server shutdown", "error", err)
	}

	// Then stop bot
	if err := telegramBot.Stop(shutdownCtx); err != nil {
		l.Error("Error during bot shutdown", "error", err)
	}

	l.Info("Bot stopped successfully")
}
