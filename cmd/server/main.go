package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mcoot/unogame-go/internal/api"
	"github.com/mcoot/unogame-go/internal/emotes"
	"github.com/mcoot/unogame-go/internal/factory"
	redisstorage "github.com/mcoot/unogame-go/internal/storage/redis"
)

type config struct {
	Host        string `env:"HOST" envDefault:""`
	Port        int    `env:"PORT" envDefault:"8080"`
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL"`
	EmotesPath  string `env:"EMOTES_PATH" envDefault:"data/emotes.json"`

	// Emoteless skips the emote table and renders cards with plain
	// color squares instead.
	Emoteless bool `env:"EMOTELESS" envDefault:"false"`
}

func main() {
	// Load .env if present; real env always wins
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		logger.Error("failed to parse environment", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Card display table loads before anything else
	var emoteTable emotes.Table
	if cfg.Emoteless {
		emoteTable = emotes.ColorFallback()
	} else {
		var err error
		emoteTable, err = emotes.Load(cfg.EmotesPath)
		if err != nil {
			logger.Error("failed to load emote table",
				slog.String("path", cfg.EmotesPath),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Build factory config from environment
	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.StorageType,
	}

	// Configure Redis if storage type is redis
	if factoryCfg.StorageType == factory.StorageTypeRedis {
		if cfg.RedisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		IdentityService: app.IdentityService,
		LobbyController: app.LobbyController,
		SettingsManager: app.SettingsManager,
		GameController:  app.GameController,
		Dispatch:        app.Dispatch,
		HubManager:      app.HubManager,
		EmoteTable:      emoteTable,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
