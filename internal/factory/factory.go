package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/unogame-go/internal/deck"
	"github.com/mcoot/unogame-go/internal/dependencies/clock"
	"github.com/mcoot/unogame-go/internal/dependencies/random"
	"github.com/mcoot/unogame-go/internal/dispatch"
	"github.com/mcoot/unogame-go/internal/events"
	"github.com/mcoot/unogame-go/internal/scheduler"
	"github.com/mcoot/unogame-go/internal/services/game"
	"github.com/mcoot/unogame-go/internal/services/identity"
	"github.com/mcoot/unogame-go/internal/services/lobby"
	"github.com/mcoot/unogame-go/internal/services/settings"
	"github.com/mcoot/unogame-go/internal/storage"
	"github.com/mcoot/unogame-go/internal/storage/memory"
	redisstorage "github.com/mcoot/unogame-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Store storage.Store

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Infrastructure
	Scheduler   *scheduler.Scheduler
	Dispatch    *dispatch.KeyedMutex
	HubManager  *events.HubManager
	Broadcaster *events.Broadcaster

	// Services
	DeckService     *deck.Service
	IdentityService *identity.Service
	LobbyController *lobby.Controller
	SettingsManager *settings.Manager
	GameController  *game.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// IdentityConfig holds configuration for the identity service (optional)
	// If zero value, defaults to identity.DefaultConfig()
	IdentityConfig identity.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default identity config if not provided
	identityCfg := cfg.IdentityConfig
	if identityCfg.SessionDuration == 0 {
		identityCfg = identity.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, identityCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Store, clk clock.Clock, rnd random.Random, identityCfg identity.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Infrastructure
	sched := scheduler.New(clk, logger)
	keyed := dispatch.NewKeyedMutex()
	hubManager := events.NewHubManager(logger)
	broadcaster := events.NewBroadcaster(hubManager, logger)

	// Services
	deckService := deck.New(rnd)
	identityService := identity.New(store, clk, identityCfg)
	lobbyController := lobby.NewController(store, clk, sched, broadcaster, logger)
	settingsManager := settings.NewManager(store, clk, broadcaster, logger)
	gameController := game.NewController(store, deckService, clk, rnd, sched, keyed, broadcaster, logger)

	return &App{
		Store:           store,
		Clock:           clk,
		Random:          rnd,
		Scheduler:       sched,
		Dispatch:        keyed,
		HubManager:      hubManager,
		Broadcaster:     broadcaster,
		DeckService:     deckService,
		IdentityService: identityService,
		LobbyController: lobbyController,
		SettingsManager: settingsManager,
		GameController:  gameController,
	}
}
