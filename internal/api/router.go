package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/unogame-go/internal/api/handler"
	"github.com/mcoot/unogame-go/internal/api/middleware"
	"github.com/mcoot/unogame-go/internal/dispatch"
	"github.com/mcoot/unogame-go/internal/emotes"
	"github.com/mcoot/unogame-go/internal/events"
	commonmiddleware "github.com/mcoot/unogame-go/internal/middleware"
	"github.com/mcoot/unogame-go/internal/services/game"
	"github.com/mcoot/unogame-go/internal/services/identity"
	"github.com/mcoot/unogame-go/internal/services/lobby"
	"github.com/mcoot/unogame-go/internal/services/settings"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	IdentityService *identity.Service
	LobbyController *lobby.Controller
	SettingsManager *settings.Manager
	GameController  *game.Controller
	Dispatch        *dispatch.KeyedMutex
	HubManager      *events.HubManager
	EmoteTable      emotes.Table
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.IdentityService)
	sessionHandler := handler.NewSessionHandler(cfg.LobbyController, cfg.GameController, cfg.Dispatch, cfg.HubManager, cfg.EmoteTable)
	settingsHandler := handler.NewSettingsHandler(cfg.SettingsManager, cfg.Dispatch)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.Dispatch, cfg.EmoteTable)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.IdentityService)
	loggingMiddleware := commonmiddleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)

	// Channel session routes (all require auth)
	channels := api.PathPrefix("/channels/{channel}").Subrouter()
	channels.Use(authMiddleware)
	channels.HandleFunc("/lobby", sessionHandler.CreateLobby).Methods(http.MethodPost)
	channels.HandleFunc("/session", sessionHandler.GetSession).Methods(http.MethodGet)
	channels.HandleFunc("/session", sessionHandler.Delete).Methods(http.MethodDelete)
	channels.HandleFunc("/join", sessionHandler.Join).Methods(http.MethodPost)
	channels.HandleFunc("/leave", sessionHandler.Leave).Methods(http.MethodPost)
	channels.HandleFunc("/events", sessionHandler.Stream).Methods(http.MethodGet)

	// Settings routes
	channels.HandleFunc("/settings", settingsHandler.Get).Methods(http.MethodGet)
	channels.HandleFunc("/settings/toggle", settingsHandler.Toggle).Methods(http.MethodPost)
	channels.HandleFunc("/settings/timeout", settingsHandler.SetTimeout).Methods(http.MethodPut)

	// Game routes
	channels.HandleFunc("/start", gameHandler.Start).Methods(http.MethodPost)
	channels.HandleFunc("/game", gameHandler.Get).Methods(http.MethodGet)
	channels.HandleFunc("/stop", gameHandler.Stop).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
