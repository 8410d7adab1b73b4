package handler

import (
	"net/http"

	"github.com/mcoot/unogame-go/internal/api/middleware"
	"github.com/mcoot/unogame-go/internal/api/response"
	"github.com/mcoot/unogame-go/internal/dispatch"
	"github.com/mcoot/unogame-go/internal/emotes"
	"github.com/mcoot/unogame-go/internal/services/game"
)

// GameHandler handles game lifecycle endpoints
type GameHandler struct {
	controller *game.Controller
	dispatch   *dispatch.KeyedMutex
	emoteTable emotes.Table
}

// NewGameHandler creates a new game handler
func NewGameHandler(controller *game.Controller, dispatch *dispatch.KeyedMutex, emoteTable emotes.Table) *GameHandler {
	return &GameHandler{
		controller: controller,
		dispatch:   dispatch,
		emoteTable: emoteTable,
	}
}

// Start handles POST /api/v1/channels/{channel}/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	channel := channelFrom(r)

	unlock := h.dispatch.Lock(channel)
	defer unlock()

	started, err := h.controller.Start(r.Context(), channel, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameStateFromModel(started, player.ID, h.emoteTable))
}

// Get handles GET /api/v1/channels/{channel}/game
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	channel := channelFrom(r)

	current, err := h.controller.GetGame(r.Context(), channel)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateFromModel(current, player.ID, h.emoteTable))
}

// Stop handles POST /api/v1/channels/{channel}/stop
func (h *GameHandler) Stop(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	channel := channelFrom(r)

	unlock := h.dispatch.Lock(channel)
	defer unlock()

	if err := h.controller.Stop(r.Context(), channel, player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
