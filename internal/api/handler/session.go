package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/unogame-go/internal/api/middleware"
	"github.com/mcoot/unogame-go/internal/api/request"
	"github.com/mcoot/unogame-go/internal/api/response"
	"github.com/mcoot/unogame-go/internal/dispatch"
	"github.com/mcoot/unogame-go/internal/emotes"
	"github.com/mcoot/unogame-go/internal/events"
	"github.com/mcoot/unogame-go/internal/model"
	"github.com/mcoot/unogame-go/internal/services/game"
	"github.com/mcoot/unogame-go/internal/services/lobby"
)

// SessionHandler handles channel session lifecycle endpoints
type SessionHandler struct {
	lobbyController *lobby.Controller
	gameController  *game.Controller
	dispatch        *dispatch.KeyedMutex
	hubManager      *events.HubManager
	emoteTable      emotes.Table
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(
	lobbyController *lobby.Controller,
	gameController *game.Controller,
	dispatch *dispatch.KeyedMutex,
	hubManager *events.HubManager,
	emoteTable emotes.Table,
) *SessionHandler {
	return &SessionHandler{
		lobbyController: lobbyController,
		gameController:  gameController,
		dispatch:        dispatch,
		hubManager:      hubManager,
		emoteTable:      emoteTable,
	}
}

// channelFrom extracts the channel ID path variable
func channelFrom(r *http.Request) model.ChannelID {
	return model.ChannelID(mux.Vars(r)["channel"])
}

// CreateLobby handles POST /api/v1/channels/{channel}/lobby
func (h *SessionHandler) CreateLobby(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	channel := channelFrom(r)

	var req request.CreateLobbyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Empty body means defaults
		req = request.CreateLobbyRequest{}
	}

	unlock := h.dispatch.Lock(channel)
	defer unlock()

	created, err := h.lobbyController.CreateLobby(r.Context(), channel, player.ID, req.AllowSolo)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.LobbyFromModel(created))
}

// GetSession handles GET /api/v1/channels/{channel}/session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	channel := channelFrom(r)

	if l, err := h.lobbyController.GetLobby(r.Context(), channel); err == nil {
		response.JSON(w, http.StatusOK, response.SessionFromLobby(l))
		return
	}

	g, err := h.gameController.GetGame(r.Context(), channel)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SessionFromGame(g, player.ID, h.emoteTable))
}

// Join handles POST /api/v1/channels/{channel}/join
func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	channel := channelFrom(r)

	unlock := h.dispatch.Lock(channel)
	defer unlock()

	joined, err := h.lobbyController.Join(r.Context(), channel, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LobbyFromModel(joined))
}

// Leave handles POST /api/v1/channels/{channel}/leave
func (h *SessionHandler) Leave(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	channel := channelFrom(r)

	unlock := h.dispatch.Lock(channel)
	defer unlock()

	left, err := h.lobbyController.Leave(r.Context(), channel, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LobbyFromModel(left))
}

// Delete handles DELETE /api/v1/channels/{channel}/session
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	channel := channelFrom(r)

	unlock := h.dispatch.Lock(channel)
	defer unlock()

	if err := h.lobbyController.Delete(r.Context(), channel, player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Stream handles GET /api/v1/channels/{channel}/events
func (h *SessionHandler) Stream(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	channel := channelFrom(r)

	hub := h.hubManager.GetOrCreateHub(channel)
	events.ServeSSE(w, r, hub, player.ID)
}
