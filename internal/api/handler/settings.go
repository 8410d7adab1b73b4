package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/unogame-go/internal/api/middleware"
	"github.com/mcoot/unogame-go/internal/api/request"
	"github.com/mcoot/unogame-go/internal/api/response"
	"github.com/mcoot/unogame-go/internal/dispatch"
	"github.com/mcoot/unogame-go/internal/model"
	"github.com/mcoot/unogame-go/internal/services/settings"
)

// SettingsHandler handles lobby settings endpoints
type SettingsHandler struct {
	manager  *settings.Manager
	dispatch *dispatch.KeyedMutex
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(manager *settings.Manager, dispatch *dispatch.KeyedMutex) *SettingsHandler {
	return &SettingsHandler{
		manager:  manager,
		dispatch: dispatch,
	}
}

// Get handles GET /api/v1/channels/{channel}/settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	channel := channelFrom(r)

	current, err := h.manager.Get(r.Context(), channel)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SettingsFromModel(current))
}

// Toggle handles POST /api/v1/channels/{channel}/settings/toggle
func (h *SettingsHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	channel := channelFrom(r)

	var req request.ToggleSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	toggle, ok := model.ParseSettingToggle(req.Setting)
	if !ok {
		WriteError(w, NewInvalidRequestError("unknown setting"))
		return
	}

	unlock := h.dispatch.Lock(channel)
	defer unlock()

	updated, err := h.manager.Toggle(r.Context(), channel, player.ID, toggle)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SettingsFromModel(updated))
}

// SetTimeout handles PUT /api/v1/channels/{channel}/settings/timeout
func (h *SettingsHandler) SetTimeout(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	channel := channelFrom(r)

	var req request.SetTimeoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	unlock := h.dispatch.Lock(channel)
	defer unlock()

	updated, err := h.manager.SetTimeout(r.Context(), channel, player.ID, req.Value)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SettingsFromModel(updated))
}
