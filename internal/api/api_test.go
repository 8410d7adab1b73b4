package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/unogame-go/internal/api"
	"github.com/mcoot/unogame-go/internal/api/response"
	"github.com/mcoot/unogame-go/internal/emotes"
	"github.com/mcoot/unogame-go/internal/factory"
	"github.com/mcoot/unogame-go/internal/services/identity"
	"github.com/mcoot/unogame-go/internal/storage/memory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler  http.Handler
	store    *memory.Store
	identity *identity.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		IdentityService: app.IdentityService,
		LobbyController: app.LobbyController,
		SettingsManager: app.SettingsManager,
		GameController:  app.GameController,
		Dispatch:        app.Dispatch,
		HubManager:      app.HubManager,
		EmoteTable:      emotes.ColorFallback(),
	})

	return &testServer{
		handler:  router,
		store:    app.Store.(*memory.Store),
		identity: app.IdentityService,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// guest creates a guest player and returns its token
func (ts *testServer) guest(t *testing.T, name string) string {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/players/guest", map[string]string{"display_name": name}, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.SessionToken
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreateGuestPlayer(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"display_name": "Alice"}
	rr := ts.request(http.MethodPost, "/api/v1/players/guest", body, "")

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, "Alice", resp.Player.DisplayName)
	assert.True(t, resp.Player.IsGuest)
	assert.NotEmpty(t, resp.SessionToken)
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	registerBody := map[string]string{
		"username":     "alice",
		"password":     "secret123",
		"display_name": "Alice",
	}
	rr := ts.request(http.MethodPost, "/api/v1/players/register", registerBody, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var registerResp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &registerResp))
	assert.False(t, registerResp.Player.IsGuest)

	loginBody := map[string]string{"username": "alice", "password": "secret123"}
	rr = ts.request(http.MethodPost, "/api/v1/players/login", loginBody, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var loginResp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &loginResp))
	assert.Equal(t, registerResp.Player.ID, loginResp.Player.ID)

	// Wrong password
	rr = ts.request(http.MethodPost, "/api/v1/players/login", map[string]string{"username": "alice", "password": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGetMeRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	token := ts.guest(t, "Alice")
	rr = ts.request(http.MethodGet, "/api/v1/players/me", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var player response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &player))
	assert.Equal(t, "Alice", player.DisplayName)
}

func TestCreateLobby(t *testing.T) {
	ts := newTestServer(t)
	token := ts.guest(t, "Host")

	rr := ts.request(http.MethodPost, "/api/v1/channels/chan-1/lobby", nil, token)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var lobby response.Lobby
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &lobby))
	assert.Equal(t, "chan-1", lobby.Channel)
	assert.Len(t, lobby.Players, 1)
	assert.Equal(t, 150, lobby.Settings.TimeoutSeconds)

	// A second lobby in the same channel conflicts
	rr = ts.request(http.MethodPost, "/api/v1/channels/chan-1/lobby", nil, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "SESSION_EXISTS")
}

func TestJoinAndLeave(t *testing.T) {
	ts := newTestServer(t)
	hostToken := ts.guest(t, "Host")
	bobToken := ts.guest(t, "Bob")

	rr := ts.request(http.MethodPost, "/api/v1/channels/chan-1/lobby", nil, hostToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/channels/chan-1/join", nil, bobToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var lobby response.Lobby
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &lobby))
	assert.Len(t, lobby.Players, 2)

	// Joining twice is a no-op
	rr = ts.request(http.MethodPost, "/api/v1/channels/chan-1/join", nil, bobToken)
	assert.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &lobby))
	assert.Len(t, lobby.Players, 2)

	rr = ts.request(http.MethodPost, "/api/v1/channels/chan-1/leave", nil, bobToken)
	assert.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &lobby))
	assert.Len(t, lobby.Players, 1)
}

func TestJoinWithoutLobby(t *testing.T) {
	ts := newTestServer(t)
	token := ts.guest(t, "Bob")

	rr := ts.request(http.MethodPost, "/api/v1/channels/chan-1/join", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "NO_ACTIVE_SESSION")
}

func TestSettings(t *testing.T) {
	ts := newTestServer(t)
	hostToken := ts.guest(t, "Host")
	bobToken := ts.guest(t, "Bob")

	rr := ts.request(http.MethodPost, "/api/v1/channels/chan-1/lobby", nil, hostToken)
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/channels/chan-1/join", nil, bobToken)
	require.Equal(t, http.StatusOK, rr.Code)

	// Toggle a flag
	rr = ts.request(http.MethodPost, "/api/v1/channels/chan-1/settings/toggle",
		map[string]string{"setting": "kick-on-timeout"}, hostToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var settings response.Settings
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &settings))
	assert.False(t, settings.KickOnTimeout)

	// Unknown setting identifier
	rr = ts.request(http.MethodPost, "/api/v1/channels/chan-1/settings/toggle",
		map[string]string{"setting": "turbo-mode"}, hostToken)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Non-host cannot edit
	rr = ts.request(http.MethodPost, "/api/v1/channels/chan-1/settings/toggle",
		map[string]string{"setting": "7-and-0"}, bobToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_HOST")

	// Timeout validation
	rr = ts.request(http.MethodPut, "/api/v1/channels/chan-1/settings/timeout",
		map[string]string{"value": "60"}, hostToken)
	assert.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &settings))
	assert.Equal(t, 60, settings.TimeoutSeconds)

	rr = ts.request(http.MethodPut, "/api/v1/channels/chan-1/settings/timeout",
		map[string]string{"value": "5"}, hostToken)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_SETTING")

	rr = ts.request(http.MethodPut, "/api/v1/channels/chan-1/settings/timeout",
		map[string]string{"value": "-1"}, hostToken)
	assert.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &settings))
	assert.Equal(t, -1, settings.TimeoutSeconds)
}

func TestStartGame(t *testing.T) {
	ts := newTestServer(t)
	hostToken := ts.guest(t, "Host")
	bobToken := ts.guest(t, "Bob")

	rr := ts.request(http.MethodPost, "/api/v1/channels/chan-1/lobby", nil, hostToken)
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/channels/chan-1/join", nil, bobToken)
	require.Equal(t, http.StatusOK, rr.Code)

	// Non-host cannot start
	rr = ts.request(http.MethodPost, "/api/v1/channels/chan-1/start", nil, bobToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/channels/chan-1/start", nil, hostToken)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var game response.GameState
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &game))
	assert.Len(t, game.Players, 2)
	assert.Len(t, game.MyHand, 7)
	assert.NotEmpty(t, game.CurrentCard.Card)
	assert.NotEmpty(t, game.CurrentCard.Display)
	assert.NotEmpty(t, game.CurrentColor)
	for _, count := range game.HandCounts {
		assert.Equal(t, 7, count)
	}

	// Starting again conflicts
	rr = ts.request(http.MethodPost, "/api/v1/channels/chan-1/start", nil, hostToken)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "GAME_IN_PROGRESS")
}

func TestStartSolo(t *testing.T) {
	ts := newTestServer(t)
	token := ts.guest(t, "Host")

	rr := ts.request(http.MethodPost, "/api/v1/channels/chan-1/lobby", nil, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/channels/chan-1/start", nil, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "SOLO_NOT_ALLOWED")

	// A solo-enabled lobby in another channel starts fine
	rr = ts.request(http.MethodPost, "/api/v1/channels/chan-2/lobby",
		map[string]bool{"allow_solo": true}, token)
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/channels/chan-2/start", nil, token)
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestGetSession(t *testing.T) {
	ts := newTestServer(t)
	token := ts.guest(t, "Host")

	rr := ts.request(http.MethodGet, "/api/v1/channels/chan-1/session", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/channels/chan-1/lobby",
		map[string]bool{"allow_solo": true}, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/channels/chan-1/session", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var session response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &session))
	assert.Equal(t, "lobby", session.State)
	require.NotNil(t, session.Lobby)

	rr = ts.request(http.MethodPost, "/api/v1/channels/chan-1/start", nil, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/channels/chan-1/session", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &session))
	assert.Equal(t, "playing", session.State)
	require.NotNil(t, session.Game)
	assert.Len(t, session.Game.MyHand, 7)
}

func TestStopAndDelete(t *testing.T) {
	ts := newTestServer(t)
	hostToken := ts.guest(t, "Host")
	bobToken := ts.guest(t, "Bob")

	rr := ts.request(http.MethodPost, "/api/v1/channels/chan-1/lobby", nil, hostToken)
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/channels/chan-1/join", nil, bobToken)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/channels/chan-1/start", nil, hostToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	// Non-host cannot stop
	rr = ts.request(http.MethodPost, "/api/v1/channels/chan-1/stop", nil, bobToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/channels/chan-1/stop", nil, hostToken)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/channels/chan-1/session", nil, hostToken)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Delete works on a lobby too
	rr = ts.request(http.MethodPost, "/api/v1/channels/chan-1/lobby", nil, hostToken)
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = ts.request(http.MethodDelete, "/api/v1/channels/chan-1/session", nil, hostToken)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestChannelRoutesRequireAuth(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/channels/chan-1/lobby", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/channels/chan-1/lobby", nil, "sess_bogus")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
