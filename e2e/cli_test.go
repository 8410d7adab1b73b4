package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/unogame-go/internal/api"
	"github.com/mcoot/unogame-go/internal/emotes"
	"github.com/mcoot/unogame-go/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "unogame-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/unogame")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--token-file", r.tokenFile + ".alt",
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

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

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type authResponse struct {
	Player struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		IsGuest     bool   `json:"is_guest"`
	} `json:"player"`
	SessionToken string `json:"session_token"`
}

type lobbyResponse struct {
	Channel  string   `json:"channel"`
	HostID   string   `json:"host_id"`
	Players  []string `json:"players"`
	Settings struct {
		TimeoutSeconds int  `json:"timeout_seconds"`
		KickOnTimeout  bool `json:"kick_on_timeout"`
	} `json:"settings"`
}

type gameResponse struct {
	ID            string         `json:"id"`
	Players       []string       `json:"players"`
	CurrentPlayer string         `json:"current_player"`
	HandCounts    map[string]int `json:"hand_counts"`
	MyHand        []struct {
		Card    string `json:"card"`
		Display string `json:"display"`
	} `json:"my_hand"`
	CurrentCard struct {
		Card    string `json:"card"`
		Display string `json:"display"`
	} `json:"current_card"`
	PileCount int `json:"pile_count"`
}

func TestCLIFullSessionFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Health check works without auth
	out, err := cli.run("health")
	require.NoError(t, err, out)
	assert.Contains(t, out, "ok")

	// Host creates a guest identity; token is saved to the token file
	out, err = cli.run("player", "guest", "--name", "Host")
	require.NoError(t, err, out)
	var host authResponse
	require.NoError(t, json.Unmarshal([]byte(out), &host))
	assert.True(t, host.Player.IsGuest)
	require.NotEmpty(t, host.SessionToken)

	// A second player gets their own token
	out, err = cli.runWithToken("", "player", "guest", "--name", "Bob")
	require.NoError(t, err, out)
	var bob authResponse
	require.NoError(t, json.Unmarshal([]byte(out), &bob))

	// Host opens a lobby
	out, err = cli.run("lobby", "create", "general")
	require.NoError(t, err, out)
	var lobby lobbyResponse
	require.NoError(t, json.Unmarshal([]byte(out), &lobby))
	assert.Equal(t, "general", lobby.Channel)
	assert.Len(t, lobby.Players, 1)

	// Bob joins
	out, err = cli.runWithToken(bob.SessionToken, "lobby", "join", "general")
	require.NoError(t, err, out)
	require.NoError(t, json.Unmarshal([]byte(out), &lobby))
	assert.Len(t, lobby.Players, 2)

	// Host tunes settings
	out, err = cli.run("settings", "toggle", "general", "kick-on-timeout")
	require.NoError(t, err, out)
	out, err = cli.run("settings", "timeout", "general", "60")
	require.NoError(t, err, out)

	// Bob cannot edit settings
	out, err = cli.runWithToken(bob.SessionToken, "settings", "toggle", "general", "7-and-0")
	require.Error(t, err)
	assert.Contains(t, out, "NOT_HOST")

	// Host starts the game
	out, err = cli.run("game", "start", "general")
	require.NoError(t, err, out)
	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(out), &game))
	assert.Len(t, game.Players, 2)
	assert.Len(t, game.MyHand, 7)
	assert.NotEmpty(t, game.CurrentCard.Card)

	// Bob sees hand counts but only his own cards
	out, err = cli.runWithToken(bob.SessionToken, "game", "status", "general")
	require.NoError(t, err, out)
	var bobView gameResponse
	require.NoError(t, json.Unmarshal([]byte(out), &bobView))
	assert.Len(t, bobView.MyHand, 7)
	assert.Equal(t, 7, bobView.HandCounts[host.Player.ID])

	// Starting again fails
	out, err = cli.run("game", "start", "general")
	require.Error(t, err)
	assert.Contains(t, out, "GAME_IN_PROGRESS")

	// Host stops the game
	out, err = cli.run("game", "stop", "general")
	require.NoError(t, err, out)

	// The session is gone
	out, err = cli.run("lobby", "show", "general")
	require.Error(t, err)
	assert.Contains(t, out, "NO_ACTIVE_SESSION")
}

func TestCLIInvalidTimeout(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	out, err := cli.run("player", "guest", "--name", "Host")
	require.NoError(t, err, out)

	out, err = cli.run("lobby", "create", "general")
	require.NoError(t, err, out)

	out, err = cli.run("settings", "timeout", "general", "5")
	require.Error(t, err)
	assert.Contains(t, out, "INVALID_SETTING")

	out, err = cli.run("settings", "timeout", "general", "banana")
	require.Error(t, err)
	assert.Contains(t, out, "INVALID_SETTING")

	// A negative value disables the timer
	out, err = cli.run("settings", "timeout", "general", "-1")
	require.NoError(t, err, out)
	assert.Contains(t, out, `"timeout_seconds": -1`)
}
