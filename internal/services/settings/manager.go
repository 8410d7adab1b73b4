package settings

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/mcoot/unogame-go/internal/dependencies/clock"
	"github.com/mcoot/unogame-go/internal/events"
	"github.com/mcoot/unogame-go/internal/model"
	"github.com/mcoot/unogame-go/internal/storage"
)

// Manager edits the rule set of a channel's lobby. Settings are only
// editable pre-start and only by the host; a started game carries an
// immutable snapshot instead.
type Manager struct {
	store       storage.Store
	clock       clock.Clock
	broadcaster *events.Broadcaster
	logger      *slog.Logger
}

// NewManager creates a new settings Manager
func NewManager(
	store storage.Store,
	clock clock.Clock,
	broadcaster *events.Broadcaster,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		store:       store,
		clock:       clock,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Get returns the channel's current lobby settings
func (m *Manager) Get(ctx context.Context, channel model.ChannelID) (model.Settings, error) {
	lobby, err := m.loadEditable(ctx, channel)
	if err != nil {
		return model.Settings{}, err
	}
	return lobby.Settings, nil
}

// Toggle flips one boolean setting on the channel's lobby
func (m *Manager) Toggle(ctx context.Context, channel model.ChannelID, requester model.PlayerID, toggle model.SettingToggle) (model.Settings, error) {
	lobby, err := m.loadEditable(ctx, channel)
	if err != nil {
		return model.Settings{}, err
	}
	if requester != lobby.HostID {
		return model.Settings{}, model.ErrNotHost
	}

	toggle.Apply(&lobby.Settings)
	lobby.UpdatedAt = m.clock.Now()

	if err := m.store.SaveLobby(ctx, lobby); err != nil {
		return model.Settings{}, err
	}

	m.logger.Info("setting toggled",
		"channel", channel,
		"toggle", toggle)

	m.broadcaster.LobbyUpdated(lobby)
	return lobby.Settings, nil
}

// SetTimeout sets the turn timeout from raw user input. Any negative
// value disables the timer; positive values must fall within the
// allowed bounds. On rejection the previous value is retained.
func (m *Manager) SetTimeout(ctx context.Context, channel model.ChannelID, requester model.PlayerID, raw string) (model.Settings, error) {
	lobby, err := m.loadEditable(ctx, channel)
	if err != nil {
		return model.Settings{}, err
	}
	if requester != lobby.HostID {
		return model.Settings{}, model.ErrNotHost
	}

	seconds, err := parseTimeout(raw)
	if err != nil {
		return model.Settings{}, err
	}

	lobby.Settings.TimeoutSeconds = seconds
	lobby.UpdatedAt = m.clock.Now()

	if err := m.store.SaveLobby(ctx, lobby); err != nil {
		return model.Settings{}, err
	}

	m.logger.Info("timeout updated",
		"channel", channel,
		"timeout_seconds", seconds)

	m.broadcaster.LobbyUpdated(lobby)
	return lobby.Settings, nil
}

func parseTimeout(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout must be a whole number of seconds", model.ErrInvalidSetting)
	}
	if n < 0 {
		return model.TimeoutDisabled, nil
	}
	if n < model.MinTimeoutSeconds || n > model.MaxTimeoutSeconds {
		return 0, fmt.Errorf("%w: timeout must be between %d and %d seconds",
			model.ErrInvalidSetting, model.MinTimeoutSeconds, model.MaxTimeoutSeconds)
	}
	return n, nil
}

// loadEditable fetches the channel's lobby, distinguishing a started
// game from no session at all.
func (m *Manager) loadEditable(ctx context.Context, channel model.ChannelID) (*model.Lobby, error) {
	lobby, err := m.store.GetLobby(ctx, channel)
	if err == nil {
		return lobby, nil
	}
	if _, gerr := m.store.GetGame(ctx, channel); gerr == nil {
		return nil, model.ErrGameInProgress
	}
	return nil, err
}

// ManagerInterface defines the operations of the settings manager
type ManagerInterface interface {
	Get(ctx context.Context, channel model.ChannelID) (model.Settings, error)
	Toggle(ctx context.Context, channel model.ChannelID, requester model.PlayerID, toggle model.SettingToggle) (model.Settings, error)
	SetTimeout(ctx context.Context, channel model.ChannelID, requester model.PlayerID, raw string) (model.Settings, error)
}

var _ ManagerInterface = (*Manager)(nil)
