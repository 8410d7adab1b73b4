package lobby

import (
	"context"
	"log/slog"

	"github.com/mcoot/unogame-go/internal/dependencies/clock"
	"github.com/mcoot/unogame-go/internal/events"
	"github.com/mcoot/unogame-go/internal/model"
	"github.com/mcoot/unogame-go/internal/scheduler"
	"github.com/mcoot/unogame-go/internal/storage"
)

// Controller manages the pre-start session lifecycle: lobby creation,
// membership and teardown. A channel holds at most one session, either
// a lobby or a started game.
type Controller struct {
	store       storage.Store
	clock       clock.Clock
	scheduler   *scheduler.Scheduler
	broadcaster *events.Broadcaster
	logger      *slog.Logger
}

// NewController creates a new lobby Controller
func NewController(
	store storage.Store,
	clock clock.Clock,
	scheduler *scheduler.Scheduler,
	broadcaster *events.Broadcaster,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		store:       store,
		clock:       clock,
		scheduler:   scheduler,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// CreateLobby opens a lobby in the channel with the creator as host and
// sole member. Fails if the channel already holds a session of either
// kind.
func (c *Controller) CreateLobby(ctx context.Context, channel model.ChannelID, host model.PlayerID, allowSolo bool) (*model.Lobby, error) {
	if _, err := c.store.GetGame(ctx, channel); err == nil {
		return nil, model.ErrGameInProgress
	}
	if _, err := c.store.GetLobby(ctx, channel); err == nil {
		return nil, model.ErrLobbyAlreadyExists
	}

	now := c.clock.Now()
	lobby := &model.Lobby{
		ChannelID: channel,
		HostID:    host,
		Players:   []model.PlayerID{host},
		Settings:  model.DefaultSettings(),
		AllowSolo: allowSolo,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.store.SaveLobby(ctx, lobby); err != nil {
		return nil, err
	}

	c.logger.Info("lobby created",
		"channel", channel,
		"host", host)

	c.broadcaster.LobbyUpdated(lobby)
	return lobby, nil
}

// GetLobby retrieves the channel's lobby
func (c *Controller) GetLobby(ctx context.Context, channel model.ChannelID) (*model.Lobby, error) {
	return c.store.GetLobby(ctx, channel)
}

// Join adds the player to the channel's lobby. Joining a lobby you are
// already in is a silent no-op; joining once the game has started is an
// error.
func (c *Controller) Join(ctx context.Context, channel model.ChannelID, player model.PlayerID) (*model.Lobby, error) {
	if _, err := c.store.GetGame(ctx, channel); err == nil {
		return nil, model.ErrGameInProgress
	}

	lobby, err := c.store.GetLobby(ctx, channel)
	if err != nil {
		return nil, err
	}

	if lobby.HasPlayer(player) {
		return lobby, nil
	}

	lobby.Players = append(lobby.Players, player)
	lobby.UpdatedAt = c.clock.Now()

	if err := c.store.SaveLobby(ctx, lobby); err != nil {
		return nil, err
	}

	c.logger.Info("player joined lobby",
		"channel", channel,
		"player", player,
		"player_count", len(lobby.Players))

	c.broadcaster.LobbyUpdated(lobby)
	return lobby, nil
}

// Leave removes the player from the channel's lobby. Leaving a lobby
// you are not in, or a lobby you are the last member of, is a silent
// no-op. If the host leaves, the next player in join order becomes
// host.
func (c *Controller) Leave(ctx context.Context, channel model.ChannelID, player model.PlayerID) (*model.Lobby, error) {
	lobby, err := c.store.GetLobby(ctx, channel)
	if err != nil {
		return nil, err
	}

	if !lobby.HasPlayer(player) || len(lobby.Players) <= 1 {
		return lobby, nil
	}

	remaining := make([]model.PlayerID, 0, len(lobby.Players)-1)
	for _, p := range lobby.Players {
		if p != player {
			remaining = append(remaining, p)
		}
	}
	lobby.Players = remaining

	if lobby.HostID == player {
		lobby.HostID = lobby.Players[0]
		c.logger.Info("host transferred",
			"channel", channel,
			"new_host", lobby.HostID)
	}

	lobby.UpdatedAt = c.clock.Now()

	if err := c.store.SaveLobby(ctx, lobby); err != nil {
		return nil, err
	}

	c.logger.Info("player left lobby",
		"channel", channel,
		"player", player,
		"player_count", len(lobby.Players))

	c.broadcaster.LobbyUpdated(lobby)
	return lobby, nil
}

// Delete tears down the channel's session, lobby or game alike. Only
// the host may delete. Any pending turn timer is cancelled so it cannot
// fire against a dead session.
func (c *Controller) Delete(ctx context.Context, channel model.ChannelID, requester model.PlayerID) error {
	var host model.PlayerID
	if lobby, err := c.store.GetLobby(ctx, channel); err == nil {
		host = lobby.HostID
	} else if game, err := c.store.GetGame(ctx, channel); err == nil {
		host = game.HostID
	} else {
		return model.ErrNoActiveSession
	}

	if requester != host {
		return model.ErrNotHost
	}

	c.scheduler.Cancel(channel)

	if err := c.store.DeleteSession(ctx, channel); err != nil {
		return err
	}

	c.logger.Info("session deleted",
		"channel", channel,
		"requester", requester)

	c.broadcaster.SessionDeleted(channel)
	return nil
}

// ControllerInterface defines the operations of the lobby controller
type ControllerInterface interface {
	CreateLobby(ctx context.Context, channel model.ChannelID, host model.PlayerID, allowSolo bool) (*model.Lobby, error)
	GetLobby(ctx context.Context, channel model.ChannelID) (*model.Lobby, error)
	Join(ctx context.Context, channel model.ChannelID, player model.PlayerID) (*model.Lobby, error)
	Leave(ctx context.Context, channel model.ChannelID, player model.PlayerID) (*model.Lobby, error)
	Delete(ctx context.Context, channel model.ChannelID, requester model.PlayerID) error
}

var _ ControllerInterface = (*Controller)(nil)
