package game

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mcoot/unogame-go/internal/deck"
	"github.com/mcoot/unogame-go/internal/dependencies/clock"
	"github.com/mcoot/unogame-go/internal/dependencies/random"
	"github.com/mcoot/unogame-go/internal/dispatch"
	"github.com/mcoot/unogame-go/internal/events"
	"github.com/mcoot/unogame-go/internal/model"
	"github.com/mcoot/unogame-go/internal/scheduler"
	"github.com/mcoot/unogame-go/internal/storage"
)

// OpeningHandSize is the number of cards dealt to each player at start
const OpeningHandSize = 7

// Controller starts games from lobbies and drives the turn-timeout
// lifecycle of started games.
type Controller struct {
	store       storage.Store
	deck        *deck.Service
	clock       clock.Clock
	random      random.Random
	scheduler   *scheduler.Scheduler
	dispatch    *dispatch.KeyedMutex
	broadcaster *events.Broadcaster
	logger      *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	store storage.Store,
	deckService *deck.Service,
	clock clock.Clock,
	random random.Random,
	scheduler *scheduler.Scheduler,
	dispatch *dispatch.KeyedMutex,
	broadcaster *events.Broadcaster,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		store:       store,
		deck:        deckService,
		clock:       clock,
		random:      random,
		scheduler:   scheduler,
		dispatch:    dispatch,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Start transitions the channel's lobby into a started game. Only the
// host may start; a single-player lobby starts only when it allows
// solo play. The transition is one-way: the saved Game replaces the
// Lobby under the channel.
func (c *Controller) Start(ctx context.Context, channel model.ChannelID, requester model.PlayerID) (*model.Game, error) {
	lobby, err := c.store.GetLobby(ctx, channel)
	if err != nil {
		if _, gerr := c.store.GetGame(ctx, channel); gerr == nil {
			return nil, model.ErrGameInProgress
		}
		return nil, err
	}

	if requester != lobby.HostID {
		return nil, model.ErrNotHost
	}
	if len(lobby.Players) < 2 && !lobby.AllowSolo {
		return nil, model.ErrSoloNotAllowed
	}

	players := make([]model.PlayerID, len(lobby.Players))
	copy(players, lobby.Players)
	if lobby.Settings.RandomizePlayerList {
		c.random.Shuffle(len(players), func(i, j int) {
			players[i], players[j] = players[j], players[i]
		})
	}

	pile := c.deck.BuildShuffled()

	hands := make(map[model.PlayerID][]model.Card, len(players))
	for _, p := range players {
		var hand []model.Card
		hand, pile = c.deck.Draw(pile, OpeningHandSize)
		hands[p] = hand
	}

	opening, pile := c.deck.DrawOpening(pile)

	now := c.clock.Now()
	game := &model.Game{
		ID:           uuid.NewString(),
		ChannelID:    channel,
		HostID:       lobby.HostID,
		Players:      players,
		Pile:         pile,
		Hands:        hands,
		CurrentCard:  opening,
		CurrentColor: opening.Color(),
		CurrentIdx:   0,
		Settings:     lobby.Settings,
		MessageRef:   lobby.MessageRef,
		StartedAt:    now,
		UpdatedAt:    now,
	}

	if err := c.store.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.armTimer(game)

	c.logger.Info("game started",
		"channel", channel,
		"game_id", game.ID,
		"player_count", len(players),
		"opening_card", opening)

	c.broadcaster.GameStarted(game)
	return game, nil
}

// GetGame retrieves the channel's started game
func (c *Controller) GetGame(ctx context.Context, channel model.ChannelID) (*model.Game, error) {
	return c.store.GetGame(ctx, channel)
}

// Stop terminates the channel's game. Only the host may stop.
func (c *Controller) Stop(ctx context.Context, channel model.ChannelID, requester model.PlayerID) error {
	game, err := c.store.GetGame(ctx, channel)
	if err != nil {
		return err
	}
	if requester != game.HostID {
		return model.ErrNotHost
	}

	c.scheduler.Cancel(channel)

	if err := c.store.DeleteSession(ctx, channel); err != nil {
		return err
	}

	c.logger.Info("game stopped",
		"channel", channel,
		"game_id", game.ID)

	c.broadcaster.GameEnded(channel, "stopped by host")
	return nil
}

// HandleTimeout is the scheduler callback for an expired turn. It runs
// under the channel's dispatch lock so it cannot interleave with
// request handlers. A fire against a channel whose game is gone is a
// no-op; the stale-timer guard in the scheduler makes this rare but a
// delete can race the callback.
func (c *Controller) HandleTimeout(channel model.ChannelID) {
	unlock := c.dispatch.Lock(channel)
	defer unlock()

	ctx := context.Background()

	game, err := c.store.GetGame(ctx, channel)
	if err != nil {
		return
	}

	idle := game.CurrentPlayer()

	if game.Settings.KickOnTimeout {
		c.removeIdlePlayer(game, idle)

		if len(game.Players) < 2 {
			c.scheduler.Cancel(channel)
			if err := c.store.DeleteSession(ctx, channel); err != nil {
				c.logger.Error("failed to end game after kick",
					"channel", channel,
					"error", err)
				return
			}
			c.logger.Info("game ended, not enough players",
				"channel", channel,
				"game_id", game.ID,
				"kicked", idle)
			c.broadcaster.GameEnded(channel, "not enough players")
			return
		}
	} else {
		if game.LastPlayer.ID == idle {
			game.LastPlayer.Idle++
		} else {
			game.LastPlayer = model.LastPlayer{ID: idle, Idle: 1}
		}
		game.CurrentIdx = game.NextIdx()
	}

	game.UpdatedAt = c.clock.Now()

	if err := c.store.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to persist timeout advance",
			"channel", channel,
			"error", err)
		return
	}

	c.armTimer(game)

	c.logger.Info("turn timed out",
		"channel", channel,
		"game_id", game.ID,
		"idle_player", idle,
		"next_player", game.CurrentPlayer())

	c.broadcaster.TurnChanged(game, game.Settings.ResendGameMessage)
}

// removeIdlePlayer kicks the player and burns their hand. The cards
// leave circulation entirely; they are not returned to the pile.
// Removal shifts the following player into the vacated index, so the
// current index only moves when the kicked player held the last slot.
func (c *Controller) removeIdlePlayer(game *model.Game, player model.PlayerID) {
	remaining := make([]model.PlayerID, 0, len(game.Players)-1)
	for _, p := range game.Players {
		if p != player {
			remaining = append(remaining, p)
		}
	}
	game.Players = remaining
	delete(game.Hands, player)

	if game.HostID == player && len(game.Players) > 0 {
		game.HostID = game.Players[0]
	}
	if len(game.Players) > 0 {
		game.CurrentIdx %= len(game.Players)
	} else {
		game.CurrentIdx = 0
	}
	if game.LastPlayer.ID == player {
		game.LastPlayer = model.LastPlayer{}
	}
}

// armTimer arms the channel's turn timer per the game's settings. The
// disabled sentinel leaves the channel timer-free.
func (c *Controller) armTimer(game *model.Game) {
	if !game.Settings.TimeoutEnabled() {
		return
	}
	channel := game.ChannelID
	c.scheduler.Arm(channel, game.Settings.TimeoutSeconds, func() {
		c.HandleTimeout(channel)
	})
}

// ControllerInterface defines the operations of the game controller
type ControllerInterface interface {
	Start(ctx context.Context, channel model.ChannelID, requester model.PlayerID) (*model.Game, error)
	GetGame(ctx context.Context, channel model.ChannelID) (*model.Game, error)
	Stop(ctx context.Context, channel model.ChannelID, requester model.PlayerID) error
	HandleTimeout(channel model.ChannelID)
}

var _ ControllerInterface = (*Controller)(nil)
