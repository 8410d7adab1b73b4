package events

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/unogame-go/internal/model"
)

// Event names published to channel streams
const (
	EventLobbyUpdated   = "lobby-updated"
	EventGameStarted    = "game-started"
	EventTurnChanged    = "turn-changed"
	EventGameEnded      = "game-ended"
	EventSessionDeleted = "session-deleted"
)

// Broadcaster is the render-sink collaborator: the session engine calls
// it to signal that a channel's display needs re-rendering. It carries
// enough payload for clients to update without another fetch, but the
// engine never formats display text itself.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "broadcaster")),
	}
}

type lobbyPayload struct {
	Channel   string         `json:"channel"`
	Host      string         `json:"host"`
	Players   []string       `json:"players"`
	Settings  model.Settings `json:"settings"`
	AllowSolo bool           `json:"allow_solo"`
}

type turnPayload struct {
	Channel       string `json:"channel"`
	GameID        string `json:"game_id"`
	CurrentPlayer string `json:"current_player"`
	CurrentCard   string `json:"current_card"`
	CurrentColor  string `json:"current_color"`
	Resend        bool   `json:"resend"`
}

type endPayload struct {
	Channel string `json:"channel"`
	Reason  string `json:"reason"`
}

// LobbyUpdated signals that a channel's lobby display is stale
// (membership, host or settings changed).
func (b *Broadcaster) LobbyUpdated(lobby *model.Lobby) {
	players := make([]string, len(lobby.Players))
	for i, p := range lobby.Players {
		players[i] = string(p)
	}
	b.publish(lobby.ChannelID, EventLobbyUpdated, lobbyPayload{
		Channel:   string(lobby.ChannelID),
		Host:      string(lobby.HostID),
		Players:   players,
		Settings:  lobby.Settings,
		AllowSolo: lobby.AllowSolo,
	})
}

// GameStarted signals the lobby -> started transition.
func (b *Broadcaster) GameStarted(game *model.Game) {
	b.publish(game.ChannelID, EventGameStarted, turnPayload{
		Channel:       string(game.ChannelID),
		GameID:        game.ID,
		CurrentPlayer: string(game.CurrentPlayer()),
		CurrentCard:   string(game.CurrentCard),
		CurrentColor:  string(game.CurrentColor),
	})
}

// TurnChanged signals that the current player moved on (play or
// timeout). resend mirrors the resend-game-message setting.
func (b *Broadcaster) TurnChanged(game *model.Game, resend bool) {
	b.publish(game.ChannelID, EventTurnChanged, turnPayload{
		Channel:       string(game.ChannelID),
		GameID:        game.ID,
		CurrentPlayer: string(game.CurrentPlayer()),
		CurrentCard:   string(game.CurrentCard),
		CurrentColor:  string(game.CurrentColor),
		Resend:        resend,
	})
}

// GameEnded signals that the started game finished or was stopped.
func (b *Broadcaster) GameEnded(channel model.ChannelID, reason string) {
	b.publish(channel, EventGameEnded, endPayload{
		Channel: string(channel),
		Reason:  reason,
	})
}

// SessionDeleted signals that the channel's session is gone and the key
// is free for a new lobby.
func (b *Broadcaster) SessionDeleted(channel model.ChannelID) {
	b.publish(channel, EventSessionDeleted, endPayload{
		Channel: string(channel),
		Reason:  "deleted",
	})
}

func (b *Broadcaster) publish(channel model.ChannelID, event string, payload any) {
	hub := b.hubManager.GetHub(channel)
	if hub == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("failed to marshal event payload",
			slog.String("event", event),
			slog.String("channel", string(channel)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(event, string(data))
}
