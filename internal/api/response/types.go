package response

import (
	"time"

	"github.com/mcoot/unogame-go/internal/emotes"
	"github.com/mcoot/unogame-go/internal/model"
	"github.com/mcoot/unogame-go/internal/services/identity"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *identity.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Settings represents a session's rule set
type Settings struct {
	TimeoutSeconds      int  `json:"timeout_seconds"`
	KickOnTimeout       bool `json:"kick_on_timeout"`
	AllowSkipping       bool `json:"allow_skipping"`
	AntiSabotage        bool `json:"anti_sabotage"`
	AllowStacking       bool `json:"allow_stacking"`
	RandomizePlayerList bool `json:"randomize_player_list"`
	ResendGameMessage   bool `json:"resend_game_message"`
	SevenAndZero        bool `json:"seven_and_zero"`
	AllowRejoin         bool `json:"allow_rejoin"`
}

// SettingsFromModel converts model.Settings
func SettingsFromModel(s model.Settings) Settings {
	return Settings{
		TimeoutSeconds:      s.TimeoutSeconds,
		KickOnTimeout:       s.KickOnTimeout,
		AllowSkipping:       s.AllowSkipping,
		AntiSabotage:        s.AntiSabotage,
		AllowStacking:       s.AllowStacking,
		RandomizePlayerList: s.RandomizePlayerList,
		ResendGameMessage:   s.ResendGameMessage,
		SevenAndZero:        s.SevenAndZero,
		AllowRejoin:         s.AllowRejoin,
	}
}

// Lobby represents a pre-start session in API responses
type Lobby struct {
	Channel   string    `json:"channel"`
	HostID    string    `json:"host_id"`
	Players   []string  `json:"players"`
	Settings  Settings  `json:"settings"`
	AllowSolo bool      `json:"allow_solo"`
	CreatedAt time.Time `json:"created_at"`
}

// LobbyFromModel converts model.Lobby
func LobbyFromModel(l *model.Lobby) Lobby {
	players := make([]string, len(l.Players))
	for i, p := range l.Players {
		players[i] = string(p)
	}
	return Lobby{
		Channel:   string(l.ChannelID),
		HostID:    string(l.HostID),
		Players:   players,
		Settings:  SettingsFromModel(l.Settings),
		AllowSolo: l.AllowSolo,
		CreatedAt: l.CreatedAt,
	}
}

// Card represents one card in API responses, with its display string
type Card struct {
	Card    string `json:"card"`
	Display string `json:"display"`
}

// CardFromModel converts a model.Card using the emote table
func CardFromModel(c model.Card, table emotes.Table) Card {
	return Card{
		Card:    string(c),
		Display: table.Display(c),
	}
}

// GameState represents a started session. Hands are reduced to counts
// except for the requesting player's own hand.
type GameState struct {
	ID            string         `json:"id"`
	Channel       string         `json:"channel"`
	HostID        string         `json:"host_id"`
	Players       []string       `json:"players"`
	CurrentPlayer string         `json:"current_player"`
	CurrentCard   Card           `json:"current_card"`
	CurrentColor  string         `json:"current_color"`
	HandCounts    map[string]int `json:"hand_counts"`
	MyHand        []Card         `json:"my_hand,omitempty"`
	PileCount     int            `json:"pile_count"`
	Settings      Settings       `json:"settings"`
	StartedAt     time.Time      `json:"started_at"`
}

// GameStateFromModel converts model.Game to response GameState. Only the
// viewer's own hand is revealed.
func GameStateFromModel(g *model.Game, viewer model.PlayerID, table emotes.Table) GameState {
	players := make([]string, len(g.Players))
	for i, p := range g.Players {
		players[i] = string(p)
	}

	counts := make(map[string]int, len(g.Hands))
	for pid, hand := range g.Hands {
		counts[string(pid)] = len(hand)
	}

	var myHand []Card
	if hand, ok := g.Hands[viewer]; ok {
		myHand = make([]Card, len(hand))
		for i, c := range hand {
			myHand[i] = CardFromModel(c, table)
		}
	}

	return GameState{
		ID:            g.ID,
		Channel:       string(g.ChannelID),
		HostID:        string(g.HostID),
		Players:       players,
		CurrentPlayer: string(g.CurrentPlayer()),
		CurrentCard:   CardFromModel(g.CurrentCard, table),
		CurrentColor:  string(g.CurrentColor),
		HandCounts:    counts,
		MyHand:        myHand,
		PileCount:     len(g.Pile),
		Settings:      SettingsFromModel(g.Settings),
		StartedAt:     g.StartedAt,
	}
}

// Session wraps whichever session variant a channel holds
type Session struct {
	State string     `json:"state"`
	Lobby *Lobby     `json:"lobby,omitempty"`
	Game  *GameState `json:"game,omitempty"`
}

// SessionFromLobby wraps a lobby as a session response
func SessionFromLobby(l *model.Lobby) Session {
	lobby := LobbyFromModel(l)
	return Session{State: "lobby", Lobby: &lobby}
}

// SessionFromGame wraps a game as a session response
func SessionFromGame(g *model.Game, viewer model.PlayerID, table emotes.Table) Session {
	game := GameStateFromModel(g, viewer, table)
	return Session{State: "playing", Game: &game}
}
