package model

import "time"

// ChannelID keys a session: the originating chat channel. Opaque; used
// only for equality and as the store's map key.
type ChannelID string

// MessageRef is an opaque handle to the chat message a session renders
// into. The core never interprets it.
type MessageRef string

// Lobby is the pre-start session variant: it accepts joins, leaves and
// settings edits until the host starts the game.
type Lobby struct {
	ChannelID  ChannelID
	HostID     PlayerID
	Players    []PlayerID // unique, join-order preserved
	Settings   Settings
	AllowSolo  bool // permits starting with a single player
	MessageRef MessageRef
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasPlayer reports whether the player has joined the lobby.
func (l *Lobby) HasPlayer(id PlayerID) bool {
	for _, p := range l.Players {
		if p == id {
			return true
		}
	}
	return false
}

// LastPlayer records who acted last and how many consecutive timeouts
// their current turn has accumulated.
type LastPlayer struct {
	ID   PlayerID `json:"id"`
	Idle int      `json:"idle"`
}

// Game is the started session variant. The transition from Lobby is
// one-way; a Game under a channel replaces the Lobby under that channel.
type Game struct {
	ID        string
	ChannelID ChannelID
	HostID    PlayerID

	// Players is the turn order, frozen at start.
	Players []PlayerID

	// Pile is the undealt draw pile; replenished with fresh shuffled
	// deck copies when exhausted, never from the discard.
	Pile         []Card
	Hands        map[PlayerID][]Card
	CurrentCard  Card
	CurrentColor CardColor
	CurrentIdx   int
	LastPlayer   LastPlayer

	// Settings is the lobby's rule set snapshotted at start.
	Settings Settings

	MessageRef MessageRef
	StartedAt  time.Time
	UpdatedAt  time.Time
}

// CurrentPlayer returns the player whose turn it is.
func (g *Game) CurrentPlayer() PlayerID {
	if len(g.Players) == 0 {
		return ""
	}
	return g.Players[g.CurrentIdx]
}

// NextIdx returns the index of the player after the current one.
func (g *Game) NextIdx() int {
	if len(g.Players) == 0 {
		return 0
	}
	return (g.CurrentIdx + 1) % len(g.Players)
}

// HasPlayer reports whether the player is still in the game.
func (g *Game) HasPlayer(id PlayerID) bool {
	for _, p := range g.Players {
		if p == id {
			return true
		}
	}
	return false
}

// CardCount is the total number of cards across the pile, all hands and
// the face-up card. Equals a whole number of deck copies minus cards
// burned with kicked players.
func (g *Game) CardCount() int {
	n := len(g.Pile) + 1
	for _, hand := range g.Hands {
		n += len(hand)
	}
	return n
}
