package model

import "time"

// PlayerID uniquely identifies a player. For chat-platform deployments
// this is the platform's stable user identifier; the engine only ever
// compares it for equality.
type PlayerID string

// Player is someone who can join lobbies and play games.
type Player struct {
	ID          PlayerID
	DisplayName string
	IsGuest     bool // true for unregistered players
	CreatedAt   time.Time
}

// RegisteredPlayer holds a player's login credentials. Kept separate
// from Player so password hashes never travel with session state.
type RegisteredPlayer struct {
	PlayerID     PlayerID
	Username     string // immutable login name
	PasswordHash string // bcrypt
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
