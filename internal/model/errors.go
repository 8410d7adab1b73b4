package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Session errors
	ErrNoActiveSession    = errors.New("no active session for this channel")
	ErrLobbyAlreadyExists = errors.New("a session already exists for this channel")
	ErrGameInProgress     = errors.New("game has already started")
	ErrNotInLobby         = errors.New("player is not in this lobby")

	// Authorization / precondition errors
	ErrNotHost        = errors.New("only the host can do this")
	ErrSoloNotAllowed = errors.New("cannot start a game alone")

	// Settings errors
	ErrInvalidSetting = errors.New("invalid setting value")
)
