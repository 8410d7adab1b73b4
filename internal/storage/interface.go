package storage

import (
	"context"

	"github.com/mcoot/unogame-go/internal/model"
)

// Store is the injected session registry plus player persistence. At
// most one session (a Lobby or a Game, never both) exists per channel;
// SaveGame atomically replaces the channel's lobby.
type Store interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Session operations. Get on an absent channel returns
	// model.ErrNoActiveSession; callers treat that as "no game here".
	SaveLobby(ctx context.Context, lobby *model.Lobby) error
	GetLobby(ctx context.Context, channel model.ChannelID) (*model.Lobby, error)
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, channel model.ChannelID) (*model.Game, error)
	DeleteSession(ctx context.Context, channel model.ChannelID) error
	SessionExists(ctx context.Context, channel model.ChannelID) (bool, error)
}
