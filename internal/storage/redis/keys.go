package redis

import (
	"fmt"

	"github.com/mcoot/unogame-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "unogame"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// lobbyKey returns the Redis key for a channel's Lobby
func lobbyKey(channel model.ChannelID) string {
	return fmt.Sprintf("%s:lobby:%s", keyPrefix, channel)
}

// gameKey returns the Redis key for a channel's started Game
func gameKey(channel model.ChannelID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, channel)
}
