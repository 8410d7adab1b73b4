package memory

import (
	"context"
	"sync"

	"github.com/mcoot/unogame-go/internal/model"
	"github.com/mcoot/unogame-go/internal/storage"
)

// Store is an in-memory implementation of the storage interface
type Store struct {
	mu sync.RWMutex

	players           map[model.PlayerID]*model.Player
	registeredPlayers map[model.PlayerID]*model.RegisteredPlayer
	usernameIndex     map[string]model.PlayerID
	lobbies           map[model.ChannelID]*model.Lobby
	games             map[model.ChannelID]*model.Game
}

// New creates a new in-memory store instance
func New() *Store {
	return &Store{
		players:           make(map[model.PlayerID]*model.Player),
		registeredPlayers: make(map[model.PlayerID]*model.RegisteredPlayer),
		usernameIndex:     make(map[string]model.PlayerID),
		lobbies:           make(map[model.ChannelID]*model.Lobby),
		games:             make(map[model.ChannelID]*model.Game),
	}
}

// Ensure Store implements the interface
var _ storage.Store = (*Store)(nil)

// Player operations

func (s *Store) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *Store) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Store) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

// Registered player operations

func (s *Store) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registeredPlayers[rp.PlayerID] = rp
	s.usernameIndex[rp.Username] = rp.PlayerID
	return nil
}

func (s *Store) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

func (s *Store) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

// Session operations

func (s *Store) SaveLobby(ctx context.Context, lobby *model.Lobby) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// A lobby never coexists with a started game under the same channel.
	delete(s.games, lobby.ChannelID)
	s.lobbies[lobby.ChannelID] = lobby
	return nil
}

func (s *Store) GetLobby(ctx context.Context, channel model.ChannelID) (*model.Lobby, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lobby, ok := s.lobbies[channel]
	if !ok {
		return nil, model.ErrNoActiveSession
	}
	return lobby, nil
}

func (s *Store) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lobbies, game.ChannelID)
	s.games[game.ChannelID] = game
	return nil
}

func (s *Store) GetGame(ctx context.Context, channel model.ChannelID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[channel]
	if !ok {
		return nil, model.ErrNoActiveSession
	}
	return game, nil
}

func (s *Store) DeleteSession(ctx context.Context, channel model.ChannelID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lobbies, channel)
	delete(s.games, channel)
	return nil
}

func (s *Store) SessionExists(ctx context.Context, channel model.ChannelID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, lobbyOK := s.lobbies[channel]
	_, gameOK := s.games[channel]
	return lobbyOK || gameOK, nil
}
