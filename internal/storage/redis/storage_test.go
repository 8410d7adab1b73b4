package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/unogame-go/internal/model"
)

type StoreSuite struct {
	suite.Suite
	mini  *miniredis.Miniredis
	store *Store
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GuestPlayerTTL = time.Hour
	cfg.SessionTTL = time.Hour

	s.store = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StoreSuite) TearDownTest() {
	if s.store != nil {
		_ = s.store.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StoreSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Alice",
		IsGuest:     false,
		CreatedAt:   time.Now(),
	}

	s.Require().NoError(s.store.SavePlayer(s.ctx, player))

	got, err := s.store.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.DisplayName, got.DisplayName)
	s.False(got.IsGuest)
}

func (s *StoreSuite) TestGuestPlayerGetsTTL() {
	player := &model.Player{ID: "guest-1", DisplayName: "Guest", IsGuest: true}
	s.Require().NoError(s.store.SavePlayer(s.ctx, player))

	ttl := s.mini.TTL(playerKey("guest-1"))
	s.Equal(time.Hour, ttl)
}

func (s *StoreSuite) TestGetMissingPlayer() {
	_, err := s.store.GetPlayer(s.ctx, "nope")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StoreSuite) TestRegisteredPlayerByUsername() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash",
	}
	s.Require().NoError(s.store.SaveRegisteredPlayer(s.ctx, rp))

	got, err := s.store.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), got.PlayerID)
}

// Session tests

func (s *StoreSuite) TestSaveAndGetLobby() {
	lobby := &model.Lobby{
		ChannelID: "chan-1",
		HostID:    "host-1",
		Players:   []model.PlayerID{"host-1", "p2"},
		Settings:  model.DefaultSettings(),
	}

	s.Require().NoError(s.store.SaveLobby(s.ctx, lobby))

	got, err := s.store.GetLobby(s.ctx, "chan-1")
	s.Require().NoError(err)
	s.Equal(lobby.Players, got.Players)
	s.Equal(150, got.Settings.TimeoutSeconds)
}

func (s *StoreSuite) TestGetLobbyAbsentChannel() {
	_, err := s.store.GetLobby(s.ctx, "nope")
	s.ErrorIs(err, model.ErrNoActiveSession)
}

func (s *StoreSuite) TestSaveGameReplacesLobby() {
	lobby := &model.Lobby{ChannelID: "chan-1", HostID: "h", Players: []model.PlayerID{"h"}}
	s.Require().NoError(s.store.SaveLobby(s.ctx, lobby))

	game := &model.Game{
		ID:           "game-1",
		ChannelID:    "chan-1",
		HostID:       "h",
		Players:      []model.PlayerID{"h", "p2"},
		Pile:         []model.Card{"red-1", "blue-2"},
		Hands:        map[model.PlayerID][]model.Card{"h": {"green-3"}},
		CurrentCard:  "yellow-7",
		CurrentColor: model.ColorYellow,
	}
	s.Require().NoError(s.store.SaveGame(s.ctx, game))

	_, err := s.store.GetLobby(s.ctx, "chan-1")
	s.ErrorIs(err, model.ErrNoActiveSession)

	got, err := s.store.GetGame(s.ctx, "chan-1")
	s.Require().NoError(err)
	s.Equal(game.Pile, got.Pile)
	s.Equal(game.Hands, got.Hands)
	s.Equal(model.Card("yellow-7"), got.CurrentCard)
}

func (s *StoreSuite) TestDeleteSession() {
	lobby := &model.Lobby{ChannelID: "chan-1", HostID: "h", Players: []model.PlayerID{"h"}}
	s.Require().NoError(s.store.SaveLobby(s.ctx, lobby))

	s.Require().NoError(s.store.DeleteSession(s.ctx, "chan-1"))

	exists, err := s.store.SessionExists(s.ctx, "chan-1")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StoreSuite) TestSessionExists() {
	exists, err := s.store.SessionExists(s.ctx, "chan-1")
	s.Require().NoError(err)
	s.False(exists)

	game := &model.Game{ID: "g", ChannelID: "chan-1", HostID: "h"}
	s.Require().NoError(s.store.SaveGame(s.ctx, game))

	exists, err = s.store.SessionExists(s.ctx, "chan-1")
	s.Require().NoError(err)
	s.True(exists)
}
