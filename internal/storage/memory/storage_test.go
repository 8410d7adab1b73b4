package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/unogame-go/internal/model"
)

type StoreSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.store = New()
	s.ctx = context.Background()
}

func (s *StoreSuite) lobby(channel string) *model.Lobby {
	return &model.Lobby{
		ChannelID: model.ChannelID(channel),
		HostID:    "host-1",
		Players:   []model.PlayerID{"host-1"},
		Settings:  model.DefaultSettings(),
		CreatedAt: time.Now(),
	}
}

func (s *StoreSuite) TestSaveAndGetPlayer() {
	player := &model.Player{ID: "p1", DisplayName: "Alice", IsGuest: true}

	s.Require().NoError(s.store.SavePlayer(s.ctx, player))

	got, err := s.store.GetPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal("Alice", got.DisplayName)
}

func (s *StoreSuite) TestGetMissingPlayer() {
	_, err := s.store.GetPlayer(s.ctx, "nope")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StoreSuite) TestRegisteredPlayerUsernameIndex() {
	rp := &model.RegisteredPlayer{PlayerID: "p1", Username: "alice", PasswordHash: "x"}
	s.Require().NoError(s.store.SaveRegisteredPlayer(s.ctx, rp))

	got, err := s.store.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p1"), got.PlayerID)
}

func (s *StoreSuite) TestSaveAndGetLobby() {
	s.Require().NoError(s.store.SaveLobby(s.ctx, s.lobby("chan-1")))

	got, err := s.store.GetLobby(s.ctx, "chan-1")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("host-1"), got.HostID)
}

func (s *StoreSuite) TestGetLobbyAbsentChannel() {
	_, err := s.store.GetLobby(s.ctx, "nope")
	s.ErrorIs(err, model.ErrNoActiveSession)
}

func (s *StoreSuite) TestSaveGameReplacesLobby() {
	s.Require().NoError(s.store.SaveLobby(s.ctx, s.lobby("chan-1")))

	game := &model.Game{ID: "g1", ChannelID: "chan-1", HostID: "host-1"}
	s.Require().NoError(s.store.SaveGame(s.ctx, game))

	_, err := s.store.GetLobby(s.ctx, "chan-1")
	s.ErrorIs(err, model.ErrNoActiveSession)

	got, err := s.store.GetGame(s.ctx, "chan-1")
	s.Require().NoError(err)
	s.Equal("g1", got.ID)
}

func (s *StoreSuite) TestSaveLobbyReplacesGame() {
	game := &model.Game{ID: "g1", ChannelID: "chan-1", HostID: "host-1"}
	s.Require().NoError(s.store.SaveGame(s.ctx, game))

	s.Require().NoError(s.store.SaveLobby(s.ctx, s.lobby("chan-1")))

	_, err := s.store.GetGame(s.ctx, "chan-1")
	s.ErrorIs(err, model.ErrNoActiveSession)
}

func (s *StoreSuite) TestDeleteSessionFreesChannel() {
	s.Require().NoError(s.store.SaveLobby(s.ctx, s.lobby("chan-1")))

	exists, err := s.store.SessionExists(s.ctx, "chan-1")
	s.Require().NoError(err)
	s.True(exists)

	s.Require().NoError(s.store.DeleteSession(s.ctx, "chan-1"))

	exists, err = s.store.SessionExists(s.ctx, "chan-1")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StoreSuite) TestChannelsAreIndependent() {
	s.Require().NoError(s.store.SaveLobby(s.ctx, s.lobby("chan-1")))
	s.Require().NoError(s.store.SaveLobby(s.ctx, s.lobby("chan-2")))

	s.Require().NoError(s.store.DeleteSession(s.ctx, "chan-1"))

	_, err := s.store.GetLobby(s.ctx, "chan-2")
	s.NoError(err)
}
