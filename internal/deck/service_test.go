package deck

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/unogame-go/internal/dependencies/mocks"
	"github.com/mcoot/unogame-go/internal/dependencies/random"
	"github.com/mcoot/unogame-go/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	random  *mocks.MockRandom
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.service = New(s.random)
}

func (s *ServiceSuite) TestBuildShuffledHas108Cards() {
	pile := s.service.BuildShuffled()
	s.Len(pile, 108)
}

func (s *ServiceSuite) TestBuildShuffledHasTwoOfEachCard() {
	pile := s.service.BuildShuffled()

	counts := make(map[model.Card]int)
	for _, c := range pile {
		counts[c]++
	}

	s.Len(counts, 54)
	for card, n := range counts {
		s.Equal(2, n, "card %s", card)
	}
}

func (s *ServiceSuite) TestBuildShuffledWithRealRandom() {
	svc := New(random.New())
	for i := 0; i < 5; i++ {
		pile := svc.BuildShuffled()
		s.Len(pile, 108)

		counts := make(map[model.Card]int)
		for _, c := range pile {
			counts[c]++
		}
		s.Len(counts, 54)
	}
}

func (s *ServiceSuite) TestDrawTakesFromTheFront() {
	pile := []model.Card{"red-1", "blue-2", "green-3"}

	drawn, rest := s.service.Draw(pile, 2)

	s.Equal([]model.Card{"red-1", "blue-2"}, drawn)
	s.Equal([]model.Card{"green-3"}, rest)
}

func (s *ServiceSuite) TestDrawExactPileSize() {
	pile := s.service.BuildShuffled()

	drawn, rest := s.service.Draw(pile, 108)

	s.Len(drawn, 108)
	s.Empty(rest)
}

func (s *ServiceSuite) TestDrawReplenishesWhenShort() {
	pile := []model.Card{"red-1"}

	drawn, rest := s.service.Draw(pile, 7)

	s.Len(drawn, 7)
	s.Equal(model.Card("red-1"), drawn[0])
	// 1 + 108 fresh - 7 drawn
	s.Len(rest, 102)
}

func (s *ServiceSuite) TestDrawFromEmptyPile() {
	drawn, rest := s.service.Draw(nil, 10)

	s.Len(drawn, 10)
	s.Len(rest, 98)
}

func (s *ServiceSuite) TestDrawOpeningNeverReturnsWild() {
	pile := []model.Card{model.CardWild, model.CardWildDraw, "yellow-7", "red-0"}

	card, rest := s.service.DrawOpening(pile)

	s.Equal(model.Card("yellow-7"), card)
	s.False(card.IsWild())
	// Skipped wilds go to the bottom, nothing is burned.
	s.Equal([]model.Card{"red-0", model.CardWild, model.CardWildDraw}, rest)
}

func (s *ServiceSuite) TestDrawOpeningPreservesCardCount() {
	pile := s.service.BuildShuffled()

	card, rest := s.service.DrawOpening(pile)

	s.False(card.IsWild())
	s.Len(rest, 107)
}

func (s *ServiceSuite) TestDrawOpeningWithRealRandom() {
	svc := New(random.New())
	for i := 0; i < 20; i++ {
		card, _ := svc.DrawOpening(svc.BuildShuffled())
		s.False(card.IsWild(), "opening card %s", card)
	}
}
