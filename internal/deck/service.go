package deck

import (
	"github.com/mcoot/unogame-go/internal/dependencies/random"
	"github.com/mcoot/unogame-go/internal/model"
)

// DeckCopies is how many canonical deck copies seed a draw pile.
const DeckCopies = 2

// Service provides the deck primitives: building shuffled piles, drawing
// with automatic replenishment, and picking a legal opening discard.
// All operations are pure in-memory transformations; callers must keep
// the returned pile as the new authoritative state.
type Service struct {
	random random.Random
}

// New creates a deck service
func New(random random.Random) *Service {
	return &Service{random: random}
}

// BuildShuffled returns DeckCopies concatenated catalog copies in a
// uniformly random permutation (108 cards).
func (s *Service) BuildShuffled() []model.Card {
	catalog := model.Catalog()
	pile := make([]model.Card, 0, len(catalog)*DeckCopies)
	for i := 0; i < DeckCopies; i++ {
		pile = append(pile, catalog...)
	}
	s.random.Shuffle(len(pile), func(i, j int) {
		pile[i], pile[j] = pile[j], pile[i]
	})
	return pile
}

// Draw removes n cards from the front of the pile. If the pile holds
// fewer than n cards it is first topped up with a fresh shuffled pool,
// so the draw never fails for any n reachable in play. The second
// return value is the remaining pile and replaces the caller's copy.
func (s *Service) Draw(pile []model.Card, n int) ([]model.Card, []model.Card) {
	for len(pile) < n {
		pile = append(pile, s.BuildShuffled()...)
	}
	drawn := make([]model.Card, n)
	copy(drawn, pile[:n])
	return drawn, pile[n:]
}

// DrawOpening draws single cards until one that is not a wild comes up;
// a colorless card cannot legally open the discard pile. Skipped wilds
// go to the bottom of the pile, keeping the session's card count whole.
func (s *Service) DrawOpening(pile []model.Card) (model.Card, []model.Card) {
	for {
		var drawn []model.Card
		drawn, pile = s.Draw(pile, 1)
		card := drawn[0]
		if !card.IsWild() {
			return card, pile
		}
		pile = append(pile, card)
	}
}
