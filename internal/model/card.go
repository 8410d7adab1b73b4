package model

import "strings"

// CardColor is one of the four deck colors
type CardColor string

const (
	ColorRed    CardColor = "red"
	ColorYellow CardColor = "yellow"
	ColorGreen  CardColor = "green"
	ColorBlue   CardColor = "blue"
)

// Colors lists the four deck colors in canonical order
var Colors = []CardColor{ColorRed, ColorYellow, ColorGreen, ColorBlue}

// Ranks lists the thirteen colored ranks in canonical order
var Ranks = []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "+2", "reverse", "block"}

// Card identifies a card as "{color}-{rank}", or one of the two
// colorless wilds ("wild", "+4"). Cards are values; only multiset
// membership matters, there is no per-instance identity.
type Card string

const (
	CardWild     Card = "wild"
	CardWildDraw Card = "+4"
)

// Catalog returns one canonical deck copy: 4 colors x 13 ranks plus the
// two wilds, 54 cards total. The returned slice is freshly allocated.
func Catalog() []Card {
	cards := make([]Card, 0, len(Colors)*len(Ranks)+2)
	for _, c := range Colors {
		for _, r := range Ranks {
			cards = append(cards, Card(string(c)+"-"+r))
		}
	}
	return append(cards, CardWild, CardWildDraw)
}

// IsWild reports whether the card is one of the two colorless wilds.
func (c Card) IsWild() bool {
	return c == CardWild || c == CardWildDraw
}

// Color returns the card's color, or "" for wilds and malformed cards.
func (c Card) Color() CardColor {
	if c.IsWild() {
		return ""
	}
	color, _, ok := strings.Cut(string(c), "-")
	if !ok {
		return ""
	}
	return CardColor(color)
}

// Rank returns the card's rank ("0".."9", "+2", "reverse", "block"),
// or "" for wilds and malformed cards.
func (c Card) Rank() string {
	if c.IsWild() {
		return ""
	}
	_, rank, ok := strings.Cut(string(c), "-")
	if !ok {
		return ""
	}
	return rank
}

// Valid reports whether the card belongs to the canonical catalog.
func (c Card) Valid() bool {
	if c.IsWild() {
		return true
	}
	color, rank := c.Color(), c.Rank()
	colorOK := false
	for _, col := range Colors {
		if col == color {
			colorOK = true
			break
		}
	}
	if !colorOK {
		return false
	}
	for _, r := range Ranks {
		if r == rank {
			return true
		}
	}
	return false
}
