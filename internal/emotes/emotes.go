package emotes

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mcoot/unogame-go/internal/model"
)

// Table maps every canonical card to its display emote. Built once at
// bootstrap and immutable afterwards; session logic must never run
// before the table exists.
type Table map[model.Card]string

// colorSquares is the emoteless fallback per color
var colorSquares = map[model.CardColor]string{
	model.ColorRed:    "\U0001F7E5",
	model.ColorYellow: "\U0001F7E8",
	model.ColorGreen:  "\U0001F7E9",
	model.ColorBlue:   "\U0001F7E6",
}

const otherSquare = "⬛"

// Load reads the emote table from a JSON file mapping card identifiers
// to emote strings, and validates that every canonical card is covered.
// A failure here is a bootstrap failure: the process should exit rather
// than run half-initialized.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading emote table: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing emote table: %w", err)
	}

	table := make(Table, len(raw))
	for k, v := range raw {
		card := model.Card(k)
		if !card.Valid() {
			return nil, fmt.Errorf("emote table has unknown card %q", k)
		}
		table[card] = v
	}

	for _, card := range model.Catalog() {
		if _, ok := table[card]; !ok {
			return nil, fmt.Errorf("emote table missing card %q", card)
		}
	}

	return table, nil
}

// ColorFallback builds the emoteless table: colored squares per color,
// a black square for the wilds.
func ColorFallback() Table {
	table := make(Table, len(model.Catalog()))
	for _, card := range model.Catalog() {
		if card.IsWild() {
			table[card] = otherSquare
			continue
		}
		table[card] = colorSquares[card.Color()]
	}
	return table
}

// Display returns the card's emote, falling back to the raw identifier
// for cards outside the table.
func (t Table) Display(card model.Card) string {
	if e, ok := t[card]; ok {
		return e
	}
	return string(card)
}
