package deck

import (
	"math/rand/v2"
)

// DeckSize is the number of cards in a standard deck
const DeckSize = 52

// StandardCards returns a fresh, unshuffled set of 52 cards
func StandardCards() []*Card {
	cards := make([]*Card, 0, DeckSize)
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// NewDeck creates a new shuffled 52-card deck with explicit RNG.
// Cards are drawn from the end of the stack.
func NewDeck(rng *rand.Rand) *Stack {
	d := NewStack(StandardCards()...)
	d.Shuffle(rng)
	return d
}
