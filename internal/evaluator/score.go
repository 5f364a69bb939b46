package evaluator

import (
	"fmt"

	"github.com/lox/minibalatro/internal/deck"
)

// Score is the result of scoring one played hand
type Score struct {
	Category Category
	Chips    int
	Mult     int
}

// Total returns chips times mult
func (s Score) Total() int {
	return s.Chips * s.Mult
}

// Name returns the category name
func (s Score) Name() string {
	return s.Category.String()
}

// String renders the score as "Pair: 26 x 2 = 52"
func (s Score) String() string {
	return fmt.Sprintf("%s: %d x %d = %d", s.Name(), s.Chips, s.Mult, s.Total())
}

// ScoreCards adds the chip and mult values of the scoring cards to the
// category's base values.
func ScoreCards(category Category, scoring []*deck.Card) Score {
	score := category.BaseScore()
	for _, c := range scoring {
		score.Chips += c.Chips
		score.Mult += c.Mult
	}
	return score
}
