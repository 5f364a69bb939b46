package game

import (
	"fmt"

	"github.com/lox/minibalatro/internal/deck"
)

// Rules holds the per-game counters a round starts from
type Rules struct {
	Hands           int // hands that may be played per round
	Discards        int // discards allowed per round
	HandLimit       int // cards held after each draw
	TargetScore     int // score needed to clear the first round
	TargetIncrement int // added to the target for every round cleared
	Ante            int
	Money           int
}

// DefaultRules returns the standard rules
func DefaultRules() Rules {
	return Rules{
		Hands:       4,
		Discards:    3,
		HandLimit:   8,
		TargetScore: 600,
		Ante:        1,
		Money:       4,
	}
}

// Validate checks the rules describe a playable round
func (r Rules) Validate() error {
	if r.Hands < 1 {
		return fmt.Errorf("hands must be at least 1, got %d", r.Hands)
	}
	if r.Discards < 0 {
		return fmt.Errorf("discards cannot be negative, got %d", r.Discards)
	}
	if r.HandLimit < 1 || r.HandLimit > deck.DeckSize {
		return fmt.Errorf("hand limit must be between 1 and %d, got %d", deck.DeckSize, r.HandLimit)
	}
	if r.TargetScore < 1 {
		return fmt.Errorf("target score must be positive, got %d", r.TargetScore)
	}
	if r.TargetIncrement < 0 {
		return fmt.Errorf("target increment cannot be negative, got %d", r.TargetIncrement)
	}
	if r.Ante < 0 || r.Money < 0 {
		return fmt.Errorf("ante and money cannot be negative")
	}
	return nil
}

// targetFor returns the target score of the given round (1-based)
func (r Rules) targetFor(round int) int {
	return r.TargetScore + max(round-1, 0)*r.TargetIncrement
}
