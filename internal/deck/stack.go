package deck

import (
	"cmp"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
)

var (
	// ErrEmptyDeck is returned when drawing from an empty stack
	ErrEmptyDeck = errors.New("no cards left to draw")
	// ErrCardNotFound is returned when removing a card that is not held
	ErrCardNotFound = errors.New("card not in stack")
)

// SortBy selects the primary key used by Stack.Sort
type SortBy string

const (
	SortByRank SortBy = "rank"
	SortBySuit SortBy = "suit"
)

// Stack is an ordered pile of cards. The deck, the hand and the discard
// pile are all stacks.
type Stack struct {
	cards []*Card
}

// NewStack creates a stack holding the given cards in order
func NewStack(cards ...*Card) *Stack {
	s := &Stack{cards: make([]*Card, 0, len(cards))}
	s.cards = append(s.cards, cards...)
	return s
}

// Len returns the number of cards in the stack
func (s *Stack) Len() int {
	return len(s.cards)
}

// Cards returns a copy of the cards in order
func (s *Stack) Cards() []*Card {
	return slices.Clone(s.cards)
}

// At returns the card at index i
func (s *Stack) At(i int) *Card {
	return s.cards[i]
}

// Append adds a card to the end of the stack
func (s *Stack) Append(c *Card) {
	s.cards = append(s.cards, c)
}

// Extend adds cards to the end of the stack
func (s *Stack) Extend(cards []*Card) {
	s.cards = append(s.cards, cards...)
}

// Index returns the position of this exact card, or -1
func (s *Stack) Index(c *Card) int {
	return slices.Index(s.cards, c)
}

// Contains reports whether this exact card instance is in the stack
func (s *Stack) Contains(c *Card) bool {
	return s.Index(c) >= 0
}

// Remove takes the given card instance out of the stack
func (s *Stack) Remove(c *Card) error {
	i := s.Index(c)
	if i < 0 {
		return fmt.Errorf("remove %s: %w", c, ErrCardNotFound)
	}
	s.cards = slices.Delete(s.cards, i, i+1)
	return nil
}

// Pop removes and returns the card at index i
func (s *Stack) Pop(i int) (*Card, error) {
	if i < 0 || i >= len(s.cards) {
		return nil, fmt.Errorf("pop index %d out of range [0,%d)", i, len(s.cards))
	}
	c := s.cards[i]
	s.cards = slices.Delete(s.cards, i, i+1)
	return c, nil
}

// Draw removes and returns the last card
func (s *Stack) Draw() (*Card, error) {
	if len(s.cards) == 0 {
		return nil, ErrEmptyDeck
	}
	c := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	return c, nil
}

// DrawN draws n cards from the end of the stack
func (s *Stack) DrawN(n int) ([]*Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("draw %d: count cannot be negative", n)
	}
	if n > len(s.cards) {
		return nil, fmt.Errorf("draw %d with %d remaining: %w", n, len(s.cards), ErrEmptyDeck)
	}
	drawn := make([]*Card, 0, n)
	for range n {
		c, _ := s.Draw()
		drawn = append(drawn, c)
	}
	return drawn, nil
}

// Shuffle randomizes the order of the cards using the given RNG
func (s *Stack) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
}

// Sort orders the stack by rank (then suit) or by suit (then rank)
func (s *Stack) Sort(by SortBy) error {
	cmpFn, err := Comparator(by)
	if err != nil {
		return err
	}
	slices.SortStableFunc(s.cards, cmpFn)
	return nil
}

// Comparator returns the ordering function for a sort key
func Comparator(by SortBy) (func(a, b *Card) int, error) {
	switch by {
	case SortByRank:
		return CompareByRank, nil
	case SortBySuit:
		return CompareBySuit, nil
	default:
		return nil, fmt.Errorf("invalid sort by: %q", by)
	}
}

// CompareByRank orders Ace first, then King down to Two, ties by suit
func CompareByRank(a, b *Card) int {
	return cmp.Or(
		cmp.Compare(a.Rank.SortPriority(), b.Rank.SortPriority()),
		cmp.Compare(a.Suit.SortPriority(), b.Suit.SortPriority()),
	)
}

// CompareBySuit orders spades, hearts, clubs, diamonds, ties by rank
func CompareBySuit(a, b *Card) int {
	return cmp.Or(
		cmp.Compare(a.Suit.SortPriority(), b.Suit.SortPriority()),
		cmp.Compare(a.Rank.SortPriority(), b.Rank.SortPriority()),
	)
}

// SortedByRank returns a rank-sorted copy of cards
func SortedByRank(cards []*Card) []*Card {
	sorted := slices.Clone(cards)
	slices.SortStableFunc(sorted, CompareByRank)
	return sorted
}

// String returns the cards separated by spaces
func (s *Stack) String() string {
	return FormatCards(s.cards)
}

// FormatCards joins card strings with spaces
func FormatCards(cards []*Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
