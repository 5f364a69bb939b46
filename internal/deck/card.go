package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Spade Suit = iota
	Heart
	Club
	Diamond
)

// Suits lists every suit in deck construction order
var Suits = []Suit{Heart, Diamond, Club, Spade}

// String returns the suit symbol
func (s Suit) String() string {
	switch s {
	case Spade:
		return "♠"
	case Heart:
		return "♥"
	case Club:
		return "♣"
	case Diamond:
		return "♦"
	default:
		return "?"
	}
}

// Name returns the lowercase suit name
func (s Suit) Name() string {
	switch s {
	case Spade:
		return "spade"
	case Heart:
		return "heart"
	case Club:
		return "club"
	case Diamond:
		return "diamond"
	default:
		return "unknown"
	}
}

// SortPriority orders suits spade < heart < club < diamond.
func (s Suit) SortPriority() int {
	return int(s) + 1
}

// Rank represents a card rank, 1 (Ace) through 13 (King)
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// String returns the rank label
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	if r >= Two && r <= Ten {
		return fmt.Sprintf("%d", int(r))
	}
	return "?"
}

// Valid reports whether the rank is within A..K
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// SortPriority puts the Ace first, then King down to Two.
func (r Rank) SortPriority() int {
	if r == Ace {
		return 1
	}
	return int(King-r) + 2
}

// ChipValue returns the chips a card of this rank scores.
// Aces are worth 11, face cards 10, everything else its number.
func (r Rank) ChipValue() int {
	switch {
	case r == Ace:
		return 11
	case r >= Jack:
		return 10
	default:
		return int(r)
	}
}

// Card is a single playing card. Cards are passed around as pointers and
// compared by identity, so two cards of the same suit and rank are still
// different cards.
type Card struct {
	Suit  Suit
	Rank  Rank
	Chips int
	// Mult is a per-card multiplier bonus. Nothing sets it yet.
	Mult int
}

// NewCard creates a card with the chip value derived from its rank
func NewCard(suit Suit, rank Rank) *Card {
	return &Card{Suit: suit, Rank: rank, Chips: rank.ChipValue()}
}

// String returns the string representation of a card (e.g., "A♠")
func (c *Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// ParseCard parses a single card such as "Ah", "10d", "Td" or "K♣".
func ParseCard(s string) (*Card, error) {
	cards, err := ParseCards(s)
	if err != nil {
		return nil, err
	}
	if len(cards) != 1 {
		return nil, fmt.Errorf("expected exactly one card in %q, got %d", s, len(cards))
	}
	return cards[0], nil
}

// ParseCards parses card notation into fresh card instances.
// Format: "AsKd10h" or "As Kd Th"; each card is [Rank][Suit].
// Ranks: A, K, Q, J, T or 10, 9..2. Suits: s h c d or ♠ ♥ ♣ ♦.
func ParseCards(s string) ([]*Card, error) {
	runes := []rune(strings.NewReplacer(" ", "", ",", "", "\t", "").Replace(s))

	cards := []*Card{}
	for i := 0; i < len(runes); {
		rank, width, err := parseRank(runes[i:])
		if err != nil {
			return nil, fmt.Errorf("invalid rank at position %d: %w", i, err)
		}
		i += width
		if i >= len(runes) {
			return nil, fmt.Errorf("missing suit after rank %s", rank)
		}
		suit, err := parseSuit(runes[i])
		if err != nil {
			return nil, fmt.Errorf("invalid suit at position %d: %w", i, err)
		}
		i++
		cards = append(cards, NewCard(suit, rank))
	}

	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []*Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

func parseRank(r []rune) (Rank, int, error) {
	if len(r) >= 2 && r[0] == '1' && r[1] == '0' {
		return Ten, 2, nil
	}
	switch r[0] {
	case 'A', 'a':
		return Ace, 1, nil
	case 'K', 'k':
		return King, 1, nil
	case 'Q', 'q':
		return Queen, 1, nil
	case 'J', 'j':
		return Jack, 1, nil
	case 'T', 't':
		return Ten, 1, nil
	}
	if r[0] >= '2' && r[0] <= '9' {
		return Rank(r[0] - '0'), 1, nil
	}
	return 0, 0, fmt.Errorf("unknown rank '%c'", r[0])
}

func parseSuit(r rune) (Suit, error) {
	switch r {
	case 's', 'S', '♠':
		return Spade, nil
	case 'h', 'H', '♥':
		return Heart, nil
	case 'c', 'C', '♣':
		return Club, nil
	case 'd', 'D', '♦':
		return Diamond, nil
	default:
		return 0, fmt.Errorf("unknown suit '%c'", r)
	}
}
