package evaluator

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/minibalatro/internal/deck"
)

// MaxPlayed is the largest number of cards that can be played at once
const MaxPlayed = 5

var (
	// ErrEmptyHand is returned when classifying no cards
	ErrEmptyHand = errors.New("cannot score an empty hand")
	// ErrTooManyCards is returned when classifying more than MaxPlayed cards
	ErrTooManyCards = errors.New("cannot play more than 5 cards")
)

type rankGroup struct {
	rank  deck.Rank
	count int
}

// Classify determines the scoring category of 1 to 5 played cards and the
// subset of them that scores. The input slice is left untouched; scoring
// cards are returned in rank-sorted order.
func Classify(cards []*deck.Card) (Category, []*deck.Card, error) {
	if len(cards) == 0 {
		return HighCard, nil, ErrEmptyHand
	}
	if len(cards) > MaxPlayed {
		return HighCard, nil, fmt.Errorf("%w: got %d", ErrTooManyCards, len(cards))
	}

	sorted := deck.SortedByRank(cards)
	groups := groupRanks(sorted)
	flush := isFlush(sorted)
	straight := isStraight(sorted)

	top := groups[0].count
	second := 0
	if len(groups) > 1 {
		second = groups[1].count
	}

	switch {
	case top == 5:
		if flush {
			return FlushFive, sorted, nil
		}
		return FiveOfAKind, sorted, nil
	case top == 4:
		return FourOfAKind, cardsOfRanks(sorted, groups[0].rank), nil
	case len(sorted) == 5 && top == 3 && second == 2:
		if flush {
			return FlushHouse, sorted, nil
		}
		return FullHouse, sorted, nil
	case flush && straight:
		return StraightFlush, sorted, nil
	case flush:
		return Flush, sorted, nil
	case straight:
		return Straight, sorted, nil
	case top == 3:
		return ThreeOfAKind, cardsOfRanks(sorted, groups[0].rank), nil
	case len(sorted) >= 4 && top == 2 && second == 2:
		return TwoPair, cardsOfRanks(sorted, groups[0].rank, groups[1].rank), nil
	case top == 2:
		return Pair, cardsOfRanks(sorted, groups[0].rank), nil
	default:
		return HighCard, sorted[:1], nil
	}
}

// Evaluate classifies the cards and computes the final score
func Evaluate(cards []*deck.Card) (Score, []*deck.Card, error) {
	category, scoring, err := Classify(cards)
	if err != nil {
		return Score{}, nil, err
	}
	return ScoreCards(category, scoring), scoring, nil
}

// groupRanks counts cards per rank, most frequent first. Equal counts keep
// the order in which the ranks first appear in cards.
func groupRanks(cards []*deck.Card) []rankGroup {
	var groups []rankGroup
	for _, c := range cards {
		i := slices.IndexFunc(groups, func(g rankGroup) bool { return g.rank == c.Rank })
		if i < 0 {
			groups = append(groups, rankGroup{rank: c.Rank, count: 1})
			continue
		}
		groups[i].count++
	}
	slices.SortStableFunc(groups, func(a, b rankGroup) int {
		return b.count - a.count
	})
	return groups
}

func cardsOfRanks(cards []*deck.Card, ranks ...deck.Rank) []*deck.Card {
	var out []*deck.Card
	for _, c := range cards {
		if slices.Contains(ranks, c.Rank) {
			out = append(out, c)
		}
	}
	return out
}

// isFlush requires all five cards to share a suit
func isFlush(cards []*deck.Card) bool {
	if len(cards) != MaxPlayed {
		return false
	}
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

// isStraight requires five distinct ranks forming a run, with the Ace
// checked once as low (1) and once as high (14).
func isStraight(cards []*deck.Card) bool {
	if len(cards) != MaxPlayed {
		return false
	}

	low := make([]int, 0, len(cards))
	high := make([]int, 0, len(cards))
	for _, c := range cards {
		v := int(c.Rank)
		if slices.Contains(low, v) {
			return false
		}
		low = append(low, v)
		if c.Rank == deck.Ace {
			v = 14
		}
		high = append(high, v)
	}

	return isRun(low) || isRun(high)
}

// isRun assumes distinct values
func isRun(values []int) bool {
	slices.Sort(values)
	return values[len(values)-1]-values[0] == len(values)-1
}
