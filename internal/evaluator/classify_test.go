package evaluator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/minibalatro/internal/deck"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		expected Category
		scoring  int
	}{
		{"flush five", "AhAhAhAhAh", FlushFive, 5},
		{"flush house", "4d4d4d10d10d", FlushHouse, 5},
		{"five of a kind", "JdJdJdJdJs", FiveOfAKind, 5},
		{"straight flush ace high", "QcKcJcAc10c", StraightFlush, 5},
		{"straight flush ace low", "Ah2h3h4h5h", StraightFlush, 5},
		{"four of a kind", "QsQhQcQd5s", FourOfAKind, 4},
		{"four of a kind 4 cards", "QsQhQcQd", FourOfAKind, 4},
		{"full house", "7s7h7c2d2s", FullHouse, 5},
		{"flush", "2c4c6c8c10c", Flush, 5},
		{"flush with pair", "2c2c6c8c10c", Flush, 5},
		{"flush with three of a kind", "2c2c2c8c10c", Flush, 5},
		{"straight", "4s5c6h7c8c", Straight, 5},
		{"straight ace low", "3h2c5c4cAs", Straight, 5},
		{"straight ace high", "10hJcQcKcAs", Straight, 5},
		{"three of a kind", "9h9c9cAc6s", ThreeOfAKind, 3},
		{"three of a kind 4 cards", "9hAc9c9c", ThreeOfAKind, 3},
		{"three of a kind 3 cards", "9c9c9c", ThreeOfAKind, 3},
		{"two pair", "10h10cKc4c4s", TwoPair, 4},
		{"two pair 4 cards", "10h4h10h4h", TwoPair, 4},
		{"pair", "8c8cKcQcJs", Pair, 2},
		{"pair 4 cards", "8cKc8cQc", Pair, 2},
		{"pair 3 cards", "Qc8h8s", Pair, 2},
		{"pair 2 cards", "8h8s", Pair, 2},
		{"high card", "Kh8h7s6s5s", HighCard, 1},
		{"high card 4 cards", "8h7hKh2h", HighCard, 1},
		{"high card 3 cards", "7h10d2c", HighCard, 1},
		{"high card 2 cards", "2h10d", HighCard, 1},
		{"high card 1 card", "10d", HighCard, 1},
		{"wrap around is not a straight", "QhKhAh2c3c", HighCard, 1},
		{"four suited cards are not a flush", "2h5h9hJh", HighCard, 1},
		{"3+2 split needs five cards", "7s7h7c", ThreeOfAKind, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, scoring, err := Classify(deck.MustParseCards(tt.cards))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, category, "got %s", category)
			assert.Len(t, scoring, tt.scoring)
		})
	}
}

func TestClassifyRejectsInvalidInput(t *testing.T) {
	_, _, err := Classify(nil)
	assert.ErrorIs(t, err, ErrEmptyHand)

	_, _, err = Classify(deck.MustParseCards("2h3h4h5h6h7h"))
	assert.ErrorIs(t, err, ErrTooManyCards)

	_, _, err = Evaluate([]*deck.Card{})
	assert.ErrorIs(t, err, ErrEmptyHand)
}

func TestClassifyDoesNotReorderInput(t *testing.T) {
	cards := deck.MustParseCards("2h Kd 7s")
	before := deck.FormatCards(cards)
	_, _, err := Classify(cards)
	require.NoError(t, err)
	assert.Equal(t, before, deck.FormatCards(cards))
}

func TestClassifyIsOrderIndependent(t *testing.T) {
	hands := []string{
		"4d4d4d10d10d",
		"QcKcJcAc10c",
		"3h2c5c4cAs",
		"10h10cKc4c4s",
		"9hAc9c9c",
		"Kh8h7s6s5s",
	}
	for _, h := range hands {
		t.Run(h, func(t *testing.T) {
			cards := deck.MustParseCards(h)
			want, wantScoring, err := Classify(cards)
			require.NoError(t, err)

			permute(cards, func(p []*deck.Card) {
				got, scoring, err := Classify(p)
				require.NoError(t, err)
				assert.Equal(t, want, got, "permutation %s", deck.FormatCards(p))
				assert.ElementsMatch(t, wantScoring, scoring)
			})
		})
	}
}

func TestHighCardScoresFirstRankSortedCard(t *testing.T) {
	tests := []struct {
		cards    string
		expected string
	}{
		{"Kh8h7s6s5s", "K♥"},
		{"2h10d", "10♦"},
		{"7hAd2c", "A♦"},
	}
	for _, tt := range tests {
		category, scoring, err := Classify(deck.MustParseCards(tt.cards))
		require.NoError(t, err)
		require.Equal(t, HighCard, category)
		require.Len(t, scoring, 1)
		assert.Equal(t, tt.expected, scoring[0].String())
	}
}

func TestTwoPairScoresBothPairs(t *testing.T) {
	cards := deck.MustParseCards("10h10cKc4c4s")
	_, scoring, err := Classify(cards)
	require.NoError(t, err)
	assert.Equal(t, "10♥ 10♣ 4♠ 4♣", deck.FormatCards(scoring))
}

func TestFourOfAKindExcludesKicker(t *testing.T) {
	cards := deck.MustParseCards("QsQhQcQd5s")
	_, scoring, err := Classify(cards)
	require.NoError(t, err)
	assert.NotContains(t, scoring, cards[4])
	for _, c := range scoring {
		assert.Equal(t, deck.Queen, c.Rank)
	}
}

func TestEvaluateScores(t *testing.T) {
	tests := []struct {
		cards string
		chips int
		mult  int
		total int
	}{
		{"AhAhAhAhAh", 160 + 5*11, 16, (160 + 55) * 16},
		{"5s5s5s5s5s", 160 + 25, 16, 185 * 16},
		{"8h8s", 10 + 16, 2, 52},
		{"10d", 5 + 10, 1, 15},
		{"QsQhQcQd5s", 60 + 40, 7, 700},
		{"10hJcQcKcAs", 30 + 10*4 + 11, 4, 81 * 4},
	}
	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			score, _, err := Evaluate(deck.MustParseCards(tt.cards))
			require.NoError(t, err)
			assert.Equal(t, tt.chips, score.Chips)
			assert.Equal(t, tt.mult, score.Mult)
			assert.Equal(t, tt.total, score.Total())
		})
	}
}

func TestEvaluateAddsCardMult(t *testing.T) {
	cards := deck.MustParseCards("8h8s")
	cards[0].Mult = 3
	score, _, err := Evaluate(cards)
	require.NoError(t, err)
	assert.Equal(t, 5, score.Mult)
}

func TestReclassifyingScoringCardsNeverDowngrades(t *testing.T) {
	hands := []string{
		"Kh8h7s6s5s",
		"8c8cKcQcJs",
		"10h10cKc4c4s",
		"9h9c9cAc6s",
		"QsQhQcQd5s",
		"7s7h7c2d2s",
		"2c4c6c8c10c",
	}
	for _, h := range hands {
		t.Run(h, func(t *testing.T) {
			category, scoring, err := Classify(deck.MustParseCards(h))
			require.NoError(t, err)

			again, rescored, err := Classify(scoring)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, int(again), int(category))
			assert.ElementsMatch(t, scoring, rescored)
		})
	}
}

func TestCategoryTable(t *testing.T) {
	expected := []struct {
		name  string
		chips int
		mult  int
	}{
		{"High Card", 5, 1},
		{"Pair", 10, 2},
		{"Two Pair", 20, 2},
		{"Three of a Kind", 30, 3},
		{"Straight", 30, 4},
		{"Flush", 35, 4},
		{"Full House", 40, 4},
		{"Four of a Kind", 60, 7},
		{"Straight Flush", 100, 8},
		{"Five of a Kind", 120, 12},
		{"Flush House", 140, 14},
		{"Flush Five", 160, 16},
	}
	categories := Categories()
	require.Len(t, categories, len(expected))
	for i, c := range categories {
		assert.Equal(t, expected[i].name, c.String())
		assert.Equal(t, expected[i].chips, c.BaseChips())
		assert.Equal(t, expected[i].mult, c.BaseMult())
	}
	assert.Equal(t, "Unknown", Category(99).String())
}

func TestBaseScoreIsACopy(t *testing.T) {
	s := Pair.BaseScore()
	s.Chips += 100
	assert.Equal(t, 10, Pair.BaseChips())
	assert.Equal(t, fmt.Sprintf("Pair: %d x 2 = %d", 110, 220), s.String())
}

// permute calls fn with every ordering of cards
func permute(cards []*deck.Card, fn func([]*deck.Card)) {
	p := append([]*deck.Card(nil), cards...)
	var rec func(k int)
	rec = func(k int) {
		if k == len(p) {
			fn(p)
			return
		}
		for i := k; i < len(p); i++ {
			p[k], p[i] = p[i], p[k]
			rec(k + 1)
			p[k], p[i] = p[i], p[k]
		}
	}
	rec(0)
}
