package game

import (
	"bytes"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/minibalatro/internal/deck"
	"github.com/lox/minibalatro/internal/evaluator"
)

func newTestGame(t *testing.T, rules Rules, seed int64) *Game {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	g, err := NewGame(rules, WithSeed(seed), WithLogger(logger))
	require.NoError(t, err)
	return g
}

// setHand replaces the held cards. The 52-card total no longer holds after.
func setHand(t *testing.T, g *Game, cards string) {
	t.Helper()
	g.hand = deck.NewStack(deck.MustParseCards(cards)...)
}

func assertCardsConserved(t *testing.T, g *Game) {
	t.Helper()
	total := g.deck.Len() + len(g.Hand()) + len(g.SpentCards())
	assert.Equal(t, deck.DeckSize, total)
}

func TestNewGameDealsFirstRound(t *testing.T) {
	g := newTestGame(t, DefaultRules(), 1)
	state := g.State()

	assert.Equal(t, 1, state.Round)
	assert.Equal(t, 0, state.RoundScore)
	assert.Equal(t, 600, state.TargetScore)
	assert.Equal(t, 4, state.Hands)
	assert.Equal(t, 3, state.Discards)
	assert.Equal(t, 1, state.Ante)
	assert.Equal(t, 4, state.Money)
	assert.Equal(t, 8, state.HandSize)
	assert.Equal(t, 44, state.DeckSize)
	assertCardsConserved(t, g)
}

func TestNewGameRejectsBadRules(t *testing.T) {
	rules := DefaultRules()
	rules.Hands = 0
	_, err := NewGame(rules)
	assert.Error(t, err)

	_, err = NewGame(DefaultRules(), WithSortBy("colour"))
	assert.Error(t, err)
}

func TestNewGameIsReproducible(t *testing.T) {
	a := newTestGame(t, DefaultRules(), 42)
	b := newTestGame(t, DefaultRules(), 42)
	c := newTestGame(t, DefaultRules(), 43)

	assert.Equal(t, deck.FormatCards(a.Hand()), deck.FormatCards(b.Hand()))
	assert.NotEqual(t, deck.FormatCards(a.Hand()), deck.FormatCards(c.Hand()))
}

func TestHandIsSortedByRank(t *testing.T) {
	g := newTestGame(t, DefaultRules(), 7)
	hand := g.Hand()
	for i := 1; i < len(hand); i++ {
		assert.LessOrEqual(t, deck.CompareByRank(hand[i-1], hand[i]), 0)
	}
}

func TestPartition(t *testing.T) {
	g := newTestGame(t, DefaultRules(), 1)
	setHand(t, g, "Ah Kd Qc Js 10h 9d 8c 7s")

	selected, remaining, err := g.Partition([]int{4, 0, 2})
	require.NoError(t, err)
	assert.Equal(t, "A♥ Q♣ 10♥", deck.FormatCards(selected))
	assert.Equal(t, "K♦ J♠ 9♦ 8♣ 7♠", deck.FormatCards(remaining))

	_, _, err = g.Partition([]int{8})
	assert.ErrorIs(t, err, ErrInvalidSelection)
	_, _, err = g.Partition([]int{-1})
	assert.ErrorIs(t, err, ErrInvalidSelection)
	_, _, err = g.Partition([]int{1, 1})
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestPlayHandAccumulatesScore(t *testing.T) {
	g := newTestGame(t, DefaultRules(), 3)
	setHand(t, g, "8h 8s Kc Qc 5d 4d 3c 2s")

	result, err := g.PlayHand([]int{0, 1})
	require.NoError(t, err)

	assert.Equal(t, evaluator.Pair, result.Score.Category)
	assert.Equal(t, 52, result.Score.Total())
	assert.Equal(t, 52, result.RoundScore)
	assert.Equal(t, RoundContinues, result.Outcome)
	assert.Len(t, result.Played, 2)
	assert.Len(t, result.Kept, 6)
	assert.Len(t, result.Drawn, 2)

	state := g.State()
	assert.Equal(t, 52, state.RoundScore)
	assert.Equal(t, 3, state.Hands)
	assert.Equal(t, 8, state.HandSize)
	for _, c := range result.Played {
		assert.NotContains(t, g.Hand(), c)
	}
}

func TestPlayHandClearsRound(t *testing.T) {
	g := newTestGame(t, DefaultRules(), 3)
	setHand(t, g, "Ah Ah Ah Ah Ah 2c 3d 4s")

	result, err := g.PlayHand([]int{0, 1, 2, 3, 4})
	require.NoError(t, err)

	assert.Equal(t, evaluator.FlushFive, result.Score.Category)
	assert.Equal(t, RoundCleared, result.Outcome)
	assert.Equal(t, 3440, result.RoundScore)
	assert.Empty(t, result.Drawn)

	state := g.State()
	assert.Equal(t, 2, state.Round)
	assert.Equal(t, 0, state.RoundScore)
	assert.Equal(t, 4, state.Hands)
	assert.Equal(t, 3, state.Discards)
	assert.Equal(t, 8, state.HandSize)
	assertCardsConserved(t, g)
}

func TestTargetIncrementRaisesLaterRounds(t *testing.T) {
	rules := DefaultRules()
	rules.TargetIncrement = 150
	g := newTestGame(t, rules, 3)
	setHand(t, g, "Ah Ah Ah Ah Ah 2c 3d 4s")

	_, err := g.PlayHand([]int{0, 1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 750, g.State().TargetScore)
}

func TestRunningOutOfHandsEndsGame(t *testing.T) {
	g := newTestGame(t, DefaultRules(), 5)

	var result *PlayResult
	var err error
	for i := range 4 {
		assertCardsConserved(t, g)
		result, err = g.PlayHand([]int{0})
		require.NoError(t, err)
		if i < 3 {
			assert.Equal(t, RoundContinues, result.Outcome)
			assert.Equal(t, 3-i, g.State().Hands)
		}
	}

	assert.Equal(t, GameOver, result.Outcome)
	state := g.State()
	assert.Equal(t, 1, state.Round)
	assert.Equal(t, 0, state.RoundScore)
	assert.Equal(t, 4, state.Hands)
}

func TestPlayHandWithoutHandsLeft(t *testing.T) {
	g := newTestGame(t, DefaultRules(), 5)
	g.hands = 0
	before := deck.FormatCards(g.Hand())

	_, err := g.PlayHand([]int{0})
	assert.ErrorIs(t, err, ErrNoHandsRemaining)
	assert.Equal(t, 0, g.State().Hands)
	assert.Equal(t, before, deck.FormatCards(g.Hand()))
}

func TestPlayHandRejectsBadSelections(t *testing.T) {
	g := newTestGame(t, DefaultRules(), 5)

	tests := []struct {
		name    string
		indices []int
	}{
		{"nothing selected", nil},
		{"six cards", []int{0, 1, 2, 3, 4, 5}},
		{"out of range", []int{9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.PlayHand(tt.indices)
			assert.ErrorIs(t, err, ErrInvalidSelection)
			assert.Equal(t, 4, g.State().Hands)
			assert.Equal(t, 8, g.State().HandSize)
		})
	}
}

func TestDiscardCards(t *testing.T) {
	g := newTestGame(t, DefaultRules(), 9)
	hand := g.Hand()

	result, err := g.DiscardCards([]int{0, 2})
	require.NoError(t, err)
	assert.Equal(t, []*deck.Card{hand[0], hand[2]}, result.Discarded)
	assert.Len(t, result.Kept, 6)
	assert.Len(t, result.Drawn, 2)

	state := g.State()
	assert.Equal(t, 2, state.Discards)
	assert.Equal(t, 8, state.HandSize)
	for _, c := range result.Drawn {
		assert.Contains(t, g.Hand(), c)
	}
	assert.Equal(t, result.Discarded, g.SpentCards())
	assertCardsConserved(t, g)
}

func TestDiscardsRunOut(t *testing.T) {
	g := newTestGame(t, DefaultRules(), 9)
	for range 3 {
		_, err := g.DiscardCards([]int{0, 1, 2, 3, 4})
		require.NoError(t, err)
	}

	before := deck.FormatCards(g.Hand())
	_, err := g.DiscardCards([]int{0})
	assert.ErrorIs(t, err, ErrNoDiscardsRemaining)
	assert.Equal(t, 0, g.State().Discards)
	assert.Equal(t, before, deck.FormatCards(g.Hand()))
	assert.Equal(t, 52-8-15, g.State().DeckSize)
}

func TestDealStopsWhenDeckRunsOut(t *testing.T) {
	rules := DefaultRules()
	rules.HandLimit = 50
	g := newTestGame(t, rules, 2)

	_, err := g.DiscardCards([]int{0, 1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 0, g.State().DeckSize)
	assert.Equal(t, 47, g.State().HandSize)
}

func TestSortHand(t *testing.T) {
	g := newTestGame(t, DefaultRules(), 4)
	require.NoError(t, g.SortHand(deck.SortBySuit))
	assert.Equal(t, deck.SortBySuit, g.SortBy())

	hand := g.Hand()
	for i := 1; i < len(hand); i++ {
		assert.LessOrEqual(t, deck.CompareBySuit(hand[i-1], hand[i]), 0)
	}

	assert.Error(t, g.SortHand("colour"))
	assert.Equal(t, deck.SortBySuit, g.SortBy())
}

func TestDealHandLogsSortFailure(t *testing.T) {
	var buf bytes.Buffer
	g, err := NewGame(DefaultRules(), WithSeed(4), WithLogger(log.New(&buf)))
	require.NoError(t, err)

	g.hand = deck.NewStack(g.Hand()[1:]...)
	g.sortBy = "colour"

	drawn := g.DealHand()
	assert.Len(t, drawn, 1)
	assert.Len(t, g.Hand(), 8)
	assert.Contains(t, buf.String(), "Failed to sort hand")
}

func TestWithLoggerNilKeepsDefault(t *testing.T) {
	g, err := NewGame(DefaultRules(), WithSeed(3), WithLogger(nil))
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		_, err := g.PlayHand([]int{0})
		require.NoError(t, err)
	})
	assert.Equal(t, 3, g.State().Hands)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "continue", RoundContinues.String())
	assert.Equal(t, "round cleared", RoundCleared.String())
	assert.Equal(t, "game over", GameOver.String())
}
