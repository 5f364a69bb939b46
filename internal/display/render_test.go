package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/minibalatro/internal/deck"
	"github.com/lox/minibalatro/internal/evaluator"
	"github.com/lox/minibalatro/internal/game"
)

func plain() *Renderer {
	return New(&bytes.Buffer{}, true)
}

func TestCards(t *testing.T) {
	r := plain()
	assert.Equal(t, "A♥ 10♣ K♠", r.Cards(deck.MustParseCards("Ah 10c Ks")))
}

func TestSplitPutsEachCardOnOneRow(t *testing.T) {
	r := plain()
	hand := deck.MustParseCards("Ah Kd Qc Js 10h")
	selected := []*deck.Card{hand[0], hand[3]}

	out := r.Split(hand, selected, "PLAY", "KEEP")
	rows := strings.Split(out, "\n")
	require.Len(t, rows, 2)

	assert.True(t, strings.HasPrefix(rows[0], "PLAY:"))
	assert.True(t, strings.HasPrefix(rows[1], "KEEP:"))
	for i, c := range hand {
		inTop := strings.Contains(rows[0], c.String())
		inBottom := strings.Contains(rows[1], c.String())
		assert.NotEqual(t, inTop, inBottom, "card %s", c)
		assert.Equal(t, i == 0 || i == 3, inTop, "card %s", c)
	}
}

func TestSplitAlignsColumns(t *testing.T) {
	r := plain()
	hand := deck.MustParseCards("Ah 10d 2c")

	rows := strings.Split(r.Split(hand, hand[1:2], "DISCARD", "KEEP"), "\n")
	require.Len(t, rows, 2)

	// 10♦ sits in the second column, after the label and one cell
	col := strings.Index(rows[0], "10")
	assert.Equal(t, labelWidth+cellWidth, lipgloss.Width(rows[0][:col]))
	assert.Equal(t, labelWidth, lipgloss.Width(rows[1][:strings.Index(rows[1], "A")]))
}

func TestSplitUsesIdentity(t *testing.T) {
	r := plain()
	hand := deck.MustParseCards("Ah Ah")

	rows := strings.Split(r.Split(hand, hand[1:], "NEW", "OLD"), "\n")
	assert.Equal(t, 1, strings.Count(rows[0], "A♥"))
	assert.Equal(t, 1, strings.Count(rows[1], "A♥"))
}

func TestScore(t *testing.T) {
	r := plain()
	s := evaluator.ScoreCards(evaluator.Pair, deck.MustParseCards("8h8s"))
	assert.Equal(t, "Pair: 26 x 2 = 52", r.Score(s))
}

func TestPlayResult(t *testing.T) {
	r := plain()
	played := deck.MustParseCards("8h 8s Kc")
	res := &game.PlayResult{
		Played:      played,
		Scoring:     played[:2],
		Score:       evaluator.ScoreCards(evaluator.Pair, played[:2]),
		RoundScore:  652,
		TargetScore: 600,
		Outcome:     game.RoundCleared,
	}

	out := r.PlayResult(res)
	assert.Contains(t, out, "Pair: 8♥ 8♠ K♣")
	assert.Contains(t, out, "Cards scored: 8♥ 8♠")
	assert.Contains(t, out, "Score: 26 x 2 = 52")
	assert.Contains(t, out, "Total Score: 652 / 600")
	assert.Contains(t, out, "Blind Complete!")
}

func TestState(t *testing.T) {
	r := plain()
	out := r.State(game.State{Round: 2, RoundScore: 120, TargetScore: 600, Hands: 3, Discards: 1, Ante: 1, Money: 4, DeckSize: 30})
	assert.Equal(t, "Round 2  Score 120/600  Hands 3  Discards 1  Ante 1  Money $4  Deck 30", out)
}

func TestSearchResult(t *testing.T) {
	r := plain()
	res, err := evaluator.FindBest(deck.MustParseCards("Ah Ad Ac As 2h 3c"))
	require.NoError(t, err)

	out := r.SearchResult(res)
	assert.Contains(t, out, "Max score: 728")
	assert.Contains(t, out, "Four of a Kind")
}

func TestColumnMatchesSplit(t *testing.T) {
	r := plain()
	hand := deck.MustParseCards("2h 3h 4h 5h")

	rows := strings.Split(r.Split(hand, nil, "PLAY", "HAND"), "\n")
	for i, c := range hand {
		at := strings.Index(rows[1], c.String())
		require.GreaterOrEqual(t, at, 0)
		assert.Equal(t, Column(i), lipgloss.Width(rows[1][:at]), "card %s", c)
	}
}
