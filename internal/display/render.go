// Package display renders cards, hands and scores for the terminal.
package display

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/minibalatro/internal/deck"
	"github.com/lox/minibalatro/internal/evaluator"
	"github.com/lox/minibalatro/internal/game"
)

const (
	labelWidth = 10
	cellWidth  = 5
)

// Renderer turns game data into styled strings. It never writes itself.
type Renderer struct {
	suits    map[deck.Suit]lipgloss.Style
	label    lipgloss.Style
	category lipgloss.Style
	total    lipgloss.Style
	muted    lipgloss.Style
}

// New creates a renderer for w. Plain output drops all colour, for pipes
// and tests.
func New(w io.Writer, plain bool) *Renderer {
	r := lipgloss.NewRenderer(w)
	if plain {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Renderer{
		suits: map[deck.Suit]lipgloss.Style{
			deck.Spade:   r.NewStyle().Foreground(lipgloss.Color("15")),
			deck.Heart:   r.NewStyle().Foreground(lipgloss.Color("9")),
			deck.Club:    r.NewStyle().Foreground(lipgloss.Color("10")),
			deck.Diamond: r.NewStyle().Foreground(lipgloss.Color("11")),
		},
		label:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")),
		category: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#96CEB4")),
		total:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700")),
		muted:    r.NewStyle().Foreground(lipgloss.Color("#626262")),
	}
}

// Card renders a single card in its suit colour
func (r *Renderer) Card(c *deck.Card) string {
	return r.suits[c.Suit].Render(c.String())
}

// Cards renders cards separated by spaces
func (r *Renderer) Cards(cards []*deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = r.Card(c)
	}
	return strings.Join(parts, " ")
}

// Split renders hand on two aligned rows: cards in selected on the top row,
// the rest on the bottom row. Every hand position is filled on exactly one
// row.
func (r *Renderer) Split(hand, selected []*deck.Card, top, bottom string) string {
	var topRow, bottomRow strings.Builder
	topRow.WriteString(r.label.Render(pad(top+":", labelWidth)))
	bottomRow.WriteString(r.label.Render(pad(bottom+":", labelWidth)))

	blank := strings.Repeat(" ", cellWidth)
	for _, c := range hand {
		cell := pad(r.Card(c), cellWidth)
		if slices.Contains(selected, c) {
			topRow.WriteString(cell)
			bottomRow.WriteString(blank)
		} else {
			topRow.WriteString(blank)
			bottomRow.WriteString(cell)
		}
	}
	return strings.TrimRight(topRow.String(), " ") + "\n" + strings.TrimRight(bottomRow.String(), " ")
}

// Column returns the visible column where hand position i starts in Split
func Column(i int) int {
	return labelWidth + i*cellWidth
}

// Score renders "Pair: 26 x 2 = 52"
func (r *Renderer) Score(s evaluator.Score) string {
	return fmt.Sprintf("%s: %d x %d = %s",
		r.category.Render(s.Name()), s.Chips, s.Mult, r.total.Render(fmt.Sprint(s.Total())))
}

// PlayResult renders the summary printed after a hand is played
func (r *Renderer) PlayResult(res *game.PlayResult) string {
	lines := []string{
		fmt.Sprintf("%s: %s", r.category.Render(res.Score.Name()), r.Cards(res.Played)),
		fmt.Sprintf("Cards scored: %s", r.Cards(res.Scoring)),
		fmt.Sprintf("Score: %d x %d = %s", res.Score.Chips, res.Score.Mult, r.total.Render(fmt.Sprint(res.Score.Total()))),
		fmt.Sprintf("Total Score: %d / %d", res.RoundScore, res.TargetScore),
	}
	switch res.Outcome {
	case game.RoundCleared:
		lines = append(lines, r.total.Render("Blind Complete!"))
	case game.GameOver:
		lines = append(lines, r.suits[deck.Heart].Render("Game Over!"))
	}
	return strings.Join(lines, "\n")
}

// State renders the round counters on one line
func (r *Renderer) State(s game.State) string {
	return r.muted.Render(fmt.Sprintf(
		"Round %d  Score %d/%d  Hands %d  Discards %d  Ante %d  Money $%d  Deck %d",
		s.Round, s.RoundScore, s.TargetScore, s.Hands, s.Discards, s.Ante, s.Money, s.DeckSize,
	))
}

// SearchResult renders the outcome of a best-hand search
func (r *Renderer) SearchResult(res evaluator.Result) string {
	return strings.Join([]string{
		fmt.Sprintf("Max score: %s", r.total.Render(fmt.Sprint(res.Total))),
		fmt.Sprintf("Best cards: %s", r.Cards(res.Cards)),
		fmt.Sprintf("Scoring hand: %s (%s)", r.category.Render(res.Score.Name()), r.Cards(res.Scoring)),
	}, "\n")
}

// pad right-pads s to width visible columns
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s + " "
}
