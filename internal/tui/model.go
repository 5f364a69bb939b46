package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/minibalatro/internal/deck"
	"github.com/lox/minibalatro/internal/display"
	"github.com/lox/minibalatro/internal/evaluator"
	"github.com/lox/minibalatro/internal/game"
)

const (
	logHeight  = 10
	maxHistory = 200
)

// Model is the Bubble Tea model for interactive play of one game
type Model struct {
	game     *game.Game
	renderer *display.Renderer
	logger   *log.Logger

	keys    KeyMap
	help    help.Model
	logView viewport.Model

	sessionID string
	cursor    int
	selected  map[*deck.Card]bool
	history   []string
	status    string
	statusErr bool
	quitting  bool
	width     int
}

// New creates a model over g. sessionID tags the header and log lines.
func New(g *game.Game, renderer *display.Renderer, logger *log.Logger, sessionID string) *Model {
	vp := viewport.New(60, logHeight)
	m := &Model{
		game:      g,
		renderer:  renderer,
		logger:    logger.WithPrefix("tui").With("session", sessionID),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		logView:   vp,
		sessionID: sessionID,
		selected:  make(map[*deck.Card]bool),
	}
	m.addHistory(renderer.State(g.State()))
	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.logView.Width = max(msg.Width-2, 1)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.logger.Info("Quitting", "round", m.game.State().Round)
			return m, tea.Quit
		case key.Matches(msg, m.keys.Left):
			m.moveCursor(-1)
		case key.Matches(msg, m.keys.Right):
			m.moveCursor(1)
		case key.Matches(msg, m.keys.Toggle):
			m.toggle()
		case key.Matches(msg, m.keys.Play):
			m.play()
		case key.Matches(msg, m.keys.Discard):
			m.discard()
		case key.Matches(msg, m.keys.Sort):
			m.toggleSort()
		case key.Matches(msg, m.keys.Hint):
			m.hint()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	var cmd tea.Cmd
	m.logView, cmd = m.logView.Update(msg)
	return m, cmd
}

// View renders the play screen
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("minibalatro"))
	b.WriteString(" ")
	b.WriteString(InfoStyle.Render(m.sessionID))
	b.WriteString("\n\n")

	b.WriteString(m.renderer.State(m.game.State()))
	b.WriteString("\n\n")

	hand := m.game.Hand()
	b.WriteString(m.renderer.Split(hand, m.Selected(), "PLAY", "HAND"))
	b.WriteString("\n")
	if len(hand) > 0 {
		b.WriteString(strings.Repeat(" ", display.Column(m.cursor)))
		b.WriteString(CursorStyle.Render("^"))
	}
	b.WriteString("\n")

	if preview := m.preview(); preview != "" {
		b.WriteString(preview)
	}
	b.WriteString("\n\n")

	b.WriteString(LogStyle.Render(m.logView.View()))
	b.WriteString("\n")

	if m.status != "" {
		if m.statusErr {
			b.WriteString(ErrorStyle.Render(m.status))
		} else {
			b.WriteString(SuccessStyle.Render(m.status))
		}
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// Selected returns the selected cards in hand order
func (m *Model) Selected() []*deck.Card {
	var out []*deck.Card
	for _, c := range m.game.Hand() {
		if m.selected[c] {
			out = append(out, c)
		}
	}
	return out
}

// SelectedIndices returns the hand positions of the selected cards
func (m *Model) SelectedIndices() []int {
	var out []int
	for i, c := range m.game.Hand() {
		if m.selected[c] {
			out = append(out, i)
		}
	}
	return out
}

// Cursor returns the hand position under the cursor
func (m *Model) Cursor() int {
	return m.cursor
}

// Status returns the current status line and whether it reports an error
func (m *Model) Status() (string, bool) {
	return m.status, m.statusErr
}

// History returns the log lines shown in the viewport
func (m *Model) History() []string {
	return m.history
}

func (m *Model) moveCursor(delta int) {
	n := len(m.game.Hand())
	if n == 0 {
		return
	}
	m.cursor = (m.cursor + delta + n) % n
}

func (m *Model) toggle() {
	hand := m.game.Hand()
	if m.cursor >= len(hand) {
		return
	}
	c := hand[m.cursor]
	if m.selected[c] {
		delete(m.selected, c)
		m.setStatus("", false)
		return
	}
	if len(m.selected) >= evaluator.MaxPlayed {
		m.setStatus(fmt.Sprintf("You can select at most %d cards", evaluator.MaxPlayed), true)
		return
	}
	m.selected[c] = true
	m.setStatus("", false)
}

func (m *Model) play() {
	before := m.game.Hand()
	result, err := m.game.PlayHand(m.SelectedIndices())
	if err != nil {
		m.reportError("play", err)
		return
	}
	m.addHistory(m.renderer.Split(before, result.Played, "PLAY", "KEEP"))
	m.addRefill(result.Drawn)
	m.addHistory(m.renderer.PlayResult(result))
	switch result.Outcome {
	case game.RoundCleared:
		m.setStatus(fmt.Sprintf("Round cleared with %d", result.RoundScore), false)
	case game.GameOver:
		m.setStatus(fmt.Sprintf("Game over: %d of %d", result.RoundScore, result.TargetScore), true)
	default:
		m.setStatus(m.renderer.Score(result.Score), false)
	}
	m.afterHandChange()
}

func (m *Model) discard() {
	before := m.game.Hand()
	result, err := m.game.DiscardCards(m.SelectedIndices())
	if err != nil {
		m.reportError("discard", err)
		return
	}
	m.addHistory(m.renderer.Split(before, result.Discarded, "DISCARD", "KEEP"))
	m.addRefill(result.Drawn)
	m.setStatus(fmt.Sprintf("%d discards left", m.game.State().Discards), false)
	m.afterHandChange()
}

// addRefill shows the cards just drawn against those already held. A new
// round deals a fresh hand and draws nothing.
func (m *Model) addRefill(drawn []*deck.Card) {
	if len(drawn) == 0 {
		return
	}
	m.addHistory(m.renderer.Split(m.game.Hand(), drawn, "NEW", "OLD"))
}

func (m *Model) toggleSort() {
	by := deck.SortBySuit
	if m.game.SortBy() == deck.SortBySuit {
		by = deck.SortByRank
	}
	var under *deck.Card
	if hand := m.game.Hand(); m.cursor < len(hand) {
		under = hand[m.cursor]
	}
	if err := m.game.SortHand(by); err != nil {
		m.reportError("sort", err)
		return
	}
	// keep the cursor on the same card
	for i, c := range m.game.Hand() {
		if c == under {
			m.cursor = i
		}
	}
	m.setStatus("Sorted by "+string(by), false)
}

// hint selects the best five cards held, or scores the whole hand when
// fewer than five remain
func (m *Model) hint() {
	hand := m.game.Hand()
	var (
		best []*deck.Card
		text string
	)
	if len(hand) >= evaluator.HandSize {
		res, err := evaluator.FindBest(hand)
		if err != nil {
			m.reportError("hint", err)
			return
		}
		best, text = res.Cards, m.renderer.Score(res.Score)
	} else {
		score, _, err := evaluator.Evaluate(hand)
		if err != nil {
			m.reportError("hint", err)
			return
		}
		best, text = hand, m.renderer.Score(score)
	}

	clear(m.selected)
	for _, c := range best {
		m.selected[c] = true
	}
	m.setStatus("Best: "+text, false)
}

// preview scores the current selection without playing it
func (m *Model) preview() string {
	selected := m.Selected()
	if len(selected) == 0 {
		return ""
	}
	score, _, err := evaluator.Evaluate(selected)
	if err != nil {
		return ""
	}
	return InfoStyle.Render("Selected: ") + m.renderer.Score(score)
}

func (m *Model) afterHandChange() {
	clear(m.selected)
	if n := len(m.game.Hand()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	m.addHistory(m.renderer.State(m.game.State()))
}

func (m *Model) reportError(action string, err error) {
	m.logger.Warn("Action rejected", "action", action, "error", err)
	switch {
	case errors.Is(err, game.ErrNoHandsRemaining):
		m.setStatus("No hands remaining", true)
	case errors.Is(err, game.ErrNoDiscardsRemaining):
		m.setStatus("No discards remaining", true)
	case errors.Is(err, game.ErrInvalidSelection):
		m.setStatus(fmt.Sprintf("Select between 1 and %d cards to %s", evaluator.MaxPlayed, action), true)
	default:
		m.setStatus(err.Error(), true)
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *Model) addHistory(entry string) {
	m.history = append(m.history, entry)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
	m.logView.SetContent(strings.Join(m.history, "\n"))
	m.logView.GotoBottom()
}
