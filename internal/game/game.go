package game

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/thoas/go-funk"

	"github.com/lox/minibalatro/internal/deck"
	"github.com/lox/minibalatro/internal/evaluator"
	"github.com/lox/minibalatro/internal/randutil"
)

var (
	// ErrNoHandsRemaining is returned when playing with no hands left
	ErrNoHandsRemaining = errors.New("no hands remaining")
	// ErrNoDiscardsRemaining is returned when discarding with no discards left
	ErrNoDiscardsRemaining = errors.New("no discards remaining")
	// ErrInvalidSelection is returned for bad card indices
	ErrInvalidSelection = errors.New("invalid card selection")
)

// Outcome describes what a played hand did to the round
type Outcome int

const (
	// RoundContinues means the round is still in progress
	RoundContinues Outcome = iota
	// RoundCleared means the target score was reached and a new round was dealt
	RoundCleared
	// GameOver means the last hand was played short of the target
	GameOver
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case RoundContinues:
		return "continue"
	case RoundCleared:
		return "round cleared"
	case GameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// PlayResult describes a played hand
type PlayResult struct {
	Played      []*deck.Card
	Kept        []*deck.Card
	Scoring     []*deck.Card
	Score       evaluator.Score
	RoundScore  int // round score after this hand, before any new round
	TargetScore int
	Drawn       []*deck.Card // refill after the hand; empty when a new round was dealt
	Outcome     Outcome
}

// DiscardResult describes a discard
type DiscardResult struct {
	Discarded []*deck.Card
	Kept      []*deck.Card
	Drawn     []*deck.Card
}

// State is a snapshot of the game counters
type State struct {
	Round       int
	RoundScore  int
	TargetScore int
	Hands       int
	Discards    int
	Ante        int
	Money       int
	DeckSize    int
	HandSize    int
	HandLimit   int
}

// Game runs rounds of draw, discard and play against a target score.
// A Game is not safe for concurrent use.
type Game struct {
	rules  Rules
	seed   int64
	logger *log.Logger
	sortBy deck.SortBy

	deck    *deck.Stack
	hand    *deck.Stack
	spent   *deck.Stack // played and discarded cards this round
	dealt   int         // rounds dealt so far, used to derive shuffles
	round   int
	score   int
	target  int
	hands   int
	discard int
	ante    int
	money   int
}

// NewGame validates the rules and deals the first round
func NewGame(rules Rules, opts ...Option) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if _, err := deck.Comparator(cfg.sortBy); err != nil {
		return nil, err
	}

	g := &Game{
		rules:  rules,
		seed:   cfg.seed,
		logger: cfg.logger.WithPrefix("game"),
		sortBy: cfg.sortBy,
		round:  1,
		ante:   rules.Ante,
		money:  rules.Money,
	}
	g.NewRound()
	return g, nil
}

// NewRound deals a fresh shuffled deck and resets the round counters
func (g *Game) NewRound() {
	roundSeed := randutil.Derive(g.seed, g.dealt)
	g.dealt++

	g.deck = deck.NewDeck(randutil.New(roundSeed))
	g.hand = deck.NewStack()
	g.spent = deck.NewStack()
	g.score = 0
	g.target = g.rules.targetFor(g.round)
	g.hands = g.rules.Hands
	g.discard = g.rules.Discards

	g.logger.Debug("Dealing round", "round", g.round, "seed", roundSeed, "target", g.target)
	g.DealHand()
}

// DealHand draws cards until the hand limit is reached or the deck runs out,
// then sorts the hand. It returns the cards drawn.
func (g *Game) DealHand() []*deck.Card {
	var drawn []*deck.Card
	for g.hand.Len() < g.rules.HandLimit {
		c, err := g.deck.Draw()
		if err != nil {
			g.logger.Warn("Deck exhausted while dealing", "hand", g.hand.Len())
			break
		}
		g.hand.Append(c)
		drawn = append(drawn, c)
	}
	if err := g.hand.Sort(g.sortBy); err != nil {
		g.logger.Warn("Failed to sort hand", "sort_by", g.sortBy, "error", err)
	}
	return drawn
}

// Partition splits the hand into the cards at indices and the rest, both
// in hand order.
func (g *Game) Partition(indices []int) (selected, remaining []*deck.Card, err error) {
	if len(funk.UniqInt(indices)) != len(indices) {
		return nil, nil, fmt.Errorf("%w: repeated index in %v", ErrInvalidSelection, indices)
	}
	for _, i := range indices {
		if i < 0 || i >= g.hand.Len() {
			return nil, nil, fmt.Errorf("%w: index %d out of range [0,%d)", ErrInvalidSelection, i, g.hand.Len())
		}
	}

	for i, c := range g.hand.Cards() {
		if funk.ContainsInt(indices, i) {
			selected = append(selected, c)
		} else {
			remaining = append(remaining, c)
		}
	}
	return selected, remaining, nil
}

// PlayHand plays the cards at indices, scores them and adds the total to the
// round score. Reaching the target deals a new round; running out of hands
// short of it ends the game and starts over.
func (g *Game) PlayHand(indices []int) (*PlayResult, error) {
	if g.hands <= 0 {
		return nil, ErrNoHandsRemaining
	}
	played, kept, err := g.selection(indices)
	if err != nil {
		return nil, err
	}

	score, scoring, err := evaluator.Evaluate(played)
	if err != nil {
		return nil, err
	}

	g.hands--
	g.hand = deck.NewStack(kept...)
	g.spent.Extend(played)
	g.score += score.Total()

	result := &PlayResult{
		Played:      played,
		Kept:        kept,
		Scoring:     scoring,
		Score:       score,
		RoundScore:  g.score,
		TargetScore: g.target,
	}

	g.logger.Info("Hand played",
		"category", score.Name(),
		"cards", deck.FormatCards(played),
		"chips", score.Chips,
		"mult", score.Mult,
		"total", score.Total(),
		"round_score", g.score,
		"target", g.target,
	)

	result.Outcome = g.checkTargetScore()
	if result.Outcome == RoundContinues {
		result.Drawn = g.DealHand()
	}
	return result, nil
}

// DiscardCards throws away the cards at indices and refills the hand
func (g *Game) DiscardCards(indices []int) (*DiscardResult, error) {
	if g.discard <= 0 {
		return nil, ErrNoDiscardsRemaining
	}
	discarded, kept, err := g.selection(indices)
	if err != nil {
		return nil, err
	}

	g.discard--
	g.hand = deck.NewStack(kept...)
	g.spent.Extend(discarded)

	g.logger.Info("Cards discarded", "cards", deck.FormatCards(discarded), "discards_left", g.discard)

	return &DiscardResult{
		Discarded: discarded,
		Kept:      kept,
		Drawn:     g.DealHand(),
	}, nil
}

// selection partitions the hand and checks 1 to 5 cards were chosen
func (g *Game) selection(indices []int) (selected, remaining []*deck.Card, err error) {
	selected, remaining, err = g.Partition(indices)
	if err != nil {
		return nil, nil, err
	}
	if len(selected) == 0 || len(selected) > evaluator.MaxPlayed {
		return nil, nil, fmt.Errorf("%w: select between 1 and %d cards, got %d",
			ErrInvalidSelection, evaluator.MaxPlayed, len(selected))
	}
	return selected, remaining, nil
}

func (g *Game) checkTargetScore() Outcome {
	switch {
	case g.score >= g.target:
		g.logger.Info("Blind complete", "round", g.round, "score", g.score, "target", g.target)
		g.round++
		g.NewRound()
		return RoundCleared
	case g.hands <= 0:
		g.logger.Info("Game over", "round", g.round, "score", g.score, "target", g.target)
		g.round = 1
		g.ante = g.rules.Ante
		g.money = g.rules.Money
		g.NewRound()
		return GameOver
	default:
		return RoundContinues
	}
}

// SortHand reorders the hand and keeps that order for future draws
func (g *Game) SortHand(by deck.SortBy) error {
	if err := g.hand.Sort(by); err != nil {
		return err
	}
	g.sortBy = by
	return nil
}

// Hand returns the held cards in order
func (g *Game) Hand() []*deck.Card {
	return g.hand.Cards()
}

// Rules returns the rules the game was created with
func (g *Game) Rules() Rules {
	return g.rules
}

// SortBy returns the current hand ordering
func (g *Game) SortBy() deck.SortBy {
	return g.sortBy
}

// State returns a snapshot of the counters
func (g *Game) State() State {
	return State{
		Round:       g.round,
		RoundScore:  g.score,
		TargetScore: g.target,
		Hands:       g.hands,
		Discards:    g.discard,
		Ante:        g.ante,
		Money:       g.money,
		DeckSize:    g.deck.Len(),
		HandSize:    g.hand.Len(),
		HandLimit:   g.rules.HandLimit,
	}
}

// SpentCards returns the cards played or discarded this round
func (g *Game) SpentCards() []*deck.Card {
	return g.spent.Cards()
}
