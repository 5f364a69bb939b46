package game

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/minibalatro/internal/deck"
)

// Option configures a Game during creation.
type Option func(*gameConfig)

type gameConfig struct {
	seed   int64
	logger *log.Logger
	sortBy deck.SortBy
}

// WithSeed sets the seed every round's shuffle is derived from.
//
//	g, _ := game.NewGame(game.DefaultRules(), game.WithSeed(42))
func WithSeed(seed int64) Option {
	return func(c *gameConfig) {
		c.seed = seed
	}
}

// WithLogger sets the logger used for play and discard events. A nil
// logger keeps the default, which discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(c *gameConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSortBy sets how the hand is ordered after each draw. Default is rank.
func WithSortBy(by deck.SortBy) Option {
	return func(c *gameConfig) {
		c.sortBy = by
	}
}

func defaultConfig() *gameConfig {
	return &gameConfig{
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		sortBy: deck.SortByRank,
	}
}
