package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/minibalatro/internal/game"
	"github.com/lox/minibalatro/internal/gameid"
	"github.com/lox/minibalatro/internal/tui"
)

type PlayCmd struct {
	Seed    *int64 `help:"Seed for reproducible shuffles (default: time based)"`
	LogFile string `default:"minibalatro.log" type:"path" help:"Debug log file, the terminal belongs to the game"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.LoadConfig()
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()
	logger := g.Logger(logFile)

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	session := gameid.Generate()
	logger.Info("Starting game", "session", session, "seed", seed)

	gm, err := game.NewGame(cfg.Rules, game.WithSeed(seed), game.WithLogger(logger.With("session", session)))
	if err != nil {
		return err
	}

	model := tui.New(gm, g.Renderer(), logger, session)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	state := gm.State()
	fmt.Printf("Session %s ended in round %d with %d/%d (seed %d)\n",
		session, state.Round, state.RoundScore, state.TargetScore, seed)
	return nil
}
