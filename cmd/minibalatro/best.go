package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lox/minibalatro/internal/evaluator"
)

type BestCmd struct {
	Cards   []string `arg:"" help:"Pool of at least five cards"`
	Workers int      `short:"w" default:"0" help:"Parallel workers (0 = one per CPU)"`
}

func (c *BestCmd) Run(g *Globals) error {
	cards, err := parseCardArgs(c.Cards)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := g.Logger(os.Stderr).WithPrefix("best")
	logger.Debug("Searching", "cards", len(cards), "subsets", evaluator.Binomial(len(cards), evaluator.HandSize))

	res, err := evaluator.FindBestParallel(ctx, cards, c.Workers)
	if err != nil {
		return err
	}
	fmt.Println(g.Renderer().SearchResult(res))
	return nil
}
