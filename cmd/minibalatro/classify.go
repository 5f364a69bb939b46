package main

import (
	"fmt"

	"github.com/lox/minibalatro/internal/evaluator"
)

type ClassifyCmd struct {
	Cards []string `arg:"" help:"Cards to play, e.g. 'Ah Kh Qh Jh 10h'"`
}

func (c *ClassifyCmd) Run(g *Globals) error {
	cards, err := parseCardArgs(c.Cards)
	if err != nil {
		return err
	}
	score, scoring, err := evaluator.Evaluate(cards)
	if err != nil {
		return err
	}

	r := g.Renderer()
	fmt.Println(r.Split(cards, scoring, "SCORING", "UNSCORED"))
	fmt.Println(r.Score(score))
	return nil
}
