// Package config loads game rules and simulation settings from HCL.
//
//	rules {
//	  hands        = 4
//	  discards     = 3
//	  hand_limit   = 8
//	  target_score = 600
//	}
//
//	simulation {
//	  seeds       = 100
//	  first_pool  = 20
//	  second_pool = 13
//	}
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/minibalatro/internal/deck"
	"github.com/lox/minibalatro/internal/evaluator"
	"github.com/lox/minibalatro/internal/game"
)

// Config is the resolved configuration
type Config struct {
	Rules      game.Rules
	Simulation SimulationConfig
}

// SimulationConfig contains the offline brute-force simulation settings
type SimulationConfig struct {
	Seeds      int
	StartSeed  int64
	FirstPool  int
	SecondPool int
	Workers    int // 0 means one per CPU
}

// fileConfig mirrors the HCL file. Pointers tell "unset" apart from zero.
type fileConfig struct {
	Rules      *rulesBlock      `hcl:"rules,block"`
	Simulation *simulationBlock `hcl:"simulation,block"`
}

type rulesBlock struct {
	Hands           *int `hcl:"hands,optional"`
	Discards        *int `hcl:"discards,optional"`
	HandLimit       *int `hcl:"hand_limit,optional"`
	TargetScore     *int `hcl:"target_score,optional"`
	TargetIncrement *int `hcl:"target_increment,optional"`
	Ante            *int `hcl:"ante,optional"`
	Money           *int `hcl:"money,optional"`
}

type simulationBlock struct {
	Seeds      *int   `hcl:"seeds,optional"`
	StartSeed  *int64 `hcl:"start_seed,optional"`
	FirstPool  *int   `hcl:"first_pool,optional"`
	SecondPool *int   `hcl:"second_pool,optional"`
	Workers    *int   `hcl:"workers,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Rules: game.DefaultRules(),
		Simulation: SimulationConfig{
			Seeds:      100,
			FirstPool:  20,
			SecondPool: 13,
		},
	}
}

// Load reads configuration from an HCL file. An empty name or a missing
// file yields the defaults.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file.Body)
}

// Parse decodes configuration from HCL source
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*Config, error) {
	var fc fileConfig
	if diags := gohcl.DecodeBody(body, nil, &fc); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	if r := fc.Rules; r != nil {
		set(&config.Rules.Hands, r.Hands)
		set(&config.Rules.Discards, r.Discards)
		set(&config.Rules.HandLimit, r.HandLimit)
		set(&config.Rules.TargetScore, r.TargetScore)
		set(&config.Rules.TargetIncrement, r.TargetIncrement)
		set(&config.Rules.Ante, r.Ante)
		set(&config.Rules.Money, r.Money)
	}
	if s := fc.Simulation; s != nil {
		set(&config.Simulation.Seeds, s.Seeds)
		set(&config.Simulation.StartSeed, s.StartSeed)
		set(&config.Simulation.FirstPool, s.FirstPool)
		set(&config.Simulation.SecondPool, s.SecondPool)
		set(&config.Simulation.Workers, s.Workers)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	if err := c.Simulation.Validate(); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}
	return nil
}

// Validate checks the simulation settings
func (s SimulationConfig) Validate() error {
	if s.Seeds < 1 {
		return fmt.Errorf("seeds must be at least 1, got %d", s.Seeds)
	}
	if s.FirstPool < evaluator.HandSize || s.SecondPool < evaluator.HandSize {
		return fmt.Errorf("pools must hold at least %d cards", evaluator.HandSize)
	}
	if s.FirstPool+s.SecondPool > deck.DeckSize {
		return fmt.Errorf("pools draw %d cards from a %d-card deck", s.FirstPool+s.SecondPool, deck.DeckSize)
	}
	if s.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", s.Workers)
	}
	return nil
}
