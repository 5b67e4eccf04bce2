// Package bot provides automated players that choose an action for a hand.
package bot

import (
	"fmt"
	rand "math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/hand"
)

// Decision is the action a bot picked and why.
type Decision struct {
	Action    hand.Action
	Reasoning string
}

// Bot picks the next action for a non-terminal hand. Implementations must
// only return actions the hand allows.
type Bot interface {
	Decide(h hand.Hand) Decision
}

// Config holds the knobs shared by the built-in bots.
type Config struct {
	// StandOn is the total at or above which the threshold bot stands.
	StandOn int
	// DoubleBelow doubles hard start hands whose total is under this value.
	// Zero disables doubling.
	DoubleBelow int
	// Split splits every splittable pair when true.
	Split bool
}

// DefaultConfig mirrors the classic self-play policy: split pairs, double
// hard totals under 10 and stand on 19 or more.
func DefaultConfig() Config {
	return Config{
		StandOn:     19,
		DoubleBelow: 10,
		Split:       true,
	}
}

// Validate checks the configuration values are usable.
func (c Config) Validate() error {
	if c.StandOn < 2 || c.StandOn > hand.Limit {
		return fmt.Errorf("stand_on must be between 2 and %d, got %d", hand.Limit, c.StandOn)
	}
	if c.DoubleBelow < 0 || c.DoubleBelow > hand.Limit {
		return fmt.Errorf("double_below must be between 0 and %d, got %d", hand.Limit, c.DoubleBelow)
	}
	return nil
}

var factories = map[string]func(cfg Config, rng *rand.Rand, logger *log.Logger) Bot{
	"threshold": func(cfg Config, _ *rand.Rand, logger *log.Logger) Bot {
		return NewThresholdBot(cfg, logger)
	},
	"rand": func(_ Config, rng *rand.Rand, logger *log.Logger) Bot {
		return NewRandBot(rng, logger)
	},
	"stand": func(_ Config, _ *rand.Rand, logger *log.Logger) Bot {
		return NewStandBot(logger)
	},
}

// Names lists the registered bot names in sorted order.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates a bot by name.
func New(name string, cfg Config, rng *rand.Rand, logger *log.Logger) (Bot, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown bot %q (want one of %v)", name, Names())
	}
	return factory(cfg, rng, logger), nil
}
