package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/shoe"
	"github.com/lox/blackjack/internal/tui"
)

type PlayCmd struct {
	Decks   int    `help:"Decks in the shoe (overrides config)"`
	Seed    int64  `help:"Shuffle seed, 0 for random"`
	Hints   bool   `help:"Show what the configured strategy would do"`
	LogFile string `type:"path" help:"Write debug logs to this file while playing"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.Decks != 0 {
		cfg.Shoe.Decks = c.Decks
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// the TUI owns the terminal, so logs go to a file or nowhere
	var out io.Writer = io.Discard
	if c.LogFile != "" {
		logFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		defer func() {
			if err := logFile.Close(); err != nil {
				log.Error("Failed to close log file", "error", err)
			}
		}()
		out = logFile
	}
	logger := newLogger(out, cfg)

	seed := randutil.Seed(c.Seed)
	sh, err := shoe.New(cfg.Shoe.Decks, *cfg.Shoe.Shuffle, randutil.New(seed))
	if err != nil {
		return err
	}
	logger.Info("Starting table", "decks", cfg.Shoe.Decks, "seed", seed)

	var advisor bot.Bot
	if c.Hints {
		advisor, err = bot.New(cfg.Simulation.Bot.Name, cfg.BotConfig(), randutil.New(randutil.Derive(seed, 1)), logger)
		if err != nil {
			return err
		}
	}

	model := tui.NewTUIModel(sh, advisor, logger)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	stats := model.Stats()
	fmt.Printf("Played %d hands over %d deals: %d blackjacks, %d busts\n",
		stats.Hands, stats.Deals, stats.BlackJacks, stats.Busts)
	return nil
}
