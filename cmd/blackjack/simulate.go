package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/simulator"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Width(16)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))
)

type SimulateCmd struct {
	Decks       int           `help:"Decks per shoe (overrides config)"`
	Sessions    int           `short:"n" help:"Sessions to play, one pass through the shoe each (overrides config)"`
	Workers     int           `short:"w" help:"Concurrent sessions (overrides config)"`
	Seed        int64         `help:"Master RNG seed, 0 for random (overrides config)"`
	Strategy    string        `short:"s" help:"Strategy: threshold, rand or stand (overrides config)"`
	StandOn     int           `help:"Threshold strategy: stand at or above this value"`
	DoubleBelow int           `help:"Threshold strategy: double hard hands below this value"`
	NoSplit     bool          `help:"Threshold strategy: never split pairs"`
	NoShuffle   bool          `help:"Deal the first pass of each shoe in fresh deck order"`
	Timeout     time.Duration `help:"Abort the run after this long, 0 for no limit"`
	Report      string        `short:"o" type:"path" help:"Write a JSON report to this file"`
}

// apply overlays flags that were set onto the loaded configuration
func (c *SimulateCmd) apply(cfg *config.Config) {
	if c.Decks != 0 {
		cfg.Shoe.Decks = c.Decks
	}
	if c.NoShuffle {
		shuffle := false
		cfg.Shoe.Shuffle = &shuffle
	}

	sim := cfg.Simulation
	if c.Sessions != 0 {
		sim.Sessions = c.Sessions
	}
	if c.Workers != 0 {
		sim.Workers = c.Workers
	}
	if c.Seed != 0 {
		sim.Seed = c.Seed
	}
	if c.Strategy != "" {
		sim.Bot.Name = c.Strategy
	}
	if c.StandOn != 0 {
		sim.Bot.StandOn = c.StandOn
	}
	if c.DoubleBelow != 0 {
		doubleBelow := c.DoubleBelow
		sim.Bot.DoubleBelow = &doubleBelow
	}
	if c.NoSplit {
		split := false
		sim.Bot.Split = &split
	}
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	c.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(os.Stderr, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := randutil.Seed(cfg.Simulation.Seed)
	sim := simulator.New(simulator.Config{
		Decks:     cfg.Shoe.Decks,
		Shuffle:   *cfg.Shoe.Shuffle,
		Sessions:  cfg.Simulation.Sessions,
		Workers:   cfg.Simulation.Workers,
		Seed:      seed,
		Bot:       cfg.Simulation.Bot.Name,
		BotConfig: cfg.BotConfig(),
		Timeout:   c.Timeout,
		Logger:    logger,
	})

	result, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(renderSummary(result))

	if c.Report != "" {
		if err := fileutil.WriteJSONAtomic(c.Report, result.Report(), 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("Wrote report", "path", c.Report)
	}
	return nil
}

func renderSummary(result *simulator.Result) string {
	stats := result.Stats
	lo, hi := stats.ConfidenceInterval95()

	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}

	rows := []string{
		titleStyle.Render(fmt.Sprintf(" ♠ ♥ %s over %d sessions ♦ ♣ ", result.Config.Bot, stats.Sessions)),
		"",
		row("Run", result.ID),
		row("Seed", fmt.Sprintf("%d", result.Config.Seed)),
		row("Decks", fmt.Sprintf("%d", result.Config.Decks)),
		row("Deals", fmt.Sprintf("%d (%.1f per session)", stats.Deals, float64(stats.Deals)/float64(max(stats.Sessions, 1)))),
		row("Hands", fmt.Sprintf("%d", stats.Hands)),
		row("Cards dealt", fmt.Sprintf("%d", stats.CardsDealt)),
		row("Blackjacks", fmt.Sprintf("%d (%.2f%%)", stats.BlackJacks, stats.BlackJackRate()*100)),
		row("Busts", fmt.Sprintf("%d (%.2f%%)", stats.Busts, stats.BustRate()*100)),
		row("Doubles", fmt.Sprintf("%d", stats.Doubles)),
		row("Split hands", fmt.Sprintf("%d", stats.SplitHands)),
		row("Mean value", fmt.Sprintf("%.2f ± %.2f (95%% CI %.2f..%.2f)", stats.Mean(), stats.StdDev(), lo, hi)),
		row("Median value", fmt.Sprintf("%.0f", stats.Median())),
		row("Elapsed", result.Elapsed.Round(time.Millisecond).String()),
		"",
		renderHistogram(stats.ValueCounts, stats.Hands),
	}
	return strings.Join(rows, "\n")
}

// renderHistogram draws one bar per final value; busted totals share a row
func renderHistogram(counts map[int]int, hands int) string {
	if hands == 0 {
		return ""
	}

	merged := make(map[int]int)
	for v, n := range counts {
		if v > 21 {
			v = 22
		}
		merged[v] += n
	}

	values := make([]int, 0, len(merged))
	for v := range merged {
		values = append(values, v)
	}
	sort.Ints(values)

	const width = 40
	lines := make([]string, 0, len(values))
	for _, v := range values {
		label := fmt.Sprintf("%d", v)
		if v == 22 {
			label = "bust"
		}
		share := float64(merged[v]) / float64(hands)
		bar := strings.Repeat("█", int(share*width+0.5))
		lines = append(lines, fmt.Sprintf("%5s %s %5.1f%%", label, barStyle.Render(bar), share*100))
	}
	return strings.Join(lines, "\n")
}
