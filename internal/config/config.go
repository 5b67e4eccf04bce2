package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/blackjack/internal/bot"
)

// Config represents the complete blackjack configuration
type Config struct {
	LogLevel   string            `hcl:"log_level,optional"`
	Shoe       *ShoeSettings     `hcl:"shoe,block"`
	Simulation *SimulationConfig `hcl:"simulation,block"`
}

// ShoeSettings describes how shoes are built
type ShoeSettings struct {
	Decks   int   `hcl:"decks,optional"`
	Shuffle *bool `hcl:"shuffle,optional"`
}

// SimulationConfig controls self-play runs
type SimulationConfig struct {
	Sessions int          `hcl:"sessions,optional"`
	Workers  int          `hcl:"workers,optional"`
	Seed     int64        `hcl:"seed,optional"`
	Bot      *BotSettings `hcl:"strategy,block"`
}

// BotSettings selects and tunes the automated player
type BotSettings struct {
	Name        string `hcl:"name,label"`
	StandOn     int    `hcl:"stand_on,optional"`
	DoubleBelow *int   `hcl:"double_below,optional"`
	Split       *bool  `hcl:"split,optional"`
}

const (
	defaultLogLevel = "info"
	defaultDecks    = 6
	defaultSessions = 100
	defaultWorkers  = 4
	defaultBot      = "threshold"
)

// Default returns the default configuration
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads configuration from an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source; filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	if diags := gohcl.DecodeBody(file.Body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}

	if c.Shoe == nil {
		c.Shoe = &ShoeSettings{}
	}
	if c.Shoe.Decks == 0 {
		c.Shoe.Decks = defaultDecks
	}
	if c.Shoe.Shuffle == nil {
		shuffle := true
		c.Shoe.Shuffle = &shuffle
	}

	if c.Simulation == nil {
		c.Simulation = &SimulationConfig{}
	}
	if c.Simulation.Sessions == 0 {
		c.Simulation.Sessions = defaultSessions
	}
	if c.Simulation.Workers == 0 {
		c.Simulation.Workers = defaultWorkers
	}

	defaults := bot.DefaultConfig()
	if c.Simulation.Bot == nil {
		c.Simulation.Bot = &BotSettings{Name: defaultBot}
	}
	b := c.Simulation.Bot
	if b.StandOn == 0 {
		b.StandOn = defaults.StandOn
	}
	if b.DoubleBelow == nil {
		b.DoubleBelow = &defaults.DoubleBelow
	}
	if b.Split == nil {
		b.Split = &defaults.Split
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}

	if c.Shoe.Decks < 1 {
		return fmt.Errorf("shoe: decks must be at least 1, got %d", c.Shoe.Decks)
	}

	if c.Simulation.Sessions < 1 {
		return fmt.Errorf("simulation: sessions must be at least 1, got %d", c.Simulation.Sessions)
	}
	if c.Simulation.Workers < 1 {
		return fmt.Errorf("simulation: workers must be at least 1, got %d", c.Simulation.Workers)
	}

	valid := false
	for _, name := range bot.Names() {
		if name == c.Simulation.Bot.Name {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("strategy %q: unknown strategy (want one of %v)", c.Simulation.Bot.Name, bot.Names())
	}

	if err := c.BotConfig().Validate(); err != nil {
		return fmt.Errorf("strategy %q: %w", c.Simulation.Bot.Name, err)
	}

	return nil
}

// BotConfig returns the bot settings as a bot.Config
func (c *Config) BotConfig() bot.Config {
	b := c.Simulation.Bot
	return bot.Config{
		StandOn:     b.StandOn,
		DoubleBelow: *b.DoubleBelow,
		Split:       *b.Split,
	}
}

// Level returns the parsed log level, falling back to info
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
