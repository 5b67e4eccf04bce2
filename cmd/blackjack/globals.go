package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/config"
	"github.com/muesli/termenv"
)

// Globals are flags shared by every command
type Globals struct {
	Config  string `short:"c" default:"blackjack.hcl" type:"path" help:"HCL configuration file (ignored when missing)"`
	Debug   bool   `help:"Enable debug logging"`
	NoColor bool   `help:"Disable colored output"`
}

// load reads the configuration file and applies the global flags
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.Debug {
		cfg.LogLevel = "debug"
	}
	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return cfg, nil
}

// newLogger builds the command logger at the configured level
func newLogger(w io.Writer, cfg *config.Config) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           cfg.Level(),
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
}

type VersionCmd struct{}

func (c *VersionCmd) Run(_ *Globals) error {
	_, err := fmt.Fprintf(os.Stdout, "blackjack %s\n", version)
	return err
}
