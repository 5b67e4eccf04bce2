// Package simulator plays automated blackjack sessions for measuring how a
// strategy fares against a shoe. A session mirrors a single pass through the
// shoe: hands are dealt and played until the shoe reshuffles.
//
// Sessions are independent. Each one gets its own shoe and bot seeded from
// the master seed, so a run is reproducible regardless of worker count.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/runid"
	"github.com/lox/blackjack/internal/shoe"
	"github.com/lox/blackjack/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// ErrTimeout is returned when a run exceeds Config.Timeout
var ErrTimeout = errors.New("simulation timed out")

// Config holds configuration for running simulations
type Config struct {
	Decks     int
	Shuffle   bool
	Sessions  int
	Workers   int
	Seed      int64
	Bot       string
	BotConfig bot.Config
	Timeout   time.Duration
	Logger    *log.Logger
	Clock     quartz.Clock
}

// Result is the outcome of a simulation run
type Result struct {
	ID      string
	Config  Config
	Stats   *statistics.Statistics
	Elapsed time.Duration
}

// Simulator runs blackjack self-play sessions
type Simulator struct {
	config Config
	logger *log.Logger
	clock  quartz.Clock
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	logger := config.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	clock := config.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Bot == "" {
		config.Bot = "threshold"
	}
	return &Simulator{
		config: config,
		logger: logger.WithPrefix("simulator"),
		clock:  clock,
	}
}

// Run executes every session and returns the merged statistics
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	if s.config.Sessions < 1 {
		return nil, fmt.Errorf("sessions must be at least 1, got %d", s.config.Sessions)
	}
	if _, err := bot.New(s.config.Bot, s.config.BotConfig, randutil.New(0), s.logger); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	if s.config.Timeout > 0 {
		timer := s.clock.AfterFunc(s.config.Timeout, func() {
			cancel(fmt.Errorf("%w after %v", ErrTimeout, s.config.Timeout))
		})
		defer timer.Stop()
	}

	start := s.clock.Now()
	id := runid.New(start, randutil.New(s.config.Seed))
	s.logger.Info("Starting simulation",
		"run", id,
		"sessions", s.config.Sessions,
		"workers", s.config.Workers,
		"decks", s.config.Decks,
		"bot", s.config.Bot,
		"seed", s.config.Seed)

	perSession := make([]*statistics.Statistics, s.config.Sessions)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := range s.config.Sessions {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			stats, err := s.runSession(gctx, i)
			if err != nil {
				return fmt.Errorf("session %d: %w", i, err)
			}
			perSession[i] = stats
			return nil
		})
	}

	err := g.Wait()
	if cause := context.Cause(ctx); cause != nil && errors.Is(cause, ErrTimeout) {
		return nil, cause
	}
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := &statistics.Statistics{}
	for _, stats := range perSession {
		total.Merge(stats)
	}
	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	elapsed := s.clock.Since(start)
	s.logger.Info("Simulation complete",
		"hands", total.Hands,
		"busts", total.Busts,
		"blackjacks", total.BlackJacks,
		"elapsed", elapsed)

	return &Result{ID: id, Config: s.config, Stats: total, Elapsed: elapsed}, nil
}

// runSession plays session i with its own shoe and bot
func (s *Simulator) runSession(ctx context.Context, i int) (*statistics.Statistics, error) {
	seed := randutil.Derive(s.config.Seed, i)

	sh, err := shoe.New(s.config.Decks, s.config.Shuffle, randutil.New(seed))
	if err != nil {
		return nil, err
	}

	b, err := bot.New(s.config.Bot, s.config.BotConfig, randutil.New(randutil.Derive(seed, 1)), s.logger)
	if err != nil {
		return nil, err
	}

	session, err := PlaySession(ctx, sh, b)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Session complete",
		"session", i,
		"deals", session.Deals,
		"hands", len(session.Hands),
		"cards", session.CardsDealt)

	stats := &statistics.Statistics{}
	stats.AddSession(session.Deals, session.CardsDealt, session.Results())
	return stats, nil
}
