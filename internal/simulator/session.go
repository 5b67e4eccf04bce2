package simulator

import (
	"context"
	"fmt"

	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/hand"
	"github.com/lox/blackjack/internal/shoe"
	"github.com/lox/blackjack/internal/statistics"
)

// Session is one full pass through a shoe
type Session struct {
	Deals      int
	CardsDealt int
	Hands      []hand.Hand
}

// Results converts the session's finished hands for aggregation
func (s *Session) Results() []statistics.HandResult {
	results := make([]statistics.HandResult, len(s.Hands))
	for i, h := range s.Hands {
		results[i] = statistics.ResultOf(h)
	}
	return results
}

// PlaySession deals two-card hands from sh and lets b play each one out
// until the shoe reshuffles. The hand in progress when the reshuffle happens
// is finished from the fresh shoe. Split hands are played to completion before
// the next deal.
func PlaySession(ctx context.Context, sh *shoe.Shoe, b bot.Bot) (*Session, error) {
	session := &Session{}
	draw := func() deck.Card {
		session.CardsDealt++
		return sh.Draw()
	}

	start := sh.ReshuffleCount()
	for sh.ReshuffleCount() == start {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		session.Deals++
		queue := []hand.Hand{hand.Deal(draw(), draw())}

		for len(queue) > 0 {
			h := queue[0]
			queue = queue[1:]

			if h.IsTerminal() {
				session.Hands = append(session.Hands, h)
				continue
			}

			d := b.Decide(h)
			next, err := h.Apply(d.Action, draw)
			if err != nil {
				return nil, fmt.Errorf("deal %d: bot chose %s for %s: %w", session.Deals, d.Action, h, err)
			}
			queue = append(next, queue...)
		}
	}

	return session, nil
}
