package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/hand"
)

// StandBot never takes a card: it stands on whatever it is dealt
type StandBot struct {
	logger *log.Logger
}

// NewStandBot creates a new StandBot instance
func NewStandBot(logger *log.Logger) *StandBot {
	return &StandBot{logger: logger}
}

func (s *StandBot) Decide(h hand.Hand) Decision {
	// a one-card hand still needs its second card
	if h.State() == hand.Pending {
		return Decision{Action: hand.Hit, Reasoning: "stand-bot taking second card"}
	}
	return Decision{Action: hand.Stand, Reasoning: "stand-bot standing"}
}
