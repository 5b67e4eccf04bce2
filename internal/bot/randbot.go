package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/hand"
)

// RandBot is a simple bot that makes uniform random legal actions
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger.WithPrefix("rand")}
}

func (r *RandBot) Decide(h hand.Hand) Decision {
	legal := h.Actions()
	if len(legal) == 0 {
		return Decision{Action: hand.Stand, Reasoning: "rand-bot no valid actions"}
	}

	action := legal[r.rng.IntN(len(legal))]
	r.logger.Debug("decision", "hand", h.String(), "action", action.String())
	return Decision{Action: action, Reasoning: "rand-bot random action"}
}
