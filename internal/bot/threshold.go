package bot

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/hand"
)

// ThresholdBot splits pairs, doubles low hard start hands, stands at a fixed
// total and hits otherwise.
type ThresholdBot struct {
	config Config
	logger *log.Logger
}

// NewThresholdBot creates a new ThresholdBot instance
func NewThresholdBot(config Config, logger *log.Logger) *ThresholdBot {
	return &ThresholdBot{config: config, logger: logger.WithPrefix("threshold")}
}

func (b *ThresholdBot) Decide(h hand.Hand) Decision {
	d := b.decide(h)
	b.logger.Debug("decision", "hand", h.String(), "action", d.Action.String(), "reason", d.Reasoning)
	return d
}

func (b *ThresholdBot) decide(h hand.Hand) Decision {
	value := h.Value()

	switch {
	case h.State() == hand.Pending:
		return Decision{Action: hand.Hit, Reasoning: "taking second card"}
	case b.config.Split && h.Can(hand.Split):
		return Decision{Action: hand.Split, Reasoning: "splitting a pair"}
	case h.Can(hand.Double) && h.IsHard() && value < b.config.DoubleBelow:
		return Decision{Action: hand.Double, Reasoning: fmt.Sprintf("doubling hard %d", value)}
	case value >= b.config.StandOn && h.Can(hand.Stand):
		return Decision{Action: hand.Stand, Reasoning: fmt.Sprintf("standing on %d", value)}
	case h.Can(hand.Hit):
		return Decision{Action: hand.Hit, Reasoning: fmt.Sprintf("hitting %d", value)}
	default:
		return Decision{Action: hand.Stand, Reasoning: "no card can be taken"}
	}
}
