package bot

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/hand"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func dealt(s string) hand.Hand {
	cards := deck.MustParseCards(s)
	h := hand.Deal(cards[0], cards[1])
	for _, c := range cards[2:] {
		var err error
		h, err = h.Hit(c)
		if err != nil {
			panic(err)
		}
	}
	return h
}

func TestThresholdBot(t *testing.T) {
	b := NewThresholdBot(DefaultConfig(), quietLogger())

	tests := []struct {
		name string
		hand hand.Hand
		want hand.Action
	}{
		{"splits pairs", dealt("8h8d"), hand.Split},
		{"doubles hard 9", dealt("5h4c"), hand.Double},
		{"does not double soft hands", dealt("Ah2c"), hand.Hit},
		{"does not double hard 10", dealt("6h4c"), hand.Hit},
		{"hits 16", dealt("9h7c"), hand.Hit},
		{"stands on 19", dealt("Th9c"), hand.Stand},
		{"stands on soft 20", dealt("Ah9c"), hand.Stand},
		{"hits open 15", dealt("2h3d4c6s"), hand.Hit},
		{"stands on open 21", dealt("2h3d4c5s7s"), hand.Stand},
		{"hits a pending hand", hand.New(deck.NewCard(deck.Ace, deck.Spades)), hand.Hit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := b.Decide(tt.hand)
			assert.Equal(t, tt.want, d.Action)
			assert.NotEmpty(t, d.Reasoning)
			assert.True(t, tt.hand.Can(d.Action), "decision must be legal")
		})
	}
}

func TestThresholdBotWithoutSplitting(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Split = false
	b := NewThresholdBot(cfg, quietLogger())

	// a pair of fours is a hard 8: doubled instead of split
	assert.Equal(t, hand.Double, b.Decide(dealt("4h4d")).Action)
	assert.Equal(t, hand.Stand, b.Decide(dealt("ThTd")).Action)
}

func TestRandBotOnlyPicksLegalActions(t *testing.T) {
	b := NewRandBot(randutil.New(1), quietLogger())
	hands := []hand.Hand{
		dealt("8h8d"),
		dealt("9h7c"),
		dealt("2h3d4c"),
		hand.New(deck.NewCard(deck.Two, deck.Clubs)),
	}

	seen := make(map[hand.Action]bool)
	for range 200 {
		for _, h := range hands {
			d := b.Decide(h)
			require.True(t, h.Can(d.Action), "%s cannot %s", h, d.Action)
			seen[d.Action] = true
		}
	}
	assert.Len(t, seen, 4, "every action should come up eventually")

	assert.Equal(t, hand.Stand, b.Decide(dealt("ThAs")).Action)
}

func TestStandBot(t *testing.T) {
	b := NewStandBot(quietLogger())
	assert.Equal(t, hand.Stand, b.Decide(dealt("9h7c")).Action)
	assert.Equal(t, hand.Stand, b.Decide(dealt("8h8d")).Action)
	assert.Equal(t, hand.Hit, b.Decide(hand.New(deck.NewCard(deck.Two, deck.Clubs))).Action)
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		b, err := New(name, DefaultConfig(), randutil.New(1), quietLogger())
		require.NoError(t, err, name)
		assert.NotNil(t, b)
	}

	_, err := New("card-counter", DefaultConfig(), randutil.New(1), quietLogger())
	assert.ErrorContains(t, err, "unknown bot")

	assert.Equal(t, []string{"rand", "stand", "threshold"}, Names())
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.Error(t, Config{StandOn: 22}.Validate())
	assert.Error(t, Config{StandOn: 1}.Validate())
	assert.Error(t, Config{StandOn: 17, DoubleBelow: -1}.Validate())
	assert.NoError(t, Config{StandOn: 17}.Validate())
}
