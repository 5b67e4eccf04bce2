package hand

import (
	"errors"
	"testing"

	"github.com/lox/blackjack/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(s string) deck.Card {
	c, err := deck.Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func deal(s string) Hand {
	cards := deck.MustParseCards(s)
	return Deal(cards[0], cards[1])
}

func mustHit(t *testing.T, h Hand, c string) Hand {
	t.Helper()
	next, err := h.Hit(card(c))
	require.NoError(t, err)
	return next
}

func TestDealStates(t *testing.T) {
	tests := []struct {
		cards string
		want  State
	}{
		{"ThAs", BlackJack},
		{"8h8d", Splittable},
		{"9h7c", Start},
		{"AhAd", Splittable},
	}

	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			h := deal(tt.cards)
			assert.Equal(t, tt.want, h.State())
			assert.Equal(t, 2, h.Len())
		})
	}
}

func TestPendingHand(t *testing.T) {
	h := New(card("9h"))
	assert.Equal(t, Pending, h.State())
	assert.Equal(t, []Action{Hit, Stand}, h.Actions())
	assert.False(t, h.IsTerminal())

	next := mustHit(t, h, "7c")
	assert.Equal(t, Start, next.State())
	assert.Equal(t, Pending, h.State(), "the receiver is left untouched")
	assert.Equal(t, 1, h.Len())
}

func TestHitDispatch(t *testing.T) {
	t.Run("start to open", func(t *testing.T) {
		h := mustHit(t, deal("9h7c"), "2s")
		assert.Equal(t, Open, h.State())
		assert.Equal(t, 18, h.Value())
	})

	t.Run("start to busted", func(t *testing.T) {
		h := mustHit(t, deal("KhKd"), "4c")
		assert.Equal(t, Busted, h.State())
		assert.True(t, h.IsTerminal())
	})

	t.Run("soft hand does not bust on low total", func(t *testing.T) {
		h := mustHit(t, deal("Ah9d"), "Tc")
		assert.Equal(t, Open, h.State())
		assert.Equal(t, 20, h.Value())
	})

	t.Run("open keeps hitting", func(t *testing.T) {
		h := mustHit(t, deal("2h3d"), "4c")
		h = mustHit(t, h, "5s")
		assert.Equal(t, Open, h.State())
		h = mustHit(t, h, "7s")
		assert.Equal(t, Open, h.State())
		assert.Equal(t, 21, h.Value())
		assert.Equal(t, Busted, mustHitState(t, h, "2c"))
	})
}

func mustHitState(t *testing.T, h Hand, c string) State {
	t.Helper()
	next, err := h.Hit(card(c))
	if err != nil {
		return h.State()
	}
	return next.State()
}

func TestHitOnTerminalFails(t *testing.T) {
	terminals := map[string]Hand{
		"closed":    deal("9h7c").Stand(),
		"blackjack": deal("ThAs"),
		"busted":    mustHit(t, deal("KhKd"), "4c"),
	}

	for name, h := range terminals {
		t.Run(name, func(t *testing.T) {
			require.True(t, h.IsTerminal())
			for _, c := range deck.NewDeck() {
				_, err := h.Hit(c)
				require.ErrorIs(t, err, ErrIllegalMutation)
			}
			assert.Empty(t, h.Actions())
		})
	}
}

func TestHitOnClosedMessage(t *testing.T) {
	_, err := deal("9h7c").Stand().Hit(card("2c"))
	require.Error(t, err)
	assert.Equal(t, "hand already closed: cannot hit a closed hand", err.Error())

	var merr *MutationError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, Hit, merr.Action)
	assert.Equal(t, Closed, merr.State)
}

func TestStand(t *testing.T) {
	hands := []Hand{
		New(card("5d")),
		deal("9h7c"),
		deal("8h8d"),
		mustHit(t, deal("2h3d"), "4c"),
	}

	for _, h := range hands {
		t.Run(h.String(), func(t *testing.T) {
			closed := h.Stand()
			assert.Equal(t, Closed, closed.State())
			assert.Equal(t, h.Cards(), closed.Cards())
			assert.False(t, closed.Doubled())
		})
	}

	t.Run("terminal unchanged", func(t *testing.T) {
		bj := deal("ThAs")
		assert.Equal(t, bj, bj.Stand())
	})
}

func TestDoubleDown(t *testing.T) {
	t.Run("closes on a safe card", func(t *testing.T) {
		h, err := deal("5h4c").DoubleDown(card("Td"))
		require.NoError(t, err)
		assert.Equal(t, Closed, h.State())
		assert.Equal(t, 19, h.Value())
		assert.True(t, h.Doubled())
		assert.Equal(t, 3, h.Len())
	})

	t.Run("busts on a busting card", func(t *testing.T) {
		h, err := deal("Th6c").DoubleDown(card("Kd"))
		require.NoError(t, err)
		assert.Equal(t, Busted, h.State())
		assert.True(t, h.Doubled())
	})

	t.Run("21 is closed not blackjack", func(t *testing.T) {
		h, err := deal("6h5c").DoubleDown(card("Kd"))
		require.NoError(t, err)
		assert.Equal(t, Closed, h.State())
		assert.Equal(t, 21, h.Value())
	})

	t.Run("allowed on a pair", func(t *testing.T) {
		h, err := deal("5h5c").DoubleDown(card("Kd"))
		require.NoError(t, err)
		assert.Equal(t, Closed, h.State())
	})

	t.Run("refused elsewhere", func(t *testing.T) {
		for _, h := range []Hand{
			New(card("5h")),
			mustHit(t, deal("2h3d"), "4c"),
			deal("ThAs"),
			deal("9h7c").Stand(),
		} {
			_, err := h.DoubleDown(card("2c"))
			assert.ErrorIs(t, err, ErrIllegalMutation, "state %s", h.State())
		}
	})
}

func TestSplit(t *testing.T) {
	pair := deal("8h8d")
	require.Equal(t, Splittable, pair.State())

	first, second, err := pair.Split(card("3c"), card("Ac"))
	require.NoError(t, err)

	assert.Equal(t, deck.MustParseCards("8h3c"), first.Cards())
	assert.Equal(t, deck.MustParseCards("8dAc"), second.Cards())
	assert.Equal(t, Start, first.State())
	assert.Equal(t, Start, second.State())
	assert.True(t, first.FromSplit())
	assert.True(t, second.FromSplit())
	assert.False(t, pair.FromSplit())
}

func TestSplitRoundTrip(t *testing.T) {
	for _, r := range deck.Ranks() {
		c1 := deck.NewCard(r, deck.Hearts)
		c2 := deck.NewCard(r, deck.Spades)
		pair := Deal(c1, c2)
		require.Equal(t, Splittable, pair.State(), "rank %s", r.Name())

		for _, draw := range deck.NewDeck() {
			if draw == c1 || draw == c2 {
				// already held; a single deck cannot deal it again
				continue
			}
			first, second, err := pair.Split(draw, draw)
			require.NoError(t, err)

			assert.Equal(t, []deck.Card{c1, draw}, first.Cards())
			assert.Equal(t, []deck.Card{c2, draw}, second.Cards())
			assert.NotContains(t, first.Cards(), c2)
			assert.NotContains(t, second.Cards(), c1)
		}
	}
}

func TestSplitResultsClassifyIndependently(t *testing.T) {
	first, second, err := deal("AhAs").Split(card("Kd"), card("Ac"))
	require.NoError(t, err)
	assert.Equal(t, BlackJack, first.State())
	assert.Equal(t, Splittable, second.State(), "no limit on re-splitting")

	third, fourth, err := second.Split(card("2c"), card("3c"))
	require.NoError(t, err)
	assert.Equal(t, Start, third.State())
	assert.Equal(t, Start, fourth.State())
}

func TestSplitRefused(t *testing.T) {
	for _, h := range []Hand{
		New(card("8h")),
		deal("9h7c"),
		deal("ThAs"),
		deal("8h8d").Stand(),
		mustHit(t, deal("2h3d"), "4c"),
		{},
	} {
		_, _, err := h.Split(card("2c"), card("3c"))
		assert.ErrorIs(t, err, ErrIllegalMutation, "state %s", h.State())
	}
}

func TestZeroHand(t *testing.T) {
	var h Hand
	assert.Equal(t, "invalid", h.State().String())
	assert.Empty(t, h.Actions())
	_, err := h.Hit(card("2c"))
	assert.ErrorIs(t, err, ErrIllegalMutation)
	assert.Equal(t, h, h.Stand())
}

func TestCardsReturnsCopy(t *testing.T) {
	h := deal("9h7c")
	cards := h.Cards()
	cards[0] = card("Ac")
	assert.Equal(t, deck.MustParseCards("9h7c"), h.Cards())
}

func TestHitDoesNotAliasParent(t *testing.T) {
	base := mustHit(t, deal("2h3d"), "4c")
	a := mustHit(t, base, "5s")
	b := mustHit(t, base, "6s")

	assert.Equal(t, deck.MustParseCards("2h3d4c5s"), a.Cards())
	assert.Equal(t, deck.MustParseCards("2h3d4c6s"), b.Cards())
	assert.Equal(t, 3, base.Len())
}

func TestApply(t *testing.T) {
	supply := deck.MustParseCards("3c4d5h")
	draw := func() deck.Card {
		c := supply[0]
		supply = supply[1:]
		return c
	}

	out, err := deal("8h8d").Apply(Split, draw)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, deck.MustParseCards("8h3c"), out[0].Cards())
	assert.Equal(t, deck.MustParseCards("8d4d"), out[1].Cards())

	out, err = out[0].Apply(Double, draw)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, Closed, out[0].State())
	assert.Empty(t, supply)

	_, err = out[0].Apply(Hit, draw)
	assert.ErrorIs(t, err, ErrIllegalMutation)

	_, err = deal("9h7c").Apply(Action(42), draw)
	assert.ErrorIs(t, err, ErrIllegalMutation)
}

func TestActions(t *testing.T) {
	assert.Equal(t, []Action{Hit, Stand, Double}, deal("9h7c").Actions())
	assert.Equal(t, []Action{Hit, Stand, Double, Split}, deal("8h8d").Actions())
	assert.True(t, deal("8h8d").Can(Split))
	assert.False(t, deal("9h7c").Can(Split))
	assert.False(t, deal("9h7c").Can(Action(-1)))
}

func TestString(t *testing.T) {
	assert.Equal(t, "blackjack(T♥ A♠)=21", deal("ThAs").String())
	assert.Equal(t, "closed(9♥ 7♣)=16", deal("9h7c").Stand().String())
}
