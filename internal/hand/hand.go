package hand

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// State is the variant of a hand. It decides which actions are legal.
type State int

const (
	// Pending is a one-card hand waiting for its second card, either the
	// first card of a deal or one half of a split.
	Pending State = iota + 1
	// Open is a hand of three or more cards that can still take cards.
	Open
	// Start is a two-card hand eligible for a double down.
	Start
	// Splittable is a two-card pair; it may also do anything a Start hand can.
	Splittable
	// BlackJack is a two-card 21. Terminal.
	BlackJack
	// Busted is a hand whose high and low totals both exceed 21. Terminal.
	Busted
	// Closed is a hand that stood or doubled down. Terminal.
	Closed
)

// String returns the string representation of a state
func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Open:
		return "open"
	case Start:
		return "start"
	case Splittable:
		return "splittable"
	case BlackJack:
		return "blackjack"
	case Busted:
		return "busted"
	case Closed:
		return "closed"
	default:
		return "invalid"
	}
}

// IsTerminal reports whether no further action is possible from s.
func (s State) IsTerminal() bool {
	switch s {
	case BlackJack, Busted, Closed:
		return true
	default:
		return false
	}
}

// Action is something a player can do to a hand.
type Action int

const (
	Hit Action = iota
	Stand
	Double
	Split
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double down"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

type actionSet uint8

func actions(as ...Action) actionSet {
	var set actionSet
	for _, a := range as {
		set |= 1 << a
	}
	return set
}

func (s actionSet) has(a Action) bool {
	if a < Hit || a > Split {
		return false
	}
	return s&(1<<a) != 0
}

// legal is the single source of truth for which actions each state allows.
// States missing from the map (terminal and invalid) allow nothing.
var legal = map[State]actionSet{
	Pending:    actions(Hit, Stand),
	Open:       actions(Hit, Stand),
	Start:      actions(Hit, Stand, Double),
	Splittable: actions(Hit, Stand, Double, Split),
}

// Hand is an immutable blackjack hand. Every action returns a new Hand and
// leaves the receiver untouched, so hands can be shared freely once built.
// The zero value is not a usable hand; start one with New or Deal.
type Hand struct {
	state     State
	cards     []deck.Card
	doubled   bool
	fromSplit bool
}

// New starts a pending hand from its first card.
func New(first deck.Card) Hand {
	return Hand{state: Pending, cards: []deck.Card{first}}
}

// Deal builds the classified two-card hand a player is dealt.
func Deal(first, second deck.Card) Hand {
	return New(first).add(second, false)
}

// Hit adds a card and reclassifies the hand.
func (h Hand) Hit(card deck.Card) (Hand, error) {
	if err := h.check(Hit); err != nil {
		return Hand{}, err
	}
	return h.add(card, false), nil
}

// Stand closes the hand without changing its cards. Standing on a hand that
// is already terminal returns it unchanged.
func (h Hand) Stand() Hand {
	if !h.Can(Stand) {
		return h
	}
	next := h.with(h.cards)
	next.state = Closed
	return next
}

// DoubleDown takes exactly one more card and closes the hand, busting it if
// that card busts. Only Start and Splittable hands may double down. A double
// down that lands on 21 is Closed, not BlackJack.
func (h Hand) DoubleDown(card deck.Card) (Hand, error) {
	if err := h.check(Double); err != nil {
		return Hand{}, err
	}
	next := h.add(card, true)
	next.doubled = true
	return next, nil
}

// Split breaks a pair into two pending hands, one per original card, and
// hits the first with c1 and the second with c2. Each result is classified on
// its own and may itself be splittable again.
func (h Hand) Split(c1, c2 deck.Card) (Hand, Hand, error) {
	if err := h.check(Split); err != nil {
		return Hand{}, Hand{}, err
	}

	first := New(h.cards[0])
	first.fromSplit = true
	second := New(h.cards[1])
	second.fromSplit = true

	return first.add(c1, false), second.add(c2, false), nil
}

// Apply performs a for the hand, drawing any card it needs from draw. Split
// returns both resulting hands; every other action returns one.
func (h Hand) Apply(a Action, draw func() deck.Card) ([]Hand, error) {
	if err := h.check(a); err != nil {
		return nil, err
	}

	switch a {
	case Hit:
		next, err := h.Hit(draw())
		return []Hand{next}, err
	case Stand:
		return []Hand{h.Stand()}, nil
	case Double:
		next, err := h.DoubleDown(draw())
		return []Hand{next}, err
	case Split:
		c1 := draw()
		c2 := draw()
		first, second, err := h.Split(c1, c2)
		return []Hand{first, second}, err
	default:
		return nil, &MutationError{Action: a, State: h.state}
	}
}

func (h Hand) check(a Action) error {
	if !h.Can(a) {
		return &MutationError{Action: a, State: h.state}
	}
	return nil
}

func (h Hand) add(card deck.Card, closing bool) Hand {
	cards := make([]deck.Card, len(h.cards), len(h.cards)+1)
	copy(cards, h.cards)
	cards = append(cards, card)

	next := h.with(cards)
	class := Evaluate(cards)

	if closing {
		if class == ClassBusted {
			next.state = Busted
		} else {
			next.state = Closed
		}
		return next
	}

	switch class {
	case ClassSplittable:
		next.state = Splittable
	case ClassPlayable:
		next.state = Open
	case ClassBlackJack:
		next.state = BlackJack
	case ClassStart:
		next.state = Start
	case ClassBusted:
		next.state = Busted
	}
	return next
}

func (h Hand) with(cards []deck.Card) Hand {
	return Hand{
		state:     h.state,
		cards:     cards,
		doubled:   h.doubled,
		fromSplit: h.fromSplit,
	}
}

// State returns the hand's variant.
func (h Hand) State() State {
	return h.state
}

// Cards returns a copy of the hand's cards in the order they were taken.
func (h Hand) Cards() []deck.Card {
	return append([]deck.Card(nil), h.cards...)
}

// Len returns the number of cards in the hand.
func (h Hand) Len() int {
	return len(h.cards)
}

// Value returns the hand's best total.
func (h Hand) Value() int {
	return Value(h.cards)
}

// IsHard reports whether the hand holds no ace.
func (h Hand) IsHard() bool {
	return IsHard(h.cards)
}

// IsTerminal reports whether the hand can take no further action.
func (h Hand) IsTerminal() bool {
	return h.state.IsTerminal()
}

// Doubled reports whether the hand was closed by a double down.
func (h Hand) Doubled() bool {
	return h.doubled
}

// FromSplit reports whether the hand descends from a split.
func (h Hand) FromSplit() bool {
	return h.fromSplit
}

// Can reports whether a is legal for the hand's current state.
func (h Hand) Can(a Action) bool {
	return legal[h.state].has(a)
}

// Actions lists the legal actions in a stable order.
func (h Hand) Actions() []Action {
	var out []Action
	for _, a := range []Action{Hit, Stand, Double, Split} {
		if h.Can(a) {
			out = append(out, a)
		}
	}
	return out
}

// String returns e.g. "closed(A♠ K♥)=21"
func (h Hand) String() string {
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%s(%s)=%d", h.state, strings.Join(parts, " "), h.Value())
}
