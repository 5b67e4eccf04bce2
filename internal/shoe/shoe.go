// Package shoe implements the card supply for a blackjack table: one or more
// decks dealt head first, with the dealt cards recycled into a fresh shuffle
// once the shoe runs dry.
//
// A Shoe owns two piles. Cards move from the remaining pile to the used pile
// on every Draw; when the remaining pile is empty the used pile is shuffled
// back in and the reshuffle counter is bumped. Callers watch ReshuffleCount to
// detect the end of a full pass through the shoe.
//
// All randomness comes from the randutil.Source handed to New, so a shoe built
// from a fixed seed deals the same sequence every time:
//
//	s, err := shoe.New(6, true, randutil.New(42))
//	card := s.Draw()
package shoe

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
)

var (
	// ErrInvalidDeckCount is returned by New when fewer than one deck is requested.
	ErrInvalidDeckCount = errors.New("shoe: number of decks must be at least 1")
	// ErrNilSource is returned by New when no permutation source is supplied.
	ErrNilSource = errors.New("shoe: random source is required")
)

// ExhaustedError is the panic value raised by Draw when the shoe holds no
// cards at all. A shoe built by New always holds at least one deck, so this
// signals a broken invariant rather than a game condition.
type ExhaustedError struct {
	Reshuffles int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("shoe: no cards left to deal after %d reshuffles", e.Reshuffles)
}

// Shoe is safe for concurrent use; every operation holds the shoe's lock for
// its whole duration so draw order stays deterministic for a given source.
type Shoe struct {
	mu         sync.Mutex
	decks      int
	remaining  []deck.Card
	used       []deck.Card
	reshuffles int
	src        randutil.Source
}

// New builds a shoe from n concatenated decks, shuffling them when shuffle
// is true. src is used for that shuffle and for every later reshuffle.
func New(n int, shuffle bool, src randutil.Source) (*Shoe, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDeckCount, n)
	}
	if src == nil {
		return nil, ErrNilSource
	}

	s := &Shoe{
		decks:     n,
		remaining: deck.NewDecks(n),
		used:      make([]deck.Card, 0, n*deck.Size),
		src:       src,
	}
	if shuffle {
		s.shuffle(s.remaining)
	}
	return s, nil
}

// Draw removes the next card from the remaining pile and records it as used.
// An empty remaining pile is reshuffled from the used pile first.
func (s *Shoe) Draw() deck.Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.remaining) == 0 {
		if len(s.used) == 0 {
			panic(&ExhaustedError{Reshuffles: s.reshuffles})
		}
		s.reshuffle()
	}

	card := s.remaining[0]
	s.remaining = s.remaining[1:]
	s.used = append(s.used, card)
	return card
}

// DrawN draws n cards in order.
func (s *Shoe) DrawN(n int) []deck.Card {
	cards := make([]deck.Card, 0, max(n, 0))
	for range n {
		cards = append(cards, s.Draw())
	}
	return cards
}

// Reshuffle returns the used pile to the shoe, shuffles it and increments the
// reshuffle count. Draw calls it automatically once the remaining pile is
// empty; if cards are still remaining they are shuffled in together with the
// used pile so no card leaves the shoe.
func (s *Shoe) Reshuffle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reshuffle()
}

func (s *Shoe) reshuffle() {
	pile := make([]deck.Card, 0, len(s.remaining)+len(s.used))
	pile = append(pile, s.remaining...)
	pile = append(pile, s.used...)

	s.remaining = pile
	s.used = s.used[:0]
	s.shuffle(s.remaining)
	s.reshuffles++
}

func (s *Shoe) shuffle(cards []deck.Card) {
	s.src.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// ReshuffleCount returns how many times the used pile has been recycled.
func (s *Shoe) ReshuffleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reshuffles
}

// Remaining returns the number of cards left before the next reshuffle.
func (s *Shoe) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.remaining)
}

// Used returns the number of cards dealt since the last reshuffle.
func (s *Shoe) Used() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.used)
}

// Size returns the total number of cards owned by the shoe.
func (s *Shoe) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.remaining) + len(s.used)
}

// Decks returns the number of decks the shoe was built from.
func (s *Shoe) Decks() int {
	return s.decks
}

// Cards returns a copy of the remaining pile in dealing order.
func (s *Shoe) Cards() []deck.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]deck.Card(nil), s.remaining...)
}

// UsedCards returns a copy of the used pile in the order it was dealt.
func (s *Shoe) UsedCards() []deck.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]deck.Card(nil), s.used...)
}
