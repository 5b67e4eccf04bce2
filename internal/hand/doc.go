// Package hand implements blackjack hand evaluation and the hand state
// machine.
//
// A Hand is an immutable value tagged with a State. The state decides which
// actions are legal; every action returns a new Hand and leaves the old one
// untouched:
//
//	h := hand.Deal(deck.NewCard(deck.Nine, deck.Hearts), deck.NewCard(deck.Seven, deck.Clubs))
//	// h.State() == hand.Start
//	h, err := h.Hit(deck.NewCard(deck.Two, deck.Spades))
//	// h.State() == hand.Open, h.Value() == 18
//	h = h.Stand()
//	// h.State() == hand.Closed
//
// # States
//
//   - Pending: one card, waiting for the second (fresh deal or split half)
//   - Open: three or more cards, may hit or stand
//   - Start: first two cards, may also double down
//   - Splittable: first two cards of equal rank, may also split
//   - BlackJack, Busted, Closed: terminal
//
// Illegal actions return an error matching ErrIllegalMutation. Legality is
// decided in one place, so Can and Actions always agree with what the action
// methods accept.
//
// # Evaluation
//
// Evaluate, Value and IsHard work on plain card slices and are what the state
// machine uses to classify each new hand. Aces count 11 unless that busts the
// hand, in which case they count 1.
package hand
