package hand

import "github.com/lox/blackjack/internal/deck"

// Limit is the highest total a hand can reach without busting.
const Limit = 21

// Classification describes what a set of cards allows next.
type Classification int

const (
	ClassPlayable Classification = iota
	ClassBusted
	ClassSplittable
	ClassBlackJack
	ClassStart
)

// String returns the string representation of a classification
func (c Classification) String() string {
	switch c {
	case ClassPlayable:
		return "playable"
	case ClassBusted:
		return "busted"
	case ClassSplittable:
		return "splittable"
	case ClassBlackJack:
		return "blackjack"
	case ClassStart:
		return "start"
	default:
		return "unknown"
	}
}

// HighTotal sums the high weight of every card (aces count 11).
func HighTotal(cards []deck.Card) int {
	total := 0
	for _, c := range cards {
		total += c.High()
	}
	return total
}

// LowTotal sums the low weight of every card (aces count 1).
func LowTotal(cards []deck.Card) int {
	total := 0
	for _, c := range cards {
		total += c.Low()
	}
	return total
}

// Evaluate classifies a hand of two or more cards. Two-card hands are
// blackjack, splittable or a plain start hand; larger hands are busted only
// when both the high and the low total exceed 21.
//
// A single card has no meaningful classification; it reports ClassPlayable.
func Evaluate(cards []deck.Card) Classification {
	high := HighTotal(cards)
	low := LowTotal(cards)

	if len(cards) == 2 {
		switch {
		case high == Limit:
			return ClassBlackJack
		case cards[0].Rank == cards[1].Rank:
			return ClassSplittable
		default:
			return ClassStart
		}
	}

	if low > Limit && high > Limit {
		return ClassBusted
	}
	return ClassPlayable
}

// Value returns the best total for the cards: the high total unless it busts,
// in which case the low total.
func Value(cards []deck.Card) int {
	high := HighTotal(cards)
	low := LowTotal(cards)
	if high == low {
		return high
	}
	if high > Limit {
		return low
	}
	return high
}

// IsHard reports whether the cards contain no ace.
func IsHard(cards []deck.Card) bool {
	for _, c := range cards {
		if c.IsAce() {
			return false
		}
	}
	return true
}
