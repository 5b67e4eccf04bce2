package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Spades
	Clubs
	Diamonds
)

// Suits returns every suit in deck order
func Suits() []Suit {
	return []Suit{Hearts, Spades, Clubs, Diamonds}
}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	default:
		return "?"
	}
}

// Name returns the lowercase suit name
func (s Suit) Name() string {
	switch s {
	case Hearts:
		return "hearts"
	case Spades:
		return "spades"
	case Clubs:
		return "clubs"
	case Diamonds:
		return "diamonds"
	default:
		return "unknown"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. The zero value is not a valid rank.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

type weights struct {
	high, low int
	name      string
	symbol    string
}

// Ace is the only rank whose high and low weights differ.
var rankWeights = [...]weights{
	Ace:   {11, 1, "ace", "A"},
	Two:   {2, 2, "two", "2"},
	Three: {3, 3, "three", "3"},
	Four:  {4, 4, "four", "4"},
	Five:  {5, 5, "five", "5"},
	Six:   {6, 6, "six", "6"},
	Seven: {7, 7, "seven", "7"},
	Eight: {8, 8, "eight", "8"},
	Nine:  {9, 9, "nine", "9"},
	Ten:   {10, 10, "ten", "T"},
	Jack:  {10, 10, "jack", "J"},
	Queen: {10, 10, "queen", "Q"},
	King:  {10, 10, "king", "K"},
}

// Ranks returns the 13 canonical ranks, ace through king
func Ranks() []Rank {
	ranks := make([]Rank, 0, 13)
	for r := Ace; r <= King; r++ {
		ranks = append(ranks, r)
	}
	return ranks
}

// IsValid reports whether r is one of the canonical ranks
func (r Rank) IsValid() bool {
	return r >= Ace && r <= King
}

// High returns the rank's high weight (11 for an ace)
func (r Rank) High() int {
	if !r.IsValid() {
		return 0
	}
	return rankWeights[r].high
}

// Low returns the rank's low weight (1 for an ace)
func (r Rank) Low() int {
	if !r.IsValid() {
		return 0
	}
	return rankWeights[r].low
}

// Name returns the lowercase rank name, e.g. "ace"
func (r Rank) Name() string {
	if !r.IsValid() {
		return "unknown"
	}
	return rankWeights[r].name
}

// String returns the short string representation of a rank
func (r Rank) String() string {
	if !r.IsValid() {
		return "?"
	}
	return rankWeights[r].symbol
}

// Card represents a playing card. Cards compare by value: two cards of the
// same rank and suit are interchangeable.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// High returns the high weight of the card's rank
func (c Card) High() int {
	return c.Rank.High()
}

// Low returns the low weight of the card's rank
func (c Card) Low() int {
	return c.Rank.Low()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// IsValid reports whether the card has a canonical rank and suit
func (c Card) IsValid() bool {
	return c.Rank.IsValid() && c.Suit >= Hearts && c.Suit <= Diamonds
}
