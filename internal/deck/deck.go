package deck

// Size is the number of cards in a single standard deck
const Size = 52

// NewDeck returns the 52 rank × suit combinations in a fixed rank-major,
// suit-minor order. Callers that want a random order shuffle it themselves.
func NewDeck() []Card {
	cards := make([]Card, 0, Size)
	for rank := Ace; rank <= King; rank++ {
		for _, suit := range Suits() {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// NewDecks concatenates n standard decks. It returns an empty slice for n < 1.
func NewDecks(n int) []Card {
	if n < 1 {
		return []Card{}
	}
	cards := make([]Card, 0, n*Size)
	for range n {
		cards = append(cards, NewDeck()...)
	}
	return cards
}
