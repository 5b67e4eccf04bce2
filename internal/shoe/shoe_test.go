package shoe

import (
	"sync"
	"testing"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShoe(t *testing.T, decks int, shuffle bool, seed int64) *Shoe {
	t.Helper()
	s, err := New(decks, shuffle, randutil.New(seed))
	require.NoError(t, err)
	return s
}

func countCards(cards []deck.Card) map[deck.Card]int {
	counts := make(map[deck.Card]int)
	for _, c := range cards {
		counts[c]++
	}
	return counts
}

func TestNewComposition(t *testing.T) {
	for _, n := range []int{1, 2, 6} {
		s := newTestShoe(t, n, false, 1)

		cards := s.Cards()
		require.Len(t, cards, 52*n)
		assert.Equal(t, 0, s.Used())
		assert.Equal(t, 0, s.ReshuffleCount())
		assert.Equal(t, n, s.Decks())

		counts := countCards(cards)
		require.Len(t, counts, 52)
		for c, count := range counts {
			assert.Equal(t, n, count, "card %v", c)
		}
	}
}

func TestNewErrors(t *testing.T) {
	_, err := New(0, true, randutil.New(1))
	assert.ErrorIs(t, err, ErrInvalidDeckCount)

	_, err = New(-1, false, randutil.New(1))
	assert.ErrorIs(t, err, ErrInvalidDeckCount)

	_, err = New(1, true, nil)
	assert.ErrorIs(t, err, ErrNilSource)
}

func TestShufflePreservesCards(t *testing.T) {
	plain := newTestShoe(t, 1, false, 1).Cards()
	shuffled := newTestShoe(t, 1, true, 1).Cards()

	assert.ElementsMatch(t, plain, shuffled)
	assert.NotEqual(t, plain, shuffled, "a shuffled single deck should not keep the fresh order")
}

func TestShuffleOrderVariesAcrossSeeds(t *testing.T) {
	plain := newTestShoe(t, 1, false, 0).Cards()

	identical := 0
	for seed := int64(1); seed <= 20; seed++ {
		if assert.ObjectsAreEqual(plain, newTestShoe(t, 1, true, seed).Cards()) {
			identical++
		}
	}
	assert.Zero(t, identical)
}

func TestDeterministicForSeed(t *testing.T) {
	a := newTestShoe(t, 2, true, 42)
	b := newTestShoe(t, 2, true, 42)

	// run past a reshuffle so the reshuffle order is covered too
	for range 52*2 + 30 {
		require.Equal(t, a.Draw(), b.Draw())
	}
	assert.Equal(t, 1, a.ReshuffleCount())
	assert.Equal(t, a.ReshuffleCount(), b.ReshuffleCount())
}

func TestDrawIsFirstInFirstOut(t *testing.T) {
	s := newTestShoe(t, 1, false, 1)
	expected := s.Cards()

	for i := range 5 {
		assert.Equal(t, expected[i], s.Draw())
	}
	assert.Equal(t, expected[:5], s.UsedCards())
	assert.Equal(t, expected[5:], s.Cards())
}

func TestDrainTriggersSingleReshuffle(t *testing.T) {
	for _, n := range []int{1, 3} {
		s := newTestShoe(t, n, true, 7)

		for range 52 * n {
			s.Draw()
		}
		assert.Equal(t, 0, s.Remaining())
		assert.Equal(t, 52*n, s.Used())
		assert.Equal(t, 0, s.ReshuffleCount(), "draining alone does not reshuffle")

		card := s.Draw()
		assert.True(t, card.IsValid())
		assert.Equal(t, 1, s.ReshuffleCount())
		assert.Equal(t, 52*n-1, s.Remaining())
		assert.Equal(t, 1, s.Used())
		assert.Equal(t, 52*n, s.Size())
	}
}

func TestMultisetInvariantAcrossDraws(t *testing.T) {
	s := newTestShoe(t, 2, true, 3)
	want := countCards(deck.NewDecks(2))

	for i := range 52*2*3 + 17 {
		s.Draw()
		if i%37 == 0 {
			all := append(s.Cards(), s.UsedCards()...)
			require.Equal(t, want, countCards(all), "after %d draws", i+1)
		}
	}
	assert.Equal(t, 3, s.ReshuffleCount())
}

func TestReshuffleKeepsRemainingCards(t *testing.T) {
	s := newTestShoe(t, 1, false, 5)
	s.DrawN(10)

	s.Reshuffle()
	assert.Equal(t, 1, s.ReshuffleCount())
	assert.Equal(t, 52, s.Remaining())
	assert.Equal(t, 0, s.Used())
	assert.ElementsMatch(t, deck.NewDeck(), s.Cards())

	s.Reshuffle()
	assert.Equal(t, 2, s.ReshuffleCount())
}

func TestDrawN(t *testing.T) {
	s := newTestShoe(t, 1, false, 1)
	assert.Len(t, s.DrawN(4), 4)
	assert.Empty(t, s.DrawN(0))
	assert.Empty(t, s.DrawN(-2))
	assert.Equal(t, 4, s.Used())
}

func TestDrawOnEmptyShoePanics(t *testing.T) {
	var s Shoe
	assert.PanicsWithError(t, "shoe: no cards left to deal after 0 reshuffles", func() {
		s.Draw()
	})
}

func TestConcurrentDraws(t *testing.T) {
	s := newTestShoe(t, 2, true, 11)

	const workers = 4
	const perWorker = 26
	results := make([][]deck.Card, workers)

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				results[w] = append(results[w], s.Draw())
			}
		}()
	}
	wg.Wait()

	var dealt []deck.Card
	for _, r := range results {
		dealt = append(dealt, r...)
	}
	assert.Len(t, dealt, workers*perWorker)
	assert.ElementsMatch(t, dealt, s.UsedCards())
	for c, count := range countCards(dealt) {
		assert.LessOrEqual(t, count, 2, "card %v dealt more often than the shoe holds it", c)
	}
}
