package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjack/internal/hand"
)

// HandResult is the outcome of a single finished hand
type HandResult struct {
	State     hand.State // Terminal state: Closed, BlackJack or Busted
	Value     int        // Final hand value
	Cards     int        // Number of cards held
	Doubled   bool       // Closed by a double down
	FromSplit bool       // Descends from a split
}

// ResultOf converts a terminal hand into a HandResult
func ResultOf(h hand.Hand) HandResult {
	return HandResult{
		State:     h.State(),
		Value:     h.Value(),
		Cards:     h.Len(),
		Doubled:   h.Doubled(),
		FromSplit: h.FromSplit(),
	}
}

// Statistics aggregates finished hands from one or more sessions
type Statistics struct {
	Sessions   int // Completed passes through a shoe
	Deals      int // Two-card deals before any split
	Hands      int // Finished hands, split hands counted separately
	CardsDealt int // Cards drawn from the shoe, including split draws

	BlackJacks int
	Busts      int
	Closed     int
	Doubles    int
	SplitHands int

	SumValue  float64   // Sum of final values of hands that did not bust
	SumValue2 float64   // Sum of squares for variance calculation
	Values    []float64 // Final values of hands that did not bust

	ValueCounts map[int]int // Final value -> hands, busted hands included
}

// AddSession records a completed session with its deal count and hands.
func (s *Statistics) AddSession(deals, cardsDealt int, results []HandResult) {
	s.Sessions++
	s.Deals += deals
	s.CardsDealt += cardsDealt
	for _, r := range results {
		s.Add(r)
	}
}

// Add incorporates a single finished hand
func (s *Statistics) Add(result HandResult) {
	s.Hands++
	if s.ValueCounts == nil {
		s.ValueCounts = make(map[int]int)
	}
	s.ValueCounts[result.Value]++

	if result.Doubled {
		s.Doubles++
	}
	if result.FromSplit {
		s.SplitHands++
	}

	switch result.State {
	case hand.BlackJack:
		s.BlackJacks++
	case hand.Busted:
		s.Busts++
		return
	default:
		s.Closed++
	}

	v := float64(result.Value)
	s.SumValue += v
	s.SumValue2 += v * v
	s.Values = append(s.Values, v)
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	s.Sessions += other.Sessions
	s.Deals += other.Deals
	s.Hands += other.Hands
	s.CardsDealt += other.CardsDealt
	s.BlackJacks += other.BlackJacks
	s.Busts += other.Busts
	s.Closed += other.Closed
	s.Doubles += other.Doubles
	s.SplitHands += other.SplitHands
	s.SumValue += other.SumValue
	s.SumValue2 += other.SumValue2
	s.Values = append(s.Values, other.Values...)

	if len(other.ValueCounts) > 0 && s.ValueCounts == nil {
		s.ValueCounts = make(map[int]int, len(other.ValueCounts))
	}
	for v, n := range other.ValueCounts {
		s.ValueCounts[v] += n
	}
}

// Rate returns n as a fraction of all finished hands
func (s *Statistics) Rate(n int) float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(n) / float64(s.Hands)
}

// BustRate returns the fraction of hands that busted
func (s *Statistics) BustRate() float64 {
	return s.Rate(s.Busts)
}

// BlackJackRate returns the fraction of hands that were blackjack
func (s *Statistics) BlackJackRate() float64 {
	return s.Rate(s.BlackJacks)
}

// HandsPerSession returns the average number of finished hands per pass through the shoe
func (s *Statistics) HandsPerSession() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return float64(s.Hands) / float64(s.Sessions)
}

// Mean returns the mean final value of hands that did not bust
func (s *Statistics) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.SumValue / float64(len(s.Values))
}

// Variance returns the sample variance of non-busted final values
func (s *Statistics) Variance() float64 {
	n := len(s.Values)
	if n < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumValue2 - float64(n)*mean*mean) / float64(n-1)
}

// StdDev returns the sample standard deviation of non-busted final values
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(len(s.Values)))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median non-busted final value
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// IsLedgerBalanced checks every finished hand landed in exactly one outcome bucket
func (s *Statistics) IsLedgerBalanced() bool {
	return s.BlackJacks+s.Busts+s.Closed == s.Hands
}

// Validate performs consistency checks on the aggregated data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: blackjacks=%d busts=%d closed=%d hands=%d",
			s.BlackJacks, s.Busts, s.Closed, s.Hands)
	}

	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}

	if len(s.Values) != s.Hands-s.Busts {
		return fmt.Errorf("values array length (%d) does not match non-busted hands (%d)",
			len(s.Values), s.Hands-s.Busts)
	}

	// every deal ends in at least one hand and each split adds one more
	if s.Hands < s.Deals {
		return fmt.Errorf("hands (%d) fewer than deals (%d)", s.Hands, s.Deals)
	}

	counted := 0
	for _, n := range s.ValueCounts {
		counted += n
	}
	if counted != s.Hands {
		return fmt.Errorf("value counts total (%d) does not match hands (%d)", counted, s.Hands)
	}

	return nil
}
