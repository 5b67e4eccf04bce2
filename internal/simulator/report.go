package simulator

// Report is the JSON summary written by `blackjack simulate --report`
type Report struct {
	ID       string `json:"id"`
	Seed     int64  `json:"seed"`
	Decks    int    `json:"decks"`
	Shuffle  bool   `json:"shuffle"`
	Bot      string `json:"bot"`
	Sessions int    `json:"sessions"`

	Deals      int `json:"deals"`
	Hands      int `json:"hands"`
	CardsDealt int `json:"cards_dealt"`
	BlackJacks int `json:"blackjacks"`
	Busts      int `json:"busts"`
	Closed     int `json:"closed"`
	Doubles    int `json:"doubles"`
	SplitHands int `json:"split_hands"`

	BustRate      float64     `json:"bust_rate"`
	BlackJackRate float64     `json:"blackjack_rate"`
	MeanValue     float64     `json:"mean_value"`
	StdDev        float64     `json:"std_dev"`
	CI95          [2]float64  `json:"ci95"`
	Median        float64     `json:"median"`
	ValueCounts   map[int]int `json:"value_counts"`

	ElapsedMS int64 `json:"elapsed_ms"`
}

// Report flattens the result into its JSON form
func (r *Result) Report() Report {
	stats := r.Stats
	lo, hi := stats.ConfidenceInterval95()
	return Report{
		ID:            r.ID,
		Seed:          r.Config.Seed,
		Decks:         r.Config.Decks,
		Shuffle:       r.Config.Shuffle,
		Bot:           r.Config.Bot,
		Sessions:      stats.Sessions,
		Deals:         stats.Deals,
		Hands:         stats.Hands,
		CardsDealt:    stats.CardsDealt,
		BlackJacks:    stats.BlackJacks,
		Busts:         stats.Busts,
		Closed:        stats.Closed,
		Doubles:       stats.Doubles,
		SplitHands:    stats.SplitHands,
		BustRate:      stats.BustRate(),
		BlackJackRate: stats.BlackJackRate(),
		MeanValue:     stats.Mean(),
		StdDev:        stats.StdDev(),
		CI95:          [2]float64{lo, hi},
		Median:        stats.Median(),
		ValueCounts:   stats.ValueCounts,
		ElapsedMS:     r.Elapsed.Milliseconds(),
	}
}
