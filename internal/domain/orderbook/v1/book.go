package orderbookv1

// TopOfBook is the point snapshot of one book. BestBid/BestAsk are nil when
// the side is empty; callers must not treat a missing side as a zero price.
// BidCount/AskCount are counts of resting orders, not of price levels.
type TopOfBook struct {
	BestBid  *float64 `json:"bestBid"`
	BestAsk  *float64 `json:"bestAsk"`
	BidCount int      `json:"bidCount"`
	AskCount int      `json:"askCount"`
}

// DepthLevel is the aggregate of one price level.
type DepthLevel struct {
	Price      float64 `json:"price"`
	Quantity   float64 `json:"quantity"`
	OrderCount int     `json:"orderCount"`
}

// Depth is the aggregate snapshot of one book. It carries the same four
// top-of-book fields plus per-level aggregates, so consumers of the narrow
// four-field shape keep working unchanged.
type Depth struct {
	TopOfBook
	Bids []DepthLevel `json:"bids"`
	Asks []DepthLevel `json:"asks"`
}

// SubmitResult is the outcome of one submission: every trade the order
// produced, in execution order, and the id of the remainder if one rested.
type SubmitResult struct {
	Trades         []Trade `json:"trades"`
	RestingOrderID *uint64 `json:"restingOrderID,omitempty"`
}

// Book is one (market, instrument) order book. Submit and Cancel serialize
// against each other per book; snapshot reads never observe a mid-match state.
type Book interface {
	// Submit matches the order against resting liquidity and rests any
	// remainder. It returns the fills in execution order and whether a
	// remainder was left on the book.
	Submit(order *Order) ([]Match, bool, error)
	// Cancel removes a resting order. It never triggers matching.
	Cancel(orderID uint64) error
	// TopOfBook returns the best-price summary.
	TopOfBook() TopOfBook
	// Depth returns per-level aggregates for up to maxLevels levels a side
	// (all levels when maxLevels <= 0).
	Depth(maxLevels int) Depth
}
