package orderbookv1

// Match is a single fill produced by the matching loop: one resting maker
// order crossed by an incoming taker. Price is always the maker's price, so
// any price improvement goes to the aggressor. Maker points at the live
// resting order; callers must read what they need before releasing the book.
type Match struct {
	Maker    *Order
	Taker    *Order
	Price    float64
	Quantity float64
}

// Buyer returns the owning user on the buy side of the match.
func (m *Match) Buyer() string {
	if m.Taker.IsBuy() {
		return m.Taker.User
	}
	return m.Maker.User
}

// Seller returns the owning user on the sell side of the match.
func (m *Match) Seller() string {
	if m.Taker.IsBuy() {
		return m.Maker.User
	}
	return m.Taker.User
}

// Trade is the immutable record emitted for every match. The engine keeps no
// reference to a Trade after returning it. Self-trades (same user on both
// sides) are not filtered; preventing them is the embedding system's choice.
type Trade struct {
	ID         string     `json:"id"`
	Buyer      string     `json:"buyer"`
	Seller     string     `json:"seller"`
	Price      float64    `json:"price"`
	Quantity   float64    `json:"qty"`
	TakerSide  Side       `json:"takerSide"`
	Instrument Instrument `json:"market"`
	MarketID   string     `json:"market_id"`
	Timestamp  int64      `json:"timestamp"`
}
