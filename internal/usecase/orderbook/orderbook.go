package orderbook

import (
	"fmt"
	"sync"
	"time"

	"github.com/tidwall/btree"

	orderbookv1 "github.com/Wixxxxxx/mini-etf/internal/domain/orderbook/v1"
)

// OrderBook is one (market, instrument) book. Bids and asks are ordered maps
// keyed by price, so the best price on either side sits at an end of its tree
// and insert/remove stays O(log n) as depth grows. An id index gives O(1)
// cancel lookup.
//
// One write lock serializes Submit and Cancel for the whole call: two
// concurrent submissions must not both observe the same crossable top of
// book. Snapshot reads take the read lock, so they wait for an in-flight
// match to finish but are never starved by the id index or other books.
type OrderBook struct {
	marketID   string
	instrument orderbookv1.Instrument

	mu     sync.RWMutex
	bids   btree.Map[float64, *priceLevel]
	asks   btree.Map[float64, *priceLevel]
	orders map[uint64]*orderbookv1.Order

	bidCount int
	askCount int

	seq           uint64
	lastTimestamp int64
}

var _ orderbookv1.Book = (*OrderBook)(nil)

// NewOrderBook creates an empty book for one instrument of a market.
func NewOrderBook(marketID string, instrument orderbookv1.Instrument) *OrderBook {
	return &OrderBook{
		marketID:   marketID,
		instrument: instrument,
		orders:     make(map[uint64]*orderbookv1.Order),
	}
}

// MarketID returns the market this book belongs to.
func (b *OrderBook) MarketID() string {
	return b.marketID
}

// Instrument returns the outcome instrument this book trades.
func (b *OrderBook) Instrument() orderbookv1.Instrument {
	return b.instrument
}

// Submit validates the order, matches it against the opposing side in
// price-time priority and rests any remainder at its limit price. Fills are
// returned in execution order; the boolean reports whether a remainder was
// left resting. The whole call runs under the book's write lock, so the
// sequence of fills from one submission is atomic with respect to every
// other operation on this book.
func (b *OrderBook) Submit(o *orderbookv1.Order) ([]orderbookv1.Match, bool, error) {
	if err := o.Validate(); err != nil {
		return nil, false, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.orders[o.ID]; exists {
		return nil, false, fmt.Errorf("%w: id %d", orderbookv1.ErrDuplicateOrder, o.ID)
	}

	b.stamp(o)

	matches := b.match(o)

	rested := false
	if o.Quantity > 0 {
		b.rest(o)
		rested = true
	}

	if err := b.checkUncrossed(); err != nil {
		return matches, rested, err
	}
	return matches, rested, nil
}

// stamp assigns the book-local arrival sequence and a non-decreasing
// timestamp. Caller-supplied values are overwritten: time comes from the
// engine's clock, never from the submitter.
func (b *OrderBook) stamp(o *orderbookv1.Order) {
	b.seq++
	o.Sequence = b.seq

	now := time.Now().UnixNano()
	if now < b.lastTimestamp {
		now = b.lastTimestamp
	}
	b.lastTimestamp = now
	o.Timestamp = now
}

// match crosses the incoming order against the opposing side's best levels
// until the order is exhausted or no level crosses its limit. Within a level
// the oldest order fills first; no order is ever skipped ahead of an earlier
// one at the same price. The trade price is always the maker's price.
func (b *OrderBook) match(taker *orderbookv1.Order) []orderbookv1.Match {
	var matches []orderbookv1.Match

	for taker.Quantity > 0 {
		maker, ok := b.bestOpposing(taker)
		if !ok {
			break
		}

		fill := taker.Quantity
		if maker.Quantity < fill {
			fill = maker.Quantity
		}

		taker.Quantity -= fill
		maker.Quantity -= fill

		matches = append(matches, orderbookv1.Match{
			Maker:    maker,
			Taker:    taker,
			Price:    maker.Price,
			Quantity: fill,
		})

		b.settleMaker(maker, fill)
	}

	return matches
}

// bestOpposing returns the oldest order at the opposing best price if that
// price crosses the taker's limit.
func (b *OrderBook) bestOpposing(taker *orderbookv1.Order) (*orderbookv1.Order, bool) {
	if taker.IsBuy() {
		price, level, ok := b.asks.Min()
		if !ok || price > taker.Price {
			return nil, false
		}
		return level.head(), true
	}

	price, level, ok := b.bids.Max()
	if !ok || price < taker.Price {
		return nil, false
	}
	return level.head(), true
}

// settleMaker updates the maker's level after a fill and removes the maker,
// its level and its index entry once exhausted.
func (b *OrderBook) settleMaker(maker *orderbookv1.Order, fill float64) {
	side := b.sideOf(maker.Side)
	level, ok := side.Get(maker.Price)
	if !ok {
		return
	}

	level.quantity -= fill

	if maker.Quantity == 0 {
		level.dropHead()
		delete(b.orders, maker.ID)
		b.adjustCount(maker.Side, -1)
		if level.empty() {
			side.Delete(maker.Price)
		}
	}
}

// rest appends the order at the back of its price level's queue, creating
// the level if needed, and records it in the id index.
func (b *OrderBook) rest(o *orderbookv1.Order) {
	side := b.sideOf(o.Side)
	level, ok := side.Get(o.Price)
	if !ok {
		level = newPriceLevel(o.Price)
		side.Set(o.Price, level)
	}
	level.enqueue(o)
	b.orders[o.ID] = o
	b.adjustCount(o.Side, 1)
}

// Cancel removes a resting order from its level and the id index, dropping
// the level if it empties. Cancellation never triggers matching.
func (b *OrderBook) Cancel(orderID uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	o, ok := b.orders[orderID]
	if !ok {
		return fmt.Errorf("%w: id %d", orderbookv1.ErrOrderNotFound, orderID)
	}

	side := b.sideOf(o.Side)
	level, ok := side.Get(o.Price)
	if !ok || !level.remove(orderID) {
		// Index and levels disagree. Matching and cancel both run under the
		// write lock, so this cannot happen unless the book is corrupted.
		return fmt.Errorf("%w: id %d missing from level %f", orderbookv1.ErrBookCrossed, orderID, o.Price)
	}
	if level.empty() {
		side.Delete(o.Price)
	}

	delete(b.orders, orderID)
	b.adjustCount(o.Side, -1)
	return nil
}

// TopOfBook returns the best-price summary. A side with no resting orders
// reports a nil price, never zero.
func (b *OrderBook) TopOfBook() orderbookv1.TopOfBook {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.topOfBookLocked()
}

func (b *OrderBook) topOfBookLocked() orderbookv1.TopOfBook {
	top := orderbookv1.TopOfBook{
		BidCount: b.bidCount,
		AskCount: b.askCount,
	}
	if price, _, ok := b.bids.Max(); ok {
		top.BestBid = &price
	}
	if price, _, ok := b.asks.Min(); ok {
		top.BestAsk = &price
	}
	return top
}

// Depth returns per-level aggregates, best price first on both sides, for up
// to maxLevels levels a side (all levels when maxLevels <= 0).
func (b *OrderBook) Depth(maxLevels int) orderbookv1.Depth {
	b.mu.RLock()
	defer b.mu.RUnlock()

	depth := orderbookv1.Depth{TopOfBook: b.topOfBookLocked()}

	b.bids.Reverse(func(price float64, level *priceLevel) bool {
		depth.Bids = append(depth.Bids, orderbookv1.DepthLevel{
			Price:      price,
			Quantity:   level.quantity,
			OrderCount: level.orderCount(),
		})
		return maxLevels <= 0 || len(depth.Bids) < maxLevels
	})
	b.asks.Scan(func(price float64, level *priceLevel) bool {
		depth.Asks = append(depth.Asks, orderbookv1.DepthLevel{
			Price:      price,
			Quantity:   level.quantity,
			OrderCount: level.orderCount(),
		})
		return maxLevels <= 0 || len(depth.Asks) < maxLevels
	})

	return depth
}

func (b *OrderBook) sideOf(side orderbookv1.Side) *btree.Map[float64, *priceLevel] {
	if side == orderbookv1.SideBuy {
		return &b.bids
	}
	return &b.asks
}

func (b *OrderBook) adjustCount(side orderbookv1.Side, delta int) {
	if side == orderbookv1.SideBuy {
		b.bidCount += delta
	} else {
		b.askCount += delta
	}
}

// checkUncrossed verifies best bid < best ask whenever both sides rest. A
// crossed book outside an active match means the matching loop failed to
// consume a crossable level; the submission is aborted rather than leaving
// the defect silent.
func (b *OrderBook) checkUncrossed() error {
	bid, _, bidOK := b.bids.Max()
	ask, _, askOK := b.asks.Min()
	if bidOK && askOK && bid >= ask {
		return fmt.Errorf("%w: best bid %f >= best ask %f", orderbookv1.ErrBookCrossed, bid, ask)
	}
	return nil
}
