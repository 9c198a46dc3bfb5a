package engine

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	orderbookv1 "github.com/Wixxxxxx/mini-etf/internal/domain/orderbook/v1"
)

// tradeEmitter packages fills into immutable trade records. Trade ids are
// ULIDs; the monotonic entropy source is not safe for concurrent use, so it
// sits behind a mutex shared by every book.
type tradeEmitter struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func newTradeEmitter() *tradeEmitter {
	return &tradeEmitter{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

func (te *tradeEmitter) nextID(now time.Time) string {
	te.mu.Lock()
	defer te.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(now), te.entropy).String()
}

// emit converts the fills of one submission into trades. The trade timestamp
// is the taker's acceptance timestamp, so all trades of one submission share
// it and timestamps stay non-decreasing per book. Buyer and seller come from
// the match sides; the maker's price is already carried on the match.
func (te *tradeEmitter) emit(taker *orderbookv1.Order, matches []orderbookv1.Match) []orderbookv1.Trade {
	if len(matches) == 0 {
		return nil
	}

	now := time.Now()
	trades := make([]orderbookv1.Trade, 0, len(matches))
	for _, m := range matches {
		trades = append(trades, orderbookv1.Trade{
			ID:         te.nextID(now),
			Buyer:      m.Buyer(),
			Seller:     m.Seller(),
			Price:      m.Price,
			Quantity:   m.Quantity,
			TakerSide:  taker.Side,
			Instrument: taker.Instrument,
			MarketID:   taker.MarketID,
			Timestamp:  taker.Timestamp,
		})
	}
	return trades
}
