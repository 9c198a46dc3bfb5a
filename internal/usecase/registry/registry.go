package registry

import (
	"fmt"
	"sync"

	orderbookv1 "github.com/Wixxxxxx/mini-etf/internal/domain/orderbook/v1"
	registryv1 "github.com/Wixxxxxx/mini-etf/internal/domain/registry/v1"
	"github.com/Wixxxxxx/mini-etf/internal/usecase/orderbook"
)

// bookPair is the two independent books of one binary market.
type bookPair struct {
	yes *orderbook.OrderBook
	no  *orderbook.OrderBook
}

// Registry owns the market id to book pair mapping. It is explicitly
// constructed and passed to whatever hosts the engine; there is no package
// level singleton. Books are created lazily and never torn down before
// process exit.
type Registry struct {
	mu      sync.RWMutex
	markets map[string]*bookPair
}

var _ registryv1.Registry = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		markets: make(map[string]*bookPair),
	}
}

// Create allocates the YES/NO book pair for marketID if absent. Creating an
// existing market is an idempotent success: the observed boundary has no
// distinct "already exists" signal, and resetting resting orders on a repeat
// create would be far worse than accepting the second call.
func (r *Registry) Create(marketID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.markets[marketID]; exists {
		return nil
	}
	r.markets[marketID] = &bookPair{
		yes: orderbook.NewOrderBook(marketID, orderbookv1.InstrumentYes),
		no:  orderbook.NewOrderBook(marketID, orderbookv1.InstrumentNo),
	}
	return nil
}

// Resolve returns the book for (marketID, instrument).
func (r *Registry) Resolve(marketID string, instrument orderbookv1.Instrument) (orderbookv1.Book, error) {
	r.mu.RLock()
	pair, ok := r.markets[marketID]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", orderbookv1.ErrMarketNotFound, marketID)
	}

	switch instrument {
	case orderbookv1.InstrumentYes:
		return pair.yes, nil
	case orderbookv1.InstrumentNo:
		return pair.no, nil
	default:
		return nil, fmt.Errorf("%w: got %q", orderbookv1.ErrUnknownInstrument, instrument)
	}
}

// Exists reports whether marketID has been created.
func (r *Registry) Exists(marketID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.markets[marketID]
	return ok
}

// MarketCount returns the number of created markets.
func (r *Registry) MarketCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.markets)
}
