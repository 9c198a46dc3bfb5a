package registryv1

import (
	orderbookv1 "github.com/Wixxxxxx/mini-etf/internal/domain/orderbook/v1"
)

// Registry maps a market id to its pair of order books, one per instrument.
// Books are created lazily and live for the process lifetime.
type Registry interface {
	// Create allocates the YES/NO book pair for marketID if absent.
	// Creation is idempotent: creating an existing market succeeds and
	// leaves its resting orders untouched.
	Create(marketID string) error
	// Resolve returns the book for (marketID, instrument).
	Resolve(marketID string, instrument orderbookv1.Instrument) (orderbookv1.Book, error)
	// Exists reports whether marketID has been created.
	Exists(marketID string) bool
}
