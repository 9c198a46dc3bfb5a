package tradefeedv1

import (
	"context"

	orderbookv1 "github.com/Wixxxxxx/mini-etf/internal/domain/orderbook/v1"
)

// Publisher forwards executed trades to downstream consumers. Publishing is
// best-effort: a failure is reported but must never fail the submission that
// produced the trades.
type Publisher interface {
	// PublishTrades publishes one message per trade.
	PublishTrades(ctx context.Context, trades []orderbookv1.Trade) error
	// Close releases the underlying writer.
	Close() error
}
