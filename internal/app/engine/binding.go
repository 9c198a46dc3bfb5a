package engine

import (
	"context"
	"errors"
	"sync/atomic"

	orderbookv1 "github.com/Wixxxxxx/mini-etf/internal/domain/orderbook/v1"
)

// ErrNotInitialized is returned when a binding call arrives before Init.
var ErrNotInitialized = errors.New("binding not initialized")

// Binding is the narrow call surface a host process marshals across. It
// keeps the contract existing hosts rely on, built on top of the richer
// engine API:
//
//   - PlaceOrder surfaces only the FIRST trade of a multi-fill match; the
//     remaining fills are applied to book state but not returned. Hosts that
//     need every fill should call Engine.Submit instead.
//   - PlaceOrder, GetTopOfBook and GetOrderBookDepth create the market on
//     demand rather than failing on an unknown id.
//   - CancelOrder takes no instrument: the order is looked up on the YES
//     book first, then the NO book.
//
// Ordinary not-found conditions come back as false/nil results; errors are
// reserved for malformed input.
type Binding struct {
	engine      *Engine
	initialized atomic.Bool
}

// NewBinding wraps an engine in the narrow boundary.
func NewBinding(e *Engine) *Binding {
	return &Binding{engine: e}
}

// Init marks the binding ready. It is idempotent and must be called once
// before any other operation.
func (b *Binding) Init() bool {
	b.initialized.Store(true)
	return true
}

// CreateMarket allocates the market's book pair. Repeat creation succeeds.
func (b *Binding) CreateMarket(marketID string) bool {
	if !b.initialized.Load() {
		return false
	}
	return b.engine.CreateMarket(marketID) == nil
}

// PlaceOrder submits an order, creating the market on demand. It returns the
// first trade of the match, or nil when nothing crossed. A non-nil error
// means the order was malformed and nothing was applied.
func (b *Binding) PlaceOrder(ctx context.Context, req orderbookv1.PlaceOrderRequest) (*orderbookv1.Trade, error) {
	if !b.initialized.Load() {
		return nil, ErrNotInitialized
	}

	if err := b.engine.CreateMarket(req.MarketID); err != nil {
		return nil, err
	}

	result, err := b.engine.Submit(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(result.Trades) == 0 {
		return nil, nil
	}
	first := result.Trades[0]
	return &first, nil
}

// CancelOrder removes a resting order from whichever instrument book of the
// market holds it. It reports false when the order is not resting on either
// book; the caller cannot distinguish "already filled" from "never existed".
func (b *Binding) CancelOrder(marketID string, orderID uint64) bool {
	if !b.initialized.Load() {
		return false
	}

	for _, instrument := range []orderbookv1.Instrument{orderbookv1.InstrumentYes, orderbookv1.InstrumentNo} {
		if err := b.engine.Cancel(marketID, instrument, orderID); err == nil {
			return true
		}
	}
	return false
}

// GetTopOfBook returns the four-field best-price summary, creating the market
// on demand. Empty sides report nil prices, never zero.
func (b *Binding) GetTopOfBook(marketID, instrument string) *orderbookv1.TopOfBook {
	return b.bookSummary(marketID, instrument)
}

// GetOrderBookDepth returns the same four-field shape as GetTopOfBook. The
// richer per-level aggregates live on Engine.Depth; this call keeps the
// shape existing hosts expect.
func (b *Binding) GetOrderBookDepth(marketID, instrument string) *orderbookv1.TopOfBook {
	return b.bookSummary(marketID, instrument)
}

func (b *Binding) bookSummary(marketID, instrument string) *orderbookv1.TopOfBook {
	if !b.initialized.Load() {
		return nil
	}

	parsed, err := orderbookv1.ParseInstrument(instrument)
	if err != nil {
		return nil
	}
	if err := b.engine.CreateMarket(marketID); err != nil {
		return nil
	}

	top, err := b.engine.TopOfBook(marketID, parsed)
	if err != nil {
		return nil
	}
	return &top
}
