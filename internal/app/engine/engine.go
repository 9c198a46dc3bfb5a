package engine

import (
	"context"

	orderbookv1 "github.com/Wixxxxxx/mini-etf/internal/domain/orderbook/v1"
	registryv1 "github.com/Wixxxxxx/mini-etf/internal/domain/registry/v1"
	tradefeedv1 "github.com/Wixxxxxx/mini-etf/internal/domain/tradefeed/v1"
	"github.com/Wixxxxxx/mini-etf/internal/app/feed"
	"github.com/Wixxxxxx/mini-etf/pkg/logger"
)

// Engine fronts the order books: it resolves the target book through the
// registry, runs the submission against it and packages the fills into trade
// records. Side effects that leave the process (trade feed, live broadcast)
// happen after the book's lock is released and can never fail a submission.
type Engine struct {
	registry  registryv1.Registry
	publisher tradefeedv1.Publisher
	tradeHub  *feed.Hub[orderbookv1.Trade]
	logger    logger.Interface
	emitter   *tradeEmitter
}

// Option configures optional engine collaborators.
type Option func(*Engine)

// WithPublisher wires a trade feed publisher.
func WithPublisher(p tradefeedv1.Publisher) Option {
	return func(e *Engine) { e.publisher = p }
}

// WithTradeHub wires a hub that receives every executed trade.
func WithTradeHub(h *feed.Hub[orderbookv1.Trade]) Option {
	return func(e *Engine) { e.tradeHub = h }
}

// NewEngine creates an engine over the given registry.
func NewEngine(reg registryv1.Registry, log logger.Interface, opts ...Option) *Engine {
	e := &Engine{
		registry: reg,
		logger:   log,
		emitter:  newTradeEmitter(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateMarket allocates the YES/NO book pair for marketID. Repeat creation
// is an idempotent success.
func (e *Engine) CreateMarket(marketID string) error {
	return e.registry.Create(marketID)
}

// Submit places an order into its (market, instrument) book and returns every
// trade it produced plus the id of the remainder if one rested. Trades are
// published and broadcast best-effort after the book has been updated.
func (e *Engine) Submit(ctx context.Context, req orderbookv1.PlaceOrderRequest) (orderbookv1.SubmitResult, error) {
	var result orderbookv1.SubmitResult

	side, err := orderbookv1.ParseSide(req.Side)
	if err != nil {
		return result, err
	}
	instrument, err := orderbookv1.ParseInstrument(req.Instrument)
	if err != nil {
		return result, err
	}

	book, err := e.registry.Resolve(req.MarketID, instrument)
	if err != nil {
		return result, err
	}

	order := &orderbookv1.Order{
		ID:         req.OrderID,
		User:       req.User,
		Side:       side,
		Price:      req.Price,
		Quantity:   req.Quantity,
		Instrument: instrument,
		MarketID:   req.MarketID,
	}

	matches, rested, err := book.Submit(order)
	if err != nil {
		return result, err
	}

	result.Trades = e.emitter.emit(order, matches)
	if rested {
		id := order.ID
		result.RestingOrderID = &id
	}

	if len(result.Trades) > 0 {
		e.logger.Debug("order matched",
			logger.Field{Key: "marketID", Value: req.MarketID},
			logger.Field{Key: "instrument", Value: string(instrument)},
			logger.Field{Key: "orderID", Value: req.OrderID},
			logger.Field{Key: "trades", Value: len(result.Trades)},
		)
		e.fanOut(ctx, result.Trades)
	}

	return result, nil
}

// fanOut delivers trades to the feed publisher and the broadcast hub. Both
// are best-effort; publish failures are already logged by the publisher.
func (e *Engine) fanOut(ctx context.Context, trades []orderbookv1.Trade) {
	if e.publisher != nil {
		_ = e.publisher.PublishTrades(ctx, trades)
	}
	if e.tradeHub != nil {
		for _, trade := range trades {
			e.tradeHub.Broadcast(trade)
		}
	}
}

// Cancel removes a resting order from its (market, instrument) book.
func (e *Engine) Cancel(marketID string, instrument orderbookv1.Instrument, orderID uint64) error {
	book, err := e.registry.Resolve(marketID, instrument)
	if err != nil {
		return err
	}
	return book.Cancel(orderID)
}

// TopOfBook returns the best-price summary of one book.
func (e *Engine) TopOfBook(marketID string, instrument orderbookv1.Instrument) (orderbookv1.TopOfBook, error) {
	book, err := e.registry.Resolve(marketID, instrument)
	if err != nil {
		return orderbookv1.TopOfBook{}, err
	}
	return book.TopOfBook(), nil
}

// Depth returns per-level aggregates of one book.
func (e *Engine) Depth(marketID string, instrument orderbookv1.Instrument, maxLevels int) (orderbookv1.Depth, error) {
	book, err := e.registry.Resolve(marketID, instrument)
	if err != nil {
		return orderbookv1.Depth{}, err
	}
	return book.Depth(maxLevels), nil
}
