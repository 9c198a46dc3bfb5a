package orderbookv1

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrNilOrder is returned when a nil order is handed to the book.
	ErrNilOrder = errors.New("order cannot be nil")
	// ErrInvalidPrice is returned for a non-positive limit price.
	ErrInvalidPrice = errors.New("price must be positive")
	// ErrInvalidQuantity is returned for a non-positive quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrUnknownSide is returned for a side tag that is neither buy nor sell.
	ErrUnknownSide = errors.New("side must be buy or sell")
	// ErrUnknownInstrument is returned for an instrument tag that is neither YES nor NO.
	ErrUnknownInstrument = errors.New("instrument must be YES or NO")
	// ErrDuplicateOrder is returned when an order id is already resting on the book.
	ErrDuplicateOrder = errors.New("order id already resting")
	// ErrOrderNotFound is returned when a cancel names an id that is not resting.
	// The caller cannot distinguish "already filled" from "never existed".
	ErrOrderNotFound = errors.New("order not found")
	// ErrMarketNotFound is returned for a market id that was never created.
	ErrMarketNotFound = errors.New("market not found")
	// ErrBookCrossed reports a persisted crossed book. It indicates a logic
	// defect in the matching loop, never an expected caller-facing condition.
	ErrBookCrossed = errors.New("order book is crossed")
)

// Side is the direction of an order.
type Side string

const (
	// SideBuy is a bid.
	SideBuy Side = "buy"
	// SideSell is an ask.
	SideSell Side = "sell"
)

// ParseSide parses a side tag. It accepts any casing of "buy"/"sell".
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(s) {
	case "buy":
		return SideBuy, nil
	case "sell":
		return SideSell, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrUnknownSide, s)
	}
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// Instrument is one of the two tradable outcomes of a binary market.
// Each instrument has its own independent order book.
type Instrument string

const (
	// InstrumentYes is the YES outcome book.
	InstrumentYes Instrument = "YES"
	// InstrumentNo is the NO outcome book.
	InstrumentNo Instrument = "NO"
)

// ParseInstrument parses an instrument tag. It accepts any casing of "YES"/"NO".
func ParseInstrument(s string) (Instrument, error) {
	switch strings.ToUpper(s) {
	case "YES":
		return InstrumentYes, nil
	case "NO":
		return InstrumentNo, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrUnknownInstrument, s)
	}
}

// Order is a single resting or incoming order. Quantity is the remaining
// unfilled amount and is decremented by the matching loop on partial fills;
// an order whose quantity reaches zero is removed from the book, never left
// as a zero-size node. Timestamp and Sequence are assigned by the book at
// acceptance and are non-decreasing per book; values supplied by the caller
// are ignored.
type Order struct {
	ID         uint64     `json:"id"`
	User       string     `json:"user"`
	Side       Side       `json:"side"`
	Price      float64    `json:"price"`
	Quantity   float64    `json:"quantity"`
	Timestamp  int64      `json:"timestamp"`
	Sequence   uint64     `json:"sequence"`
	Instrument Instrument `json:"instrument"`
	MarketID   string     `json:"marketID"`
}

// IsBuy reports whether the order is a bid.
func (o *Order) IsBuy() bool {
	return o.Side == SideBuy
}

// Validate checks the order fields the engine is responsible for. Tick size
// and the binary 0..1 price range belong to the instrument layer, so only
// finiteness and positivity are enforced here. NaN compares false against
// everything, so it must be rejected explicitly before it reaches a btree
// key or the matching loop.
func (o *Order) Validate() error {
	if o == nil {
		return ErrNilOrder
	}
	if !positiveFinite(o.Price) {
		return fmt.Errorf("%w: got %f", ErrInvalidPrice, o.Price)
	}
	if !positiveFinite(o.Quantity) {
		return fmt.Errorf("%w: got %f", ErrInvalidQuantity, o.Quantity)
	}
	if o.Side != SideBuy && o.Side != SideSell {
		return fmt.Errorf("%w: got %q", ErrUnknownSide, o.Side)
	}
	return nil
}

func positiveFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// PlaceOrderRequest is a submission as it arrives at the engine boundary.
type PlaceOrderRequest struct {
	OrderID    uint64  `json:"id"`
	User       string  `json:"user"`
	Side       string  `json:"side"`
	Price      float64 `json:"price"`
	Quantity   float64 `json:"qty"`
	Instrument string  `json:"market"`
	MarketID   string  `json:"market_id"`
}
