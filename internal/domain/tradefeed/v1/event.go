package tradefeedv1

import (
	"encoding/json"

	orderbookv1 "github.com/Wixxxxxx/mini-etf/internal/domain/orderbook/v1"
)

// TradeEvent is the wire payload for one executed trade.
type TradeEvent struct {
	TradeID    string  `json:"tradeID"`
	MarketID   string  `json:"marketID"`
	Instrument string  `json:"instrument"`
	Buyer      string  `json:"buyer"`
	Seller     string  `json:"seller"`
	Price      float64 `json:"price"`
	Quantity   float64 `json:"quantity"`
	TakerSide  string  `json:"takerSide"`
	Timestamp  int64   `json:"timestamp"`
}

// FromTrade builds the wire payload for a trade.
func FromTrade(t orderbookv1.Trade) TradeEvent {
	return TradeEvent{
		TradeID:    t.ID,
		MarketID:   t.MarketID,
		Instrument: string(t.Instrument),
		Buyer:      t.Buyer,
		Seller:     t.Seller,
		Price:      t.Price,
		Quantity:   t.Quantity,
		TakerSide:  string(t.TakerSide),
		Timestamp:  t.Timestamp,
	}
}

// ToBytes serializes the event for the message value.
func (e TradeEvent) ToBytes() []byte {
	b, _ := json.Marshal(e)
	return b
}
