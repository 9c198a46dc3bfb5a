package orderbook

import (
	orderbookv1 "github.com/Wixxxxxx/mini-etf/internal/domain/orderbook/v1"
)

// priceLevel holds the FIFO queue of resting orders at one price. Every order
// in the queue shares the level's price and side, and the level is removed
// from its side the moment the queue empties.
type priceLevel struct {
	price    float64
	orders   []*orderbookv1.Order
	quantity float64
}

func newPriceLevel(price float64) *priceLevel {
	return &priceLevel{price: price}
}

// enqueue appends an order at the back of the queue, preserving arrival order.
func (l *priceLevel) enqueue(o *orderbookv1.Order) {
	l.orders = append(l.orders, o)
	l.quantity += o.Quantity
}

// head returns the oldest order at this level.
func (l *priceLevel) head() *orderbookv1.Order {
	return l.orders[0]
}

// dropHead removes the oldest order. The caller has already accounted the
// filled quantity, so only the slot is released here.
func (l *priceLevel) dropHead() {
	l.orders[0] = nil
	l.orders = l.orders[1:]
}

// remove deletes the order with the given id, keeping queue order intact.
func (l *priceLevel) remove(orderID uint64) bool {
	for i, o := range l.orders {
		if o.ID == orderID {
			l.quantity -= o.Quantity
			l.orders = append(l.orders[:i], l.orders[i+1:]...)
			return true
		}
	}
	return false
}

func (l *priceLevel) empty() bool {
	return len(l.orders) == 0
}

func (l *priceLevel) orderCount() int {
	return len(l.orders)
}
