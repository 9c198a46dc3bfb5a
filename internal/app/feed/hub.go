package feed

import "sync"

// Subscription is one receiver of broadcast values. The channel is closed by
// Unsubscribe.
type Subscription[T any] struct {
	ch chan T
}

// C returns the receive channel.
func (s *Subscription[T]) C() <-chan T {
	return s.ch
}

// Hub fans broadcast values out to every subscriber. A slow subscriber drops
// values instead of blocking the broadcaster: the live feed favors freshness
// over completeness.
type Hub[T any] struct {
	mu   sync.RWMutex
	subs map[*Subscription[T]]struct{}
}

// NewHub creates an empty hub.
func NewHub[T any]() *Hub[T] {
	return &Hub[T]{subs: make(map[*Subscription[T]]struct{})}
}

// Subscribe registers a new subscriber with the given channel buffer.
func (h *Hub[T]) Subscribe(buffer int) *Subscription[T] {
	sub := &Subscription[T]{ch: make(chan T, buffer)}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Unsubscribe removes the subscriber and closes its channel.
func (h *Hub[T]) Unsubscribe(sub *Subscription[T]) {
	h.mu.Lock()
	_, ok := h.subs[sub]
	delete(h.subs, sub)
	h.mu.Unlock()
	if ok {
		close(sub.ch)
	}
}

// Broadcast delivers value to every subscriber that has buffer room.
func (h *Hub[T]) Broadcast(value T) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		select {
		case sub.ch <- value:
		default:
		}
	}
}

// Len returns the number of active subscribers.
func (h *Hub[T]) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
