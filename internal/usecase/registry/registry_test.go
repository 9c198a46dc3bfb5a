package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderbookv1 "github.com/Wixxxxxx/mini-etf/internal/domain/orderbook/v1"
)

// Test 1: Create allocates both instrument books
func TestRegistry_Create(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Create("btc_above_100k"))

	assert.True(t, r.Exists("btc_above_100k"))
	assert.Equal(t, 1, r.MarketCount())

	yes, err := r.Resolve("btc_above_100k", orderbookv1.InstrumentYes)
	require.NoError(t, err)
	no, err := r.Resolve("btc_above_100k", orderbookv1.InstrumentNo)
	require.NoError(t, err)
	assert.NotSame(t, yes, no)
}

// Test 2: Repeat creation is a no-op and keeps resting orders intact
func TestRegistry_CreateIdempotent(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Create("btc_above_100k"))

	book, err := r.Resolve("btc_above_100k", orderbookv1.InstrumentYes)
	require.NoError(t, err)
	_, _, err = book.Submit(&orderbookv1.Order{
		ID:         1,
		User:       "alice",
		Side:       orderbookv1.SideBuy,
		Price:      0.60,
		Quantity:   10,
		Instrument: orderbookv1.InstrumentYes,
		MarketID:   "btc_above_100k",
	})
	require.NoError(t, err)

	require.NoError(t, r.Create("btc_above_100k"))

	again, err := r.Resolve("btc_above_100k", orderbookv1.InstrumentYes)
	require.NoError(t, err)
	assert.Same(t, book, again)
	assert.Equal(t, 1, again.TopOfBook().BidCount)
	assert.Equal(t, 1, r.MarketCount())
}

// Test 3: Resolving an unknown market fails
func TestRegistry_ResolveUnknownMarket(t *testing.T) {
	r := NewRegistry()

	_, err := r.Resolve("never_created", orderbookv1.InstrumentYes)
	assert.ErrorIs(t, err, orderbookv1.ErrMarketNotFound)
	assert.False(t, r.Exists("never_created"))
}

// Test 4: Resolving a bad instrument tag fails even for a known market
func TestRegistry_ResolveUnknownInstrument(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Create("btc_above_100k"))

	_, err := r.Resolve("btc_above_100k", orderbookv1.Instrument("MAYBE"))
	assert.ErrorIs(t, err, orderbookv1.ErrUnknownInstrument)
}

// Test 5: Markets do not share books
func TestRegistry_MarketsAreIndependent(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Create("market_a"))
	require.NoError(t, r.Create("market_b"))

	a, err := r.Resolve("market_a", orderbookv1.InstrumentYes)
	require.NoError(t, err)
	_, _, err = a.Submit(&orderbookv1.Order{
		ID:       1,
		User:     "alice",
		Side:     orderbookv1.SideBuy,
		Price:    0.60,
		Quantity: 10,
	})
	require.NoError(t, err)

	b, err := r.Resolve("market_b", orderbookv1.InstrumentYes)
	require.NoError(t, err)
	assert.Equal(t, 0, b.TopOfBook().BidCount)
	assert.Equal(t, 1, a.TopOfBook().BidCount)
}
