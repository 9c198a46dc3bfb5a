package engine

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderbookv1 "github.com/Wixxxxxx/mini-etf/internal/domain/orderbook/v1"
	"github.com/Wixxxxxx/mini-etf/internal/app/feed"
	"github.com/Wixxxxxx/mini-etf/internal/usecase/registry"
	"github.com/Wixxxxxx/mini-etf/pkg/logger"
)

// capturePublisher records everything the engine publishes.
type capturePublisher struct {
	mu     sync.Mutex
	trades []orderbookv1.Trade
}

func (p *capturePublisher) PublishTrades(_ context.Context, trades []orderbookv1.Trade) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.trades = append(p.trades, trades...)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func (p *capturePublisher) published() []orderbookv1.Trade {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]orderbookv1.Trade, len(p.trades))
	copy(out, p.trades)
	return out
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	return NewEngine(registry.NewRegistry(), logger.NewNop(), opts...)
}

func placeReq(id uint64, user, side string, price, qty float64) orderbookv1.PlaceOrderRequest {
	return orderbookv1.PlaceOrderRequest{
		OrderID:    id,
		User:       user,
		Side:       side,
		Price:      price,
		Quantity:   qty,
		Instrument: "YES",
		MarketID:   "btc_above_100k",
	}
}

// Test 1: A non-crossing order rests and reports its id back
func TestEngine_SubmitRests(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.CreateMarket("btc_above_100k"))

	result, err := e.Submit(context.Background(), placeReq(1, "alice", "buy", 0.60, 10))

	require.NoError(t, err)
	assert.Empty(t, result.Trades)
	require.NotNil(t, result.RestingOrderID)
	assert.Equal(t, uint64(1), *result.RestingOrderID)

	top, err := e.TopOfBook("btc_above_100k", orderbookv1.InstrumentYes)
	require.NoError(t, err)
	require.NotNil(t, top.BestBid)
	assert.Equal(t, 0.60, *top.BestBid)
}

// Test 2: Crossing submissions produce trades with ULID ids and maker pricing
func TestEngine_SubmitMatches(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.CreateMarket("btc_above_100k"))

	_, err := e.Submit(context.Background(), placeReq(1, "alice", "buy", 0.60, 10))
	require.NoError(t, err)

	result, err := e.Submit(context.Background(), placeReq(2, "bob", "sell", 0.55, 4))

	require.NoError(t, err)
	require.Len(t, result.Trades, 1)
	assert.Nil(t, result.RestingOrderID)

	trade := result.Trades[0]
	assert.Equal(t, "alice", trade.Buyer)
	assert.Equal(t, "bob", trade.Seller)
	assert.Equal(t, 0.60, trade.Price)
	assert.Equal(t, 4.0, trade.Quantity)
	assert.Equal(t, orderbookv1.SideSell, trade.TakerSide)
	assert.Equal(t, orderbookv1.InstrumentYes, trade.Instrument)
	assert.Equal(t, "btc_above_100k", trade.MarketID)
	_, err = ulid.Parse(trade.ID)
	assert.NoError(t, err)
}

// Test 3: A sweep returns every fill, ids strictly unique
func TestEngine_SubmitReturnsAllFills(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.CreateMarket("btc_above_100k"))

	ctx := context.Background()
	_, err := e.Submit(ctx, placeReq(1, "alice", "buy", 0.60, 10))
	require.NoError(t, err)
	_, err = e.Submit(ctx, placeReq(2, "bob", "buy", 0.55, 10))
	require.NoError(t, err)

	result, err := e.Submit(ctx, placeReq(3, "carol", "sell", 0.50, 25))

	require.NoError(t, err)
	require.Len(t, result.Trades, 2)
	assert.Equal(t, 0.60, result.Trades[0].Price)
	assert.Equal(t, 0.55, result.Trades[1].Price)
	assert.NotEqual(t, result.Trades[0].ID, result.Trades[1].ID)
	// the 5 unfilled rest as an ask
	require.NotNil(t, result.RestingOrderID)
	assert.Equal(t, uint64(3), *result.RestingOrderID)
}

// Test 4: Malformed requests fail before touching any book
func TestEngine_SubmitValidation(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.CreateMarket("btc_above_100k"))

	req := placeReq(1, "alice", "hold", 0.60, 10)
	_, err := e.Submit(context.Background(), req)
	assert.ErrorIs(t, err, orderbookv1.ErrUnknownSide)

	req = placeReq(1, "alice", "buy", 0.60, 10)
	req.Instrument = "MAYBE"
	_, err = e.Submit(context.Background(), req)
	assert.ErrorIs(t, err, orderbookv1.ErrUnknownInstrument)

	req = placeReq(1, "alice", "buy", 0.60, 10)
	req.MarketID = "never_created"
	_, err = e.Submit(context.Background(), req)
	assert.ErrorIs(t, err, orderbookv1.ErrMarketNotFound)
}

// Test 5: YES and NO books of one market never interact
func TestEngine_InstrumentIsolation(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.CreateMarket("btc_above_100k"))

	ctx := context.Background()
	_, err := e.Submit(ctx, placeReq(1, "alice", "buy", 0.60, 10))
	require.NoError(t, err)

	noSell := placeReq(2, "bob", "sell", 0.55, 10)
	noSell.Instrument = "NO"
	result, err := e.Submit(ctx, noSell)

	require.NoError(t, err)
	assert.Empty(t, result.Trades)

	yesTop, err := e.TopOfBook("btc_above_100k", orderbookv1.InstrumentYes)
	require.NoError(t, err)
	assert.Equal(t, 1, yesTop.BidCount)
	assert.Equal(t, 0, yesTop.AskCount)

	noTop, err := e.TopOfBook("btc_above_100k", orderbookv1.InstrumentNo)
	require.NoError(t, err)
	assert.Equal(t, 0, noTop.BidCount)
	assert.Equal(t, 1, noTop.AskCount)
}

// Test 6: Cancel removes a resting order through the engine
func TestEngine_Cancel(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.CreateMarket("btc_above_100k"))

	_, err := e.Submit(context.Background(), placeReq(1, "alice", "buy", 0.60, 10))
	require.NoError(t, err)

	require.NoError(t, e.Cancel("btc_above_100k", orderbookv1.InstrumentYes, 1))

	top, err := e.TopOfBook("btc_above_100k", orderbookv1.InstrumentYes)
	require.NoError(t, err)
	assert.Nil(t, top.BestBid)
	assert.Equal(t, 0, top.BidCount)

	err = e.Cancel("btc_above_100k", orderbookv1.InstrumentYes, 1)
	assert.ErrorIs(t, err, orderbookv1.ErrOrderNotFound)
}

// Test 7: Executed trades reach the publisher and the hub
func TestEngine_FanOut(t *testing.T) {
	pub := &capturePublisher{}
	hub := feed.NewHub[orderbookv1.Trade]()
	e := newTestEngine(t, WithPublisher(pub), WithTradeHub(hub))
	require.NoError(t, e.CreateMarket("btc_above_100k"))

	sub := hub.Subscribe(8)
	defer hub.Unsubscribe(sub)

	ctx := context.Background()
	_, err := e.Submit(ctx, placeReq(1, "alice", "buy", 0.60, 10))
	require.NoError(t, err)
	result, err := e.Submit(ctx, placeReq(2, "bob", "sell", 0.60, 10))
	require.NoError(t, err)
	require.Len(t, result.Trades, 1)

	published := pub.published()
	require.Len(t, published, 1)
	assert.Equal(t, result.Trades[0].ID, published[0].ID)

	select {
	case got := <-sub.C():
		assert.Equal(t, result.Trades[0].ID, got.ID)
	default:
		t.Fatal("expected a broadcast trade")
	}
}

// Test 8: Concurrent submissions to distinct markets conserve every order
func TestEngine_ConcurrentMarkets(t *testing.T) {
	e := newTestEngine(t)

	const markets = 8
	const ordersPerMarket = 200

	for i := 0; i < markets; i++ {
		require.NoError(t, e.CreateMarket(fmt.Sprintf("market_%d", i)))
	}

	var wg sync.WaitGroup
	for i := 0; i < markets; i++ {
		wg.Add(1)
		go func(market int) {
			defer wg.Done()
			ctx := context.Background()
			for j := 0; j < ordersPerMarket; j++ {
				req := placeReq(uint64(j+1), "alice", "buy", 0.01+float64(j%99)/100.0, 1)
				req.MarketID = fmt.Sprintf("market_%d", market)
				if _, err := e.Submit(ctx, req); err != nil {
					t.Error(err)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < markets; i++ {
		top, err := e.TopOfBook(fmt.Sprintf("market_%d", i), orderbookv1.InstrumentYes)
		require.NoError(t, err)
		assert.Equal(t, ordersPerMarket, top.BidCount)
	}
}
