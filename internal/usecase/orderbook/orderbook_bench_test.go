package orderbook

import (
	"testing"
)

func BenchmarkSubmitResting(b *testing.B) {
	book := newYesBook()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// spread prices so levels keep growing instead of one deep queue
		price := 0.01 + float64(i%99)/100.0
		_, _, _ = book.Submit(buy(uint64(i+1), "alice", price, 10))
	}
}

func BenchmarkSubmitMatching(b *testing.B) {
	book := newYesBook()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := uint64(i*2 + 1)
		if _, _, err := book.Submit(buy(id, "alice", 0.60, 10)); err != nil {
			b.Fatal(err)
		}
		if _, _, err := book.Submit(sell(id+1, "bob", 0.60, 10)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCancel(b *testing.B) {
	book := newYesBook()
	for i := 0; i < b.N; i++ {
		price := 0.01 + float64(i%99)/100.0
		if _, _, err := book.Submit(buy(uint64(i+1), "alice", price, 10)); err != nil {
			b.Fatal(err)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := book.Cancel(uint64(i + 1)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTopOfBook(b *testing.B) {
	book := newYesBook()
	for i := 0; i < 1000; i++ {
		price := 0.01 + float64(i%49)/100.0
		_, _, _ = book.Submit(buy(uint64(i+1), "alice", price, 10))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		top := book.TopOfBook()
		if top.BestBid == nil {
			b.Fatal("expected resting bids")
		}
	}
}
