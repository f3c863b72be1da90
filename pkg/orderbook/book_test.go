package orderbook

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func resting(seq uint64, id, account int64, price string, qty int64) *RestingOrder {
	p, err := decimal.NewFromString(price)
	if err != nil {
		panic(err)
	}
	return &RestingOrder{Seq: seq, OrderID: id, Account: account, Price: p, Quantity: qty}
}

func TestAskSideOrdersByLowestPrice(t *testing.T) {
	s := NewBookSide(Sell)
	s.Insert(resting(1, 1, 10, "101", 5))
	s.Insert(resting(2, 2, 10, "99", 5))
	s.Insert(resting(3, 3, 10, "100", 5))

	want := []int64{2, 3, 1} // 99, 100, 101
	for _, id := range want {
		best, ok := s.Best()
		assert.True(t, ok)
		assert.Equal(t, id, best.OrderID)
		s.PopBest()
	}
	_, ok := s.Best()
	assert.False(t, ok)
}

func TestBidSideOrdersByHighestPrice(t *testing.T) {
	s := NewBookSide(Buy)
	s.Insert(resting(1, 1, 10, "101", 5))
	s.Insert(resting(2, 2, 10, "99", 5))
	s.Insert(resting(3, 3, 10, "100", 5))

	want := []int64{1, 3, 2} // 101, 100, 99
	for _, id := range want {
		best, _ := s.Best()
		assert.Equal(t, id, best.OrderID)
		s.PopBest()
	}
}

func TestEqualPriceServesEarliestArrival(t *testing.T) {
	for _, side := range []Side{Buy, Sell} {
		t.Run(side.String(), func(t *testing.T) {
			s := NewBookSide(side)
			s.Insert(resting(7, 70, 1, "100", 5))
			s.Insert(resting(3, 30, 2, "100", 5))
			s.Insert(resting(5, 50, 3, "100", 5))

			best, _ := s.Best()
			assert.Equal(t, uint64(3), best.Seq)
			s.PopBest()
			best, _ = s.Best()
			assert.Equal(t, uint64(5), best.Seq)
		})
	}
}

func TestReduceBestKeepsPartialAtFront(t *testing.T) {
	s := NewBookSide(Sell)
	s.Insert(resting(1, 1, 10, "100", 10))
	s.Insert(resting(2, 2, 11, "100", 10))

	s.ReduceBest(4)

	best, _ := s.Best()
	assert.Equal(t, int64(1), best.OrderID, "partially consumed order keeps its place at the front")
	assert.Equal(t, int64(6), best.Quantity)
	assert.Equal(t, int64(16), s.TotalQuantity())
}

func TestReduceBestRemovesExhaustedOrder(t *testing.T) {
	s := NewBookSide(Sell)
	s.Insert(resting(1, 1, 10, "100", 10))
	s.Insert(resting(2, 2, 11, "105", 3))

	s.ReduceBest(10)

	best, ok := s.Best()
	assert.True(t, ok)
	assert.Equal(t, int64(2), best.OrderID)
	assert.Equal(t, 1, s.Len())
}

func TestStructuralInvariantsPanic(t *testing.T) {
	s := NewBookSide(Buy)

	assert.Panics(t, func() { s.Insert(resting(1, 1, 10, "100", 0)) })
	assert.Panics(t, func() { s.PopBest() })
	assert.Panics(t, func() { s.ReduceBest(1) })

	s.Insert(resting(1, 1, 10, "100", 5))
	assert.Panics(t, func() { s.ReduceBest(6) })
	assert.Panics(t, func() { s.ReduceBest(0) })
}

func TestOrderBookSideSelection(t *testing.T) {
	b := NewOrderBook()
	b.Insert(Buy, resting(1, 1, 10, "100", 5))
	b.Insert(Sell, resting(2, 2, 11, "105", 7))

	bid, ok := b.PeekBest(Buy)
	assert.True(t, ok)
	assert.Equal(t, int64(1), bid.OrderID)

	ask, ok := b.PeekBest(Sell)
	assert.True(t, ok)
	assert.Equal(t, int64(2), ask.OrderID)

	assert.Same(t, b.SideOf(Buy), b.CounterOf(Sell))
	assert.Same(t, b.SideOf(Sell), b.CounterOf(Buy))

	b.ReduceBest(Sell, 7)
	assert.Equal(t, 0, b.SideOf(Sell).Len())
	assert.Equal(t, 1, b.SideOf(Buy).Len())
}
