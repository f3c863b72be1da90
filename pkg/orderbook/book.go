// Package orderbook holds the resting state of a single instrument: one
// price-time priority structure per side plus the operations the matching
// algorithms need (insert, peek-best, pop-best, reduce-best).
//
// The book is exclusively owned by a single matching pass and carries no
// internal locking: callers must never mutate it from two goroutines.
package orderbook

import (
	"container/heap"
	"fmt"

	"github.com/shopspring/decimal"
)

// RestingOrder is an unfilled limit order (or remainder) queued in the book.
// Quantity is decremented on partial fills; the order is removed the moment
// it reaches zero, so a resting order always has strictly positive quantity.
type RestingOrder struct {
	Seq      uint64 // engine-assigned arrival sequence, time-priority key
	OrderID  int64  // external order id, carried for reporting only
	Account  int64
	Price    decimal.Decimal
	Quantity int64
}

// BookSide is one half of the book: a priority queue of resting orders
// keyed by (price, seq). Best = most aggressive price, earliest arrival.
type BookSide struct {
	h restingHeap
}

// NewBookSide creates an empty side with the given priority direction.
func NewBookSide(side Side) *BookSide {
	return &BookSide{h: restingHeap{side: side}}
}

func (s *BookSide) Len() int { return s.h.Len() }

// Insert queues a resting order, preserving price-time ordering.
func (s *BookSide) Insert(o *RestingOrder) {
	if o.Quantity <= 0 {
		panic(fmt.Sprintf("orderbook: resting order %d with non-positive quantity %d", o.OrderID, o.Quantity))
	}
	heap.Push(&s.h, o)
}

// Best returns the front order without removing it.
func (s *BookSide) Best() (*RestingOrder, bool) {
	if s.h.Len() == 0 {
		return nil, false
	}
	return s.h.orders[0], true
}

// PopBest removes and returns the front order.
func (s *BookSide) PopBest() *RestingOrder {
	if s.h.Len() == 0 {
		panic("orderbook: pop on empty side")
	}
	return heap.Pop(&s.h).(*RestingOrder)
}

// ReduceBest decrements the front order by filled and removes it when fully
// consumed. The heap key is (price, seq), so a partial fill keeps the order
// at the front of its price tier without any re-ordering.
func (s *BookSide) ReduceBest(filled int64) {
	best, ok := s.Best()
	if !ok {
		panic("orderbook: reduce on empty side")
	}
	if filled <= 0 || filled > best.Quantity {
		panic(fmt.Sprintf("orderbook: invalid fill %d against resting quantity %d", filled, best.Quantity))
	}
	best.Quantity -= filled
	if best.Quantity == 0 {
		heap.Pop(&s.h)
	}
}

// TotalQuantity sums the remaining quantity resting on the side.
func (s *BookSide) TotalQuantity() int64 {
	var total int64
	for _, o := range s.h.orders {
		total += o.Quantity
	}
	return total
}

// OrderBook pairs the bid and ask sides for one instrument.
type OrderBook struct {
	bids *BookSide
	asks *BookSide
}

// NewOrderBook creates an empty book.
func NewOrderBook() *OrderBook {
	return &OrderBook{
		bids: NewBookSide(Buy),
		asks: NewBookSide(Sell),
	}
}

// SideOf returns the book side holding orders of the given direction.
func (b *OrderBook) SideOf(s Side) *BookSide {
	if s == Buy {
		return b.bids
	}
	return b.asks
}

// CounterOf returns the side an incoming order of direction s matches against.
func (b *OrderBook) CounterOf(s Side) *BookSide {
	return b.SideOf(s.Opposite())
}

// Insert adds a resting order to the named side.
func (b *OrderBook) Insert(s Side, o *RestingOrder) {
	b.SideOf(s).Insert(o)
}

// PeekBest returns the best resting order on the named side, if any.
func (b *OrderBook) PeekBest(s Side) (*RestingOrder, bool) {
	return b.SideOf(s).Best()
}

// PopBest removes and returns the best resting order on the named side.
func (b *OrderBook) PopBest(s Side) *RestingOrder {
	return b.SideOf(s).PopBest()
}

// ReduceBest decrements the best order on the named side by filled.
func (b *OrderBook) ReduceBest(s Side, filled int64) {
	b.SideOf(s).ReduceBest(filled)
}
