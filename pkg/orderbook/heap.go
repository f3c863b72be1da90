package orderbook

// restingHeap implements heap.Interface over resting orders for one side.
// Ordering is price-time priority: the most aggressive price wins, and among
// equal prices the lowest arrival sequence wins. The heap key is (price, seq)
// only; remaining quantity never participates, so decrementing the top order
// in place leaves the heap invariant intact.
type restingHeap struct {
	side   Side
	orders []*RestingOrder
}

func (h restingHeap) Len() int { return len(h.orders) }

func (h restingHeap) Less(i, j int) bool {
	a, b := h.orders[i], h.orders[j]
	switch a.Price.Cmp(b.Price) {
	case 0:
		return a.Seq < b.Seq // earlier arrival first at equal price
	case 1:
		return h.side == Buy // bids: higher price first
	default:
		return h.side == Sell // asks: lower price first
	}
}

func (h restingHeap) Swap(i, j int) {
	h.orders[i], h.orders[j] = h.orders[j], h.orders[i]
}

func (h *restingHeap) Push(x interface{}) {
	h.orders = append(h.orders, x.(*RestingOrder))
}

func (h *restingHeap) Pop() interface{} {
	old := h.orders
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	h.orders = old[0 : n-1]
	return x
}
