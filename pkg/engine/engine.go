// Package engine matches a closed, ordered batch of orders against a
// single-instrument book and folds every executed fill into the ledger.
//
// Matching is a strictly sequential fold: one order at a time, in arrival
// order, processed to completion before the next is considered. The output
// ledger is a deterministic function of the batch and its ordering, which is
// what makes replay and audit possible. The engine holds the book and ledger
// as private state and offers no internal locking.
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quantfold/matchbook/pkg/ledger"
	"github.com/quantfold/matchbook/pkg/orderbook"
)

// Trade is one executed fill between two accounts. It exists only long
// enough to be applied to the ledger and handed to OnTrade.
type Trade struct {
	Buyer    ledger.AccountID
	Seller   ledger.AccountID
	Price    decimal.Decimal
	Quantity int64
}

// Summary reports batch-level counters after a replay.
type Summary struct {
	Orders   int64 // orders processed
	Trades   int64 // fills executed
	Volume   int64 // total quantity matched
	Accounts int   // accounts referenced
}

// Engine dispatches each incoming order to its matching algorithm.
type Engine struct {
	book   *orderbook.OrderBook
	ledger *ledger.Ledger
	log    *zap.SugaredLogger

	// seq is the engine-assigned arrival sequence used as the time-priority
	// tie-break. Stamping on ingestion keeps priority correct even if the
	// feed supplies non-monotonic external ids.
	seq uint64

	orders int64
	trades int64
	volume int64

	// OnTrade, when set, observes every fill in execution order.
	OnTrade func(Trade)
}

// New creates an engine with an empty book and ledger. A nil logger disables
// logging.
func New(log *zap.SugaredLogger) *Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Engine{
		book:   orderbook.NewOrderBook(),
		ledger: ledger.NewLedger(),
		log:    log,
	}
}

// Ledger exposes the account state accumulated so far.
func (e *Engine) Ledger() *ledger.Ledger { return e.ledger }

// Book exposes the resting state. Read-only between orders.
func (e *Engine) Book() *orderbook.OrderBook { return e.book }

// Summary returns the counters for the orders processed so far.
func (e *Engine) Summary() Summary {
	return Summary{
		Orders:   e.orders,
		Trades:   e.trades,
		Volume:   e.volume,
		Accounts: e.ledger.Len(),
	}
}

// Replay folds the full batch through the engine in order. The first
// malformed order aborts the run with its position in the batch.
func (e *Engine) Replay(orders []Order) error {
	for i, o := range orders {
		if err := e.Process(o); err != nil {
			return fmt.Errorf("order %d of %d: %w", i+1, len(orders), err)
		}
	}
	e.log.Infow("replay_complete",
		"orders", e.orders,
		"trades", e.trades,
		"volume", e.volume,
		"accounts", e.ledger.Len(),
		"resting_bids", e.book.SideOf(orderbook.Buy).Len(),
		"resting_asks", e.book.SideOf(orderbook.Sell).Len(),
	)
	return nil
}

// Process matches a single order to completion. Every order terminates in
// one of: fully matched, partially matched with the remainder resting (limit
// only), resting unmatched (limit only), or cancelled/lapsed.
func (e *Engine) Process(o Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	e.seq++
	e.orders++
	e.ledger.GetOrCreate(o.Account)

	switch o.Kind {
	case Market:
		e.matchMarket(o)
	case Limit:
		e.matchLimit(o)
	case IOC:
		e.matchIOC(o)
	case FOK:
		e.matchFOK(o)
	}
	return nil
}

// crosses reports whether an order with reference price ref may trade
// against a counter order resting at best: a buyer pays at most ref, a
// seller accepts at least ref.
func crosses(side orderbook.Side, ref, best decimal.Decimal) bool {
	if side == orderbook.Buy {
		return ref.GreaterThanOrEqual(best)
	}
	return ref.LessThanOrEqual(best)
}

// execute books one fill of qty between the incoming order and the resting
// counter order, at the resting order's price.
func (e *Engine) execute(o Order, maker *orderbook.RestingOrder, qty int64) {
	buyer := o.Account
	seller := ledger.AccountID(maker.Account)
	if o.Side == orderbook.Sell {
		buyer, seller = seller, buyer
	}

	e.ledger.ApplyTrade(buyer, seller, maker.Price, qty)
	e.trades++
	e.volume += qty

	if e.OnTrade != nil {
		e.OnTrade(Trade{Buyer: buyer, Seller: seller, Price: maker.Price, Quantity: qty})
	}
	e.log.Debugw("fill",
		"taker_order", o.ID,
		"maker_order", maker.OrderID,
		"price", maker.Price,
		"qty", qty,
		"buyer", buyer,
		"seller", seller,
	)
}

// matchMarket walks the counter side from its best price for as long as the
// order has quantity left and the best price clears the order's reference
// price. Whatever cannot be filled lapses; market orders never rest.
func (e *Engine) matchMarket(o Order) {
	counter := e.book.CounterOf(o.Side)
	remaining := o.Quantity

	for remaining > 0 {
		best, ok := counter.Best()
		if !ok || !crosses(o.Side, o.Price, best.Price) {
			break
		}
		qty := min(remaining, best.Quantity)
		e.execute(o, best, qty)
		counter.ReduceBest(qty)
		remaining -= qty
	}
}

// matchLimit attempts to cross against the counter side first, then rests
// whatever remains on the order's own side. Insertion happens exactly once,
// after matching, regardless of whether anything filled.
func (e *Engine) matchLimit(o Order) {
	counter := e.book.CounterOf(o.Side)
	remaining := o.Quantity

	for remaining > 0 {
		best, ok := counter.Best()
		if !ok || !crosses(o.Side, o.Price, best.Price) {
			break
		}
		qty := min(remaining, best.Quantity)
		e.execute(o, best, qty)
		counter.ReduceBest(qty)
		remaining -= qty
	}

	if remaining > 0 {
		e.book.Insert(o.Side, &orderbook.RestingOrder{
			Seq:      e.seq,
			OrderID:  o.ID,
			Account:  int64(o.Account),
			Price:    o.Price,
			Quantity: remaining,
		})
	}
}

// matchIOC fills against the single best counter order only; deeper levels
// are never inspected, even when they would cross. The unfilled remainder is
// discarded and IOC orders never enter the book.
func (e *Engine) matchIOC(o Order) {
	counter := e.book.CounterOf(o.Side)
	best, ok := counter.Best()
	if !ok || !crosses(o.Side, o.Price, best.Price) {
		return
	}
	qty := min(o.Quantity, best.Quantity)
	e.execute(o, best, qty)
	counter.ReduceBest(qty)
}

// matchFOK executes all-or-nothing against the single best counter order.
// Quantity is never aggregated across price levels: if the best resting
// order alone cannot cover the full requested quantity at an acceptable
// price, the order cancels with zero effect on book and ledger.
func (e *Engine) matchFOK(o Order) {
	counter := e.book.CounterOf(o.Side)
	best, ok := counter.Best()
	if !ok || !crosses(o.Side, o.Price, best.Price) || best.Quantity < o.Quantity {
		return
	}
	e.execute(o, best, o.Quantity)
	counter.ReduceBest(o.Quantity)
}
