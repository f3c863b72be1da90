// Package ledger tracks per-account financial state across a matching run.
// Accounts are created lazily on first reference and mutated only by trade
// application; the final mapping is the engine's output.
package ledger

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// AccountID identifies a trading account in the order feed.
type AccountID int64

// Account is the running financial state of one account.
// CashBalance and Position are signed; Turnover and TradedQuantity accrue
// notional value and volume regardless of trade direction.
type Account struct {
	ID             AccountID
	CashBalance    decimal.Decimal
	Position       int64
	Turnover       decimal.Decimal
	TradedQuantity int64
}

// Ledger owns the account mapping. Not safe for concurrent mutation: the
// matching pass is strictly sequential and is the only writer.
type Ledger struct {
	accounts map[AccountID]*Account
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{accounts: make(map[AccountID]*Account)}
}

// GetOrCreate returns the account for id, creating a zero-valued entry on
// first reference. Entries are never deleted during a run.
func (l *Ledger) GetOrCreate(id AccountID) *Account {
	acc, ok := l.accounts[id]
	if !ok {
		acc = &Account{
			ID:          id,
			CashBalance: decimal.Zero,
			Turnover:    decimal.Zero,
		}
		l.accounts[id] = acc
	}
	return acc
}

// Get returns the account for id without creating it.
func (l *Ledger) Get(id AccountID) (*Account, bool) {
	acc, ok := l.accounts[id]
	return acc, ok
}

// Len returns the number of accounts referenced so far.
func (l *Ledger) Len() int {
	return len(l.accounts)
}

// ApplyTrade books one executed fill against both counterparties. It must be
// called exactly once per fill and is pure bookkeeping: both accounts accrue
// quantity and notional turnover, the buyer gains position and pays cash, the
// seller gives up position and receives cash.
//
// A fill with non-positive quantity or negative price can only come from a
// matching-logic fault, so it is treated as a fatal assertion.
func (l *Ledger) ApplyTrade(buyer, seller AccountID, price decimal.Decimal, quantity int64) {
	if quantity <= 0 {
		panic(fmt.Sprintf("ledger: trade with non-positive quantity %d", quantity))
	}
	if price.IsNegative() {
		panic(fmt.Sprintf("ledger: trade with negative price %s", price))
	}

	notional := price.Mul(decimal.NewFromInt(quantity))

	b := l.GetOrCreate(buyer)
	s := l.GetOrCreate(seller)

	// Both legs accrue volume and turnover. When an account trades with
	// itself both legs land on the same entry, doubling quantity and
	// turnover while position and cash cancel out.
	b.TradedQuantity += quantity
	s.TradedQuantity += quantity
	b.Turnover = b.Turnover.Add(notional)
	s.Turnover = s.Turnover.Add(notional)

	b.Position += quantity
	b.CashBalance = b.CashBalance.Sub(notional)
	s.Position -= quantity
	s.CashBalance = s.CashBalance.Add(notional)
}

// Accounts returns all entries sorted by account id. Iteration order carries
// no engine semantics; sorting keeps sink output reproducible across runs.
func (l *Ledger) Accounts() []*Account {
	out := make([]*Account, 0, len(l.accounts))
	for _, acc := range l.accounts {
		out = append(out, acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
