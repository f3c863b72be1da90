package engine

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/quantfold/matchbook/pkg/ledger"
	"github.com/quantfold/matchbook/pkg/orderbook"
)

// Kind is the execution semantics of an incoming order.
type Kind int8

const (
	Market Kind = iota
	Limit
	IOC // immediate-or-cancel
	FOK // fill-or-kill
)

func (k Kind) String() string {
	switch k {
	case Market:
		return "market"
	case Limit:
		return "limit"
	case IOC:
		return "ioc"
	case FOK:
		return "fok"
	default:
		return "unknown"
	}
}

// Input validation errors. A batch containing any of these aborts the run:
// the feed contract promises well-typed orders, so a malformed one is a
// configuration fault, never something to skip silently.
var (
	ErrUnknownOrderKind    = errors.New("unknown order kind")
	ErrUnknownSide         = errors.New("unknown order side")
	ErrNonPositiveQuantity = errors.New("order quantity must be positive")
	ErrNegativePrice       = errors.New("order price must be non-negative")
)

// ParseKind maps the feed's type column to an order kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "market":
		return Market, nil
	case "limit":
		return Limit, nil
	case "ioc":
		return IOC, nil
	case "fok":
		return FOK, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOrderKind, s)
	}
}

// Order is one well-typed record from the order feed. Immutable once built;
// the engine tracks remaining quantity separately while matching.
type Order struct {
	ID       int64
	Kind     Kind
	Account  ledger.AccountID
	Side     orderbook.Side
	Price    decimal.Decimal
	Quantity int64
}

// Validate checks the fields the matching algorithms rely on.
func (o Order) Validate() error {
	if !o.Side.Valid() {
		return fmt.Errorf("order %d: %w: %d", o.ID, ErrUnknownSide, o.Side)
	}
	if o.Kind < Market || o.Kind > FOK {
		return fmt.Errorf("order %d: %w: %d", o.ID, ErrUnknownOrderKind, o.Kind)
	}
	if o.Quantity <= 0 {
		return fmt.Errorf("order %d: %w: %d", o.ID, ErrNonPositiveQuantity, o.Quantity)
	}
	if o.Price.IsNegative() {
		return fmt.Errorf("order %d: %w: %s", o.ID, ErrNegativePrice, o.Price)
	}
	return nil
}
