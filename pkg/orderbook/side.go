package orderbook

// Side identifies which half of the book an order belongs to.
type Side int8

const (
	Buy  Side = 1
	Sell Side = -1
)

// Opposite returns the counter side an incoming order matches against.
func (s Side) Opposite() Side {
	return -s
}

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the two defined sides.
func (s Side) Valid() bool {
	return s == Buy || s == Sell
}
