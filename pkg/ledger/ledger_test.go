package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestGetOrCreateStartsAtZero(t *testing.T) {
	l := NewLedger()

	acc := l.GetOrCreate(7)
	if acc.ID != 7 {
		t.Errorf("expected id 7, got %d", acc.ID)
	}
	if !acc.CashBalance.IsZero() || acc.Position != 0 || !acc.Turnover.IsZero() || acc.TradedQuantity != 0 {
		t.Errorf("new account not zero-valued: %+v", acc)
	}

	// Second lookup returns the same entry, never a fresh one.
	if l.GetOrCreate(7) != acc {
		t.Error("expected same account on repeated get-or-create")
	}
	if l.Len() != 1 {
		t.Errorf("expected 1 account, got %d", l.Len())
	}
}

func TestApplyTrade(t *testing.T) {
	l := NewLedger()
	l.ApplyTrade(1, 2, d("100"), 4)

	buyer, _ := l.Get(1)
	seller, _ := l.Get(2)

	if buyer.Position != 4 {
		t.Errorf("buyer position = %d, want 4", buyer.Position)
	}
	if !buyer.CashBalance.Equal(d("-400")) {
		t.Errorf("buyer cash = %s, want -400", buyer.CashBalance)
	}
	if seller.Position != -4 {
		t.Errorf("seller position = %d, want -4", seller.Position)
	}
	if !seller.CashBalance.Equal(d("400")) {
		t.Errorf("seller cash = %s, want 400", seller.CashBalance)
	}
	for _, acc := range []*Account{buyer, seller} {
		if acc.TradedQuantity != 4 {
			t.Errorf("account %d traded quantity = %d, want 4", acc.ID, acc.TradedQuantity)
		}
		if !acc.Turnover.Equal(d("400")) {
			t.Errorf("account %d turnover = %s, want 400", acc.ID, acc.Turnover)
		}
	}
}

func TestApplyTradeConserves(t *testing.T) {
	l := NewLedger()
	l.ApplyTrade(1, 2, d("99.5"), 10)
	l.ApplyTrade(3, 1, d("101.25"), 7)
	l.ApplyTrade(2, 3, d("0"), 5) // zero price is legal; value moves nowhere

	var position int64
	cash := decimal.Zero
	for _, acc := range l.Accounts() {
		position += acc.Position
		cash = cash.Add(acc.CashBalance)
	}
	if position != 0 {
		t.Errorf("positions do not sum to zero: %d", position)
	}
	if !cash.IsZero() {
		t.Errorf("cash balances do not sum to zero: %s", cash)
	}
}

func TestSelfTradeAccruesBothLegs(t *testing.T) {
	l := NewLedger()
	l.ApplyTrade(5, 5, d("50"), 3)

	acc, _ := l.Get(5)
	if acc.Position != 0 {
		t.Errorf("self-trade position = %d, want 0", acc.Position)
	}
	if !acc.CashBalance.IsZero() {
		t.Errorf("self-trade cash = %s, want 0", acc.CashBalance)
	}
	if acc.TradedQuantity != 6 {
		t.Errorf("self-trade quantity = %d, want 6 (both legs)", acc.TradedQuantity)
	}
	if !acc.Turnover.Equal(d("300")) {
		t.Errorf("self-trade turnover = %s, want 300 (both legs)", acc.Turnover)
	}
}

func TestAccountsSortedByID(t *testing.T) {
	l := NewLedger()
	for _, id := range []AccountID{42, 7, 19, 3} {
		l.GetOrCreate(id)
	}

	accs := l.Accounts()
	want := []AccountID{3, 7, 19, 42}
	for i, acc := range accs {
		if acc.ID != want[i] {
			t.Fatalf("accounts[%d].ID = %d, want %d", i, acc.ID, want[i])
		}
	}
}

func TestApplyTradeAssertions(t *testing.T) {
	l := NewLedger()

	assertPanics(t, "zero quantity", func() { l.ApplyTrade(1, 2, d("100"), 0) })
	assertPanics(t, "negative quantity", func() { l.ApplyTrade(1, 2, d("100"), -1) })
	assertPanics(t, "negative price", func() { l.ApplyTrade(1, 2, d("-1"), 1) })
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}
