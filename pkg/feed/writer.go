package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/quantfold/matchbook/pkg/ledger"
)

// ledgerHeader is the column layout downstream consumers expect.
var ledgerHeader = []string{"account_id", "saldo", "position", "turnover", "trade_amount"}

// WriteLedger writes the final account mapping to path, one row per account,
// sorted by account id so identical runs produce identical files.
func WriteLedger(path string, l *ledger.Ledger) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create ledger sink: %w", err)
	}
	if err := FormatLedger(f, l); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// FormatLedger writes CSV ledger rows to w. Monetary columns carry two
// decimal places.
func FormatLedger(w io.Writer, l *ledger.Ledger) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ledgerHeader); err != nil {
		return err
	}
	for _, acc := range l.Accounts() {
		row := []string{
			strconv.FormatInt(int64(acc.ID), 10),
			acc.CashBalance.StringFixed(2),
			strconv.FormatInt(acc.Position, 10),
			acc.Turnover.StringFixed(2),
			strconv.FormatInt(acc.TradedQuantity, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
