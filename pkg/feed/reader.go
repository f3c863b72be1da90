// Package feed adapts the engine's in-memory boundary to tabular files: it
// reads the order batch from CSV and writes the final ledger back out. All
// parse and I/O faults stop here; the core only ever sees well-typed values.
package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/quantfold/matchbook/pkg/engine"
	"github.com/quantfold/matchbook/pkg/ledger"
	"github.com/quantfold/matchbook/pkg/orderbook"
)

// Input column layout: order_id,type,account_id,dir,price,amount.
const orderColumns = 6

// ReadOrders parses the order batch from path, preserving file order. The
// first row is the header; every later row must parse cleanly or the whole
// read fails with the offending line number.
func ReadOrders(path string) ([]engine.Order, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open order feed: %w", err)
	}
	defer f.Close()

	orders, err := ParseOrders(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return orders, nil
}

// ParseOrders reads CSV order records from r.
func ParseOrders(r io.Reader) ([]engine.Order, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = orderColumns

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("order feed is empty: missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if header[0] != "order_id" {
		return nil, fmt.Errorf("unexpected header %q: want order_id,type,account_id,dir,price,amount", header[0])
	}

	var orders []engine.Order
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		o, err := parseOrder(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func parseOrder(record []string) (engine.Order, error) {
	var o engine.Order

	id, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return o, fmt.Errorf("order_id %q: %w", record[0], err)
	}

	kind, err := engine.ParseKind(record[1])
	if err != nil {
		return o, err
	}

	account, err := strconv.ParseInt(record[2], 10, 64)
	if err != nil {
		return o, fmt.Errorf("account_id %q: %w", record[2], err)
	}

	side, err := parseDir(record[3])
	if err != nil {
		return o, err
	}

	price, err := decimal.NewFromString(record[4])
	if err != nil {
		return o, fmt.Errorf("price %q: %w", record[4], err)
	}

	amount, err := strconv.ParseInt(record[5], 10, 64)
	if err != nil {
		return o, fmt.Errorf("amount %q: %w", record[5], err)
	}

	o = engine.Order{
		ID:       id,
		Kind:     kind,
		Account:  ledger.AccountID(account),
		Side:     side,
		Price:    price,
		Quantity: amount,
	}
	return o, o.Validate()
}

// parseDir maps the feed's dir column: 0 = buy, 1 = sell.
func parseDir(s string) (orderbook.Side, error) {
	switch s {
	case "0":
		return orderbook.Buy, nil
	case "1":
		return orderbook.Sell, nil
	default:
		return 0, fmt.Errorf("dir %q: %w", s, engine.ErrUnknownSide)
	}
}
