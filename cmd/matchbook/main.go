package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/quantfold/matchbook/params"
	"github.com/quantfold/matchbook/pkg/engine"
	"github.com/quantfold/matchbook/pkg/feed"
	"github.com/quantfold/matchbook/pkg/util"
)

func main() {
	// Load config from .env file and environment variables.
	cfg := params.LoadFromEnv("")

	// Positional arguments override config paths.
	switch len(os.Args) {
	case 1:
		// use configured paths
	case 3:
		cfg.Input = os.Args[1]
		cfg.Output = os.Args[2]
	default:
		fmt.Fprintln(os.Stderr, "Usage: matchbook <input_file> <output_file>")
		os.Exit(1)
	}

	var (
		logger *zap.Logger
		err    error
	)
	if cfg.LogFile != "" {
		logger, err = util.NewLoggerWithFile(cfg.LogFile, cfg.Verbose)
	} else {
		logger, err = util.NewLogger(cfg.Verbose)
	}
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	start := time.Now()

	orders, err := feed.ReadOrders(cfg.Input)
	if err != nil {
		sugar.Fatalw("order_feed_failed", "input", cfg.Input, "err", err)
	}
	sugar.Infow("orders_loaded", "input", cfg.Input, "count", len(orders))

	eng := engine.New(sugar)
	if err := eng.Replay(orders); err != nil {
		sugar.Fatalw("replay_failed", "err", err)
	}

	if err := feed.WriteLedger(cfg.Output, eng.Ledger()); err != nil {
		sugar.Fatalw("ledger_sink_failed", "output", cfg.Output, "err", err)
	}

	s := eng.Summary()
	sugar.Infow("results_written",
		"output", cfg.Output,
		"orders", s.Orders,
		"trades", s.Trades,
		"volume", s.Volume,
		"accounts", s.Accounts,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
}
