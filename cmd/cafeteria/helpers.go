// Shared helpers for cafeteria CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/campusbites/cafeteria/internal/cart"
	"github.com/campusbites/cafeteria/internal/ledger"
	"github.com/campusbites/cafeteria/internal/lifecycle"
	"github.com/campusbites/cafeteria/internal/logger"
	"github.com/campusbites/cafeteria/internal/sqlite"
	"github.com/campusbites/cafeteria/pkg/types"
)

// appLog is the process-wide logger, writing JSON lines to stderr.
var appLog = logger.New("cafeteria-cli")

// openStore resolves the data directory and opens the SQLite store. The
// caller must defer store.Close().
func openStore() (*sqlite.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	store, err := sqlite.Open(dataDir, appLog)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return store, nil
}

// openLedger opens the store and loads the order ledger over it. The
// caller must defer store.Close().
func openLedger() (*sqlite.Store, *ledger.Ledger, error) {
	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}

	l, err := ledger.New(store, appLog)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("load orders: %w", err)
	}

	return store, l, nil
}

// openCart opens the store and wraps it in a Cart. The caller must defer
// store.Close().
func openCart() (*sqlite.Store, *cart.Cart, error) {
	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	return store, cart.New(store, appLog), nil
}

// newSupervisor builds a lifecycle supervisor over the ledger using the
// configured kitchen timing bounds.
func newSupervisor(l *ledger.Ledger) *lifecycle.Supervisor {
	return lifecycle.NewSupervisor(l, appCfg.Simulation, appLog)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// formatMoney renders an amount in rupees.
func formatMoney(amount int64) string {
	return fmt.Sprintf("₹%d", amount)
}

// formatTime renders a unix-millisecond timestamp in local time.
func formatTime(millis int64) string {
	return time.UnixMilli(millis).Local().Format("2006-01-02 15:04:05")
}

// printOrder writes a human-readable order summary to stdout.
func printOrder(o *types.Order) {
	fmt.Printf("%s  %s  %s  %s\n", o.OrderID, formatTime(o.Timestamp), o.CurrentStatus, formatMoney(o.Total))
	for _, item := range o.Items {
		line := fmt.Sprintf("  %dx %s  %s", item.Quantity, item.Name, formatMoney(item.LineTotal()))
		if item.SpiceLevel != "" {
			line += "  [" + item.SpiceLevel + "]"
		}
		if len(item.SelectedOptions) > 0 {
			line += "  (" + strings.Join(item.SelectedOptions, ", ") + ")"
		}
		fmt.Println(line)
		if item.SpecialInstructions != "" {
			fmt.Printf("     note: %s\n", item.SpecialInstructions)
		}
	}
}

// printHistory writes an order's status history to stdout, one entry per
// line in recorded order.
func printHistory(o *types.Order) {
	for _, update := range o.StatusHistory {
		fmt.Printf("  %s  %s\n", formatTime(update.Timestamp), update.Status)
	}
}
