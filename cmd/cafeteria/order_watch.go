// Order watch command: runs live kitchen clocks in the foreground.
package main

import (
	"fmt"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/campusbites/cafeteria/pkg/types"
)

var orderWatchCmd = &cobra.Command{
	Use:   "watch [order-id]",
	Short: "Watch orders progress through the kitchen",
	Long: `Watch orders progress through the kitchen. Without arguments every
active order is watched; with an order id only that order. The command
prints each status change as it happens and returns once all watched
orders reach Completed or Cancelled. Interrupt with Ctrl-C to stop
watching early; order state is persisted at every step either way.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOrderWatch,
}

func runOrderWatch(cmd *cobra.Command, args []string) error {
	store, l, err := openLedger()
	if err != nil {
		return err
	}
	defer store.Close()

	var targets []*types.Order
	if len(args) == 1 {
		order, ok := l.Get(args[0])
		if !ok {
			return fmt.Errorf("order %q: %w", args[0], types.ErrOrderNotFound)
		}
		targets = append(targets, order)
	} else {
		for _, order := range l.Orders() {
			if !order.CurrentStatus.IsTerminal() {
				targets = append(targets, order)
			}
		}
	}

	active := 0
	for _, order := range targets {
		if !order.CurrentStatus.IsTerminal() {
			active++
		}
	}
	if active == 0 {
		fmt.Println("No active orders to watch.")
		return nil
	}

	sup := newSupervisor(l)
	defer sup.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var outMu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)

	for _, order := range targets {
		if order.CurrentStatus.IsTerminal() {
			continue
		}

		outMu.Lock()
		fmt.Printf("%s  watching from %q\n", order.OrderID, order.CurrentStatus)
		outMu.Unlock()

		done := make(chan struct{})
		var once sync.Once

		sub, err := sup.Subscribe(order.OrderID, func(o *types.Order, update types.StatusUpdate) {
			outMu.Lock()
			fmt.Printf("%s  %s  %s\n", o.OrderID, formatTime(update.Timestamp), update.Status)
			outMu.Unlock()
			if update.Status.IsTerminal() {
				once.Do(func() { close(done) })
			}
		})
		if err != nil {
			return fmt.Errorf("watch %s: %w", order.OrderID, err)
		}

		g.Go(func() error {
			defer sub.Release()
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			fmt.Println("Stopped watching.")
			return nil
		}
		return err
	}

	fmt.Println("All watched orders settled.")
	return nil
}
