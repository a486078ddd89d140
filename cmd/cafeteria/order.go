// Order commands for the cafeteria CLI.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campusbites/cafeteria/internal/cart"
	"github.com/campusbites/cafeteria/internal/ledger"
	"github.com/campusbites/cafeteria/pkg/types"
)

var (
	flagOrderQuery  string
	flagOrderStatus string
	flagOrderSort   string
	flagOrderLog    bool
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Place and track orders",
}

var orderPlaceCmd = &cobra.Command{
	Use:   "place",
	Short: "Place an order from the current cart",
	Long: `Place an order from the current cart. The cart is emptied and the
order starts in "Order Received". Use "order watch" to follow the
kitchen's progress.`,
	Args: cobra.NoArgs,
	RunE: runOrderPlace,
}

var orderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders",
	Long: `List orders, newest first by default.

Examples:
  cafeteria order list
  cafeteria order list --status "Ready for Pickup"
  cafeteria order list --query biryani --sort asc`,
	Args: cobra.NoArgs,
	RunE: runOrderList,
}

var orderGetCmd = &cobra.Command{
	Use:   "get <order-id>",
	Short: "Show one order with its status history",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrderGet,
}

var orderCancelCmd = &cobra.Command{
	Use:   "cancel <order-id>",
	Short: "Cancel an order",
	Long: `Cancel an order. Orders already Completed or Cancelled are left
unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: runOrderCancel,
}

func init() {
	orderListCmd.Flags().StringVar(&flagOrderQuery, "query", "", "match order id or item names")
	orderListCmd.Flags().StringVar(&flagOrderStatus, "status", "", "filter by exact status")
	orderListCmd.Flags().StringVar(&flagOrderSort, "sort", "desc", "creation-time order: desc (newest first) or asc")

	orderGetCmd.Flags().BoolVar(&flagOrderLog, "log", false, "include the persisted transition log")

	orderCmd.AddCommand(orderPlaceCmd)
	orderCmd.AddCommand(orderListCmd)
	orderCmd.AddCommand(orderGetCmd)
	orderCmd.AddCommand(orderCancelCmd)
	orderCmd.AddCommand(orderWatchCmd)
}

func runOrderPlace(cmd *cobra.Command, args []string) error {
	store, l, err := openLedger()
	if err != nil {
		return err
	}
	defer store.Close()

	c := cart.New(store, appLog)

	order, err := c.Checkout(l)
	if err != nil {
		if errors.Is(err, types.ErrInvalidOrder) {
			return fmt.Errorf("cart is empty: %w", err)
		}
		return fmt.Errorf("place order: %w", err)
	}

	if flagJSON {
		return printJSON(order)
	}

	fmt.Printf("Order %s placed, total %s\n", order.OrderID, formatMoney(order.Total))
	return nil
}

func runOrderList(cmd *cobra.Command, args []string) error {
	sort := ledger.SortOrder(flagOrderSort)
	if sort != ledger.SortNewestFirst && sort != ledger.SortOldestFirst {
		return fmt.Errorf("invalid sort %q: want desc or asc", flagOrderSort)
	}
	status := types.Status(flagOrderStatus)
	if status != "" && !types.ValidStatus(status) {
		return fmt.Errorf("status %q: %w", flagOrderStatus, types.ErrInvalidStatus)
	}

	store, l, err := openLedger()
	if err != nil {
		return err
	}
	defer store.Close()

	orders := l.ListFiltered(flagOrderQuery, status, sort)

	if flagJSON {
		return printJSON(orders)
	}

	if len(orders) == 0 {
		fmt.Println("No orders match.")
		return nil
	}

	for _, o := range orders {
		printOrder(o)
	}
	return nil
}

func runOrderGet(cmd *cobra.Command, args []string) error {
	store, l, err := openLedger()
	if err != nil {
		return err
	}
	defer store.Close()

	order, ok := l.Get(args[0])
	if !ok {
		return fmt.Errorf("order %q: %w", args[0], types.ErrOrderNotFound)
	}

	if flagJSON {
		if !flagOrderLog {
			return printJSON(order)
		}
		log, err := store.TransitionLog(order.OrderID)
		if err != nil {
			return fmt.Errorf("load transition log: %w", err)
		}
		return printJSON(struct {
			Order *types.Order         `json:"order"`
			Log   []types.StatusUpdate `json:"transitionLog"`
		}{order, log})
	}

	printOrder(order)
	fmt.Println("Status history:")
	printHistory(order)

	if flagOrderLog {
		log, err := store.TransitionLog(order.OrderID)
		if err != nil {
			return fmt.Errorf("load transition log: %w", err)
		}
		fmt.Println("Transition log:")
		for _, update := range log {
			fmt.Printf("  %s  %s\n", formatTime(update.Timestamp), update.Status)
		}
	}
	return nil
}

func runOrderCancel(cmd *cobra.Command, args []string) error {
	store, l, err := openLedger()
	if err != nil {
		return err
	}
	defer store.Close()

	order, ok := l.Get(args[0])
	if !ok {
		return fmt.Errorf("order %q: %w", args[0], types.ErrOrderNotFound)
	}
	if order.CurrentStatus.IsTerminal() {
		fmt.Printf("Order %s is already %s\n", order.OrderID, order.CurrentStatus)
		return nil
	}

	sup := newSupervisor(l)
	defer sup.Close()

	if err := sup.RequestCancellation(order.OrderID); err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}

	fmt.Printf("Order %s cancelled\n", order.OrderID)
	return nil
}
