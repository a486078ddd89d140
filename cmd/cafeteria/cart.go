// Cart commands for the cafeteria CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campusbites/cafeteria/internal/menu"
)

var (
	flagCartQuantity     int
	flagCartSpice        string
	flagCartOptions      []string
	flagCartInstructions string
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the shopping cart",
}

var cartAddCmd = &cobra.Command{
	Use:   "add <item-id>",
	Short: "Add a menu item to the cart",
	Long: `Add a menu item to the cart. Adding an item already in the cart
merges the quantities and replaces the customization.

Examples:
  cafeteria cart add m1
  cafeteria cart add m2 --quantity 2 --spice Hot
  cafeteria cart add s1 --option "Extra Ketchup" --note "no salt"`,
	Args: cobra.ExactArgs(1),
	RunE: runCartAdd,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <item-id>",
	Short: "Remove an item from the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartRemove,
}

var cartQuantityCmd = &cobra.Command{
	Use:   "quantity <item-id> <count>",
	Short: "Set the quantity of a cart item",
	Long:  "Set the quantity of a cart item. A count of 0 removes the item.",
	Args:  cobra.ExactArgs(2),
	RunE:  runCartQuantity,
}

var cartListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the cart content and total",
	Args:  cobra.NoArgs,
	RunE:  runCartList,
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Args:  cobra.NoArgs,
	RunE:  runCartClear,
}

func init() {
	cartAddCmd.Flags().IntVar(&flagCartQuantity, "quantity", 1, "number of servings")
	cartAddCmd.Flags().StringVar(&flagCartSpice, "spice", "", "spice level (Mild, Medium, Hot)")
	cartAddCmd.Flags().StringArrayVar(&flagCartOptions, "option", nil, "add-on option (repeatable)")
	cartAddCmd.Flags().StringVar(&flagCartInstructions, "note", "", "special instructions for the kitchen")

	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartQuantityCmd)
	cartCmd.AddCommand(cartListCmd)
	cartCmd.AddCommand(cartClearCmd)
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	item, err := menu.Get(args[0])
	if err != nil {
		return fmt.Errorf("item %q: %w", args[0], err)
	}

	store, c, err := openCart()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := c.Add(item, flagCartQuantity, flagCartSpice, flagCartOptions, flagCartInstructions); err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}

	fmt.Printf("Added %dx %s to cart\n", flagCartQuantity, item.Name)
	return nil
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	store, c, err := openCart()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := c.Remove(args[0]); err != nil {
		return fmt.Errorf("remove from cart: %w", err)
	}

	fmt.Printf("Removed %s from cart\n", args[0])
	return nil
}

func runCartQuantity(cmd *cobra.Command, args []string) error {
	var count int
	if _, err := fmt.Sscanf(args[1], "%d", &count); err != nil {
		return fmt.Errorf("invalid count %q", args[1])
	}

	store, c, err := openCart()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := c.UpdateQuantity(args[0], count); err != nil {
		return fmt.Errorf("update quantity: %w", err)
	}

	if count == 0 {
		fmt.Printf("Removed %s from cart\n", args[0])
	} else {
		fmt.Printf("Set %s quantity to %d\n", args[0], count)
	}
	return nil
}

func runCartList(cmd *cobra.Command, args []string) error {
	store, c, err := openCart()
	if err != nil {
		return err
	}
	defer store.Close()

	items, err := c.Items()
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}

	if flagJSON {
		return printJSON(items)
	}

	if len(items) == 0 {
		fmt.Println("Cart is empty.")
		return nil
	}

	var total int64
	for _, item := range items {
		fmt.Printf("  %-3s %dx %-24s %s\n", item.ID, item.Quantity, item.Name, formatMoney(item.LineTotal()))
		total += item.LineTotal()
	}
	fmt.Printf("Total: %s\n", formatMoney(total))
	return nil
}

func runCartClear(cmd *cobra.Command, args []string) error {
	store, c, err := openCart()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := c.Clear(); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	fmt.Println("Cart cleared")
	return nil
}
