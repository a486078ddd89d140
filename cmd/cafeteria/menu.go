// Menu command for the cafeteria CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campusbites/cafeteria/internal/menu"
)

var flagMenuCategory string

var menuCmd = &cobra.Command{
	Use:   "menu [query]",
	Short: "Browse the food menu",
	Long: `Browse the food menu, optionally filtered by a search query and a
category.

Examples:
  cafeteria menu
  cafeteria menu chicken
  cafeteria menu --category Beverages
  cafeteria menu rice --category "Main Course"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagMenuCategory, "category", "", "restrict to one category (Snacks, Main Course, Beverages)")
}

func runMenu(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) == 1 {
		query = args[0]
	}

	items := menu.Search(query, flagMenuCategory)

	if flagJSON {
		return printJSON(items)
	}

	if len(items) == 0 {
		fmt.Println("No menu items match.")
		return nil
	}

	for _, category := range menu.Categories {
		printed := false
		for _, item := range items {
			if item.Category != category {
				continue
			}
			if !printed {
				fmt.Printf("%s\n", category)
				printed = true
			}
			diet := "veg"
			if !item.Veg {
				diet = "non-veg"
			}
			fmt.Printf("  %-3s %-24s %-8s %s\n", item.ID, item.Name, formatMoney(item.Price), diet)
			fmt.Printf("      %s\n", item.Description)
		}
	}
	return nil
}
