// Favorite commands for the cafeteria CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campusbites/cafeteria/internal/menu"
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite",
	Short: "Manage favorite menu items",
}

var favoriteToggleCmd = &cobra.Command{
	Use:   "toggle <item-id>",
	Short: "Mark or unmark a menu item as favorite",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoriteToggle,
}

var favoriteListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show favorite menu items",
	Args:  cobra.NoArgs,
	RunE:  runFavoriteList,
}

func init() {
	favoriteCmd.AddCommand(favoriteToggleCmd)
	favoriteCmd.AddCommand(favoriteListCmd)
}

func runFavoriteToggle(cmd *cobra.Command, args []string) error {
	item, err := menu.Get(args[0])
	if err != nil {
		return fmt.Errorf("item %q: %w", args[0], err)
	}

	store, c, err := openCart()
	if err != nil {
		return err
	}
	defer store.Close()

	nowFavorite, err := c.ToggleFavorite(item.ID)
	if err != nil {
		return fmt.Errorf("toggle favorite: %w", err)
	}

	if nowFavorite {
		fmt.Printf("Added %s to favorites\n", item.Name)
	} else {
		fmt.Printf("Removed %s from favorites\n", item.Name)
	}
	return nil
}

func runFavoriteList(cmd *cobra.Command, args []string) error {
	store, c, err := openCart()
	if err != nil {
		return err
	}
	defer store.Close()

	ids, err := c.Favorites()
	if err != nil {
		return fmt.Errorf("load favorites: %w", err)
	}

	if flagJSON {
		return printJSON(ids)
	}

	if len(ids) == 0 {
		fmt.Println("No favorites yet.")
		return nil
	}

	for _, id := range ids {
		item, err := menu.Get(id)
		if err != nil {
			// Stale id from an older catalog; show it raw.
			fmt.Printf("  %s\n", id)
			continue
		}
		fmt.Printf("  %-3s %-24s %s\n", item.ID, item.Name, formatMoney(item.Price))
	}
	return nil
}
