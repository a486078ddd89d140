// Version command for the cafeteria CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// appVersion is the CLI release version.
const appVersion = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cafeteria version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("cafeteria", appVersion)
	},
}
