// Root command for the cafeteria CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/campusbites/cafeteria/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// appCfg holds the configuration loaded from config.yaml, set by
// PersistentPreRunE so all subcommands can use it.
var appCfg = defaultAppConfig()

var rootCmd = &cobra.Command{
	Use:     "cafeteria",
	Short:   "Cafeteria is a campus food-ordering counter",
	Version: appVersion,
	Long: `Cafeteria is a local-first campus food-ordering counter. Browse the
menu, build a cart, place orders, and watch them move through the
kitchen: Order Received, Preparing, Ready for Pickup, Completed.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		appCfg = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: ~/.cafeteria)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.cafeteria-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(favoriteCmd)
	rootCmd.AddCommand(orderCmd)
}

// resolveDataDir returns the data directory path following the precedence
// --data-dir flag > config.yaml data_dir > CAFETERIA_DATA_DIR env >
// default $(CWD)/.cafeteria-db.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, appCfg.DataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence --config-dir flag > CAFETERIA_CONFIG_DIR env > DefaultConfigDir().
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
