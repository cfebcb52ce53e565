package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	planetName string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spaceeconomy",
		Short: "Space Economy - planetary logistics and stockpile simulation",
		Long: `Space Economy simulates the logistics core of a space-empire economy:
minimum-cost supply networks between a planet's cities, and the resource
stockpiles that cities and mines exchange every tick.

The world lives in the configured database. Seed it from a scenario file,
then generate networks, move resources and run the simulation.

Examples:
  spaceeconomy seed --scenario scenarios/terra.yaml
  spaceeconomy network generate --planet Terra
  spaceeconomy network show --planet Terra
  spaceeconomy transfer --from Alpha --to Beta --good iron_ore --amount 50
  spaceeconomy ledger show --city Beta
  spaceeconomy simulate --ticks 90
  spaceeconomy serve`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ., ./configs, /etc/spaceeconomy)")
	rootCmd.PersistentFlags().StringVar(&planetName, "planet", "",
		"Planet name (defaults to the planet set with 'config set-planet')")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewSeedCommand())
	rootCmd.AddCommand(NewNetworkCommand())
	rootCmd.AddCommand(NewTransferCommand())
	rootCmd.AddCommand(NewLedgerCommand())
	rootCmd.AddCommand(NewSimulateCommand())
	rootCmd.AddCommand(NewServeCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
