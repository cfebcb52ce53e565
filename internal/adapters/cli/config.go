package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/spaceeconomy-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage Space Economy configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (SE_* prefix, e.g. SE_DATABASE_TYPE)
2. Config file (config.yaml)
3. Default values

User preferences (default planet) are stored in ~/.spaceeconomy/config.json

Examples:
  spaceeconomy config show
  spaceeconomy config set-planet Terra
  spaceeconomy config clear`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetPlanetCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load system config
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.LoadConfigOrDefault(configPath)
			}

			// Load user config
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Printf("Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Println("Space Economy Configuration")
			fmt.Println("===========================")

			fmt.Println("User Preferences:")
			fmt.Printf("  Config file:      %s\n", userConfigHandler.GetConfigPath())
			fmt.Printf("  Default Planet:   %s\n", orUnset(userCfg.DefaultPlanet))
			fmt.Printf("  Last Scenario:    %s\n", orUnset(userCfg.LastScenario))

			fmt.Println("\nDatabase:")
			fmt.Printf("  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.Type == "sqlite":
				fmt.Printf("  Path:             %s\n", cfg.Database.Path)
			case cfg.Database.URL != "":
				fmt.Printf("  URL:              %s\n", maskPassword(cfg.Database.URL))
			default:
				fmt.Printf("  Host:             %s\n", cfg.Database.Host)
				fmt.Printf("  Port:             %d\n", cfg.Database.Port)
				fmt.Printf("  Database:         %s\n", cfg.Database.Name)
				fmt.Printf("  User:             %s\n", cfg.Database.User)
				fmt.Printf("  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)
			}

			fmt.Println("\nSimulation:")
			if cfg.Simulation.TickRate > 0 {
				fmt.Printf("  Tick Rate:        %.2f ticks/s\n", cfg.Simulation.TickRate)
			} else {
				fmt.Printf("  Tick Rate:        unpaced\n")
			}
			fmt.Printf("  Period Length:    %d ticks\n", cfg.Simulation.TicksPerPeriod)
			fmt.Printf("  Start Date:       %d\n", cfg.Simulation.StartDate)
			fmt.Printf("  PID File:         %s\n", cfg.Simulation.PIDFile)

			fmt.Println("\nEconomy:")
			fmt.Printf("  Legacy Debit:     %t\n", cfg.Economy.LegacyCityDebit)
			fmt.Printf("  Goods Catalog:    %s\n", orUnset(cfg.Economy.CatalogPath))

			fmt.Println("\nMetrics:")
			fmt.Printf("  Enabled:          %t\n", cfg.Metrics.Enabled)
			fmt.Printf("  Endpoint:         %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:            %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:           %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}

	return cmd
}

// newConfigSetPlanetCommand creates the config set-planet subcommand
func newConfigSetPlanetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-planet <name>",
		Short: "Set default planet",
		Long: `Set the planet used by network commands when --planet is omitted.

Example:
  spaceeconomy config set-planet Terra`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.SetDefaultPlanet(args[0]); err != nil {
				return fmt.Errorf("failed to set default planet: %w", err)
			}

			fmt.Printf("✓ Default planet set to %s\n", args[0])
			return nil
		},
	}

	return cmd
}

// newConfigClearCommand creates the config clear subcommand
func newConfigClearCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear user preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.ClearDefaults(); err != nil {
				return fmt.Errorf("failed to clear user preferences: %w", err)
			}

			fmt.Println("✓ User preferences cleared")
			return nil
		},
	}

	return cmd
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

// maskPassword hides the password of a connection URL for display
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
