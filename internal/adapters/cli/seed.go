package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/spaceeconomy-go/internal/adapters/scenario"
	logisticsCommands "github.com/andrescamacho/spaceeconomy-go/internal/application/logistics/commands"
	"github.com/andrescamacho/spaceeconomy-go/internal/infrastructure/config"
)

// NewSeedCommand creates the seed command
func NewSeedCommand() *cobra.Command {
	var (
		scenarioPath string
		catalogPath  string
		force        bool
		noNetworks   bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the world from a scenario file",
		Long: `Create the world from a YAML scenario file.

The scenario lists goods, planets, strata, cities with their opening balances,
and the areas each city owns. A shared goods catalog (--catalog, or
economy.catalog_path in the config) is defined before the scenario's own goods.

Unless --no-networks is given, a supply network is generated for every planet
right after seeding.

Examples:
  spaceeconomy seed --scenario scenarios/terra.yaml
  spaceeconomy seed --scenario scenarios/terra.yaml --catalog scenarios/goods.yaml --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), scenarioPath, catalogPath, force, !noNetworks)
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario YAML file [required]")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Goods catalog YAML file (overrides economy.catalog_path)")
	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing world")
	cmd.Flags().BoolVar(&noNetworks, "no-networks", false, "Skip supply network generation")
	cmd.MarkFlagRequired("scenario")

	return cmd
}

func runSeed(ctx context.Context, scenarioPath, catalogPath string, force, networks bool) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	ctx = s.context(ctx)

	existing, err := s.worlds.Load(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to inspect stored world: %w", err)
	}
	if len(existing.Planets()) > 0 && !force {
		return fmt.Errorf("a world is already stored: use --force to replace it")
	}

	sc, err := scenario.Load(scenarioPath)
	if err != nil {
		return err
	}
	if sc.StartDate == 0 {
		sc.StartDate = s.cfg.Simulation.StartDate
	}

	opts := scenario.BuildOptions{WorldOptions: s.worldOptions()}
	if catalogPath == "" {
		catalogPath = s.cfg.Economy.CatalogPath
	}
	if catalogPath != "" {
		catalog, err := scenario.LoadCatalog(catalogPath)
		if err != nil {
			return err
		}
		opts.Catalog = catalog
	}

	w, err := sc.Build(opts)
	if err != nil {
		return fmt.Errorf("failed to build world: %w", err)
	}
	if err := s.attach(w); err != nil {
		return err
	}

	if networks {
		for _, p := range w.Planets() {
			resp, err := s.mediator.Send(ctx, &logisticsCommands.GenerateSupplyNetworkCommand{
				PlanetID: p.ID().String(),
				Rebuild:  true,
			})
			if err != nil {
				return fmt.Errorf("failed to generate network for %s: %w", p.Name(), err)
			}
			network := resp.(*logisticsCommands.GenerateSupplyNetworkResponse)
			fmt.Printf("  %-16s %d connections, total length %.2f\n",
				network.PlanetName, len(network.Connections), network.TotalLength)
		}
	}

	if err := s.save(ctx); err != nil {
		return err
	}

	if handler, err := config.NewUserConfigHandler(); err == nil {
		if err := handler.SetLastScenario(scenarioPath); err != nil {
			s.logger.Warn("failed to record last scenario", "error", err)
		}
	}

	fmt.Printf("✓ Seeded %d planets, %d cities, %d goods at star date %d\n",
		len(w.Planets()), len(w.Cities()), w.Catalog().Len(), w.Clock().Now())
	return nil
}
