package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/spaceeconomy-go/internal/application/common"
	logisticsCommands "github.com/andrescamacho/spaceeconomy-go/internal/application/logistics/commands"
	logisticsQueries "github.com/andrescamacho/spaceeconomy-go/internal/application/logistics/queries"
)

// NewNetworkCommand creates the network command with subcommands
func NewNetworkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "network",
		Short: "Supply network operations",
		Long: `Generate and inspect planetary supply networks.

A supply network is the minimum spanning tree over a planet's cities, with
straight-line distance as the edge weight. Each connection is held by both of
its endpoint cities.

Examples:
  spaceeconomy network generate --planet Terra
  spaceeconomy network generate --planet Terra --rebuild
  spaceeconomy network show --planet Terra --json`,
	}

	cmd.AddCommand(newNetworkGenerateCommand())
	cmd.AddCommand(newNetworkShowCommand())

	return cmd
}

func newNetworkGenerateCommand() *cobra.Command {
	var rebuild bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the supply network of a planet",
		Long: `Generate the supply network of a planet.

Without --rebuild the new connections are added to whatever the cities already
hold, so running it twice duplicates every connection. With --rebuild the
existing connections are dropped first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNetworkGenerate(cmd.Context(), rebuild)
		},
	}

	cmd.Flags().BoolVar(&rebuild, "rebuild", false, "Drop existing connections before generating")

	return cmd
}

func newNetworkShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the supply network of a planet",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNetworkShow(cmd.Context(), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return cmd
}

func runNetworkGenerate(ctx context.Context, rebuild bool) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	ctx = s.context(ctx)

	if err := s.loadWorld(ctx); err != nil {
		return err
	}
	p, err := resolvePlanet(s.world)
	if err != nil {
		return err
	}

	// Connections are persisted by the handler through the network repository
	resp, err := s.mediator.Send(ctx, &logisticsCommands.GenerateSupplyNetworkCommand{
		PlanetID: p.ID().String(),
		Rebuild:  rebuild,
	})
	if err != nil {
		return fmt.Errorf("failed to generate network: %w", err)
	}
	result := resp.(*logisticsCommands.GenerateSupplyNetworkResponse)

	fmt.Printf("Supply network for %s (%d candidate edges)\n\n", result.PlanetName, result.CandidateEdges)
	displayConnections(result.Connections, result.TotalLength)
	return nil
}

func runNetworkShow(ctx context.Context, asJSON bool) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	ctx = s.context(ctx)

	if err := s.loadWorld(ctx); err != nil {
		return err
	}
	p, err := resolvePlanet(s.world)
	if err != nil {
		return err
	}

	resp, err := s.mediator.Send(ctx, &logisticsQueries.GetSupplyNetworkQuery{PlanetID: p.ID().String()})
	if err != nil {
		return fmt.Errorf("failed to query network: %w", err)
	}
	result := resp.(*logisticsQueries.GetSupplyNetworkResponse)

	if asJSON {
		fmt.Println(prettyPrint(result))
		return nil
	}

	fmt.Printf("Supply network for %s (%d cities)\n\n", result.PlanetName, result.Cities)
	displayConnections(result.Connections, result.TotalLength)
	return nil
}

func displayConnections(conns []common.SupplyConnectionDTO, total float64) {
	if len(conns) == 0 {
		fmt.Println("No connections.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FROM\tTO\tLENGTH")
	fmt.Fprintln(w, "----\t--\t------")
	for _, c := range conns {
		fmt.Fprintf(w, "%s\t%s\t%.2f\n", c.NameA, c.NameB, c.Length)
	}
	w.Flush()

	fmt.Printf("\n%d connections, total length %.2f\n", len(conns), total)
}
