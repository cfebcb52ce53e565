package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	ledgerQueries "github.com/andrescamacho/spaceeconomy-go/internal/application/ledger/queries"
)

// NewLedgerCommand creates the ledger command with subcommands
func NewLedgerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "City resource ledgers",
		Long: `View city resource ledgers.

A city ledger tallies, per resource, what was added and removed during the
current reporting period, and which counterparts it was imported from or
exported to. Ledgers are cleared at every period end by the simulation.

The journal lists every persisted movement that touched the city.

Examples:
  spaceeconomy ledger show --city Beta
  spaceeconomy ledger show --city Beta --limit 50 --json`,
	}

	cmd.AddCommand(newLedgerShowCommand())

	return cmd
}

func newLedgerShowCommand() *cobra.Command {
	var (
		cityName string
		limit    int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a city's ledger and recent journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedgerShow(cmd.Context(), cityName, limit, asJSON)
		},
	}

	cmd.Flags().StringVar(&cityName, "city", "", "City name [required]")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of journal entries")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	cmd.MarkFlagRequired("city")

	return cmd
}

func runLedgerShow(ctx context.Context, cityName string, limit int, asJSON bool) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	ctx = s.context(ctx)

	if err := s.loadWorld(ctx); err != nil {
		return err
	}

	resp, err := s.mediator.Send(ctx, &ledgerQueries.GetCityLedgerQuery{CityName: cityName, Limit: limit})
	if err != nil {
		return fmt.Errorf("failed to query ledger: %w", err)
	}
	result := resp.(*ledgerQueries.GetCityLedgerResponse)

	if asJSON {
		fmt.Println(prettyPrint(result))
		return nil
	}

	displayCityLedger(s, result)
	return nil
}

func displayCityLedger(s *session, result *ledgerQueries.GetCityLedgerResponse) {
	fmt.Printf("Ledger for %s at star date %d\n\n", result.CityName, result.StarDate)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "GOOD\tBALANCE\tADDED\tREMOVED\tNET\tIMPORTED\tEXPORTED\t")
	for _, line := range result.Lines {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t\n",
			line.Good, line.Balance, line.Added, line.Removed, line.Net, line.Imported, line.Exported)
	}
	w.Flush()

	if len(result.PrimaryProduction) > 0 {
		fmt.Printf("\nPrimary production: %v\n", result.PrimaryProduction)
	}
	if len(result.PeriodProduction) > 0 {
		goods := make([]string, 0, len(result.PeriodProduction))
		for g := range result.PeriodProduction {
			goods = append(goods, g)
		}
		sort.Strings(goods)

		fmt.Println("\nProduction this period:")
		for _, g := range goods {
			fmt.Printf("  %-16s %.2f\n", g, result.PeriodProduction[g])
		}
	}

	if len(result.Entries) == 0 {
		return
	}

	fmt.Println("\nJournal:")
	jw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(jw, "DATE\tDIRECTION\tGOOD\tAMOUNT\tCOUNTERPART")
	for _, e := range result.Entries {
		fmt.Fprintf(jw, "%d\t%s\t%s\t%.2f\t%s\n",
			e.StarDate, e.Direction, e.Good, e.Amount, nameOf(s.world, e.Counterpart))
	}
	jw.Flush()
}
