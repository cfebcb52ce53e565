package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	stockpileCommands "github.com/andrescamacho/spaceeconomy-go/internal/application/stockpile/commands"
)

// NewTransferCommand creates the transfer command
func NewTransferCommand() *cobra.Command {
	var (
		from   string
		to     string
		good   string
		amount float64
	)

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move a resource between two stockpiles",
		Long: `Move a resource between two stockpiles.

Either side may be a city name or the id of a city or area. Transfers between a
city and one of its own areas are internal: they are tallied in the city
ledger but never appear as imports or exports.

Examples:
  spaceeconomy transfer --from Alpha --to Beta --good iron_ore --amount 50
  spaceeconomy transfer --from 3f1c2a90-... --to Alpha --good iron_ore --amount 12.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransfer(cmd.Context(), from, to, good, amount)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Source city name or entity id [required]")
	cmd.Flags().StringVar(&to, "to", "", "Destination city name or entity id [required]")
	cmd.Flags().StringVar(&good, "good", "", "Good identifier [required]")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Amount to move [required]")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("good")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func runTransfer(ctx context.Context, from, to, good string, amount float64) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	ctx = s.context(ctx)

	if err := s.loadWorld(ctx); err != nil {
		return err
	}

	fromID, err := resolveStockpileRef(s.world, from)
	if err != nil {
		return err
	}
	toID, err := resolveStockpileRef(s.world, to)
	if err != nil {
		return err
	}

	resp, err := s.mediator.Send(ctx, &stockpileCommands.TransferResourceCommand{
		FromID: fromID,
		ToID:   toID,
		Good:   good,
		Amount: amount,
	})
	if err != nil {
		return fmt.Errorf("transfer refused: %w", err)
	}
	result := resp.(*stockpileCommands.TransferResourceResponse)

	if err := s.save(ctx); err != nil {
		return err
	}

	scope := "external"
	if result.Internal {
		scope = "internal"
	}
	fmt.Printf("✓ Moved %.2f %s from %s to %s (%s, star date %d)\n",
		result.Amount, result.Good, nameOf(s.world, result.FromID), nameOf(s.world, result.ToID), scope, result.StarDate)
	fmt.Printf("  %-24s %.2f\n", nameOf(s.world, result.FromID)+" balance:", result.FromBalance)
	fmt.Printf("  %-24s %.2f\n", nameOf(s.world, result.ToID)+" balance:", result.ToBalance)
	return nil
}
