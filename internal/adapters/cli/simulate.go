package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/spaceeconomy-go/internal/application/simulation"
)

// NewSimulateCommand creates the simulate command
func NewSimulateCommand() *cobra.Command {
	var (
		ticks    int
		tickRate float64
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Advance the world by a number of ticks",
		Long: `Advance the world by a number of ticks and save it.

Every tick advances the star date by one and moves each mine's accrued output
into its owning city. Every simulation.ticks_per_period ticks the city ledgers
are logged and cleared.

Interrupting with Ctrl+C stops after the current tick and still saves.

Examples:
  spaceeconomy simulate --ticks 30
  spaceeconomy simulate --ticks 300 --rate 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd.Context(), ticks, tickRate, cmd.Flags().Changed("rate"))
		},
	}

	cmd.Flags().IntVar(&ticks, "ticks", 0, "Number of ticks to run [required]")
	cmd.Flags().Float64Var(&tickRate, "rate", 0, "Ticks per second (overrides simulation.tick_rate; 0 is unpaced)")
	cmd.MarkFlagRequired("ticks")

	return cmd
}

func runSimulate(ctx context.Context, ticks int, tickRate float64, rateSet bool) error {
	if ticks <= 0 {
		return fmt.Errorf("--ticks must be positive")
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = s.context(ctx)

	if err := s.loadWorld(ctx); err != nil {
		return err
	}

	cfg := simulation.Config{
		TickRate:       s.cfg.Simulation.TickRate,
		TicksPerPeriod: s.cfg.Simulation.TicksPerPeriod,
	}
	if rateSet {
		cfg.TickRate = tickRate
	}

	runner := simulation.NewRunner(s.mediator, s.world, cfg)
	summary, runErr := runner.Run(ctx, ticks)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}

	// Save with a fresh context so an interrupt does not abort the write
	if err := s.save(context.Background()); err != nil {
		return err
	}

	displayRunSummary(summary)
	if runErr != nil {
		fmt.Println("(interrupted)")
	}
	return nil
}

func displayRunSummary(summary *simulation.RunSummary) {
	fmt.Printf("✓ Ran %d ticks, star date now %d\n", summary.Ticks, summary.FinalStarDate)
	fmt.Printf("  Extractions:     %d (%d failed)\n", summary.Extractions, summary.Failures)
	fmt.Printf("  Periods closed:  %d\n", summary.PeriodsClosed)

	if len(summary.Extracted) == 0 {
		return
	}
	goods := make([]string, 0, len(summary.Extracted))
	for g := range summary.Extracted {
		goods = append(goods, g)
	}
	sort.Strings(goods)

	fmt.Println("  Extracted:")
	for _, g := range goods {
		fmt.Printf("    %-16s %.2f\n", g, summary.Extracted[g])
	}
}
