package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/spaceeconomy-go/internal/adapters/metrics"
	"github.com/andrescamacho/spaceeconomy-go/internal/application/mediator"
	"github.com/andrescamacho/spaceeconomy-go/internal/application/simulation"
	"github.com/andrescamacho/spaceeconomy-go/internal/infrastructure/pidfile"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the simulation continuously and expose metrics",
		Long: `Run the simulation until interrupted.

The world is saved at the end of every reporting period and on shutdown.
When metrics.enabled is set, Prometheus metrics are served on
metrics.host:metrics.port at metrics.path, including per-city balances
refreshed every simulation.balance_poll_seconds.

Only one server may run against a world; simulation.pid_file guards this.

Example:
  SE_METRICS_ENABLED=true spaceeconomy serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	return cmd
}

func runServe(ctx context.Context) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	lock := pidfile.New(s.cfg.Simulation.PIDFile)
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			s.logger.Warn("failed to release PID file", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = s.context(ctx)

	var middlewares []mediator.Middleware
	var economy *metrics.EconomyMetricsCollector
	var server *metrics.Server

	if s.cfg.Metrics.Enabled {
		metrics.InitRegistry()

		commands := metrics.NewCommandMetricsCollector()
		if err := commands.Register(); err != nil {
			return fmt.Errorf("failed to register command metrics: %w", err)
		}
		logistics := metrics.NewLogisticsMetricsCollector()
		if err := logistics.Register(); err != nil {
			return fmt.Errorf("failed to register logistics metrics: %w", err)
		}
		metrics.SetGlobalLogisticsCollector(logistics)
		middlewares = append(middlewares, metrics.PrometheusMiddleware(commands))
	}

	if err := s.loadWorld(ctx, middlewares...); err != nil {
		return err
	}

	if s.cfg.Metrics.Enabled {
		economy = metrics.NewEconomyMetricsCollector(s.mediator)
		if err := economy.Register(); err != nil {
			return fmt.Errorf("failed to register economy metrics: %w", err)
		}
		metrics.SetGlobalEconomyCollector(economy)
		economy.Start(ctx, time.Duration(s.cfg.Simulation.BalancePollSeconds)*time.Second)
		defer economy.Stop()

		server, err = metrics.NewServer(s.cfg.Metrics)
		if err != nil {
			return err
		}
		server.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				s.logger.Warn("failed to stop metrics server", "error", err)
			}
		}()
		s.logger.Info("metrics endpoint listening", "addr", server.Addr(), "path", s.cfg.Metrics.Path)
	}

	cfg := simulation.Config{
		TickRate:       s.cfg.Simulation.TickRate,
		TicksPerPeriod: s.cfg.Simulation.TicksPerPeriod,
	}
	batch := cfg.TicksPerPeriod
	if batch <= 0 {
		batch = 30
	}

	runner := simulation.NewRunner(s.mediator, s.world, cfg)
	s.logger.Info("simulation started",
		"star_date", int64(s.world.Clock().Now()),
		"tick_rate", cfg.TickRate,
		"ticks_per_period", cfg.TicksPerPeriod,
	)
	fmt.Println("Press Ctrl+C to stop")

	for {
		summary, runErr := runner.Run(ctx, batch)
		if err := s.save(context.Background()); err != nil {
			return err
		}
		s.logger.Info("world saved",
			"star_date", summary.FinalStarDate,
			"extractions", summary.Extractions,
			"failures", summary.Failures,
		)

		if runErr != nil {
			if errors.Is(runErr, context.Canceled) {
				fmt.Printf("\nStopped at star date %d after %d ticks\n", s.world.Clock().Now(), runner.Ticks())
				return nil
			}
			return runErr
		}
	}
}
