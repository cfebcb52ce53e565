package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"gorm.io/gorm"

	"github.com/andrescamacho/spaceeconomy-go/internal/adapters/persistence"
	"github.com/andrescamacho/spaceeconomy-go/internal/application/common"
	"github.com/andrescamacho/spaceeconomy-go/internal/application/mediator"
	"github.com/andrescamacho/spaceeconomy-go/internal/application/setup"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/city"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/world"
	"github.com/andrescamacho/spaceeconomy-go/internal/infrastructure/config"
	"github.com/andrescamacho/spaceeconomy-go/internal/infrastructure/database"
	"github.com/andrescamacho/spaceeconomy-go/internal/infrastructure/logging"
)

// session bundles what every world-touching command needs: configuration, logger,
// database, repositories and, once loaded, the world and its mediator
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *gorm.DB

	worlds   *persistence.GormWorldRepository
	flows    *persistence.GormResourceFlowRepository
	networks *persistence.GormSupplyNetworkRepository

	world    *world.World
	registry *setup.HandlerRegistry
	mediator common.Mediator

	logCloser io.Closer
}

// openSession loads configuration, installs the logger and connects to the database
func openSession() (*session, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, logCloser, err := logging.Setup(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		database.Close(db)
		logCloser.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &session{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		worlds:    persistence.NewGormWorldRepository(db),
		flows:     persistence.NewGormResourceFlowRepository(db),
		networks:  persistence.NewGormSupplyNetworkRepository(db),
		logCloser: logCloser,
	}, nil
}

// worldOptions turns economy settings into world options
func (s *session) worldOptions() []world.Option {
	var opts []world.Option
	if s.cfg.Economy.LegacyCityDebit {
		opts = append(opts, world.WithCityOptions(city.WithLegacyDebit()))
	}
	return opts
}

// loadWorld restores the stored world and builds its mediator with the given middlewares
func (s *session) loadWorld(ctx context.Context, middlewares ...mediator.Middleware) error {
	w, err := s.worlds.Load(ctx, shared.NewGameClock(0), s.worldOptions()...)
	if err != nil {
		return fmt.Errorf("failed to load world: %w", err)
	}
	if len(w.Planets()) == 0 {
		return fmt.Errorf("world is empty: run 'spaceeconomy seed --scenario <file>' first")
	}
	return s.attach(w, middlewares...)
}

// attach makes w the session world
func (s *session) attach(w *world.World, middlewares ...mediator.Middleware) error {
	registry := setup.NewHandlerRegistry(w, s.flows, s.networks)
	med, err := registry.CreateConfiguredMediator(middlewares...)
	if err != nil {
		return fmt.Errorf("failed to configure mediator: %w", err)
	}

	s.world = w
	s.registry = registry
	s.mediator = med
	return nil
}

// context carries the session logger to handlers
func (s *session) context(ctx context.Context) context.Context {
	return common.WithLogger(ctx, logging.NewOperationLogger(s.logger))
}

// save writes the whole world back
func (s *session) save(ctx context.Context) error {
	if err := s.worlds.Save(ctx, s.world); err != nil {
		return fmt.Errorf("failed to save world: %w", err)
	}
	return nil
}

func (s *session) Close() {
	if err := database.Close(s.db); err != nil {
		s.logger.Warn("failed to close database", "error", err)
	}
	if s.logCloser != nil {
		s.logCloser.Close()
	}
}
