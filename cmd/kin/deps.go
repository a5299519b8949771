package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ersonp/kin-core/internal/application/handlers"
	"github.com/ersonp/kin-core/internal/domain/services"
	"github.com/ersonp/kin-core/internal/infrastructure/config"
	"github.com/ersonp/kin-core/internal/infrastructure/logger"
	"github.com/ersonp/kin-core/internal/infrastructure/relationaldb/sqlite"
)

// Deps holds high-level dependencies for commands.
type Deps struct {
	Config *config.Config
	Log    *zap.Logger
	API    *handlers.API
}

// withDeps loads config, builds the repository and services, then calls the
// provided function. It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync()

	repo, err := sqlite.NewRepository(cfg.SQLite)
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	locationSync := services.NewLocationSyncService(repo, log)

	deps := &Deps{
		Config: cfg,
		Log:    log,
		API: handlers.NewAPI(
			services.NewFamilyService(repo, log),
			services.NewPersonService(repo, locationSync, log),
			services.NewLocationService(repo, log),
			services.NewRelationshipService(repo, log),
			log,
		),
	}

	return fn(deps)
}
