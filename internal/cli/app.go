package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"progress-tracker/internal/api"
	"progress-tracker/internal/config"
	"progress-tracker/internal/difficulty"
	"progress-tracker/internal/logging"
	"progress-tracker/internal/progress"
	"progress-tracker/internal/repository"
	"progress-tracker/internal/repository/postgres"
	"progress-tracker/internal/repository/sqlite"
	"progress-tracker/internal/services"
)

// App holds what every command handler needs
type App struct {
	api    api.API
	config *config.Config
	logger *zap.Logger
	out    io.Writer
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(apiInstance api.API, cfg *config.Config, logger *zap.Logger, out io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if out == nil {
		out = os.Stdout
	}
	return &App{api: apiInstance, config: cfg, logger: logger, out: out}
}

// locale is the configured label locale, matched against the supported ones
func (a *App) locale() language.Tag {
	tag, err := language.Parse(a.config.Application.Locale)
	if err != nil {
		return difficulty.DefaultLocale
	}
	return tag
}

// Runtime is a fully wired API plus the resources it owns
type Runtime struct {
	API    api.API
	Logger *zap.Logger
	Close  func() error
}

// Builder creates a Runtime from loaded configuration
type Builder func(ctx context.Context, cfg *config.Config) (*Runtime, error)

// NewRuntime opens the configured store and wires services on top of it
func NewRuntime(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	store, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	strategy, err := progress.ParseStrategy(cfg.Progress.Strategy)
	if err != nil {
		store.Close()
		return nil, err
	}
	calc := progress.NewCalculator(progress.NewSource(strategy, store), strategy, logger)
	container := services.NewServiceContainer(store, calc, cfg, logger)

	return &Runtime{
		API:    api.New(container, store, cfg.Server.DefaultPerPage),
		Logger: logger,
		Close: func() error {
			err := store.Close()
			_ = logger.Sync()
			return err
		},
	}, nil
}

// OpenStore connects to the backend named by cfg.Database.Driver
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Store, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		repo, err := postgres.New(ctx, cfg.Database.DSN, postgres.Options{
			Logger:             logger,
			QueryTimeout:       cfg.GetQueryTimeout(),
			WriteTimeout:       cfg.GetWriteTimeout(),
			SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil

	default:
		if err := os.MkdirAll(cfg.Database.Dir, cfg.Database.DirPermissions.Perm()); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		repo, err := sqlite.New(cfg.GetDatabasePath(),
			sqlite.WithLogger(logger),
			sqlite.WithTimeouts(cfg.GetQueryTimeout(), cfg.GetWriteTimeout()),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil
	}
}
