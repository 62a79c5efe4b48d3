package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/anvivatsa1/DreamStay/config"
	"github.com/anvivatsa1/DreamStay/internal/logger"
	"github.com/anvivatsa1/DreamStay/internal/repository"
	"github.com/anvivatsa1/DreamStay/internal/service"
	"github.com/anvivatsa1/DreamStay/pkg/database"
	"github.com/anvivatsa1/DreamStay/pkg/rabbitmq"
	"github.com/spf13/cobra"
)

// app holds the wired engine for one command invocation.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	svc     service.HotelService
	closers []func() error
}

func newApp(ctx context.Context, cfg *config.Config, logOut io.Writer) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: logOut})
	if err != nil {
		return nil, err
	}

	inventory, err := cfg.Inventory()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log}

	store, err := a.openStore()
	if err != nil {
		return nil, err
	}

	var publisher service.EventPublisher
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL, log)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
		}
		a.closers = append(a.closers, func() error { p.Close(); return nil })
		publisher = p
	}

	a.svc = service.NewHotelService(store, publisher, inventory, log)
	if err := a.svc.LoadAll(ctx); err != nil {
		if !errors.Is(err, repository.ErrMalformedRecord) {
			_ = a.Close()
			return nil, err
		}
		// the records that parsed are served; the bad lines are dropped on the next write
		log.Warn("hotel.load.partial", "error", err)
	}
	return a, nil
}

func (a *app) openStore() (repository.Store, error) {
	switch a.cfg.StorageDriver {
	case config.DriverPostgres:
		db, err := database.NewPostgresDB(a.cfg.DSN())
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error { return database.Close(db) })
		a.log.Info("store.opened", "driver", config.DriverPostgres, "host", a.cfg.DBHost, "db", a.cfg.DBName)
		return repository.NewPostgresStore(db), nil
	default:
		a.log.Info("store.opened", "driver", config.DriverFile, "dir", a.cfg.DataDir)
		return repository.NewFileStore(a.cfg.DataDir), nil
	}
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// loadConfig reads the environment and applies the global flag overrides.
func loadConfig(opts *globalOptions) *config.Config {
	cfg := config.Load()
	if opts.dataDir != "" {
		cfg.DataDir = opts.dataDir
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	return cfg
}

// withApp runs fn against a freshly loaded engine and releases it afterwards.
func withApp(cmd *cobra.Command, opts *globalOptions, fn func(a *app) error) error {
	a, err := newApp(cmd.Context(), loadConfig(opts), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()
	return fn(a)
}
