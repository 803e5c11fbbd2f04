// Package server initializes and runs the zkpauth server. It selects the
// storage backend, applies migrations, builds the session coordinator and
// serves it over gRPC until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/zkpauth/internal/logging"
	"github.com/dmitrijs2005/zkpauth/internal/server/config"
	"github.com/dmitrijs2005/zkpauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/zkpauth/internal/server/services"
	"github.com/dmitrijs2005/zkpauth/internal/zkp"

	gs "github.com/dmitrijs2005/zkpauth/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	coordinator *services.Coordinator
}

// openDB is a seam for tests.
var openDB = func(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	if err != nil {
		return nil, err
	}
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	var (
		db  *sql.DB
		rm  repomanager.RepositoryManager
		err error
	)

	switch c.StorageBackend {
	case config.StoragePostgres:
		db, err = openDB(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		rm = repomanager.NewPostgresRepositoryManager()
	case config.StorageMemory:
		rm, err = repomanager.NewMemoryRepositoryManager(c.PendingCapacity)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, fmt.Errorf("migrations: %w", err)
	}

	pp := zkp.DefaultParameters()
	logger.Info(ctx, "Using group parameters", "params", pp.String(), "storage", c.StorageBackend)

	registry := services.NewIdentityRegistry(rm.Identities(db))
	coord := services.NewCoordinator(pp, registry, rm.Pending(db), c.SessionTokenSize, logger)

	return &App{config: c, logger: logger, db: db, coordinator: coord}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.coordinator)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// releases the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "closing database", "error", err)
		}
	}
	app.logger.Info(ctx, "App stopped")
}
