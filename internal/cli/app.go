// Package cli wires the cache engine to its adapters for command-line use.
package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bnema/hoard/internal/application/port"
	"github.com/bnema/hoard/internal/cache"
	"github.com/bnema/hoard/internal/config"
	"github.com/bnema/hoard/internal/infrastructure/audit"
	"github.com/bnema/hoard/internal/infrastructure/memstore"
	"github.com/bnema/hoard/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/hoard/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config *config.Config
	Store  port.EntityStore
	Engine *cache.Engine

	db  *sql.DB
	ctx context.Context
}

// NewApp creates a CLI application with all dependencies. With an empty
// database path the backing store is in-memory, which only makes sense for
// demos; persistent use should configure database.path.
func NewApp(configFile string) (*App, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	logger := logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format)
	ctx := logging.WithContext(context.Background(), logger)

	app := &App{Config: cfg, ctx: ctx}

	if cfg.Database.Path != "" {
		db, derr := sqlite.InitDB(cfg.Database.Path)
		if derr != nil {
			return nil, fmt.Errorf("open backing store: %w", derr)
		}
		app.db = db
		app.Store = sqlite.NewEntityStore(db)
	} else {
		app.Store = memstore.New()
	}

	opts := []cache.Option{cache.WithAuditSink(audit.NewZerologSink(logger))}
	if cfg.Cache.PurgeStoreOnRemoveAll {
		opts = append(opts, cache.WithStorePurge())
	}

	engine, err := cache.New(cfg.Cache.MaxCapacity, app.Store, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize cache engine: %w", err)
	}
	app.Engine = engine

	return app, nil
}

// Context returns the app context carrying the configured logger.
func (a *App) Context() context.Context {
	return a.ctx
}

// Close releases the backing store connection.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
