// Package app wires configuration, storage, the challenge gate and the
// Telegram runtime into a runnable bot.
package app

import (
	"context"
	"fmt"

	coreconfig "github.com/TaliaJudy/mathquiz/core/config"
	coredatabase "github.com/TaliaJudy/mathquiz/core/database"
	"github.com/TaliaJudy/mathquiz/core/logger"
	coretelegram "github.com/TaliaJudy/mathquiz/core/telegram"
	"github.com/TaliaJudy/mathquiz/core/telegram/router"
	"github.com/TaliaJudy/mathquiz/gate"
	"github.com/TaliaJudy/mathquiz/storage"
	"log/slog"
)

// App holds the bot's long-lived components.
type App struct {
	cfg      *coreconfig.Config
	store    storage.Store
	gate     *gate.Gate
	registry *coretelegram.Registry
}

// Bootstrap initializes the logger, opens the configured store and builds the
// gate and handler registry.
func Bootstrap(cfg *coreconfig.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config provided")
	}

	if err := logger.InitLogger(cfg); err != nil {
		return nil, fmt.Errorf("app: logger init failed: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("app: storage init failed: %w", err)
	}

	a := &App{
		cfg:   cfg,
		store: store,
		gate:  gate.New(store),
	}
	a.registry = a.buildRegistry()
	return a, nil
}

func openStore(cfg *coreconfig.Config) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case coreconfig.StorageBackendPostgres:
		if err := coredatabase.RunMigrations(cfg.Storage.Database); err != nil {
			return nil, err
		}
		db, err := coredatabase.Connect(cfg.Storage.Database)
		if err != nil {
			return nil, err
		}
		logger.Info(logger.Background(), "store", "open",
			slog.String("backend", cfg.Storage.Backend),
			slog.String("db", cfg.Storage.Database.Name),
		)
		return storage.NewSQLStore(db), nil
	default:
		logger.Info(logger.Background(), "store", "open",
			slog.String("backend", cfg.Storage.Backend),
			slog.String("path", cfg.Storage.FilePath),
		)
		return storage.NewFileStore(cfg.Storage.FilePath), nil
	}
}

// TelegramRunOptions assembles middlewares and routes for the Telegram runtime.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := a.registry

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Telegram.AdminID,
	})
	routes = append(routes,
		router.TextRoute(reg, router.TextOptions{}),
		router.CallbackRoute(reg, router.CallbackOptions{}),
	)

	return coretelegram.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg, nil),
		Routes:      routes,
		OnStop: func(ctx context.Context, _ coretelegram.Runtime) error {
			return a.Close()
		},
	}, nil
}

// Close releases the store.
func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}
