// Package app is the txbot composition root. It builds the ledger store,
// dialogue and report services and hands the Telegram runtime its routes.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/m3rciful/txbot/app/access"
	"github.com/m3rciful/txbot/app/bot"
	"github.com/m3rciful/txbot/app/config"
	"github.com/m3rciful/txbot/app/dialogue"
	"github.com/m3rciful/txbot/app/ledger"
	"github.com/m3rciful/txbot/app/ledger/postgres"
	"github.com/m3rciful/txbot/app/ledger/sheetdb"
	"github.com/m3rciful/txbot/app/report"
	"github.com/m3rciful/txbot/core/bootstrap"
	"github.com/m3rciful/txbot/core/logger"
	tg "github.com/m3rciful/txbot/core/telegram"
	"github.com/m3rciful/txbot/core/telegram/router"
	"github.com/m3rciful/txbot/core/telegram/state"
)

// App holds the wired txbot services.
type App struct {
	cfg      *config.Config
	infra    *bootstrap.Result
	store    ledger.Store
	gate     *access.Gate
	sessions *state.Manager[dialogue.Session]
	registry *tg.Registry
	adapter  *bot.Adapter
}

// Bootstrap initializes logging, the database when the postgres driver is
// selected, and the application services.
func Bootstrap(cfg *config.Config) (*App, error) {
	opts := bootstrap.Options{Config: cfg.CoreConfig()}
	if cfg.UsesDatabase() {
		db := cfg.Database
		opts.Database = &db
	}
	infra, err := bootstrap.Run(opts)
	if err != nil {
		return nil, err
	}
	a, err := newApp(cfg, infra)
	if err != nil {
		_ = infra.Close()
		return nil, err
	}
	return a, nil
}

func newApp(cfg *config.Config, infra *bootstrap.Result) (*App, error) {
	store, err := openStore(cfg, infra)
	if err != nil {
		return nil, err
	}

	sessions := state.NewManager[dialogue.Session](state.Options{TTL: cfg.Dialogue.TTL()})
	machine := dialogue.New(dialogue.Options{
		Store:    store,
		Sessions: sessions,
		Currency: cfg.Dialogue.Currency,
	})
	gate := access.NewGate(cfg.Access.AllowedUserIDs)
	svc := bot.New(bot.Options{
		Gate:     gate,
		Dialogue: machine,
		Report:   report.NewService(store, cfg.Dialogue.HistorySize),
		Currency: cfg.Dialogue.Currency,
	})

	adapter := bot.NewAdapter(svc)
	reg := tg.NewRegistry()
	if err := adapter.Register(reg); err != nil {
		return nil, err
	}

	logger.L.Info("app configured",
		slog.String("component", "app"),
		slog.String("event", "configure"),
		slog.String("store", cfg.Store.Driver),
		slog.Int("allowed_users", gate.Size()),
		slog.Duration("session_ttl", cfg.Dialogue.TTL()),
	)

	return &App{
		cfg:      cfg,
		infra:    infra,
		store:    store,
		gate:     gate,
		sessions: sessions,
		registry: reg,
		adapter:  adapter,
	}, nil
}

func openStore(cfg *config.Config, infra *bootstrap.Result) (ledger.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverSheetDB:
		return sheetdb.New(sheetdb.Options{
			URL:      cfg.Store.SheetDB.URL,
			Username: cfg.Store.SheetDB.Username,
			Password: cfg.Store.SheetDB.Password,
			Timeout:  cfg.Store.Timeout,
		})
	case config.DriverPostgres:
		if infra == nil || infra.DB == nil {
			return nil, fmt.Errorf("app: postgres store requires a database connection")
		}
		return postgres.New(infra.DB, cfg.Store.Timeout), nil
	case config.DriverMemory:
		return ledger.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("app: unknown store driver %q", cfg.Store.Driver)
	}
}

// TelegramRunOptions returns the middleware chain, routes and lifecycle hooks.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	core := a.cfg.CoreConfig()

	routes := router.CommandRoutes(a.registry)
	routes = append(routes,
		router.CallbackRoute(a.registry),
		router.TextRoute(a.adapter, a.registry, router.TextOptions{}),
	)

	return tg.RunOptions{
		Config:      core,
		Registry:    a.registry,
		Middlewares: tg.DefaultMiddlewares(core, a.gate.Allowed, nil),
		Routes:      routes,
		OnStart: func(ctx context.Context, _ tg.Runtime) error {
			go a.sessions.Run(ctx, a.cfg.Dialogue.SweepInterval)
			return nil
		},
	}, nil
}

// Close releases the database connection, if any.
func (a *App) Close() error {
	return a.infra.Close()
}
