package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/txbot/app/config"
	"github.com/m3rciful/txbot/app/dialogue"
	"github.com/m3rciful/txbot/app/ledger"
	"github.com/m3rciful/txbot/app/ledger/sheetdb"
	"github.com/m3rciful/txbot/core/bootstrap"
	coreconfig "github.com/m3rciful/txbot/core/config"
	tg "github.com/m3rciful/txbot/core/telegram"
)

func testConfig(driver string) *config.Config {
	cfg := &config.Config{
		Config: coreconfig.Config{
			Telegram: coreconfig.TelegramConfig{Token: "1:test", RunMode: coreconfig.RunModeLongpoll},
		},
	}
	cfg.Access.AllowedUserIDs = []string{"1001"}
	cfg.Store.Driver = driver
	cfg.Store.SheetDB.URL = "https://sheetdb.example/api/v1/x"
	cfg.Store.Timeout = time.Second
	ttl := time.Minute
	cfg.Dialogue.SessionTTL = &ttl
	cfg.Dialogue.SweepInterval = 10 * time.Millisecond
	cfg.Dialogue.HistorySize = 10
	return cfg
}

func TestOpenStore(t *testing.T) {
	store, err := openStore(testConfig(config.DriverMemory), &bootstrap.Result{})
	require.NoError(t, err)
	require.IsType(t, &ledger.MemoryStore{}, store)

	store, err = openStore(testConfig(config.DriverSheetDB), &bootstrap.Result{})
	require.NoError(t, err)
	require.IsType(t, &sheetdb.Client{}, store)

	_, err = openStore(testConfig(config.DriverPostgres), &bootstrap.Result{})
	require.Error(t, err)

	_, err = openStore(testConfig("redis"), &bootstrap.Result{})
	require.Error(t, err)
}

func TestTelegramRunOptions(t *testing.T) {
	a, err := newApp(testConfig(config.DriverMemory), &bootstrap.Result{})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, a.Close()) })

	opts, err := a.TelegramRunOptions()
	require.NoError(t, err)
	require.Same(t, a.registry, opts.Registry)

	var mws []string
	for _, mw := range opts.Middlewares {
		mws = append(mws, mw.Name)
	}
	require.Equal(t, []string{"recover", "logger", "access", "metrics"}, mws)

	endpoints := map[any]bool{}
	for _, r := range opts.Routes {
		endpoints[r.Endpoint] = true
	}
	for _, want := range []any{"/start", "/help", "/invest", "/return", "/summary", "/history", "/cancel", tele.OnCallback, tele.OnText} {
		require.True(t, endpoints[want], "missing route %v", want)
	}

	a.sessions.Begin(1001, dialogue.Session{ActorID: 1001, Type: ledger.Invest, Step: dialogue.AwaitingAmount})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, opts.OnStart(ctx, tg.Runtime{}))
	require.True(t, a.sessions.InProgress(1001))
}
