package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	coreconfig "github.com/m3rciful/txbot/core/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func requireMissing(t *testing.T, err error, key string) {
	t.Helper()
	var missing *coreconfig.MissingError
	require.True(t, errors.As(err, &missing), "got %v", err)
	require.Equal(t, key, missing.Key)
}

func TestLoadFromYAML(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: yaml-token
access:
  allowed_user_ids: ["1001,1003", " 1002 "]
store:
  sheetdb:
    url: https://sheetdb.io/api/v1/abc
dialogue:
  session_ttl: 5m
  history_size: 3
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "yaml-token", cfg.CoreConfig().Telegram.Token)
	require.Equal(t, coreconfig.RunModeLongpoll, cfg.Telegram.RunMode)
	require.Equal(t, []string{"1001", "1003", "1002"}, cfg.Access.AllowedUserIDs)
	require.Equal(t, DriverSheetDB, cfg.Store.Driver)
	require.Equal(t, 10*time.Second, cfg.Store.Timeout)
	require.Equal(t, 5*time.Minute, cfg.Dialogue.TTL())
	require.Equal(t, time.Minute, cfg.Dialogue.SweepInterval)
	require.Equal(t, 3, cfg.Dialogue.HistorySize)
	require.Equal(t, "₹", cfg.Dialogue.Currency)
	require.False(t, cfg.UsesDatabase())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("ALLOWED_USER_IDS", "11, 22")
	t.Setenv("SHEETDB_API_URL", "https://sheetdb.io/api/v1/env")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "env-token", cfg.Telegram.Token)
	require.Equal(t, []string{"11", "22"}, cfg.Access.AllowedUserIDs)
	require.Equal(t, "https://sheetdb.io/api/v1/env", cfg.Store.SheetDB.URL)
	require.Equal(t, 30*time.Minute, cfg.Dialogue.TTL())
	require.Equal(t, 10, cfg.Dialogue.HistorySize)
}

func TestLoadMissingValues(t *testing.T) {
	_, err := Load(writeConfig(t, "telegram:\n  token: t\n"))
	requireMissing(t, err, "ALLOWED_USER_IDS")

	_, err = Load(writeConfig(t, "telegram:\n  token: t\naccess:\n  allowed_user_ids: [\"1\"]\n"))
	requireMissing(t, err, "SHEETDB_API_URL")

	_, err = Load(writeConfig(t, "access:\n  allowed_user_ids: [\"1\"]\n"))
	requireMissing(t, err, "TELEGRAM_BOT_TOKEN")
}

func TestLoadPostgresDriver(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: t
access:
  allowed_user_ids: ["1"]
store:
  driver: Postgres
`)
	_, err := Load(path)
	requireMissing(t, err, "DB_HOST")

	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_NAME", "txbot")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.True(t, cfg.UsesDatabase())
	require.Equal(t, "localhost", cfg.Database.Host)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	path := writeConfig(t, "telegram:\n  token: t\naccess:\n  allowed_user_ids: [\"1\"]\nstore:\n  driver: redis\n")
	_, err := Load(path)
	require.ErrorContains(t, err, "store.driver")
}

func TestLoadSessionTTLZeroDisablesExpiry(t *testing.T) {
	base := "telegram:\n  token: t\naccess:\n  allowed_user_ids: [\"1\"]\nstore:\n  driver: memory\n"

	cfg, err := Load(writeConfig(t, base+"dialogue:\n  session_ttl: 0s\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.Dialogue.SessionTTL)
	require.Zero(t, cfg.Dialogue.TTL())

	cfg, err = Load(writeConfig(t, base))
	require.NoError(t, err)
	require.Equal(t, 30*time.Minute, cfg.Dialogue.TTL())

	t.Setenv("SESSION_TTL", "0")
	cfg, err = Load(writeConfig(t, base))
	require.NoError(t, err)
	require.Zero(t, cfg.Dialogue.TTL())

	t.Setenv("SESSION_TTL", "-1m")
	_, err = Load(writeConfig(t, base))
	require.ErrorContains(t, err, "session_ttl")
}
