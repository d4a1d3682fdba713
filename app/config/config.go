// Package config loads the txbot configuration: the shared core settings plus
// the allow-list, ledger store and dialogue tuning.
package config

import (
	"fmt"
	"strings"
	"time"

	coreconfig "github.com/m3rciful/txbot/core/config"
	coredatabase "github.com/m3rciful/txbot/core/database"
)

// Ledger store drivers.
const (
	DriverSheetDB  = "sheetdb"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

const (
	defaultStoreTimeout  = 10 * time.Second
	defaultSessionTTL    = 30 * time.Minute
	defaultSweepInterval = time.Minute
	defaultHistorySize   = 10
	defaultCurrency      = "₹"
)

// AccessConfig lists the Telegram users allowed to use the bot.
type AccessConfig struct {
	AllowedUserIDs []string `yaml:"allowed_user_ids" envconfig:"ALLOWED_USER_IDS"`
}

// SheetDBConfig points at the SheetDB API of the ledger sheet.
type SheetDBConfig struct {
	URL      string `yaml:"url" envconfig:"SHEETDB_API_URL"`
	Username string `yaml:"username" envconfig:"SHEETDB_USERNAME"`
	Password string `yaml:"password" envconfig:"SHEETDB_PASSWORD"`
}

// StoreConfig selects and configures the ledger backend.
type StoreConfig struct {
	Driver  string        `yaml:"driver" envconfig:"STORE_DRIVER"`
	Timeout time.Duration `yaml:"timeout" envconfig:"STORE_TIMEOUT"`
	SheetDB SheetDBConfig `yaml:"sheetdb"`
}

// DialogueConfig tunes transaction dialogues and the history view.
type DialogueConfig struct {
	// SessionTTL is the idle expiry of an open dialogue. Unset selects 30m,
	// an explicit 0 disables expiry.
	SessionTTL    *time.Duration `yaml:"session_ttl" envconfig:"SESSION_TTL"`
	SweepInterval time.Duration  `yaml:"sweep_interval" envconfig:"SESSION_SWEEP_INTERVAL"`
	HistorySize   int            `yaml:"history_size" envconfig:"HISTORY_SIZE"`
	Currency      string         `yaml:"currency" envconfig:"CURRENCY"`
}

// TTL returns the session idle expiry. Zero means sessions never expire.
func (d DialogueConfig) TTL() time.Duration {
	if d.SessionTTL == nil {
		return defaultSessionTTL
	}
	return *d.SessionTTL
}

// Config is the full txbot configuration.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Access   AccessConfig        `yaml:"access"`
	Store    StoreConfig         `yaml:"store"`
	Database coredatabase.Config `yaml:"database"`
	Dialogue DialogueConfig      `yaml:"dialogue"`
}

// CoreConfig returns the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Config
}

// UsesDatabase reports whether the configured store needs Postgres.
func (c *Config) UsesDatabase() bool {
	return c.Store.Driver == DriverPostgres
}

// Load reads .env, the YAML file at path (skipped when empty) and the
// environment, then validates and applies defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := coreconfig.Decode(path, cfg); err != nil {
		return nil, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if err := coreconfig.Normalize(&c.Config); err != nil {
		return err
	}

	var ids []string
	for _, id := range c.Access.AllowedUserIDs {
		for _, part := range strings.Split(id, ",") {
			if part = strings.TrimSpace(part); part != "" {
				ids = append(ids, part)
			}
		}
	}
	if len(ids) == 0 {
		return coreconfig.Missing("ALLOWED_USER_IDS")
	}
	c.Access.AllowedUserIDs = ids

	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	if c.Store.Driver == "" {
		c.Store.Driver = DriverSheetDB
	}
	switch c.Store.Driver {
	case DriverSheetDB:
		c.Store.SheetDB.URL = strings.TrimSpace(c.Store.SheetDB.URL)
		if c.Store.SheetDB.URL == "" {
			return coreconfig.Missing("SHEETDB_API_URL")
		}
	case DriverPostgres:
		if strings.TrimSpace(c.Database.Host) == "" {
			return coreconfig.Missing("DB_HOST")
		}
		if strings.TrimSpace(c.Database.Name) == "" {
			return coreconfig.Missing("DB_NAME")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("invalid store.driver %q; allowed: sheetdb, postgres, memory", c.Store.Driver)
	}
	if c.Store.Timeout <= 0 {
		c.Store.Timeout = defaultStoreTimeout
	}

	if c.Dialogue.SessionTTL == nil {
		ttl := defaultSessionTTL
		c.Dialogue.SessionTTL = &ttl
	}
	if *c.Dialogue.SessionTTL < 0 {
		return fmt.Errorf("dialogue.session_ttl must be >= 0")
	}
	if c.Dialogue.SweepInterval <= 0 {
		c.Dialogue.SweepInterval = defaultSweepInterval
	}
	if c.Dialogue.HistorySize <= 0 {
		c.Dialogue.HistorySize = defaultHistorySize
	}
	if strings.TrimSpace(c.Dialogue.Currency) == "" {
		c.Dialogue.Currency = defaultCurrency
	}
	return nil
}
