package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"000002_b.up.sql", "000001_a.up.sql", "000001_a.down.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	require.Equal(t, []string{"000001_a.up.sql", "000002_b.up.sql"}, listMigrationFiles(dir))
}

func TestCountApplied(t *testing.T) {
	files := []string{"000001_a.up.sql", "000002_b.up.sql", "000003_c.up.sql"}
	require.Equal(t, 2, countApplied(files, 1, 3))
	require.Equal(t, 0, countApplied(files, 3, 3))
}

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "u", Password: "p", Name: "ledger"}
	require.Equal(t, "user=u password=p host=db port=5432 dbname=ledger sslmode=disable", cfg.DSN())
	require.Equal(t, "postgres://u:p@db:5432/ledger?sslmode=disable", cfg.URL())
}
