package telegram

import (
	"testing"

	"github.com/stretchr/testify/require"

	coreconfig "github.com/m3rciful/txbot/core/config"
)

func middlewareNames(mws []Middleware) []string {
	names := make([]string, 0, len(mws))
	for _, mw := range mws {
		names = append(names, mw.Name)
	}
	return names
}

func TestDefaultMiddlewares(t *testing.T) {
	cfg := &coreconfig.Config{}
	require.Equal(t, []string{"recover", "logger", "metrics"}, middlewareNames(DefaultMiddlewares(cfg, nil, nil)))

	cfg.RateLimit.IntervalMS = 500
	allowed := func(int64) bool { return true }
	require.Equal(t,
		[]string{"recover", "logger", "access", "rate_limit", "metrics"},
		middlewareNames(DefaultMiddlewares(cfg, allowed, nil)),
	)
}
