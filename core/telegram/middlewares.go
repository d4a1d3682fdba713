package telegram

import (
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/m3rciful/txbot/core/config"
	"github.com/m3rciful/txbot/core/telegram/middleware"
)

// DefaultMiddlewares builds the shared middleware chain: recover, allow-list
// (when allowed is non-nil), rate limit (when configured), logging and metrics.
func DefaultMiddlewares(cfg *coreconfig.Config, allowed func(int64) bool, onLimited tele.HandlerFunc) []Middleware {
	mws := []Middleware{
		{Name: "recover", Use: middleware.RecoverMiddleware},
		{Name: "logger", Use: middleware.LoggerMiddleware},
	}

	if allowed != nil {
		mws = append(mws, Middleware{
			Name: "access",
			Use:  middleware.AllowList(middleware.AccessOptions{Allowed: allowed}),
		})
	}

	if cfg != nil && cfg.RateLimit.IntervalMS > 0 {
		ex := make(map[string]struct{}, len(cfg.RateLimit.ExcludeUpdates))
		for _, t := range cfg.RateLimit.ExcludeUpdates {
			ex[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
		}
		mws = append(mws, Middleware{
			Name: "rate_limit",
			Use: middleware.RateLimitMiddleware(middleware.RateLimitOptions{
				Interval:  time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond,
				Exclude:   ex,
				OnLimited: onLimited,
			}),
		})
	}

	return append(mws, Middleware{Name: "metrics", Use: middleware.MessageMetricsMiddleware})
}
