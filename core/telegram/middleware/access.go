package middleware

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/txbot/core/logger"
	tghelpers "github.com/m3rciful/txbot/core/telegram/helpers"
)

// AccessOptions defines who may reach downstream handlers.
type AccessOptions struct {
	// Allowed reports whether a Telegram user id may use the bot.
	Allowed func(userID int64) bool
	// OnReject runs for rejected updates. Nil drops them silently.
	OnReject tele.HandlerFunc
}

// AllowList drops updates from senders that opts.Allowed rejects. Updates
// without a sender are dropped as well.
func AllowList(opts AccessOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		if opts.Allowed == nil {
			return next
		}
		return func(c tele.Context) error {
			user := c.Sender()
			if user != nil && opts.Allowed(user.ID) {
				return next(c)
			}
			var userID int64
			if user != nil {
				userID = user.ID
			}
			logger.Debug(tghelpers.BuildContext(c), "access", "access.denied",
				slog.String("status", "skip"),
				slog.Int64("user_id", userID),
			)
			if opts.OnReject != nil {
				return opts.OnReject(c)
			}
			return nil
		}
	}
}
