package telegram

import (
	"net/http"
	"time"

	"github.com/m3rciful/txbot/core/telegram/netutil"
)

// BuildHTTPClient returns an HTTP client tuned for Telegram API calls.
// The client timeout must exceed the long-poll timeout. Every Bot API method
// is a POST, so POSTs are retried too.
func BuildHTTPClient(longPoll time.Duration) *http.Client {
	return netutil.NewClient(netutil.ClientOptions{
		Timeout:         longPoll + 20*time.Second,
		ResponseTimeout: longPoll + 5*time.Second,
		Retries:         3,
		Backoff:         2 * time.Second,
		RetryUnsafe:     true,
	})
}
