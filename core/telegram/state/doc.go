// Package state keeps short-lived per-user conversation sessions for Telegram
// bots. Sessions are keyed by user id, expire after an idle TTL and can be
// taken atomically so a session is consumed at most once.
package state
