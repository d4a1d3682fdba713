package middleware

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

func newOfflineBot(t *testing.T) *tele.Bot {
	t.Helper()
	b, err := tele.NewBot(tele.Settings{Offline: true})
	require.NoError(t, err)
	return b
}

func messageFrom(b *tele.Bot, updateID int, userID int64) tele.Context {
	return b.NewContext(tele.Update{
		ID: updateID,
		Message: &tele.Message{
			Text:   "hello",
			Sender: &tele.User{ID: userID},
			Chat:   &tele.Chat{ID: userID, Type: tele.ChatPrivate},
		},
	})
}

func countingHandler(n *int) tele.HandlerFunc {
	return func(tele.Context) error {
		*n++
		return nil
	}
}

func TestAllowList(t *testing.T) {
	b := newOfflineBot(t)
	var calls, rejected int
	mw := AllowList(AccessOptions{
		Allowed:  func(id int64) bool { return id == 42 },
		OnReject: countingHandler(&rejected),
	})
	h := mw(countingHandler(&calls))

	require.NoError(t, h(messageFrom(b, 1, 42)))
	require.NoError(t, h(messageFrom(b, 2, 7)))
	require.Equal(t, 1, calls)
	require.Equal(t, 1, rejected)

	calls = 0
	silent := AllowList(AccessOptions{Allowed: func(int64) bool { return false }})(countingHandler(&calls))
	require.NoError(t, silent(messageFrom(b, 3, 42)))
	require.Zero(t, calls)
}

func TestRateLimit(t *testing.T) {
	b := newOfflineBot(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var calls, limited int
	mw := RateLimitMiddleware(RateLimitOptions{
		Interval:  time.Second,
		OnLimited: countingHandler(&limited),
		Now:       func() time.Time { return now },
	})
	h := mw(countingHandler(&calls))

	require.NoError(t, h(messageFrom(b, 1, 5)))
	require.NoError(t, h(messageFrom(b, 2, 5)))
	require.NoError(t, h(messageFrom(b, 3, 6)))
	require.Equal(t, 2, calls)
	require.Equal(t, 1, limited)

	now = now.Add(2 * time.Second)
	require.NoError(t, h(messageFrom(b, 4, 5)))
	require.Equal(t, 3, calls)
}

func TestRateLimitExclude(t *testing.T) {
	b := newOfflineBot(t)
	var calls int
	mw := RateLimitMiddleware(RateLimitOptions{
		Interval: time.Hour,
		Exclude:  map[string]struct{}{"message": {}},
	})
	h := mw(countingHandler(&calls))
	for i := 0; i < 3; i++ {
		require.NoError(t, h(messageFrom(b, i, 5)))
	}
	require.Equal(t, 3, calls)
}

func TestRecoverMiddleware(t *testing.T) {
	b := newOfflineBot(t)
	h := RecoverMiddleware(func(tele.Context) error { panic("boom") })
	err := h(messageFrom(b, 1, 1))
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")

	want := errors.New("plain")
	h = RecoverMiddleware(func(tele.Context) error { return want })
	require.ErrorIs(t, h(messageFrom(b, 2, 1)), want)
}

func TestLoggerMiddlewareSetsRID(t *testing.T) {
	b := newOfflineBot(t)
	var rid string
	h := LoggerMiddleware(func(c tele.Context) error {
		rid, _ = c.Get("rid").(string)
		return nil
	})
	require.NoError(t, h(messageFrom(b, 9, 3)))
	require.Equal(t, "9:3:3", rid)
}

func TestMetricsCounters(t *testing.T) {
	b := newOfflineBot(t)
	var msgs int
	var kb bool
	h := MessageMetricsMiddleware(func(c tele.Context) error {
		msgs, kb = GetCounters(c)
		return nil
	})
	require.NoError(t, h(messageFrom(b, 1, 1)))
	require.Zero(t, msgs)
	require.False(t, kb)
	require.True(t, hasKeyboard([]interface{}{&tele.SendOptions{ReplyMarkup: &tele.ReplyMarkup{}}}))
	require.False(t, hasKeyboard([]interface{}{&tele.SendOptions{}}))
}
