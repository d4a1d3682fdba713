package netutil

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestShouldRetry(t *testing.T) {
	require.False(t, ShouldRetry(nil))
	require.False(t, ShouldRetry(errors.New("bad request")))
	require.True(t, ShouldRetry(timeoutErr{}))
	require.True(t, ShouldRetry(&net.OpError{Op: "dial", Err: errors.New("refused")}))
	require.True(t, ShouldRetry(&url.Error{Op: "Get", URL: "http://x", Err: timeoutErr{}}))
}

type flakyRT struct {
	fails  int
	calls  int
	bodies []string
}

func (f *flakyRT) RoundTrip(req *http.Request) (*http.Response, error) {
	f.calls++
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		f.bodies = append(f.bodies, string(b))
	}
	if f.calls <= f.fails {
		return nil, timeoutErr{}
	}
	return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
}

func TestRetryTransportReplaysBody(t *testing.T) {
	rt := &flakyRT{fails: 2}
	tr := &retryTransport{base: rt, maxRetries: 2, backoff: time.Millisecond, retryUnsafe: true}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, "http://sheet", strings.NewReader("payload"))
	require.NoError(t, err)

	resp, err := tr.RoundTrip(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 3, rt.calls)
	require.Equal(t, []string{"payload", "payload", "payload"}, rt.bodies)
}

func TestRetryTransportGivesUp(t *testing.T) {
	rt := &flakyRT{fails: 5}
	tr := &retryTransport{base: rt, maxRetries: 1, backoff: time.Millisecond}

	req, err := http.NewRequest(http.MethodGet, "http://sheet", nil)
	require.NoError(t, err)

	_, err = tr.RoundTrip(req)
	require.Error(t, err)
	require.Equal(t, 2, rt.calls)
}

func TestRetryTransportSkipsPostByDefault(t *testing.T) {
	rt := &flakyRT{fails: 1}
	tr := &retryTransport{base: rt, maxRetries: 3, backoff: time.Millisecond}

	req, err := http.NewRequest(http.MethodPost, "http://sheet", strings.NewReader("row"))
	require.NoError(t, err)

	_, err = tr.RoundTrip(req)
	require.Error(t, err)
	require.Equal(t, 1, rt.calls)

	get, err := http.NewRequest(http.MethodGet, "http://sheet", nil)
	require.NoError(t, err)
	resp, err := tr.RoundTrip(get)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 2, rt.calls)
}
