// Package sheetdb stores ledger records in a Google Sheet through the SheetDB
// REST API.
package sheetdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/m3rciful/txbot/app/ledger"
	"github.com/m3rciful/txbot/core/logger"
	"github.com/m3rciful/txbot/core/telegram/netutil"
)

// Options configures a Client.
type Options struct {
	URL      string
	Username string
	Password string
	// Timeout bounds each API call. Zero selects 10s.
	Timeout time.Duration
	// HTTPClient overrides the retrying default client.
	HTTPClient *http.Client
}

// Client is a ledger.Store backed by one SheetDB endpoint.
type Client struct {
	url      string
	username string
	password string
	timeout  time.Duration
	http     *http.Client
}

var _ ledger.Store = (*Client)(nil)

// HTTPStatusError reports a non-2xx SheetDB response.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("sheetdb: unexpected status %d: %s", e.StatusCode, e.Body)
}

// New validates opts and returns a Client.
func New(opts Options) (*Client, error) {
	url := strings.TrimSpace(opts.URL)
	if url == "" {
		return nil, fmt.Errorf("sheetdb: empty api url")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	hc := opts.HTTPClient
	if hc == nil {
		// Only List is retried. An append is never replayed.
		hc = netutil.NewClient(netutil.ClientOptions{
			Timeout:         opts.Timeout,
			ResponseTimeout: opts.Timeout,
			Retries:         2,
			Backoff:         500 * time.Millisecond,
		})
	}
	return &Client{
		url:      url,
		username: opts.Username,
		password: opts.Password,
		timeout:  opts.Timeout,
		http:     hc,
	}, nil
}

type appendRequest struct {
	Data ledger.Record `json:"data"`
}

// Append adds rec as a new spreadsheet row.
func (c *Client) Append(ctx context.Context, rec ledger.Record) error {
	body, err := json.Marshal(appendRequest{Data: rec})
	if err != nil {
		return &ledger.StoreError{Op: "append", Err: err}
	}
	start := time.Now()
	if _, err := c.do(ctx, http.MethodPost, body); err != nil {
		return &ledger.StoreError{Op: "append", Err: err}
	}
	logger.Debug(ctx, "store", "sheetdb.append",
		slog.String("status", "ok"),
		slog.String("tx_type", string(rec.Type)),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

// List returns every row in sheet order.
func (c *Client) List(ctx context.Context) ([]ledger.Record, error) {
	start := time.Now()
	raw, err := c.do(ctx, http.MethodGet, nil)
	if err != nil {
		return nil, &ledger.StoreError{Op: "list", Err: err}
	}
	var rows []row
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, &ledger.StoreError{Op: "list", Err: fmt.Errorf("sheetdb: decode rows: %w", err)}
	}
	out := make([]ledger.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.record())
	}
	logger.Debug(ctx, "store", "sheetdb.list",
		slog.String("status", "ok"),
		slog.Int("count", len(out)),
		slog.Duration("duration", logger.Took(start)),
	)
	return out, nil
}

func (c *Client) do(ctx context.Context, method string, body []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url, rd)
	if err != nil {
		return nil, fmt.Errorf("sheetdb: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheetdb: %s: %w", strings.ToLower(method), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("sheetdb: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Body: logger.SanitizeLimit(string(data), 256)}
	}
	return data, nil
}

// row mirrors a sheet row. Cells may come back as strings or numbers
// depending on the column format.
type row struct {
	Date         cell `json:"Date"`
	Timestamp    cell `json:"Timestamp"`
	Type         cell `json:"Type"`
	Amount       cell `json:"Amount"`
	ReturnAmount cell `json:"Return Amount"`
	Status       cell `json:"Status"`
	Notes        cell `json:"Notes"`
}

func (r row) record() ledger.Record {
	return ledger.Record{
		Date:         string(r.Date),
		Timestamp:    string(r.Timestamp),
		Type:         ledger.Type(r.Type),
		Amount:       string(r.Amount),
		ReturnAmount: string(r.ReturnAmount),
		Status:       ledger.Status(r.Status),
		Notes:        string(r.Notes),
	}
}

type cell string

func (c *cell) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*c = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = cell(s)
	case bytes.Equal(b, []byte("true")), bytes.Equal(b, []byte("false")):
		*c = cell(b)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("sheetdb: unsupported cell %s", b)
		}
		*c = cell(n.String())
	}
	return nil
}

