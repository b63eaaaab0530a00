// Package client provides a client for the cbudget report server API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/cbudget/internal/daemon"
	"github.com/theirongolddev/cbudget/internal/model"
)

const (
	requestTimeout = 10 * time.Second
	maxBodySize    = 4 << 20 // 4 MB
)

var (
	// ErrUnavailable indicates the server could not be reached.
	ErrUnavailable = errors.New("client: server unavailable")
	// ErrBadRequest indicates the server rejected the query parameters.
	ErrBadRequest = errors.New("client: bad request")
)

// Client queries a running report server.
type Client struct {
	base string
	http *http.Client
}

// New creates a client for addr, which may be "host:port" or a full URL.
// Returns nil if addr is empty.
func New(addr string) *Client {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil
	}
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	return &Client{
		base: strings.TrimRight(addr, "/"),
		http: &http.Client{},
	}
}

// BaseURL returns the server root URL.
func (c *Client) BaseURL() string { return c.base }

// Health reports whether /healthz answers ok.
func (c *Client) Health(ctx context.Context) error {
	body, err := c.get(ctx, "/healthz", nil)
	if err != nil {
		return err
	}
	if strings.TrimSpace(string(body)) != "ok" {
		return fmt.Errorf("client: unexpected health response %q", body)
	}
	return nil
}

// Status fetches the server status and latest snapshot.
func (c *Client) Status(ctx context.Context) (*daemon.Status, error) {
	var st daemon.Status
	if err := c.getJSON(ctx, "/v1/status", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Events fetches the buffered snapshot/delta events.
func (c *Client) Events(ctx context.Context) ([]daemon.Event, error) {
	var events []daemon.Event
	if err := c.getJSON(ctx, "/v1/events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Report fetches the budget-vs-actual report for a month, or January
// through month when ytd is set.
func (c *Client) Report(ctx context.Context, month, year int, ytd bool) (*daemon.ReportResponse, error) {
	q := url.Values{}
	q.Set("month", strconv.Itoa(month))
	q.Set("year", strconv.Itoa(year))
	q.Set("ytd", strconv.FormatBool(ytd))

	var r daemon.ReportResponse
	if err := c.getJSON(ctx, "/v1/report", q, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Yearly fetches the 12-month trend report.
func (c *Client) Yearly(ctx context.Context, year int) (*model.YearlyReportData, error) {
	q := url.Values{}
	q.Set("year", strconv.Itoa(year))

	var y model.YearlyReportData
	if err := c.getJSON(ctx, "/v1/yearly", q, &y); err != nil {
		return nil, err
	}
	return &y, nil
}

// Accounts fetches accounts with recomputed balances.
func (c *Client) Accounts(ctx context.Context) ([]model.Account, error) {
	var accts []model.Account
	if err := c.getJSON(ctx, "/v1/accounts", nil, &accts); err != nil {
		return nil, err
	}
	return accts, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, dst any) error {
	body, err := c.get(ctx, path, q)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("client: parsing %s: %w", path, err)
	}
	return nil
}

// get performs a GET request and returns the response body.
func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("client: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "cbudget/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("client: reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %s", ErrBadRequest, serverError(body))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("client: unexpected status %d: %s", resp.StatusCode, serverError(body))
	}
	return body, nil
}

// serverError extracts the message from a {"error": ...} body.
func serverError(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(body))
}
