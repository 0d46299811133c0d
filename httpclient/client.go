// Package httpclient is the shared REST request/retry/response machinery
// every venue's client builds on. It owns a connection pool and a
// logger, retries only timeout-class transport failures with a fixed
// delay, and classifies non-2xx responses as errs.APIFailure.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"marketfeed/errs"
	"marketfeed/logger"
)

// Options configures request-level behavior; zero-value Options falls
// back to the defaults in New.
type Options struct {
	// Method defaults to GET.
	Method string
	// Query parameters; entries whose value is nil are elided before
	// emission (the "parameter filtering" this module's HTTP layer
	// requires of every caller).
	Query map[string]interface{}
	Body    interface{}
	Headers map[string]string
}

// Client is the base REST client. One instance is shared by a venue's
// higher-level methods (ticker, klines, funding rate, ...).
type Client struct {
	Venue       string
	HTTP        *http.Client
	BaseURL     string
	MaxAttempts int
	RetryDelay  time.Duration
	Limiter     *rate.Limiter

	lastUsedWeight int64
}

// New constructs a Client with sane defaults: 3 attempts, 100ms fixed
// retry delay, a 30s HTTP timeout, and proxy support from the standard
// HTTP(S)_PROXY environment variables.
func New(venue, baseURL string) *Client {
	transport := &http.Transport{}
	if proxyURL := proxyFromEnv(); proxyURL != nil {
		transport.Proxy = http.ProxyURL(proxyURL)
	}
	return &Client{
		Venue:       venue,
		BaseURL:     baseURL,
		HTTP:        &http.Client{Timeout: 30 * time.Second, Transport: transport},
		MaxAttempts: 3,
		RetryDelay:  100 * time.Millisecond,
		Limiter:     rate.NewLimiter(rate.Limit(20), 20),
	}
}

func proxyFromEnv() *url.URL {
	for _, key := range []string{"HTTPS_PROXY", "https_proxy", "HTTP_PROXY", "http_proxy"} {
		if v := os.Getenv(key); v != "" {
			if u, err := url.Parse(v); err == nil {
				return u
			}
		}
	}
	return nil
}

// Request issues one REST call, retrying timeout-class transport errors
// up to MaxAttempts with RetryDelay between attempts. Non-2xx responses
// are never retried; they surface immediately as errs.APIFailure.
func (c *Client) Request(ctx context.Context, path string, opts Options) (json.RawMessage, error) {
	if opts.Method == "" {
		opts.Method = http.MethodGet
	}

	reqURL := c.BaseURL + path
	if len(opts.Query) > 0 {
		q := url.Values{}
		for k, v := range filterParams(opts.Query) {
			q.Set(k, fmt.Sprintf("%v", v))
		}
		reqURL += "?" + q.Encode()
	}

	var lastErr error
	for attempt := 1; attempt <= c.MaxAttempts; attempt++ {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, errs.Wrap(errs.Timeout, c.Venue, "rate limiter wait canceled", err)
		}

		var bodyReader io.Reader
		if opts.Body != nil {
			raw, err := json.Marshal(opts.Body)
			if err != nil {
				return nil, errs.Wrap(errs.AdaptFailure, c.Venue, "failed to encode request body", err)
			}
			bodyReader = bytes.NewReader(raw)
		}

		req, err := http.NewRequestWithContext(ctx, opts.Method, reqURL, bodyReader)
		if err != nil {
			return nil, errs.Wrap(errs.AdaptFailure, c.Venue, "failed to build request", err)
		}
		for k, v := range opts.Headers {
			req.Header.Set(k, v)
		}
		if opts.Body != nil && req.Header.Get("Content-Type") == "" {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.HTTP.Do(req)
		if err != nil {
			lastErr = err
			if isTimeout(err) && attempt < c.MaxAttempts {
				time.Sleep(c.RetryDelay)
				continue
			}
			return nil, errs.Wrap(errs.Timeout, c.Venue, "transport error", err)
		}

		raw, respErr := c.handleResponse(resp)
		if respErr != nil {
			return nil, respErr
		}
		return raw, nil
	}
	return nil, errs.Wrap(errs.Timeout, c.Venue, "exhausted retry attempts", lastErr)
}

func (c *Client) handleResponse(resp *http.Response) (json.RawMessage, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, c.Venue, "failed to read response body", err)
	}

	// Binance's response handler additionally tracks the used-weight
	// header for observability; harmless no-op for venues that don't set it.
	if w := resp.Header.Get("x-mbx-used-weight-1m"); w != "" {
		if parsed, err := strconv.ParseInt(w, 10, 64); err == nil {
			c.lastUsedWeight = parsed
		} else {
			logger.Log.Warnf("%s: failed to parse x-mbx-used-weight-1m header %q", c.Venue, w)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errs.NewAPIFailure(c.Venue, resp.StatusCode, string(body))
	}
	return json.RawMessage(body), nil
}

// UsedWeight returns the most recently observed x-mbx-used-weight-1m
// value (Binance only; zero elsewhere).
func (c *Client) UsedWeight() int64 { return c.lastUsedWeight }

func isTimeout(err error) bool {
	type timeout interface{ Timeout() bool }
	if t, ok := err.(timeout); ok {
		return t.Timeout()
	}
	return false
}

// filterParams elides nil-valued entries so callers can pass option maps
// with unset fields without those fields reaching the wire.
func filterParams(params map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(params))
	for k, v := range params {
		if v == nil {
			continue
		}
		out[k] = v
	}
	return out
}
