// Package coinalyze wraps coinalyze.net's public open-interest and
// liquidation history endpoints.
package coinalyze

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"marketfeed/auxiliary"
	"marketfeed/httpclient"
)

const venueName = "coinalyze"
const baseURL = "https://api.coinalyze.net/v1"

// Timeframe is one of Coinalyze's accepted history granularities.
type Timeframe string

const (
	TF1min   Timeframe = "1min"
	TF5min   Timeframe = "5min"
	TF15min  Timeframe = "15min"
	TF30min  Timeframe = "30min"
	TF1hour  Timeframe = "1hour"
	TF2hour  Timeframe = "2hour"
	TF4hour  Timeframe = "4hour"
	TF6hour  Timeframe = "6hour"
	TF12hour Timeframe = "12hour"
	TFDaily  Timeframe = "daily"
	TFWeekly Timeframe = "weekly"
)

var timeframeSeconds = map[Timeframe]int64{
	TF1min: 60, TF5min: 300, TF15min: 900, TF30min: 1800,
	TF1hour: 3600, TF2hour: 7200, TF4hour: 14400, TF6hour: 21600,
	TF12hour: 43200, TFDaily: 86400, TFWeekly: 604800,
}

// Client is a breaker-wrapped Coinalyze REST client. API keys are
// rotated round-robin across requests, matching the itertools.cycle
// behavior of the original client.
type Client struct {
	breaker *auxiliary.Breaker
	keys    []string
	next    int
}

func New(apiKeys []string) *Client {
	base := httpclient.New(venueName, baseURL)
	return &Client{breaker: auxiliary.NewBreaker(venueName, base), keys: apiKeys}
}

func (c *Client) nextKey() string {
	if len(c.keys) == 0 {
		return ""
	}
	k := c.keys[c.next%len(c.keys)]
	c.next++
	return k
}

func (c *Client) requestTimeRange(tf Timeframe, limit int) (start, end int64) {
	now := time.Now().Unix()
	return now - timeframeSeconds[tf]*int64(limit) - 3, now + 10
}

// OpenInterestHistory returns raw open-interest history rows for the
// given Coinalyze-format tickers ("BTCUSDT_PERP.A").
func (c *Client) OpenInterestHistory(ctx context.Context, tickers []string, tf Timeframe, limit int) (json.RawMessage, error) {
	start, end := c.requestTimeRange(tf, limit)
	return c.breaker.Request(ctx, "/open-interest-history", httpclient.Options{
		Query: map[string]interface{}{
			"symbols":        strings.Join(tickers, ","),
			"interval":       string(tf),
			"from":           start,
			"to":             end,
			"convert_to_usd": "false",
		},
		Headers: map[string]string{"api_key": c.nextKey()},
	})
}

// LiquidationHistory returns raw liquidation history rows.
func (c *Client) LiquidationHistory(ctx context.Context, tickers []string, tf Timeframe, limit int, convertToUSD bool) (json.RawMessage, error) {
	start, end := c.requestTimeRange(tf, limit)
	convert := "false"
	if convertToUSD {
		convert = "true"
	}
	return c.breaker.Request(ctx, "/liquidation-history", httpclient.Options{
		Query: map[string]interface{}{
			"symbols":        strings.Join(tickers, ","),
			"interval":       string(tf),
			"from":           start,
			"to":             end,
			"convert_to_usd": convert,
		},
		Headers: map[string]string{"api_key": c.nextKey()},
	})
}

// Exchanges lists Coinalyze's supported exchanges.
func (c *Client) Exchanges(ctx context.Context) (json.RawMessage, error) {
	return c.breaker.Request(ctx, "/exchanges", httpclient.Options{
		Headers: map[string]string{"api_key": c.nextKey()},
	})
}
