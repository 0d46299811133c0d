package mexc

import (
	"context"
	"encoding/json"

	"marketfeed/httpclient"
)

const venueName = "mexc"
const spotBaseURL = "https://api.mexc.com"
const futuresBaseURL = "https://contract.mexc.com"

type Client struct {
	spot    *httpclient.Client
	futures *httpclient.Client
}

func NewClient() *Client {
	return &Client{
		spot:    httpclient.New(venueName, spotBaseURL),
		futures: httpclient.New(venueName, futuresBaseURL),
	}
}

func (c *Client) Ticker24h(ctx context.Context, symbol string) (json.RawMessage, error) {
	return c.spot.Request(ctx, "/api/v3/ticker/24hr", httpclient.Options{
		Query: map[string]interface{}{"symbol": nilIfEmpty(symbol)},
	})
}

func (c *Client) FuturesTicker24h(ctx context.Context, symbol string) (json.RawMessage, error) {
	return c.futures.Request(ctx, "/api/v1/contract/ticker", httpclient.Options{
		Query: map[string]interface{}{"symbol": nilIfEmpty(symbol)},
	})
}

func (c *Client) Depth(ctx context.Context, symbol string, limit int) (json.RawMessage, error) {
	return c.spot.Request(ctx, "/api/v3/depth", httpclient.Options{
		Query: map[string]interface{}{"symbol": symbol, "limit": limit},
	})
}

func (c *Client) FundingRate(ctx context.Context) (json.RawMessage, error) {
	return c.futures.Request(ctx, "/api/v1/contract/funding_rate", httpclient.Options{})
}

func (c *Client) OpenInterest(ctx context.Context, symbol string) (json.RawMessage, error) {
	return c.futures.Request(ctx, "/api/v1/contract/ticker", httpclient.Options{
		Query: map[string]interface{}{"symbol": nilIfEmpty(symbol)},
	})
}

func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
