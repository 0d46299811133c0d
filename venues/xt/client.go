package xt

import (
	"context"
	"encoding/json"

	"marketfeed/httpclient"
)

const venueName = "xt"
const spotBaseURL = "https://dapi.xt.com"
const futuresBaseURL = "https://fapi.xt.com"

// Client wraps XT's spot/futures REST surface. XT has no public
// funding-rate, open-interest, kline, or depth endpoint; the client has
// no methods for those rather than inventing undocumented ones.
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
	return c.spot.Request(ctx, "/v4/public/ticker/24h", httpclient.Options{
		Query: map[string]interface{}{"symbol": nilIfEmpty(symbol)},
	})
}

func (c *Client) FuturesTicker24h(ctx context.Context) (json.RawMessage, error) {
	return c.futures.Request(ctx, "/future/market/v1/public/q/tickers", httpclient.Options{})
}

func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
