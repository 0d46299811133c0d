package bitunix

import (
	"context"
	"encoding/json"

	"marketfeed/httpclient"
)

const venueName = "bitunix"
const spotBaseURL = "https://openapi.bitunix.com"
const futuresBaseURL = "https://fapi.bitunix.com"

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

// Ticker lists spot trading pairs (Bitunix has no spot 24h-stats
// endpoint; coin_pair/list is the closest public spot surface).
func (c *Client) Ticker(ctx context.Context) (json.RawMessage, error) {
	return c.spot.Request(ctx, "/api/spot/v1/common/coin_pair/list", httpclient.Options{})
}

func (c *Client) FuturesTicker(ctx context.Context, symbols string) (json.RawMessage, error) {
	return c.futures.Request(ctx, "/api/v1/futures/market/tickers", httpclient.Options{
		Query: map[string]interface{}{"symbols": nilIfEmpty(symbols)},
	})
}

func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
