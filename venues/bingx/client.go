package bingx

import (
	"context"
	"encoding/json"

	"marketfeed/httpclient"
)

const venueName = "bingx"
const baseURL = "https://open-api.bingx.com"

type Client struct {
	http *httpclient.Client
}

func NewClient() *Client {
	return &Client{http: httpclient.New(venueName, baseURL)}
}

func (c *Client) Ticker(ctx context.Context, symbol string) (json.RawMessage, error) {
	return c.http.Request(ctx, "/openApi/spot/v1/ticker/24hr", httpclient.Options{
		Query: map[string]interface{}{"symbol": nilIfEmpty(symbol)},
	})
}

func (c *Client) FuturesTicker(ctx context.Context, symbol string) (json.RawMessage, error) {
	return c.http.Request(ctx, "/openApi/swap/v2/quote/ticker", httpclient.Options{
		Query: map[string]interface{}{"symbol": nilIfEmpty(symbol)},
	})
}

func (c *Client) FundingRate(ctx context.Context, symbol string) (json.RawMessage, error) {
	return c.http.Request(ctx, "/openApi/swap/v2/quote/premiumIndex", httpclient.Options{
		Query: map[string]interface{}{"symbol": nilIfEmpty(symbol)},
	})
}

func (c *Client) OpenInterest(ctx context.Context, symbol string) (json.RawMessage, error) {
	return c.http.Request(ctx, "/openApi/swap/v2/quote/openInterest", httpclient.Options{
		Query: map[string]interface{}{"symbol": symbol},
	})
}

func (c *Client) Depth(ctx context.Context, symbol string, limit int) (json.RawMessage, error) {
	return c.http.Request(ctx, "/openApi/spot/v1/market/depth", httpclient.Options{
		Query: map[string]interface{}{"symbol": symbol, "limit": limit},
	})
}

func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
