package bybit

import (
	"context"
	"encoding/json"

	"marketfeed/httpclient"
)

const venueName = "bybit"
const baseURL = "https://api.bybit.com"

type Client struct {
	http *httpclient.Client
}

func NewClient() *Client {
	return &Client{http: httpclient.New(venueName, baseURL)}
}

func (c *Client) Ticker(ctx context.Context, category, symbol string) (json.RawMessage, error) {
	return c.http.Request(ctx, "/v5/market/tickers", httpclient.Options{
		Query: map[string]interface{}{"category": category, "symbol": nilIfEmpty(symbol)},
	})
}

func (c *Client) FundingRate(ctx context.Context, symbol string) (json.RawMessage, error) {
	return c.http.Request(ctx, "/v5/market/tickers", httpclient.Options{
		Query: map[string]interface{}{"category": "linear", "symbol": nilIfEmpty(symbol)},
	})
}

func (c *Client) OpenInterest(ctx context.Context, symbol, intervalTime string) (json.RawMessage, error) {
	return c.http.Request(ctx, "/v5/market/open-interest", httpclient.Options{
		Query: map[string]interface{}{"category": "linear", "symbol": symbol, "intervalTime": intervalTime},
	})
}

func (c *Client) Klines(ctx context.Context, category, symbol, interval string, limit int) (json.RawMessage, error) {
	return c.http.Request(ctx, "/v5/market/kline", httpclient.Options{
		Query: map[string]interface{}{"category": category, "symbol": symbol, "interval": interval, "limit": limit},
	})
}

func (c *Client) Depth(ctx context.Context, category, symbol string, limit int) (json.RawMessage, error) {
	return c.http.Request(ctx, "/v5/market/orderbook", httpclient.Options{
		Query: map[string]interface{}{"category": category, "symbol": symbol, "limit": limit},
	})
}

func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
