package bitget

import (
	"context"
	"encoding/json"

	"marketfeed/httpclient"
)

const venueName = "bitget"
const baseURL = "https://api.bitget.com"

type Client struct {
	http *httpclient.Client
}

func NewClient() *Client {
	return &Client{http: httpclient.New(venueName, baseURL)}
}

func (c *Client) Ticker(ctx context.Context, symbol string) (json.RawMessage, error) {
	return c.http.Request(ctx, "/api/v2/spot/market/tickers", httpclient.Options{
		Query: map[string]interface{}{"symbol": nilIfEmpty(symbol)},
	})
}

func (c *Client) FuturesTicker(ctx context.Context, symbol, productType string) (json.RawMessage, error) {
	return c.http.Request(ctx, "/api/v2/mix/market/tickers", httpclient.Options{
		Query: map[string]interface{}{"symbol": nilIfEmpty(symbol), "productType": productType},
	})
}

func (c *Client) FundingRate(ctx context.Context, symbol, productType string) (json.RawMessage, error) {
	return c.http.Request(ctx, "/api/v2/mix/market/current-fund-rate", httpclient.Options{
		Query: map[string]interface{}{"symbol": symbol, "productType": productType},
	})
}

func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
