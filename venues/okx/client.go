package okx

import (
	"context"
	"encoding/json"

	"marketfeed/httpclient"
)

const venueName = "okx"
const baseURL = "https://www.okx.com"

type Client struct {
	http *httpclient.Client
}

func NewClient() *Client {
	return &Client{http: httpclient.New(venueName, baseURL)}
}

func (c *Client) Ticker(ctx context.Context, instType string) (json.RawMessage, error) {
	return c.http.Request(ctx, "/api/v5/market/tickers", httpclient.Options{
		Query: map[string]interface{}{"instType": instType},
	})
}

func (c *Client) FundingRate(ctx context.Context, instId string) (json.RawMessage, error) {
	return c.http.Request(ctx, "/api/v5/public/funding-rate", httpclient.Options{
		Query: map[string]interface{}{"instId": instId},
	})
}

func (c *Client) OpenInterest(ctx context.Context, instType, instId string) (json.RawMessage, error) {
	return c.http.Request(ctx, "/api/v5/public/open-interest", httpclient.Options{
		Query: map[string]interface{}{"instType": instType, "instId": instId},
	})
}

func (c *Client) Candles(ctx context.Context, instId, bar string, limit int) (json.RawMessage, error) {
	return c.http.Request(ctx, "/api/v5/market/candles", httpclient.Options{
		Query: map[string]interface{}{"instId": instId, "bar": bar, "limit": limit},
	})
}

func (c *Client) Depth(ctx context.Context, instId string, sz int) (json.RawMessage, error) {
	return c.http.Request(ctx, "/api/v5/market/books", httpclient.Options{
		Query: map[string]interface{}{"instId": instId, "sz": sz},
	})
}
