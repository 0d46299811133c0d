package gate

import (
	"context"
	"encoding/json"

	"marketfeed/httpclient"
)

const venueName = "gate"
const baseURL = "https://api.gateio.ws/api/v4"

type Client struct {
	http *httpclient.Client
}

func NewClient() *Client {
	return &Client{http: httpclient.New(venueName, baseURL)}
}

func (c *Client) Ticker(ctx context.Context, symbol string) (json.RawMessage, error) {
	return c.http.Request(ctx, "/spot/tickers", httpclient.Options{
		Query: map[string]interface{}{"currency_pair": nilIfEmpty(symbol)},
	})
}

func (c *Client) FuturesTicker(ctx context.Context, symbol, settle string) (json.RawMessage, error) {
	return c.http.Request(ctx, "/futures/"+settle+"/tickers", httpclient.Options{
		Query: map[string]interface{}{"contract": nilIfEmpty(symbol)},
	})
}

func (c *Client) Depth(ctx context.Context, symbol string, limit int) (json.RawMessage, error) {
	return c.http.Request(ctx, "/spot/order_book", httpclient.Options{
		Query: map[string]interface{}{"currency_pair": symbol, "limit": limit},
	})
}

func (c *Client) OpenInterest(ctx context.Context, symbol, settle string) (json.RawMessage, error) {
	return c.http.Request(ctx, "/futures/"+settle+"/contract_stats", httpclient.Options{
		Query: map[string]interface{}{"contract": symbol},
	})
}

func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
