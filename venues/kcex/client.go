package kcex

import (
	"context"
	"encoding/json"

	"marketfeed/httpclient"
)

const venueName = "kcex"
const baseURL = "https://www.kcex.com"

// Client wraps KCEX's only documented public REST endpoint. Ticker,
// funding rate, and open interest all read the same futures
// contract/ticker response (funding rate and open interest are thin
// aliases over the futures ticker); klines/depth have no public endpoint
// and the client has no methods for them.
type Client struct {
	http *httpclient.Client
}

func NewClient() *Client {
	return &Client{http: httpclient.New(venueName, baseURL)}
}

func (c *Client) FuturesTicker(ctx context.Context) (json.RawMessage, error) {
	return c.http.Request(ctx, "/fapi/v1/contract/ticker", httpclient.Options{})
}

func (c *Client) OpenInterest(ctx context.Context) (json.RawMessage, error) { return c.FuturesTicker(ctx) }

func (c *Client) FundingRate(ctx context.Context) (json.RawMessage, error) { return c.FuturesTicker(ctx) }
