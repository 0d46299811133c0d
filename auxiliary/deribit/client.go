// Package deribit wraps Deribit's public JSON-RPC-over-HTTP endpoints
// (ticker, order book, instrument metadata). Deribit's private/trading endpoints
// (buy, sell, cancel, edit) are account/private surface and out of
// scope.
package deribit

import (
	"context"
	"encoding/json"

	"marketfeed/auxiliary"
	"marketfeed/httpclient"
)

const venueName = "deribit"
const baseURL = "https://www.deribit.com/api/v2"

type Client struct {
	breaker *auxiliary.Breaker
}

func New() *Client {
	base := httpclient.New(venueName, baseURL)
	return &Client{breaker: auxiliary.NewBreaker(venueName, base)}
}

// Ticker returns the raw public/ticker response for one instrument.
func (c *Client) Ticker(ctx context.Context, instrumentName string) (json.RawMessage, error) {
	return c.breaker.Request(ctx, "/public/ticker", httpclient.Options{
		Query: map[string]interface{}{"instrument_name": instrumentName},
	})
}

// OrderBook returns the raw public/get_order_book response.
func (c *Client) OrderBook(ctx context.Context, instrumentName string, depth int) (json.RawMessage, error) {
	if depth == 0 {
		depth = 10
	}
	return c.breaker.Request(ctx, "/public/get_order_book", httpclient.Options{
		Query: map[string]interface{}{"instrument_name": instrumentName, "depth": depth},
	})
}

// Instrument returns the raw public/get_instrument response.
func (c *Client) Instrument(ctx context.Context, instrumentName string) (json.RawMessage, error) {
	return c.breaker.Request(ctx, "/public/get_instrument", httpclient.Options{
		Query: map[string]interface{}{"instrument_name": instrumentName},
	})
}

// Instruments returns the raw public/get_instruments response for a
// currency and instrument kind ("option", "future", ...).
func (c *Client) Instruments(ctx context.Context, currency, kind string) (json.RawMessage, error) {
	if kind == "" {
		kind = "option"
	}
	return c.breaker.Request(ctx, "/public/get_instruments", httpclient.Options{
		Query: map[string]interface{}{"currency": currency, "kind": kind},
	})
}
