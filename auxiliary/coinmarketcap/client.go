// Package coinmarketcap wraps the coinmarketcap.com Pro API's
// cryptocurrency map endpoint.
package coinmarketcap

import (
	"context"
	"encoding/json"
	"strconv"

	"marketfeed/auxiliary"
	"marketfeed/httpclient"
)

const venueName = "coinmarketcap"
const baseURL = "https://pro-api.coinmarketcap.com"

type Client struct {
	breaker *auxiliary.Breaker
	apiKey  string
}

func New(apiKey string) *Client {
	base := httpclient.New(venueName, baseURL)
	return &Client{breaker: auxiliary.NewBreaker(venueName, base), apiKey: apiKey}
}

// MapOptions mirrors cryptocurrency_map's optional parameters.
type MapOptions struct {
	Sort           string // "id" or "cmc_rank", defaults to "cmc_rank"
	Symbol         string
	Aux            string
	ListingStatus  string // "active" (default), "inactive", "untracked"
	Start          int
	Limit          int
}

// CryptocurrencyMap returns the raw /v1/cryptocurrency/map response: the
// full id<->symbol mapping this module uses to resolve venue symbols to
// Coinmarketcap's canonical IDs.
func (c *Client) CryptocurrencyMap(ctx context.Context, opts MapOptions) (json.RawMessage, error) {
	if opts.Sort == "" {
		opts.Sort = "cmc_rank"
	}
	if opts.Aux == "" {
		opts.Aux = "platform,first_historical_data,last_historical_data,is_active"
	}
	if opts.ListingStatus == "" {
		opts.ListingStatus = "active"
	}
	if opts.Start == 0 {
		opts.Start = 1
	}
	if opts.Limit == 0 {
		opts.Limit = 5000
	}

	query := map[string]interface{}{
		"sort":           opts.Sort,
		"aux":            opts.Aux,
		"listing_status": opts.ListingStatus,
		"start":          strconv.Itoa(opts.Start),
		"limit":          strconv.Itoa(opts.Limit),
	}
	if opts.Symbol != "" {
		query["symbol"] = opts.Symbol
	}

	return c.breaker.Request(ctx, "/v1/cryptocurrency/map", httpclient.Options{
		Query: query,
		Headers: map[string]string{
			"Accepts":          "application/json",
			"X-CMC_PRO_API_KEY": c.apiKey,
		},
	})
}
