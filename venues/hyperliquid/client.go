package hyperliquid

import (
	"context"
	"encoding/json"

	hl "github.com/sonirico/go-hyperliquid"

	"marketfeed/errs"
	"marketfeed/httpclient"
)

const infoBaseURL = "https://api.hyperliquid.xyz"

// Client wraps Hyperliquid's single POST /info endpoint. It holds an SDK
// info client, but MetaAndAssetCtxs builds the metaAndAssetCtxs request
// body itself and sends it through httpclient so every venue funnels
// through the same retry/response path, then hands the body to the
// adapter's positional-zip helper rather than the SDK's own structs,
// since the SDK's types don't expose the raw two-element array shape
// adaptHyperliquidPairs depends on.
type Client struct {
	http *httpclient.Client
	info *hl.InfoClient
}

func NewClient() *Client {
	return &Client{
		http: httpclient.New(venueName, infoBaseURL),
		info: hl.NewInfoClient(hl.MainnetAPIURL),
	}
}

// MetaAndAssetCtxs returns the raw [universe, assetCtxs] response body
// consumed by adaptHyperliquidPairs.
func (c *Client) MetaAndAssetCtxs(ctx context.Context) (json.RawMessage, error) {
	raw, err := c.http.Request(ctx, "/info", httpclient.Options{
		Method: "POST",
		Body:   map[string]string{"type": "metaAndAssetCtxs"},
	})
	if err != nil {
		return nil, errs.Wrap(errs.APIFailure, venueName, "metaAndAssetCtxs request failed", err)
	}
	return raw, nil
}
