package binance

import (
	"context"

	sdk "github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/futures"

	"marketfeed/errs"
)

const venueName = "binance"

// Client wraps the adshao/go-binance/v2 SDK's public REST methods. No API
// key is needed for any of the read-only market-data endpoints this
// module exposes.
type Client struct {
	spot    *sdk.Client
	futures *futures.Client
}

func NewClient() *Client {
	return &Client{
		spot:    sdk.NewClient("", ""),
		futures: futures.NewClient("", ""),
	}
}

// Ticker24h returns the raw 24h ticker stats for the spot market,
// scoped to symbol when non-empty.
func (c *Client) Ticker24h(ctx context.Context, symbol string) ([]*sdk.PriceChangeStats, error) {
	svc := c.spot.NewListPriceChangeStatsService()
	if symbol != "" {
		svc = svc.Symbol(symbol)
	}
	stats, err := svc.Do(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.APIFailure, venueName, "ticker/24hr request failed", err)
	}
	return stats, nil
}

// FuturesTicker24h returns the raw 24h ticker stats for USDT futures.
func (c *Client) FuturesTicker24h(ctx context.Context, symbol string) ([]*futures.PriceChangeStats, error) {
	svc := c.futures.NewListPriceChangeStatsService()
	if symbol != "" {
		svc = svc.Symbol(symbol)
	}
	stats, err := svc.Do(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.APIFailure, venueName, "futures ticker/24hr request failed", err)
	}
	return stats, nil
}

// Klines returns spot klines for symbol/interval.
func (c *Client) Klines(ctx context.Context, symbol, interval string, limit int) ([]*sdk.Kline, error) {
	klines, err := c.spot.NewKlinesService().Symbol(symbol).Interval(interval).Limit(limit).Do(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.APIFailure, venueName, "klines request failed", err)
	}
	return klines, nil
}

// FuturesKlines returns USDT-futures klines for symbol/interval.
func (c *Client) FuturesKlines(ctx context.Context, symbol, interval string, limit int) ([]*futures.Kline, error) {
	klines, err := c.futures.NewKlinesService().Symbol(symbol).Interval(interval).Limit(limit).Do(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.APIFailure, venueName, "futures klines request failed", err)
	}
	return klines, nil
}

// FundingRate returns the current premium index (carries fundingRate) for
// every symbol, or one symbol when non-empty.
func (c *Client) FundingRate(ctx context.Context, symbol string) ([]*futures.PremiumIndex, error) {
	svc := c.futures.NewPremiumIndexService()
	if symbol != "" {
		svc = svc.Symbol(symbol)
	}
	idx, err := svc.Do(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.APIFailure, venueName, "premiumIndex request failed", err)
	}
	return idx, nil
}

// OpenInterest returns raw open interest (already base units) for symbol.
func (c *Client) OpenInterest(ctx context.Context, symbol string) (*futures.OpenInterest, error) {
	oi, err := c.futures.NewOpenInterestService().Symbol(symbol).Do(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.APIFailure, venueName, "openInterest request failed", err)
	}
	return oi, nil
}

// Depth returns a raw spot order book snapshot.
func (c *Client) Depth(ctx context.Context, symbol string, limit int) (*sdk.DepthResponse, error) {
	depth, err := c.spot.NewDepthService().Symbol(symbol).Limit(limit).Do(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.APIFailure, venueName, "depth request failed", err)
	}
	return depth, nil
}
