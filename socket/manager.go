// Package socket implements the per-venue socket manager: four named
// constructors (klines, aggtrades, tickers, liquidations) that build a
// wsengine.Session from a venue's registered binding, rejecting
// capability combinations the venue does not expose per the
// implemented-socket matrix.
package socket

import (
	"context"
	"fmt"
	"time"

	"marketfeed/bindings"
	"marketfeed/errs"
	"marketfeed/types"
	"marketfeed/wsengine"
)

// capability is one of the four socket manager constructors.
type capability int

const (
	klinesCap capability = iota
	aggtradesCap
	tickersCap
	liquidationsCap
)

// supportMatrix is the implemented-socket table. Venues/capabilities
// absent from it stay errs.NotImplemented, never silently dropped.
var supportMatrix = map[types.Venue]map[capability]bool{
	types.Binance:     {klinesCap: true, aggtradesCap: true, tickersCap: true, liquidationsCap: true},
	types.Bybit:       {klinesCap: true, aggtradesCap: true, tickersCap: true, liquidationsCap: true},
	types.OKX:         {klinesCap: true, aggtradesCap: true, tickersCap: true, liquidationsCap: true},
	types.Bitget:      {klinesCap: true, aggtradesCap: true, tickersCap: true},
	types.Gate:        {aggtradesCap: true},
	types.MEXC:        {klinesCap: true, aggtradesCap: true, tickersCap: true},
	types.XT:          {aggtradesCap: true},
	types.Bitunix:     {aggtradesCap: true},
	types.KCEX:        {aggtradesCap: true},
	types.BingX:       {aggtradesCap: true},
	types.Hyperliquid: {aggtradesCap: true},
}

func (c capability) String() string {
	switch c {
	case klinesCap:
		return "klines"
	case aggtradesCap:
		return "aggtrades"
	case tickersCap:
		return "tickers"
	case liquidationsCap:
		return "liquidations"
	default:
		return "unknown"
	}
}

func checkSupported(venue types.Venue, c capability) error {
	if supportMatrix[venue][c] {
		return nil
	}
	return errs.New(errs.NotImplemented, string(venue), fmt.Sprintf("%s does not expose a %s socket", venue, c))
}

// Manager builds sessions for one venue.
type Manager struct {
	Venue types.Venue
}

// New constructs a Manager bound to venue.
func New(venue types.Venue) *Manager {
	return &Manager{Venue: venue}
}

// Options carries the optional per-session tuning the caller may override;
// zero values fall back to wsengine.New's documented defaults.
type Options struct {
	PingInterval      int64 // seconds, 0 = default
	ReconnectInterval int64 // seconds, 0 = default
	NoMessageTimeout  int64 // seconds, 0 = default
	WorkerCount       int
	QueueBound        int
}

func (m *Manager) build(topic string, market types.MarketType, tickerList []string, tf types.Timeframe, cb wsengine.Callback, opts Options) *wsengine.Session {
	spec := types.SubscriptionSpec{
		Venue:             m.Venue,
		Market:            market,
		Topic:             topic,
		Tickers:           tickerList,
		Timeframe:         tf,
		WorkerCount:       opts.WorkerCount,
		QueueBound:        opts.QueueBound,
		PingInterval:      time.Duration(opts.PingInterval) * time.Second,
		ReconnectInterval: time.Duration(opts.ReconnectInterval) * time.Second,
		NoMessageTimeout:  time.Duration(opts.NoMessageTimeout) * time.Second,
	}
	return wsengine.New(spec, bindings.Binding(m.Venue), cb)
}

// KlinesSocket constructs the kline session; rejects with NotImplemented
// if the venue has no kline socket. The timeframe is not checked here:
// the Bybit, OKX and MEXC bindings return TimeframeUnsupported when the
// session builds its subscription after connecting (the session logs it
// and reconnects), and the Binance and Bitget bindings pass the timeframe
// through unchecked.
func (m *Manager) KlinesSocket(ctx context.Context, market types.MarketType, tickerList []string, tf types.Timeframe, cb wsengine.Callback, opts Options) (*wsengine.Session, error) {
	if err := checkSupported(m.Venue, klinesCap); err != nil {
		return nil, err
	}
	return m.build("klines", market, tickerList, tf, cb, opts), nil
}

// AggtradesSocket constructs the aggregated-trade session.
func (m *Manager) AggtradesSocket(ctx context.Context, market types.MarketType, tickerList []string, cb wsengine.Callback, opts Options) (*wsengine.Session, error) {
	if err := checkSupported(m.Venue, aggtradesCap); err != nil {
		return nil, err
	}
	return m.build("aggtrades", market, tickerList, "", cb, opts), nil
}

// TickersSocket constructs the 24h ticker session.
func (m *Manager) TickersSocket(ctx context.Context, market types.MarketType, tickerList []string, cb wsengine.Callback, opts Options) (*wsengine.Session, error) {
	if err := checkSupported(m.Venue, tickersCap); err != nil {
		return nil, err
	}
	return m.build("tickers", market, tickerList, "", cb, opts), nil
}

// LiquidationsSocket constructs the liquidation feed session; fails with
// NotImplemented on venues that do not expose one.
func (m *Manager) LiquidationsSocket(ctx context.Context, tickerList []string, cb wsengine.Callback, opts Options) (*wsengine.Session, error) {
	if err := checkSupported(m.Venue, liquidationsCap); err != nil {
		return nil, err
	}
	return m.build("liquidations", types.Futures, tickerList, "", cb, opts), nil
}
