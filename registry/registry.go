// Package registry implements the venue registry: a closed set of
// constructors, one per venue, for protocol bindings (via bindings),
// REST clients, socket managers, and adapter sets, so a caller can look
// up the whole (ClientType, SocketManagerType, AdapterType) triple for a
// venue without importing every venues/* package directly. Grounded on
// bootstrap.Register's priority-keyed registration idiom,
// adapted here from hook registration to constructor registration —
// construction is synchronous and infallible, so no retry/priority
// policy applies.
package registry

import (
	"encoding/json"

	"marketfeed/bindings"
	"marketfeed/fixer"
	"marketfeed/socket"
	"marketfeed/types"
	"marketfeed/venues/binance"
	"marketfeed/venues/bingx"
	"marketfeed/venues/bitget"
	"marketfeed/venues/bitunix"
	"marketfeed/venues/bybit"
	"marketfeed/venues/gate"
	"marketfeed/venues/hyperliquid"
	"marketfeed/venues/kcex"
	"marketfeed/venues/mexc"
	"marketfeed/venues/okx"
	"marketfeed/venues/xt"
	"marketfeed/wsengine"
)

// AdapterSet is the per-venue vtable of raw-to-unified conversion
// functions. Adapters are free functions, not methods on a common type
// (each venue's wire shapes are too different for one interface to fit),
// so AdapterSet is a struct of function values instead; a venue that has
// no counterpart for a field leaves it nil.
type AdapterSet struct {
	KlineMessage       func(json.RawMessage) ([]types.Kline, error)
	AggtradesMessage   func(json.RawMessage) ([]types.AggTrade, error)
	LiquidationMessage func(json.RawMessage) ([]types.Liquidation, error)
	TickerMessage      func(json.RawMessage) (map[string]types.TickerDaily, error)
	Ticker24h          func(json.RawMessage, bool) (map[string]types.TickerDaily, error)
	FuturesTicker24h   func(json.RawMessage, bool) (map[string]types.TickerDaily, error)
	Tickers            func(json.RawMessage, bool) ([]string, error)
	FuturesTickers     func(json.RawMessage, bool) ([]string, error)
	FundingRate        func(json.RawMessage) (map[string]float64, error)
	OpenInterest       func(json.RawMessage) (map[string]types.OpenInterest, error)
	// Depth decodes a WS depth push, which already carries its own
	// symbol. RESTDepth decodes a REST depth snapshot, which does not,
	// so it takes symbol as a separate argument.
	Depth        func(json.RawMessage) (types.Depth, error)
	RESTDepth    func(json.RawMessage, string) (types.Depth, error)
	Kline        func(json.RawMessage, string, types.Timeframe) ([]types.Kline, error)
	FuturesKline func(json.RawMessage, string, types.Timeframe) ([]types.Kline, error)
}

// Clients is the closed venue -> REST client constructor map. Each
// venue's *Client has a genuinely different method set (Binance wraps
// go-binance/v2's typed SDK, OKX wraps a raw json.RawMessage HTTP
// client), so there is no common interface to return; callers type-assert
// to the concrete *<venue>.Client they already expect.
var Clients = map[types.Venue]func() interface{}{
	types.Binance:     func() interface{} { return binance.NewClient() },
	types.Bybit:       func() interface{} { return bybit.NewClient() },
	types.OKX:         func() interface{} { return okx.NewClient() },
	types.Bitget:      func() interface{} { return bitget.NewClient() },
	types.MEXC:        func() interface{} { return mexc.NewClient() },
	types.Gate:        func() interface{} { return gate.NewClient() },
	types.XT:          func() interface{} { return xt.NewClient() },
	types.Bitunix:     func() interface{} { return bitunix.NewClient() },
	types.KCEX:        func() interface{} { return kcex.NewClient() },
	types.BingX:       func() interface{} { return bingx.NewClient() },
	types.Hyperliquid: func() interface{} { return hyperliquid.NewClient() },
}

// SocketManagers is the closed venue -> socket.Manager constructor map.
var SocketManagers = map[types.Venue]func() *socket.Manager{
	types.Binance:     func() *socket.Manager { return socket.New(types.Binance) },
	types.Bybit:       func() *socket.Manager { return socket.New(types.Bybit) },
	types.OKX:         func() *socket.Manager { return socket.New(types.OKX) },
	types.Bitget:      func() *socket.Manager { return socket.New(types.Bitget) },
	types.MEXC:        func() *socket.Manager { return socket.New(types.MEXC) },
	types.Gate:        func() *socket.Manager { return socket.New(types.Gate) },
	types.XT:          func() *socket.Manager { return socket.New(types.XT) },
	types.Bitunix:     func() *socket.Manager { return socket.New(types.Bitunix) },
	types.KCEX:        func() *socket.Manager { return socket.New(types.KCEX) },
	types.BingX:       func() *socket.Manager { return socket.New(types.BingX) },
	types.Hyperliquid: func() *socket.Manager { return socket.New(types.Hyperliquid) },
}

// Adapters is the closed venue -> AdapterSet map.
var Adapters = map[types.Venue]AdapterSet{
	types.Binance: {
		KlineMessage:       binance.KlineMessage,
		AggtradesMessage:   binance.AggtradesMessage,
		LiquidationMessage: binance.LiquidationMessage,
		Ticker24h:          binance.Ticker24h,
		FuturesTicker24h:   binance.FuturesTicker24h,
		Tickers:            binance.Tickers,
		FuturesTickers:     binance.FuturesTickers,
		FundingRate:        binance.FundingRate,
		OpenInterest:       binance.OpenInterest,
		RESTDepth:          binance.Depth,
		Kline:              binance.Kline,
		FuturesKline:       binance.FuturesKline,
	},
	types.Bybit: {
		KlineMessage:       bybit.KlineMessage,
		AggtradesMessage:   bybit.AggtradesMessage,
		TickerMessage:      bybit.TickerMessage,
		LiquidationMessage: bybit.LiquidationMessage,
		Ticker24h:          bybit.Ticker24h,
		FuturesTicker24h:   bybit.FuturesTicker24h,
	},
	types.OKX: {
		KlineMessage:       okx.KlineMessage,
		AggtradesMessage:   okx.AggtradesMessage,
		TickerMessage:      okx.TickerMessage,
		LiquidationMessage: okx.LiquidationMessage,
	},
	types.Bitget: {
		KlineMessage:     bitget.KlineMessage,
		AggtradesMessage: bitget.AggtradesMessage,
		TickerMessage:    bitget.TickerMessage,
	},
	types.MEXC: {
		KlineMessage:     mexc.KlineMessage,
		AggtradesMessage: mexc.AggtradesMessage,
		FundingRate:      mexc.FundingRate,
		OpenInterest:     mexc.OpenInterest,
	},
	types.Gate: {
		AggtradesMessage: gate.AggtradesMessage,
		Depth:            gate.Depth,
	},
	types.XT: {
		AggtradesMessage: xt.AggtradesMessage,
	},
	types.Bitunix: {
		AggtradesMessage: bitunix.AggtradesMessage,
	},
	types.KCEX: {
		AggtradesMessage: kcex.AggtradesMessage,
		FundingRate:      kcex.FundingRate,
		OpenInterest:     kcex.OpenInterest,
	},
	types.BingX: {
		AggtradesMessage: bingx.AggtradesMessage,
		Depth:            bingx.Depth,
	},
	types.Hyperliquid: {
		KlineMessage:     hyperliquid.KlineMessage,
		AggtradesMessage: hyperliquid.AggtradesMessage,
		OpenInterest:     hyperliquid.OpenInterest,
		FuturesTicker24h: hyperliquid.FuturesTicker24h,
	},
}

// Binding returns the protocol binding for venue, delegating to the
// bindings package (kept separate to avoid an import cycle: socket
// depends on bindings, and registry depends on socket).
func Binding(venue types.Venue) wsengine.Binding {
	return bindings.Binding(venue)
}

// Venues returns the closed set of supported venues, in registration
// order.
func Venues() []types.Venue {
	return bindings.Venues()
}

// fixableVenues lists the venues whose bindings accept a contract-size
// table, in the same order as fixer.DefaultEndpoints.
var fixableVenues = []types.Venue{types.OKX, types.MEXC, types.XT, types.KCEX}

// WireFixer hands each fixable venue's binding a live contract-size
// table from reg, replacing the zero-valued binding bindings started
// with. Called once at startup after fixer.Registry.InitFixes, before
// any session dials out; bindings are plain structs copied into the
// bindings table, so rewiring means replacing the table entry, not
// mutating shared state.
func WireFixer(reg *fixer.Registry) {
	for _, venue := range fixableVenues {
		table := reg.Table(string(venue))
		if table == nil {
			continue
		}
		switch venue {
		case types.OKX:
			bindings.Set(venue, okx.Binding{Fixer: table})
		case types.MEXC:
			bindings.Set(venue, mexc.Binding{Fixer: table})
		case types.XT:
			bindings.Set(venue, xt.Binding{Fixer: table})
		case types.KCEX:
			bindings.Set(venue, kcex.Binding{Fixer: table})
		}
	}
}
