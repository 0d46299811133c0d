// Package bindings holds the closed venue -> protocol binding map. It has
// no dependency on socket or registry so both can depend on it without
// creating an import cycle: socket.Manager.build needs a binding to
// construct a wsengine.Session, and registry needs to reach into socket
// and fixer to assemble the higher-level per-venue constructor tables.
package bindings

import (
	"sync"

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

var (
	mu sync.RWMutex

	table = map[types.Venue]wsengine.Binding{
		types.Binance:     binance.Binding{},
		types.Bybit:       bybit.Binding{},
		types.OKX:         okx.Binding{},
		types.Bitget:      bitget.Binding{},
		types.MEXC:        mexc.Binding{},
		types.Gate:        gate.Binding{},
		types.XT:          xt.Binding{},
		types.Bitunix:     bitunix.Binding{},
		types.KCEX:        kcex.Binding{},
		types.BingX:       bingx.Binding{},
		types.Hyperliquid: hyperliquid.Binding{},
	}
)

// Binding returns the protocol binding for venue. It panics on a miss to
// catch registry/type drift at construction time rather than at first
// dial.
func Binding(venue types.Venue) wsengine.Binding {
	mu.RLock()
	defer mu.RUnlock()
	b, ok := table[venue]
	if !ok {
		panic("bindings: no binding registered for venue " + string(venue))
	}
	return b
}

// Set replaces the registered binding for venue. Used at startup, once,
// to hand contract-size-fixer-equipped bindings (okx/mexc/xt/kcex) to
// venues that need one, after the fixer's background tables are live.
func Set(venue types.Venue, b wsengine.Binding) {
	mu.Lock()
	defer mu.Unlock()
	table[venue] = b
}

// Venues returns the closed set of supported venues, in registration
// order.
func Venues() []types.Venue {
	return types.AllVenues
}
