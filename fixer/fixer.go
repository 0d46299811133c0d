// Package fixer implements the contract-size correction subsystem.
// OKX SWAP, MEXC futures, XT futures and KCEX futures report size fields
// in contracts, not base-asset units; one contract is a venue-declared
// number of base-asset units that must be fetched once and refreshed
// hourly.
package fixer

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"marketfeed/errs"
	"marketfeed/httpclient"
	"marketfeed/logger"
)

const refreshInterval = time.Hour

// Endpoint describes how to fetch one venue's contract-size table.
type Endpoint struct {
	Venue   string
	URL     string
	// Extract parses the raw response body into symbol -> contract size.
	Extract func(raw json.RawMessage) (map[string]float64, error)
}

// Table is a long-lived, periodically refreshed symbol->contractSize map
// for one venue.
type Table struct {
	venue    string
	endpoint Endpoint
	client   *httpclient.Client

	mu    sync.RWMutex
	sizes map[string]float64
	ready chan struct{}
	once  sync.Once
}

// NewTable constructs a Table and starts its background refresh loop.
// Callers must call WaitReady before relying on Lookup returning
// populated data.
func NewTable(ctx context.Context, endpoint Endpoint) *Table {
	t := &Table{
		venue:    endpoint.Venue,
		endpoint: endpoint,
		client:   httpclient.New(endpoint.Venue, ""),
		sizes:    make(map[string]float64),
		ready:    make(chan struct{}),
	}
	go t.refreshLoop(ctx)
	return t
}

func (t *Table) refreshLoop(ctx context.Context) {
	for {
		if err := t.refresh(ctx); err != nil {
			logger.Log.Warnf("%s: contract size refresh failed: %v", t.venue, err)
		} else {
			t.mu.RLock()
			n := len(t.sizes)
			t.mu.RUnlock()
			if n > 0 {
				t.once.Do(func() { close(t.ready) })
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(refreshInterval):
		}
	}
}

func (t *Table) refresh(ctx context.Context) error {
	raw, err := t.client.Request(ctx, t.endpoint.URL, httpclient.Options{})
	if err != nil {
		return err
	}
	sizes, err := t.endpoint.Extract(raw)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.sizes = sizes
	t.mu.Unlock()
	return nil
}

// NewTableForTest builds a Table pre-populated with sizes and no
// background refresh loop, for venue adapter tests that need to exercise
// AggtradeFix/OpenInterestFix/TickerDailyFix without a live HTTP call.
func NewTableForTest(venue string, sizes map[string]float64) *Table {
	t := &Table{venue: venue, sizes: sizes, ready: make(chan struct{})}
	if len(sizes) > 0 {
		t.once.Do(func() { close(t.ready) })
	}
	return t
}

// WaitReady blocks until the table has at least one entry or timeout
// elapses, in which case it raises errs.Timeout.
func (t *Table) WaitReady(timeout time.Duration) error {
	select {
	case <-t.ready:
		return nil
	case <-time.After(timeout):
		return errs.New(errs.Timeout, t.venue, "contract size table not ready")
	}
}

// Lookup returns the contract size for symbol and whether it was found.
func (t *Table) Lookup(symbol string) (float64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	size, ok := t.sizes[symbol]
	return size, ok
}

// AggtradeFix multiplies the size field of a decoded aggtrade value by
// the symbol's contract size. Unknown symbols are logged and left
// unchanged.
func (t *Table) AggtradeFix(symbol string, size float64) float64 {
	return t.scale(symbol, size)
}

// OpenInterestFix multiplies an open-interest value by the symbol's
// contract size.
func (t *Table) OpenInterestFix(symbol string, value float64) float64 {
	return t.scale(symbol, value)
}

// TickerDailyFix multiplies a 24h volume value by the symbol's contract
// size.
func (t *Table) TickerDailyFix(symbol string, volume float64) float64 {
	return t.scale(symbol, volume)
}

func (t *Table) scale(symbol string, value float64) float64 {
	size, ok := t.Lookup(symbol)
	if !ok {
		logger.Log.Debugf("%s: no contract size for %s, leaving value unchanged", t.venue, symbol)
		return value
	}
	return value * size
}

// Registry holds one Table per venue that needs contract-size correction.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]*Table)}
}

// InitFixes fans out one background Table per endpoint, registering each
// under its venue name.
func (r *Registry) InitFixes(ctx context.Context, endpoints []Endpoint) {
	for _, ep := range endpoints {
		table := NewTable(ctx, ep)
		r.mu.Lock()
		r.tables[ep.Venue] = table
		r.mu.Unlock()
	}
}

// Table returns the Table registered for venue, or nil if none was
// registered (venues that report base-asset units natively never need one).
func (r *Registry) Table(venue string) *Table {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tables[venue]
}

// DefaultEndpoints is the endpoint table for the four venues that report
// contract-denominated sizes.
var DefaultEndpoints = []Endpoint{
	{
		Venue: "okx",
		URL:   "https://www.okx.com/api/v5/public/instruments?instType=SWAP",
		Extract: func(raw json.RawMessage) (map[string]float64, error) {
			return extractArrayField(raw, "data", "instId", "ctVal")
		},
	},
	{
		Venue: "mexc",
		URL:   "https://contract.mexc.com/api/v1/contract/detail",
		Extract: func(raw json.RawMessage) (map[string]float64, error) {
			return extractArrayField(raw, "data", "symbol", "contractSize")
		},
	},
	{
		Venue: "xt",
		URL:   "https://fapi.xt.com/future/market/v3/public/symbol/list",
		Extract: func(raw json.RawMessage) (map[string]float64, error) {
			var envelope struct {
				Result struct {
					Symbols []struct {
						Symbol       string  `json:"symbol"`
						ContractSize float64 `json:"contractSize,string"`
					} `json:"symbols"`
				} `json:"result"`
			}
			if err := json.Unmarshal(raw, &envelope); err != nil {
				return nil, errs.Wrap(errs.AdaptFailure, "xt", "failed to parse symbol list", err)
			}
			out := make(map[string]float64, len(envelope.Result.Symbols))
			for _, s := range envelope.Result.Symbols {
				out[s.Symbol] = s.ContractSize
			}
			return out, nil
		},
	},
	{
		Venue: "kcex",
		URL:   "https://www.kcex.com/fapi/v1/contract/detailV2?client=web",
		Extract: func(raw json.RawMessage) (map[string]float64, error) {
			return extractArrayField(raw, "data", "symbol", "cs")
		},
	},
}

// extractArrayField parses {listKey: [{symbolKey, sizeKey}, ...]} into a
// symbol->size map, tolerating string- or number-encoded size values.
func extractArrayField(raw json.RawMessage, listKey, symbolKey, sizeKey string) (map[string]float64, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, "", "failed to parse contract detail envelope", err)
	}
	var rows []map[string]interface{}
	if err := json.Unmarshal(envelope[listKey], &rows); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, "", "failed to parse contract detail rows", err)
	}
	out := make(map[string]float64, len(rows))
	for _, row := range rows {
		symbol, _ := row[symbolKey].(string)
		if symbol == "" {
			continue
		}
		switch v := row[sizeKey].(type) {
		case float64:
			out[symbol] = v
		case string:
			if f, err := json.Number(v).Float64(); err == nil {
				out[symbol] = f
			}
		}
	}
	return out, nil
}
