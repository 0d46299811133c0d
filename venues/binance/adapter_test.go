package binance

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicker24h(t *testing.T) {
	raw := json.RawMessage(`[
		{"symbol":"BTCUSDT","priceChangePercent":"1.2345","quoteVolume":"98765.4"},
		{"symbol":"ETHBTC","priceChangePercent":"0.5","quoteVolume":"10"}
	]`)

	t.Run("no filter keeps every symbol", func(t *testing.T) {
		out, err := Ticker24h(raw, false)
		require.NoError(t, err)
		assert.Len(t, out, 2)
	})

	t.Run("onlyUsdt filters non-USDT pairs", func(t *testing.T) {
		out, err := Ticker24h(raw, true)
		require.NoError(t, err)
		require.Len(t, out, 1)
		btc, ok := out["BTCUSDT"]
		require.True(t, ok)
		assert.Equal(t, 1.23, btc.P)
		assert.Equal(t, 98765.4, btc.V)
	})
}

// Adapters are pure: calling twice on the same input yields the same
// result, with no hidden state carried between calls.
func TestTicker24h_Pure(t *testing.T) {
	raw := json.RawMessage(`[{"symbol":"BTCUSDT","priceChangePercent":"2.0","quoteVolume":"1"}]`)
	first, err := Ticker24h(raw, false)
	require.NoError(t, err)
	second, err := Ticker24h(raw, false)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTicker24h_MalformedPayload(t *testing.T) {
	_, err := Ticker24h(json.RawMessage(`not json`), false)
	require.Error(t, err)
}

func TestKlineMessage(t *testing.T) {
	raw := json.RawMessage(`{
		"e":"kline","E":123456,"s":"BTCUSDT",
		"k":{"t":1000,"T":1999,"i":"1m","o":"100.0","c":"101.0","h":"102.0","l":"99.0","v":"10.5","x":true}
	}`)
	kl, err := KlineMessage(raw)
	require.NoError(t, err)
	require.Len(t, kl, 1)
	k := kl[0]
	assert.Equal(t, "BTCUSDT", k.S)
	assert.Equal(t, int64(1000), k.T)
	assert.Equal(t, 100.0, k.O)
	assert.Equal(t, 101.0, k.C)
	assert.True(t, k.Closed)
}

func TestDepth_SortsLevels(t *testing.T) {
	raw := json.RawMessage(`{
		"asks":[["30001","1"],["29999","1"]],
		"bids":[["29995","1"],["29999","1"]]
	}`)
	d, err := Depth(raw, "BTCUSDT")
	require.NoError(t, err)
	require.Len(t, d.Asks, 2)
	assert.Less(t, d.Asks[0].Price, d.Asks[1].Price)
	assert.Greater(t, d.Bids[0].Price, d.Bids[1].Price)
}
