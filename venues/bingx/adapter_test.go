package bingx

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketfeed/types"
)

func TestAggtradesMessage(t *testing.T) {
	raw := json.RawMessage(`{"dataType":"BTC-USDT@trade","data":{"s":"BTC-USDT","T":1700000000000,"p":"50000.1","q":"0.2","m":true}}`)
	out, err := AggtradesMessage(raw)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "BTC-USDT", out[0].S)
	assert.Equal(t, types.Sell, out[0].Side)
}

func TestDepth(t *testing.T) {
	raw := json.RawMessage(`{"code":0,"dataType":"BTC-USDT@depth20@100ms","data":{"asks":[["50001.0","1.0"],["50000.5","2.0"]],"bids":[["49999.0","1.5"],["50000.0","2.5"]]}}`)
	d, err := Depth(raw)
	require.NoError(t, err)
	assert.Equal(t, "BTC-USDT", d.Symbol)
	require.Len(t, d.Asks, 2)
	require.Len(t, d.Bids, 2)
	assert.True(t, d.Asks[0].Price < d.Asks[1].Price, "asks must sort ascending")
	assert.True(t, d.Bids[0].Price > d.Bids[1].Price, "bids must sort descending")
}

func TestDepth_MalformedPayload(t *testing.T) {
	_, err := Depth(json.RawMessage(`not json`))
	require.Error(t, err)
}
