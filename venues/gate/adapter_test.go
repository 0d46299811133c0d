package gate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggtradesMessage_Spot(t *testing.T) {
	raw := json.RawMessage(`{
		"channel": "spot.trades",
		"event": "update",
		"result": {"create_time_ms":"1700000000123","currency_pair":"BTC_USDT","side":"sell","price":"50000.1","amount":"0.5"}
	}`)
	out, err := AggtradesMessage(raw)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "BTC_USDT", out[0].S)
	assert.Equal(t, 50000.1, out[0].P)
	assert.Equal(t, 0.5, out[0].V)
}

func TestAggtradesMessage_Futures(t *testing.T) {
	raw := json.RawMessage(`{
		"channel": "futures.trades",
		"event": "update",
		"result": [{"create_time_ms":1700000000,"contract":"BTC_USDT","size":-3,"price":"50000"}]
	}`)
	out, err := AggtradesMessage(raw)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 3.0, out[0].V)
}

func TestDepth(t *testing.T) {
	raw := json.RawMessage(`{
		"channel": "spot.order_book",
		"event": "update",
		"result": {"s":"BTC_USDT","asks":[["50001.0","1.0"],["50000.5","2.0"]],"bids":[["49999.0","1.5"],["50000.0","2.5"]]}
	}`)
	d, err := Depth(raw)
	require.NoError(t, err)
	assert.Equal(t, "BTC_USDT", d.Symbol)
	require.Len(t, d.Asks, 2)
	require.Len(t, d.Bids, 2)
	assert.True(t, d.Asks[0].Price < d.Asks[1].Price, "asks must sort ascending")
	assert.True(t, d.Bids[0].Price > d.Bids[1].Price, "bids must sort descending")
}

func TestDepth_MalformedPayload(t *testing.T) {
	_, err := Depth(json.RawMessage(`not json`))
	require.Error(t, err)
}
