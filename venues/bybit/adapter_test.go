package bybit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketfeed/types"
)

func TestKlineMessage(t *testing.T) {
	raw := json.RawMessage(`{
		"topic":"kline.1.BTCUSDT",
		"data":[{"start":1000,"end":1999,"interval":"1","open":"100","close":"101","high":"102","low":"99","turnover":"5","confirm":true}]
	}`)
	kl, err := KlineMessage(raw)
	require.NoError(t, err)
	require.Len(t, kl, 1)
	k := kl[0]
	assert.Equal(t, "BTCUSDT", k.S)
	assert.Equal(t, int64(1000), k.T)
	assert.Equal(t, 100.0, k.O)
	assert.True(t, k.Closed)
}

func TestTopicSuffix(t *testing.T) {
	assert.Equal(t, "BTCUSDT", topicSuffix("kline.1.BTCUSDT"))
	assert.Equal(t, "BTCUSDT", topicSuffix("tickers.BTCUSDT"))
	assert.Equal(t, "noperiod", topicSuffix("noperiod"))
}

func TestAggtradesMessage_SideMapping(t *testing.T) {
	raw := json.RawMessage(`{
		"topic":"publicTrade.BTCUSDT",
		"data":[{"T":1000,"s":"BTCUSDT","S":"Sell","p":"100","v":"1"}]
	}`)
	trades, err := AggtradesMessage(raw)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, types.Sell, trades[0].Side)
}

func TestTicker24h_RoundsPercent(t *testing.T) {
	raw := json.RawMessage(`{"result":{"list":[{"symbol":"BTCUSDT","price24hPcnt":"0.012345","turnover24h":"1000"}]}}`)
	out, err := Ticker24h(raw, true)
	require.NoError(t, err)
	require.Contains(t, out, "BTCUSDT")
	assert.Equal(t, 1.23, out["BTCUSDT"].P)
}
