package okx

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketfeed/fixer"
	"marketfeed/types"
)

func TestAggtradesMessage_SideMapping(t *testing.T) {
	raw := json.RawMessage(`{
		"arg":{"channel":"trades-all"},
		"data":[{"instId":"BTC-USDT-SWAP","px":"100","sz":"3","side":"sell","ts":"1000"}]
	}`)
	trades, err := AggtradesMessage(raw)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, types.Sell, trades[0].Side)
	assert.Equal(t, 3.0, trades[0].V)
}

// OKX SWAP reports trade size in contracts, not base-asset units; the
// contract-size fixer must be applied after adapting before the value is
// trustworthy.
func TestAggtradesMessage_ContractSizeFix(t *testing.T) {
	raw := json.RawMessage(`{
		"arg":{"channel":"trades-all"},
		"data":[{"instId":"BTC-USDT-SWAP","px":"100","sz":"3","side":"buy","ts":"1000"}]
	}`)
	trades, err := AggtradesMessage(raw)
	require.NoError(t, err)
	require.Len(t, trades, 1)

	table := fixer.NewTableForTest("okx", map[string]float64{"BTC-USDT-SWAP": 0.01})
	fixed := table.AggtradeFix(trades[0].S, trades[0].V)
	assert.Equal(t, 0.03, fixed)
}

func TestAggtradesMessage_UnknownSymbolLeftUnchanged(t *testing.T) {
	table := fixer.NewTableForTest("okx", map[string]float64{})
	assert.Equal(t, 3.0, table.AggtradeFix("UNKNOWN-SWAP", 3.0))
}
