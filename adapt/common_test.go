package adapt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketfeed/errs"
	"marketfeed/types"
)

func TestParseFloat(t *testing.T) {
	v, err := ParseFloat("binance", "price", "123.45")
	require.NoError(t, err)
	assert.Equal(t, 123.45, v)

	_, err = ParseFloat("binance", "price", "not-a-number")
	require.Error(t, err)
	var adaptErr *errs.Error
	require.ErrorAs(t, err, &adaptErr)
	assert.Equal(t, errs.AdaptFailure, adaptErr.Kind)
}

func TestRoundPercent(t *testing.T) {
	assert.Equal(t, 1.23, RoundPercent(1.2345))
	assert.Equal(t, -0.01, RoundPercent(-0.005))
	assert.Equal(t, 100.0, RoundPercent(1*100))
}

func TestIsUsdtSymbol(t *testing.T) {
	cases := map[string]bool{
		"BTCUSDT":      true,
		"BTC-USDT":     true,
		"BTC_USDT":     true,
		"BTC-USDT-SWAP": true,
		"BTCUSDC":      false,
		"ETHBTC":       false,
	}
	for symbol, want := range cases {
		assert.Equal(t, want, IsUsdtSymbol(symbol), symbol)
	}
}

// Depth sorting is invariant regardless of wire order: asks strictly
// ascending by price, bids strictly descending.
func TestSortDepth(t *testing.T) {
	d := types.Depth{
		Symbol: "BTCUSDT",
		Asks: []types.PriceLevel{
			{Price: 30001, Size: 1},
			{Price: 29999, Size: 1},
			{Price: 30000, Size: 1},
		},
		Bids: []types.PriceLevel{
			{Price: 29995, Size: 1},
			{Price: 29999, Size: 1},
			{Price: 29997, Size: 1},
		},
	}
	SortDepth(&d)

	for i := 1; i < len(d.Asks); i++ {
		assert.Less(t, d.Asks[i-1].Price, d.Asks[i].Price, "asks must be strictly ascending")
	}
	for i := 1; i < len(d.Bids); i++ {
		assert.Greater(t, d.Bids[i-1].Price, d.Bids[i].Price, "bids must be strictly descending")
	}
}

func TestParseLevels(t *testing.T) {
	rows := [][2]string{{"100.5", "2.0"}, {"101.0", "1.5"}}
	levels, err := ParseLevels("okx", "ask", rows)
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, types.PriceLevel{Price: 100.5, Size: 2.0}, levels[0])

	_, err = ParseLevels("okx", "ask", [][2]string{{"bad", "1"}})
	require.Error(t, err)
}
