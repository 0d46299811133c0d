package hyperliquid

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketfeed/errs"
)

// metaAndAssetCtxs carries no shared join key between its two arrays;
// the adapter must zip them positionally and fail closed rather than
// silently misalign an asset with the wrong context.
func TestAdaptHyperliquidPairs_PositionalZip(t *testing.T) {
	raw := json.RawMessage(`[
		{"universe":[{"name":"BTC"},{"name":"ETH"}]},
		[
			{"markPx":"60000","openInterest":"100","prevDayPx":"59000","dayNtlVlm":"1000000"},
			{"markPx":"3000","openInterest":"5000","prevDayPx":"2950","dayNtlVlm":"500000"}
		]
	]`)

	universe, ctxs, err := adaptHyperliquidPairs(raw)
	require.NoError(t, err)
	require.Len(t, universe, 2)
	require.Len(t, ctxs, 2)
	assert.Equal(t, "BTC", universe[0].Name)
	assert.Equal(t, "60000", ctxs[0].MarkPx)
	assert.Equal(t, "ETH", universe[1].Name)
	assert.Equal(t, "3000", ctxs[1].MarkPx)
}

func TestAdaptHyperliquidPairs_LengthMismatchFailsClosed(t *testing.T) {
	raw := json.RawMessage(`[
		{"universe":[{"name":"BTC"},{"name":"ETH"}]},
		[{"markPx":"60000","openInterest":"100","prevDayPx":"59000","dayNtlVlm":"1000000"}]
	]`)

	_, _, err := adaptHyperliquidPairs(raw)
	require.Error(t, err)
	var adaptErr *errs.Error
	require.ErrorAs(t, err, &adaptErr)
	assert.Equal(t, errs.AdaptFailure, adaptErr.Kind)
}

func TestFuturesTicker24h_PercentFromMarkAndPrevDay(t *testing.T) {
	raw := json.RawMessage(`[
		{"universe":[{"name":"BTC"}]},
		[{"markPx":"110","openInterest":"1","prevDayPx":"100","dayNtlVlm":"5000"}]
	]`)
	out, err := FuturesTicker24h(raw, false)
	require.NoError(t, err)
	require.Contains(t, out, "BTC")
	assert.Equal(t, 10.0, out["BTC"].P)
	assert.Equal(t, 5000.0, out["BTC"].V)
}

func TestOpenInterest_PositionalZip(t *testing.T) {
	raw := json.RawMessage(`[
		{"universe":[{"name":"SOL"}]},
		[{"markPx":"150","openInterest":"42.5","prevDayPx":"149","dayNtlVlm":"1"}]
	]`)
	out, err := OpenInterest(raw)
	require.NoError(t, err)
	require.Contains(t, out, "SOL")
	assert.Equal(t, 42.5, out["SOL"].V)
}
