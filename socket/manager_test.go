package socket

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketfeed/errs"
	"marketfeed/types"
)

func TestLiquidationsSocket_NotImplementedForUnsupportedVenue(t *testing.T) {
	m := New(types.Gate)
	_, err := m.LiquidationsSocket(context.Background(), []string{"BTC_USDT"}, func(interface{}) {}, Options{})
	require.Error(t, err)
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.NotImplemented, e.Kind)
}

func TestKlinesSocket_SupportedVenueBuildsSession(t *testing.T) {
	m := New(types.Binance)
	sess, err := m.KlinesSocket(context.Background(), types.Spot, []string{"BTCUSDT"}, types.TF1m, func(interface{}) {}, Options{})
	require.NoError(t, err)
	assert.NotNil(t, sess)
}

func TestAggtradesSocket_EveryVenueSupportsIt(t *testing.T) {
	for _, venue := range types.AllVenues {
		m := New(venue)
		_, err := m.AggtradesSocket(context.Background(), types.Spot, []string{"BTCUSDT"}, func(interface{}) {}, Options{})
		assert.NoError(t, err, "venue %s should expose an aggtrades socket", venue)
	}
}
