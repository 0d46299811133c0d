package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder_RecordConnection(t *testing.T) {
	r := NewRecorder("testvenue", "aggtrades", "spot")

	r.RecordConnection(true)
	assert.Equal(t, float64(1), testutil.ToFloat64(WSConnectionsTotal.WithLabelValues("testvenue", "aggtrades", "spot", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(WSActiveConnections.WithLabelValues("testvenue", "aggtrades", "spot")))

	r.RecordDisconnect()
	assert.Equal(t, float64(0), testutil.ToFloat64(WSActiveConnections.WithLabelValues("testvenue", "aggtrades", "spot")))

	r.RecordConnection(false)
	assert.Equal(t, float64(1), testutil.ToFloat64(WSConnectionsTotal.WithLabelValues("testvenue", "aggtrades", "spot", "failed")))
}

func TestRecorder_RecordMessageAndOverflow(t *testing.T) {
	r := NewRecorder("testvenue2", "klines", "futures")

	r.RecordMessage()
	r.RecordMessage()
	assert.Equal(t, float64(2), testutil.ToFloat64(WSMessagesTotal.WithLabelValues("testvenue2", "klines", "futures")))

	r.RecordQueueOverflow()
	assert.Equal(t, float64(1), testutil.ToFloat64(WSQueueOverflowTotal.WithLabelValues("testvenue2", "klines", "futures")))

	r.RecordReconnect()
	assert.Equal(t, float64(1), testutil.ToFloat64(WSReconnectsTotal.WithLabelValues("testvenue2", "klines", "futures")))
}
