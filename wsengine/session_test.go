package wsengine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketfeed/types"
)

// testBinding is a minimal Binding pointed at an httptest server; it
// sends no subscribe frames and uses the default JSON frame decoder.
type testBinding struct {
	uri string
}

func (b testBinding) ConnectionURI(spec types.SubscriptionSpec) (string, error) {
	return b.uri, nil
}

func (b testBinding) SubscribePayload(spec types.SubscriptionSpec) ([]interface{}, error) {
	return nil, nil
}

func (b testBinding) PingPayload(spec types.SubscriptionSpec) interface{} {
	return nil
}

func wsURL(s *httptest.Server) string {
	return "ws" + strings.TrimPrefix(s.URL, "http")
}

// TestLivenessTimeoutTriggersReconnect: a server that accepts the
// connection and never sends another frame should force the session
// through Streaming -> Reconnecting once NoMessageTimeout elapses.
func TestLivenessTimeoutTriggersReconnect(t *testing.T) {
	upgrader := websocket.Upgrader{}
	var upgrades int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		atomic.AddInt32(&upgrades, 1)
		// Hold the connection open but send nothing further.
		<-r.Context().Done()
		conn.Close()
	}))
	defer server.Close()

	spec := types.SubscriptionSpec{
		Venue:             "testvenue",
		Market:            types.Spot,
		Topic:             "aggtrades",
		NoMessageTimeout:  200 * time.Millisecond,
		ReconnectInterval: 50 * time.Millisecond,
		WorkerCount:       1,
		QueueBound:        4,
	}
	sess := New(spec, testBinding{uri: wsURL(server)}, func(interface{}) {})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, sess.Start(ctx))
	defer sess.Stop()

	require.Eventually(t, func() bool {
		return sess.State() == Streaming
	}, time.Second, 10*time.Millisecond, "session should reach Streaming")

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&upgrades) >= 2
	}, 2*time.Second, 20*time.Millisecond, "liveness timeout should force a reconnect and a second dial")
}

// TestWorkerQueueOverflowStopsSession: a callback slow enough to saturate
// the queue bound must escalate the overflow into a full session stop, not
// just log it and keep consuming. After the session settles back to Idle,
// no further callbacks may fire.
func TestWorkerQueueOverflowStopsSession(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for i := 0; i < 10; i++ {
			if conn.WriteJSON(map[string]int{"v": i}) != nil {
				return
			}
		}
		<-r.Context().Done()
	}))
	defer server.Close()

	spec := types.SubscriptionSpec{
		Venue:             "testvenue",
		Market:            types.Spot,
		Topic:             "aggtrades",
		WorkerCount:       1,
		QueueBound:        1,
		ReconnectInterval: time.Second,
	}

	var processed int32
	release := make(chan struct{})
	sess := New(spec, testBinding{uri: wsURL(server)}, func(interface{}) {
		<-release
		atomic.AddInt32(&processed, 1)
	})

	require.NoError(t, sess.Start(context.Background()))
	defer sess.Stop()

	require.Eventually(t, func() bool {
		return sess.State() == Streaming
	}, time.Second, 10*time.Millisecond, "session should reach streaming")

	close(release)

	require.Eventually(t, func() bool {
		return sess.State() == Idle
	}, 2*time.Second, 10*time.Millisecond, "queue overflow should escalate and stop the session")

	stoppedAt := atomic.LoadInt32(&processed)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, stoppedAt, atomic.LoadInt32(&processed), "no callback should fire once the session has stopped")
}
