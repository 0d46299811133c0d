// Package wsengine implements the resilient WebSocket session: a
// single-connection, topic-scoped consumer that reconnects forever,
// watches for silent connection death, and fans inbound frames out to a
// bounded worker pool.
package wsengine

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"marketfeed/errs"
	"marketfeed/logger"
	"marketfeed/metrics"
	"marketfeed/types"
)

// State is one of the session's four (plus Stopping) lifecycle states.
type State int

const (
	Idle State = iota
	Running
	Connecting
	Streaming
	Reconnecting
	Stopping
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Connecting:
		return "connecting"
	case Streaming:
		return "streaming"
	case Reconnecting:
		return "reconnecting"
	case Stopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// Callback is invoked by a worker for every decoded inbound frame.
type Callback func(value interface{})

const (
	defaultPingInterval     = 30 * time.Second
	defaultReconnectDelay   = 30 * time.Second
	defaultWorkerCount      = 3
	defaultQueueBound       = 100
	defaultNoMessageTimeout = 60 * time.Second
	defaultHandshakeTimeout = 10 * time.Second
)

// Session is one resilient, topic-scoped WebSocket consumer. Construction
// parameters are immutable after New; the only mutable state is the
// lifecycle machinery below, all guarded by mu.
type Session struct {
	spec    types.SubscriptionSpec
	binding Binding
	cb      Callback

	mu    sync.Mutex
	state State

	queue      chan interface{}
	cancel     context.CancelFunc
	runnerDone chan struct{}
	wg         sync.WaitGroup

	lastMessageTime time.Time
	lmtMu           sync.Mutex

	rec *metrics.Recorder
}

// New constructs a Session. Zero-valued fields in spec fall back to the
// defaults documented in the component design: 30s ping interval, 30s
// reconnect delay, 3 workers, a 100-item queue bound, and a 60s
// no-message liveness timeout.
func New(spec types.SubscriptionSpec, binding Binding, cb Callback) *Session {
	if spec.PingInterval == 0 {
		spec.PingInterval = defaultPingInterval
	}
	if spec.ReconnectInterval == 0 {
		spec.ReconnectInterval = defaultReconnectDelay
	}
	if spec.WorkerCount == 0 {
		spec.WorkerCount = defaultWorkerCount
	}
	if spec.QueueBound == 0 {
		spec.QueueBound = defaultQueueBound
	}
	if spec.NoMessageTimeout == 0 {
		spec.NoMessageTimeout = defaultNoMessageTimeout
	}
	return &Session{
		spec:    spec,
		binding: binding,
		cb:      cb,
		state:   Idle,
		rec:     metrics.NewRecorder(string(spec.Venue), spec.Topic, string(spec.Market)),
	}
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start transitions Idle -> Running and begins the connect loop plus the
// worker pool in the background. Starting from any non-Idle state is a
// precondition error.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != Idle {
		s.mu.Unlock()
		return errs.New(errs.AdaptFailure, string(s.spec.Venue), fmt.Sprintf("start called from state %s, want idle", s.state))
	}
	s.state = Running
	s.queue = make(chan interface{}, s.spec.QueueBound)
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.runnerDone = make(chan struct{})
	s.mu.Unlock()

	sessionLog := logger.NewSession(string(s.spec.Venue), string(s.spec.Market), s.spec.Topic)
	s.runLog(sessionLog, "session starting")

	s.wg.Add(s.spec.WorkerCount)
	for i := 0; i < s.spec.WorkerCount; i++ {
		go s.worker(runCtx, sessionLog)
	}
	go s.connectLoop(runCtx, sessionLog)

	return nil
}

// Stop is idempotent: it clears the active flag, cancels the connect
// loop and workers, and waits for the runner to acknowledge before
// returning. It never raises for a normal shutdown.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.state == Idle || s.state == Stopping {
		s.mu.Unlock()
		return
	}
	s.state = Stopping
	cancel := s.cancel
	done := s.runnerDone
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
	s.wg.Wait()

	s.mu.Lock()
	s.state = Idle
	s.mu.Unlock()
}

// escalate tears the session down from inside a worker, the same way an
// external Stop() would, so a condition a worker alone can detect (queue
// overflow) still forces connectLoop and the rest of the pool to exit.
func (s *Session) escalate() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	if s.state != Stopping {
		s.state = st
	}
	s.mu.Unlock()
}

func (s *Session) seenMessage() {
	s.lmtMu.Lock()
	s.lastMessageTime = time.Now()
	s.lmtMu.Unlock()
}

func (s *Session) sinceLastMessage() time.Duration {
	s.lmtMu.Lock()
	defer s.lmtMu.Unlock()
	return time.Since(s.lastMessageTime)
}

// connectLoop connects, spawns the reader plus ping/liveness watchers,
// waits for the first fault, tears down, sleeps reconnectDelay, and
// repeats forever until the context is canceled.
func (s *Session) connectLoop(ctx context.Context, log zerolog.Logger) {
	defer close(s.runnerDone)
	defer s.setState(Idle)

	for {
		if ctx.Err() != nil {
			return
		}
		s.setState(Connecting)

		conn, err := s.dial(ctx)
		if err != nil {
			s.rec.RecordConnection(false)
			s.runLog(log, fmt.Sprintf("dial failed: %v", err))
			if !sleepOrDone(ctx, s.spec.ReconnectInterval) {
				return
			}
			continue
		}

		if err := s.sendSubscriptions(conn); err != nil {
			s.rec.RecordConnection(false)
			s.runLog(log, fmt.Sprintf("subscribe failed: %v", err))
			conn.Close()
			if !sleepOrDone(ctx, s.spec.ReconnectInterval) {
				return
			}
			continue
		}
		s.rec.RecordConnection(true)

		s.seenMessage()
		s.setState(Streaming)

		epochCtx, epochCancel := context.WithCancel(ctx)
		fault := make(chan error, 3)

		go s.readLoop(epochCtx, conn, fault, log)
		if s.binding.PingPayload(s.spec) != nil {
			go s.pingLoop(epochCtx, conn, fault)
		}
		if s.spec.NoMessageTimeout > 0 {
			go s.livenessLoop(epochCtx, fault)
		}

		select {
		case <-ctx.Done():
			epochCancel()
			conn.Close()
			s.rec.RecordDisconnect()
			s.setState(Idle)
			return
		case faultErr := <-fault:
			epochCancel()
			conn.Close()
			s.rec.RecordDisconnect()
			if faultErr != nil {
				s.runLog(log, fmt.Sprintf("session fault: %v", faultErr))
			}
		}

		s.setState(Reconnecting)
		s.rec.RecordReconnect()
		if !sleepOrDone(ctx, s.spec.ReconnectInterval) {
			return
		}
	}
}

func (s *Session) dial(ctx context.Context) (*websocket.Conn, error) {
	uri, err := s.binding.ConnectionURI(s.spec)
	if err != nil {
		return nil, err
	}
	dialer := websocket.Dialer{HandshakeTimeout: defaultHandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, uri, nil)
	if err != nil {
		return nil, errs.Wrap(errs.Timeout, string(s.spec.Venue), "dial failed", err)
	}
	return conn, nil
}

func (s *Session) sendSubscriptions(conn *websocket.Conn) error {
	payloads, err := s.binding.SubscribePayload(s.spec)
	if err != nil {
		return err
	}
	for _, p := range payloads {
		if err := conn.WriteJSON(p); err != nil {
			return errs.Wrap(errs.Timeout, string(s.spec.Venue), "failed to send subscribe frame", err)
		}
	}
	return nil
}

func (s *Session) readLoop(ctx context.Context, conn *websocket.Conn, fault chan<- error, log zerolog.Logger) {
	for {
		if ctx.Err() != nil {
			return
		}
		_, raw, err := conn.ReadMessage()
		if err != nil {
			select {
			case fault <- err:
			default:
			}
			return
		}
		s.seenMessage()

		value, heartbeat, reply, decodeErr := s.decodeFrame(raw)
		if decodeErr != nil {
			log.Error().Err(decodeErr).Msg("malformed frame, skipping")
			continue
		}
		if heartbeat {
			if reply != nil {
				_ = writePingPayload(conn, reply)
			}
			continue
		}
		if value == nil {
			continue
		}
		s.rec.RecordMessage()

		select {
		case s.queue <- value:
		case <-ctx.Done():
			return
		}
	}
}

func (s *Session) decodeFrame(raw []byte) (value interface{}, heartbeat bool, reply interface{}, err error) {
	if fd, ok := s.binding.(FrameDecoder); ok {
		return fd.DecodeFrame(raw)
	}
	return DefaultDecodeFrame(raw)
}

// DefaultDecodeFrame is the plain-JSON decoder used by bindings that do not
// implement FrameDecoder. Venue bindings that need to special-case one
// channel (contract-size fixing, for example) fall back to it for every
// other frame shape.
func DefaultDecodeFrame(raw []byte) (interface{}, bool, interface{}, error) {
	trimmed := string(raw)
	if trimmed == "ping" || trimmed == "pong" || trimmed == "Ping" || trimmed == "Pong" {
		reply := map[bool]string{true: "pong"}[trimmed == "ping" || trimmed == "Ping"]
		if reply == "" {
			return nil, true, nil, nil
		}
		return nil, true, reply, nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false, nil, errs.Wrap(errs.AdaptFailure, "", "failed to decode frame", err)
	}
	return v, false, nil, nil
}

func (s *Session) pingLoop(ctx context.Context, conn *websocket.Conn, fault chan<- error) {
	ticker := time.NewTicker(s.spec.PingInterval)
	defer ticker.Stop()
	payload := s.binding.PingPayload(s.spec)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := writePingPayload(conn, payload); err != nil {
				logger.Log.Warnf("%s: ping write failed: %v", s.spec.Venue, err)
			}
		}
	}
}

// writePingPayload sends a string payload as a raw text frame (Bitget and
// XT's literal "ping") and anything else as JSON.
func writePingPayload(conn *websocket.Conn, payload interface{}) error {
	if text, ok := payload.(string); ok {
		return conn.WriteMessage(websocket.TextMessage, []byte(text))
	}
	return conn.WriteJSON(payload)
}

func (s *Session) livenessLoop(ctx context.Context, fault chan<- error) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.sinceLastMessage() > s.spec.NoMessageTimeout {
				select {
				case fault <- errs.New(errs.Timeout, string(s.spec.Venue), "no message received within liveness window"):
				default:
				}
				return
			}
		}
	}
}

// worker pops decoded frames off the queue and invokes the caller's
// callback, recovering from callback panics so one bad callback never
// kills the worker.
func (s *Session) worker(ctx context.Context, log zerolog.Logger) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case item, ok := <-s.queue:
			if !ok {
				return
			}
			if len(s.queue) >= s.spec.QueueBound {
				s.rec.RecordQueueOverflow()
				overflow := errs.New(errs.QueueOverflow, string(s.spec.Venue), fmt.Sprintf("queue depth at bound %d, callback too slow for %s", s.spec.QueueBound, s.spec.Topic))
				s.runLog(log, overflow.Error())
				s.invokeCallback(item)
				s.escalate()
				return
			}
			s.invokeCallback(item)
		}
	}
}

func (s *Session) invokeCallback(item interface{}) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Errorf("%s/%s: callback panic: %v", s.spec.Venue, s.spec.Topic, r)
		}
	}()
	s.cb(item)
}

func (s *Session) runLog(log zerolog.Logger, msg string) {
	log.Info().Msg(msg)
}

func sleepOrDone(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
