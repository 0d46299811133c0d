package wsengine

import "marketfeed/types"

// Binding is the per-venue protocol contract. Implementations are
// stateless and pure; all mutable state lives in the Session.
type Binding interface {
	// ConnectionURI computes the dial target from the subscription spec.
	ConnectionURI(spec types.SubscriptionSpec) (string, error)

	// SubscribePayload returns zero or more frames to send immediately
	// after connecting. Binance carries its subscription in the URI and
	// returns nil. Venues that reject batched subscriptions return one
	// element per ticker.
	SubscribePayload(spec types.SubscriptionSpec) ([]interface{}, error)

	// PingPayload returns the application-level ping frame to send every
	// pingInterval, or nil if the transport's built-in PING/PONG suffices.
	PingPayload(spec types.SubscriptionSpec) interface{}
}

// FrameDecoder is implemented by bindings that need non-default framing:
// gzip (BingX, KCEX), a contract-size fix on trade frames (OKX, MEXC, XT,
// KCEX), or a heartbeat reply (BingX's gzipped "Ping" text). A binding
// that does not implement it gets DefaultDecodeFrame (plain JSON).
type FrameDecoder interface {
	// DecodeFrame turns one raw transport frame into a value to enqueue.
	// heartbeat is true when the frame was a protocol heartbeat (textual
	// "ping"/"pong", or BingX's gzip "Ping"); value is then nil and reply,
	// if non-nil, is written back to the transport verbatim. Any other
	// frame returns (value, false, nil) or (nil, false, err) when malformed.
	DecodeFrame(raw []byte) (value interface{}, heartbeat bool, reply interface{}, err error)
}
