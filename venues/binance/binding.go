// Package binance implements the Binance venue binding, client and
// adapters. Binance carries its subscription in the URI itself (no
// subscribe frame) and relies on the transport's built-in PING/PONG, the
// simplest of the eleven venues.
package binance

import (
	"fmt"
	"strings"

	"marketfeed/errs"
	"marketfeed/types"
)

const (
	spotWSBase    = "wss://stream.binance.com:9443"
	futuresWSBase = "wss://fstream.binance.com"
)

// Binding implements wsengine.Binding for Binance.
type Binding struct{}

func (Binding) ConnectionURI(spec types.SubscriptionSpec) (string, error) {
	if len(spec.Tickers) == 0 {
		return "", errs.New(errs.TickersRequired, string(types.Binance), "binance streams require at least one ticker")
	}
	base := spotWSBase
	if spec.Market == types.Futures {
		base = futuresWSBase
	}

	streams := make([]string, 0, len(spec.Tickers))
	for _, t := range spec.Tickers {
		streams = append(streams, streamName(strings.ToLower(t), spec.Topic, spec.Timeframe))
	}

	if len(streams) == 1 {
		return fmt.Sprintf("%s/ws/%s", base, streams[0]), nil
	}
	return fmt.Sprintf("%s/stream?streams=%s", base, strings.Join(streams, "/")), nil
}

func streamName(lowerSymbol, topic string, tf types.Timeframe) string {
	switch topic {
	case "klines":
		return fmt.Sprintf("%s@kline_%s", lowerSymbol, tf)
	case "aggtrades":
		return fmt.Sprintf("%s@aggTrade", lowerSymbol)
	case "tickers":
		return fmt.Sprintf("%s@ticker", lowerSymbol)
	case "liquidations":
		return fmt.Sprintf("%s@forceOrder", lowerSymbol)
	default:
		return lowerSymbol
	}
}

// SubscribePayload is empty: the subscription is carried in the URI.
func (Binding) SubscribePayload(spec types.SubscriptionSpec) ([]interface{}, error) {
	return nil, nil
}

// PingPayload is nil: gorilla/websocket answers control-frame PING/PONG
// automatically, and Binance never sends an application-level heartbeat.
func (Binding) PingPayload(spec types.SubscriptionSpec) interface{} {
	return nil
}
