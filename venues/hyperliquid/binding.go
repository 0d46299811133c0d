// Package hyperliquid implements the Hyperliquid venue binding, client
// and adapters, layered on github.com/sonirico/go-hyperliquid for REST
// where it covers the need and hand-rolled JSON for the websocket
// protocol, which that SDK does not wrap. Hyperliquid uses one socket URI
// for both markets (it has no spot/futures split at the transport layer)
// and one subscribe frame per ticker.
package hyperliquid

import (
	"fmt"

	"marketfeed/errs"
	"marketfeed/types"
)

const wsURL = "wss://api.hyperliquid.xyz/ws"

// Binding implements wsengine.Binding for Hyperliquid.
type Binding struct{}

func (Binding) ConnectionURI(spec types.SubscriptionSpec) (string, error) {
	return wsURL, nil
}

func subscriptionType(topic string) (string, error) {
	switch topic {
	case "klines":
		return "candle", nil
	case "aggtrades":
		return "trades", nil
	default:
		return "", errs.New(errs.MarketMismatch, string(types.Hyperliquid), fmt.Sprintf("hyperliquid has no subscription type for topic %q", topic))
	}
}

func (Binding) SubscribePayload(spec types.SubscriptionSpec) ([]interface{}, error) {
	if len(spec.Tickers) == 0 {
		return nil, errs.New(errs.TickersRequired, string(types.Hyperliquid), "hyperliquid subscriptions require at least one ticker")
	}
	subType, err := subscriptionType(spec.Topic)
	if err != nil {
		return nil, err
	}

	frames := make([]interface{}, 0, len(spec.Tickers))
	for _, coin := range spec.Tickers {
		sub := map[string]interface{}{"type": subType, "coin": coin}
		if subType == "candle" {
			sub["interval"] = string(spec.Timeframe)
		}
		frames = append(frames, map[string]interface{}{
			"method":       "subscribe",
			"subscription": sub,
		})
	}
	return frames, nil
}

// PingPayload is nil: Hyperliquid relies on the transport's control-frame
// PING/PONG.
func (Binding) PingPayload(spec types.SubscriptionSpec) interface{} {
	return nil
}
