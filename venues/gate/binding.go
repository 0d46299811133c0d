// Package gate implements the Gate.io venue binding, client and
// adapters. Gate has no kline or ticker public socket per the
// implemented-socket matrix; only aggtrades is wired.
package gate

import (
	"fmt"
	"time"

	"marketfeed/errs"
	"marketfeed/types"
)

const (
	spotWSURL    = "wss://api.gateio.ws/ws/v4/"
	futuresWSURL = "wss://fx-ws.gateio.ws/v4/ws/usdt"
)

// Binding implements wsengine.Binding for Gate.
type Binding struct{}

func (Binding) ConnectionURI(spec types.SubscriptionSpec) (string, error) {
	if spec.Market == types.Futures {
		return futuresWSURL, nil
	}
	return spotWSURL, nil
}

func channelName(market types.MarketType, topic string) (string, error) {
	if topic != "aggtrades" {
		return "", errs.New(errs.MarketMismatch, string(types.Gate), fmt.Sprintf("gate has no channel for topic %q", topic))
	}
	if market == types.Futures {
		return "futures.trades", nil
	}
	return "spot.trades", nil
}

func (Binding) SubscribePayload(spec types.SubscriptionSpec) ([]interface{}, error) {
	if len(spec.Tickers) == 0 {
		return nil, errs.New(errs.TickersRequired, string(types.Gate), "gate subscriptions require at least one ticker")
	}
	channel, err := channelName(spec.Market, spec.Topic)
	if err != nil {
		return nil, err
	}
	payload := make([]string, len(spec.Tickers))
	copy(payload, spec.Tickers)

	return []interface{}{map[string]interface{}{
		"time":    time.Now().Unix(),
		"channel": channel,
		"event":   "subscribe",
		"payload": payload,
	}}, nil
}

func (Binding) PingPayload(spec types.SubscriptionSpec) interface{} {
	channel := "spot.ping"
	if spec.Market == types.Futures {
		channel = "futures.ping"
	}
	return map[string]interface{}{
		"time":    time.Now().Unix(),
		"channel": channel,
	}
}
