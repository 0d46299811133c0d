// Package bitget implements the Bitget venue binding, client and
// adapters. Bitget uses one URL for both spot and futures, distinguished
// by the instType field in each subscribe arg.
package bitget

import (
	"fmt"

	"marketfeed/errs"
	"marketfeed/types"
)

const wsURL = "wss://ws.bitget.com/v2/ws/public"

// Binding implements wsengine.Binding for Bitget.
type Binding struct{}

func (Binding) ConnectionURI(spec types.SubscriptionSpec) (string, error) {
	return wsURL, nil
}

func instType(market types.MarketType) string {
	if market == types.Futures {
		return "USDT-FUTURES"
	}
	return "SPOT"
}

func channelName(topic string) (string, error) {
	switch topic {
	case "aggtrades":
		return "trade", nil
	case "tickers":
		return "ticker", nil
	default:
		return "", errs.New(errs.MarketMismatch, string(types.Bitget), fmt.Sprintf("bitget has no channel for topic %q", topic))
	}
}

func (Binding) SubscribePayload(spec types.SubscriptionSpec) ([]interface{}, error) {
	if len(spec.Tickers) == 0 {
		return nil, errs.New(errs.TickersRequired, string(types.Bitget), "bitget subscriptions require at least one ticker")
	}
	channel := "candle" + string(spec.Timeframe)
	if spec.Topic != "klines" {
		var err error
		channel, err = channelName(spec.Topic)
		if err != nil {
			return nil, err
		}
	}

	args := make([]map[string]string, 0, len(spec.Tickers))
	for _, t := range spec.Tickers {
		args = append(args, map[string]string{
			"instType": instType(spec.Market),
			"channel":  channel,
			"instId":   t,
		})
	}
	return []interface{}{map[string]interface{}{
		"op":   "subscribe",
		"args": args,
	}}, nil
}

// PingPayload is the literal string "ping".
func (Binding) PingPayload(spec types.SubscriptionSpec) interface{} {
	return "ping"
}
