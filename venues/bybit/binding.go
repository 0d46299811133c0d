// Package bybit implements the Bybit venue binding, client and adapters.
package bybit

import (
	"fmt"

	"marketfeed/errs"
	"marketfeed/types"
)

const (
	spotWSURL   = "wss://stream.bybit.com/v5/public/spot"
	linearWSURL = "wss://stream.bybit.com/v5/public/linear"
)

// Binding implements wsengine.Binding for Bybit.
type Binding struct{}

func (Binding) ConnectionURI(spec types.SubscriptionSpec) (string, error) {
	if spec.Market == types.Futures {
		return linearWSURL, nil
	}
	return spotWSURL, nil
}

func topicArg(symbol, topic string, tf types.Timeframe) string {
	switch topic {
	case "klines":
		return fmt.Sprintf("kline.%s.%s", bybitInterval(tf), symbol)
	case "aggtrades":
		return fmt.Sprintf("publicTrade.%s", symbol)
	case "tickers":
		return fmt.Sprintf("tickers.%s", symbol)
	case "liquidations":
		return fmt.Sprintf("liquidation.%s", symbol)
	default:
		return symbol
	}
}

// bybitInterval maps the canonical Timeframe to Bybit's numeric-minute or
// "D"/"W"/"M" wire token.
func bybitInterval(tf types.Timeframe) string {
	switch tf {
	case types.TF1m:
		return "1"
	case types.TF3m:
		return "3"
	case types.TF5m:
		return "5"
	case types.TF15m:
		return "15"
	case types.TF30m:
		return "30"
	case types.TF1h:
		return "60"
	case types.TF2h:
		return "120"
	case types.TF4h:
		return "240"
	case types.TF6h:
		return "360"
	case types.TF12h:
		return "720"
	case types.TF1d:
		return "D"
	case types.TF1w:
		return "W"
	case types.TF1M:
		return "M"
	default:
		return ""
	}
}

func (Binding) SubscribePayload(spec types.SubscriptionSpec) ([]interface{}, error) {
	if len(spec.Tickers) == 0 {
		return nil, errs.New(errs.TickersRequired, string(types.Bybit), "bybit subscriptions require at least one ticker")
	}
	if spec.Topic == "klines" && bybitInterval(spec.Timeframe) == "" {
		return nil, errs.New(errs.TimeframeUnsupported, string(types.Bybit), fmt.Sprintf("bybit has no kline interval for %s", spec.Timeframe))
	}
	args := make([]string, 0, len(spec.Tickers))
	for _, t := range spec.Tickers {
		args = append(args, topicArg(t, spec.Topic, spec.Timeframe))
	}
	return []interface{}{map[string]interface{}{
		"op":   "subscribe",
		"args": args,
	}}, nil
}

func (Binding) PingPayload(spec types.SubscriptionSpec) interface{} {
	return map[string]string{"op": "ping"}
}
