// Package bitunix implements the Bitunix venue binding, client and
// adapters. Bitunix is futures-only; spot
// subscriptions fail with MarketMismatch.
package bitunix

import (
	"fmt"
	"time"

	"marketfeed/errs"
	"marketfeed/types"
)

const futuresWSURL = "wss://fapi.bitunix.com/public/"

// Binding implements wsengine.Binding for Bitunix.
type Binding struct{}

func (Binding) ConnectionURI(spec types.SubscriptionSpec) (string, error) {
	if spec.Market != types.Futures {
		return "", errs.New(errs.MarketMismatch, string(types.Bitunix), "bitunix only offers a futures public socket")
	}
	return futuresWSURL, nil
}

func channelName(topic string) (string, error) {
	if topic != "aggtrades" {
		return "", errs.New(errs.MarketMismatch, string(types.Bitunix), fmt.Sprintf("bitunix has no channel for topic %q", topic))
	}
	return "trade", nil
}

func (Binding) SubscribePayload(spec types.SubscriptionSpec) ([]interface{}, error) {
	if len(spec.Tickers) == 0 {
		return nil, errs.New(errs.TickersRequired, string(types.Bitunix), "bitunix subscriptions require at least one ticker")
	}
	channel, err := channelName(spec.Topic)
	if err != nil {
		return nil, err
	}

	args := make([]map[string]string, 0, len(spec.Tickers))
	for _, t := range spec.Tickers {
		args = append(args, map[string]string{"symbol": t, "ch": channel})
	}
	return []interface{}{map[string]interface{}{
		"op":   "subscribe",
		"args": args,
	}}, nil
}

func (Binding) PingPayload(spec types.SubscriptionSpec) interface{} {
	return map[string]interface{}{
		"op":   "ping",
		"ping": time.Now().Unix(),
	}
}
