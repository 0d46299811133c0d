// Package bingx implements the BingX venue binding, client and adapters.
// BingX ships gzip-compressed frames and an application-level "Ping" text
// heartbeat that must be answered with "Pong" — there is no JSON ping
// payload, so PingPayload is nil and DecodeFrame (in decoder.go) handles
// the heartbeat reply.
package bingx

import (
	"fmt"

	"marketfeed/errs"
	"marketfeed/types"
)

const (
	spotWSURL    = "wss://open-api-ws.bingx.com/market"
	futuresWSURL = "wss://open-api-swap.bingx.com/swap-market"
)

// Binding implements wsengine.Binding for BingX.
type Binding struct{}

func (Binding) ConnectionURI(spec types.SubscriptionSpec) (string, error) {
	if spec.Market == types.Futures {
		return futuresWSURL, nil
	}
	return spotWSURL, nil
}

func dataType(topic string) (string, error) {
	if topic != "aggtrades" {
		return "", errs.New(errs.MarketMismatch, string(types.BingX), fmt.Sprintf("bingx has no channel for topic %q", topic))
	}
	return "trade", nil
}

func (Binding) SubscribePayload(spec types.SubscriptionSpec) ([]interface{}, error) {
	if len(spec.Tickers) == 0 {
		return nil, errs.New(errs.TickersRequired, string(types.BingX), "bingx subscriptions require at least one ticker")
	}
	suffix, err := dataType(spec.Topic)
	if err != nil {
		return nil, err
	}

	frames := make([]interface{}, 0, len(spec.Tickers))
	for _, t := range spec.Tickers {
		frames = append(frames, map[string]interface{}{
			"reqType":  "sub",
			"dataType": fmt.Sprintf("%s@%s", t, suffix),
		})
	}
	return frames, nil
}

// PingPayload is nil: BingX's heartbeat is server-initiated ("Ping" gzip
// text), answered reactively by DecodeFrame, not sent proactively.
func (Binding) PingPayload(spec types.SubscriptionSpec) interface{} {
	return nil
}
