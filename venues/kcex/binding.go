// Package kcex implements the KCEX venue binding, client and adapters.
// KCEX is futures-only and rejects batched subscriptions: one
// {"method":"sub.deal",...} frame per ticker.
package kcex

import (
	"fmt"

	"marketfeed/errs"
	"marketfeed/fixer"
	"marketfeed/types"
)

const futuresWSURL = "wss://www.kcex.com/fapi/edge"

// Binding implements wsengine.Binding for KCEX. Fixer, when set, corrects
// sub.deal contract sizes to base-asset units.
type Binding struct {
	Fixer *fixer.Table
}

func (Binding) ConnectionURI(spec types.SubscriptionSpec) (string, error) {
	if spec.Market != types.Futures {
		return "", errs.New(errs.MarketMismatch, string(types.KCEX), "kcex only offers a futures public socket")
	}
	return futuresWSURL, nil
}

func (Binding) SubscribePayload(spec types.SubscriptionSpec) ([]interface{}, error) {
	if spec.Topic != "aggtrades" {
		return nil, errs.New(errs.MarketMismatch, string(types.KCEX), fmt.Sprintf("kcex has no channel for topic %q", spec.Topic))
	}
	if len(spec.Tickers) == 0 {
		return nil, errs.New(errs.TickersRequired, string(types.KCEX), "kcex subscriptions require at least one ticker")
	}

	frames := make([]interface{}, 0, len(spec.Tickers))
	for _, t := range spec.Tickers {
		frames = append(frames, map[string]interface{}{
			"method": "sub.deal",
			"param": map[string]interface{}{
				"symbol":   t,
				"compress": true,
			},
		})
	}
	return frames, nil
}

func (Binding) PingPayload(spec types.SubscriptionSpec) interface{} {
	return map[string]string{"method": "ping"}
}
