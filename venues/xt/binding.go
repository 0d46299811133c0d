// Package xt implements the XT venue binding, client and adapters. XT has
// no kline or ticker public socket; only aggtrades is wired (see
// the implemented-socket matrix).
package xt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"marketfeed/errs"
	"marketfeed/fixer"
	"marketfeed/types"
	"marketfeed/wsengine"
)

const (
	spotWSURL    = "wss://stream.xt.com/public"
	futuresWSURL = "wss://fstream.xt.com/ws/market"
)

// Binding implements wsengine.Binding for XT. Fixer, when set, corrects
// futures trade@ contract sizes to base-asset units; spot symbols never
// match an entry in the futures-only table, so the same fix pass is safe
// to run unconditionally for both markets.
type Binding struct {
	Fixer *fixer.Table
}

func (Binding) ConnectionURI(spec types.SubscriptionSpec) (string, error) {
	if spec.Market == types.Futures {
		return futuresWSURL, nil
	}
	return spotWSURL, nil
}

func channelName(market types.MarketType, topic string) (string, error) {
	if topic != "aggtrades" {
		return "", errs.New(errs.MarketMismatch, string(types.XT), fmt.Sprintf("xt has no channel for topic %q", topic))
	}
	if market == types.Futures {
		return "trade", nil
	}
	return "trade", nil
}

// SubscribePayload returns one frame, carrying a fresh random message id
// (XT's subscribe envelope requires one; google/uuid is the only
// generator this module imports).
func (Binding) SubscribePayload(spec types.SubscriptionSpec) ([]interface{}, error) {
	if len(spec.Tickers) == 0 {
		return nil, errs.New(errs.TickersRequired, string(types.XT), "xt subscriptions require at least one ticker")
	}
	channel, err := channelName(spec.Market, spec.Topic)
	if err != nil {
		return nil, err
	}

	params := make([]string, len(spec.Tickers))
	for i, t := range spec.Tickers {
		params[i] = fmt.Sprintf("%s@%s", channel, t)
	}

	return []interface{}{map[string]interface{}{
		"method": "subscribe",
		"params": params,
		"id":     uuid.NewString(),
	}}, nil
}

// PingPayload is the literal string "ping".
func (Binding) PingPayload(spec types.SubscriptionSpec) interface{} {
	return "ping"
}

// topicPeek reads just the topic field every XT push carries.
type topicPeek struct {
	Topic string `json:"topic"`
}

// DecodeFrame implements wsengine.FrameDecoder only when a contract-size
// table is wired in: trade@ frames are decoded straight into fixed
// []types.AggTrade instead of the generic JSON value every other topic
// still gets via wsengine.DefaultDecodeFrame.
func (b Binding) DecodeFrame(raw []byte) (interface{}, bool, interface{}, error) {
	if b.Fixer == nil {
		return wsengine.DefaultDecodeFrame(raw)
	}
	var peek topicPeek
	if err := json.Unmarshal(raw, &peek); err != nil || !strings.HasPrefix(peek.Topic, "trade@") {
		return wsengine.DefaultDecodeFrame(raw)
	}
	trades, err := AggtradesMessage(raw)
	if err != nil {
		return nil, false, nil, err
	}
	for i := range trades {
		trades[i].V = b.Fixer.AggtradeFix(trades[i].S, trades[i].V)
	}
	return trades, false, nil, nil
}
