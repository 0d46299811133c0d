// Package okx implements the OKX venue binding, client and adapters. OKX
// splits its public WebSocket into two URIs by topic: "business" for
// trades-all and candle channels, "public" for everything else.
package okx

import (
	"encoding/json"
	"fmt"
	"strings"

	"marketfeed/errs"
	"marketfeed/fixer"
	"marketfeed/types"
	"marketfeed/wsengine"
)

const (
	publicWSURL   = "wss://ws.okx.com:8443/ws/v5/public"
	businessWSURL = "wss://ws.okx.com:8443/ws/v5/business"
)

// Binding implements wsengine.Binding for OKX. Fixer, when set, corrects
// trades-all contract sizes to base-asset units before a frame reaches
// the queue; it is nil until the contract-size fixer's background table
// is ready.
type Binding struct {
	Fixer *fixer.Table
}

func (Binding) ConnectionURI(spec types.SubscriptionSpec) (string, error) {
	if isBusinessTopic(spec.Topic) {
		return businessWSURL, nil
	}
	return publicWSURL, nil
}

func isBusinessTopic(topic string) bool {
	return topic == "aggtrades" || topic == "klines" || strings.HasPrefix(topic, "candle")
}

func channelName(topic string, tf types.Timeframe) (string, error) {
	switch topic {
	case "klines":
		token, err := okxInterval(tf)
		if err != nil {
			return "", err
		}
		return "candle" + token, nil
	case "aggtrades":
		return "trades-all", nil
	case "tickers":
		return "tickers", nil
	case "liquidations":
		return "liquidation-orders", nil
	default:
		return "", errs.New(errs.MarketMismatch, string(types.OKX), fmt.Sprintf("okx has no channel for topic %q", topic))
	}
}

func okxInterval(tf types.Timeframe) (string, error) {
	switch tf {
	case types.TF1m:
		return "1m", nil
	case types.TF3m:
		return "3m", nil
	case types.TF5m:
		return "5m", nil
	case types.TF15m:
		return "15m", nil
	case types.TF30m:
		return "30m", nil
	case types.TF1h:
		return "1H", nil
	case types.TF2h:
		return "2H", nil
	case types.TF4h:
		return "4H", nil
	case types.TF6h:
		return "6H", nil
	case types.TF12h:
		return "12H", nil
	case types.TF1d:
		return "1D", nil
	case types.TF1w:
		return "1W", nil
	case types.TF1M:
		return "1M", nil
	default:
		return "", errs.New(errs.TimeframeUnsupported, string(types.OKX), fmt.Sprintf("okx has no candle interval for %s", tf))
	}
}

func (Binding) SubscribePayload(spec types.SubscriptionSpec) ([]interface{}, error) {
	if spec.Topic != "liquidations" && len(spec.Tickers) == 0 {
		return nil, errs.New(errs.TickersRequired, string(types.OKX), "okx subscriptions require at least one ticker")
	}
	channel, err := channelName(spec.Topic, spec.Timeframe)
	if err != nil {
		return nil, err
	}

	args := make([]map[string]string, 0, len(spec.Tickers))
	if len(spec.Tickers) == 0 {
		args = append(args, map[string]string{"channel": channel})
	}
	for _, t := range spec.Tickers {
		args = append(args, map[string]string{"channel": channel, "instId": t})
	}

	return []interface{}{map[string]interface{}{
		"op":   "subscribe",
		"args": args,
	}}, nil
}

// PingPayload is nil: no application-level "ping" text is sent to OKX;
// the session relies on the transport's control-frame ping/pong.
func (Binding) PingPayload(spec types.SubscriptionSpec) interface{} {
	return nil
}

// channelPeek reads just the arg.channel field out of a wsEnvelope, cheap
// enough to do on every frame before deciding whether the contract-size
// fix applies.
type channelPeek struct {
	Arg struct {
		Channel string `json:"channel"`
	} `json:"arg"`
}

// DecodeFrame implements wsengine.FrameDecoder only when a contract-size
// table is wired in: trades-all frames on SWAP instruments report size in
// contracts, so they are decoded straight into fixed []types.AggTrade
// instead of the generic JSON value every other channel still gets via
// wsengine.DefaultDecodeFrame.
func (b Binding) DecodeFrame(raw []byte) (interface{}, bool, interface{}, error) {
	if b.Fixer == nil {
		return wsengine.DefaultDecodeFrame(raw)
	}
	var peek channelPeek
	if err := json.Unmarshal(raw, &peek); err != nil || peek.Arg.Channel != "trades-all" {
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
