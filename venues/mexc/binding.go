// Package mexc implements the MEXC venue binding, client and adapters.
// Spot accepts a single batched SUBSCRIPTION frame; futures does not and
// needs one {"method","param"} frame per ticker.
package mexc

import (
	"encoding/json"
	"fmt"

	"marketfeed/errs"
	"marketfeed/fixer"
	"marketfeed/types"
	"marketfeed/wsengine"
)

const (
	spotWSURL    = "wss://wbs-api.mexc.com/ws"
	futuresWSURL = "wss://contract.mexc.com/edge"
)

// Binding implements wsengine.Binding for MEXC. Fixer, when set, corrects
// futures push.deal contract sizes to base-asset units.
type Binding struct {
	Fixer *fixer.Table
}

func (Binding) ConnectionURI(spec types.SubscriptionSpec) (string, error) {
	if spec.Market == types.Futures {
		return futuresWSURL, nil
	}
	return spotWSURL, nil
}

func spotInterval(tf types.Timeframe) (string, error) {
	switch tf {
	case types.TF1m:
		return "Min1", nil
	case types.TF5m:
		return "Min5", nil
	case types.TF15m:
		return "Min15", nil
	case types.TF30m:
		return "Min30", nil
	case types.TF1h:
		return "Min60", nil
	case types.TF4h:
		return "Hour4", nil
	case types.TF8h:
		return "Hour8", nil
	case types.TF1d:
		return "Day1", nil
	case types.TF1w:
		return "Week1", nil
	case types.TF1M:
		return "Month1", nil
	default:
		return "", errs.New(errs.TimeframeUnsupported, string(types.MEXC), fmt.Sprintf("mexc spot has no kline interval for %s", tf))
	}
}

func spotParam(symbol, topic string, tf types.Timeframe) (string, error) {
	switch topic {
	case "klines":
		interval, err := spotInterval(tf)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("spot@public.kline.v3.api@%s@%s", symbol, interval), nil
	case "aggtrades":
		return fmt.Sprintf("spot@public.aggre.deals.v3.api.pb@100ms@%s", symbol), nil
	case "tickers":
		return fmt.Sprintf("spot@public.bookTicker.v3.api@%s", symbol), nil
	default:
		return "", errs.New(errs.MarketMismatch, string(types.MEXC), fmt.Sprintf("mexc spot has no channel for topic %q", topic))
	}
}

func futuresParam(symbol, topic string) (string, map[string]string, error) {
	switch topic {
	case "aggtrades":
		return "sub.deal", map[string]string{"symbol": symbol}, nil
	default:
		return "", nil, errs.New(errs.MarketMismatch, string(types.MEXC), fmt.Sprintf("mexc futures has no channel for topic %q", topic))
	}
}

func (Binding) SubscribePayload(spec types.SubscriptionSpec) ([]interface{}, error) {
	if len(spec.Tickers) == 0 {
		return nil, errs.New(errs.TickersRequired, string(types.MEXC), "mexc subscriptions require at least one ticker")
	}

	if spec.Market == types.Futures {
		frames := make([]interface{}, 0, len(spec.Tickers))
		for _, t := range spec.Tickers {
			method, param, err := futuresParam(t, spec.Topic)
			if err != nil {
				return nil, err
			}
			frames = append(frames, map[string]interface{}{"method": method, "param": param})
		}
		return frames, nil
	}

	params := make([]string, 0, len(spec.Tickers))
	for _, t := range spec.Tickers {
		p, err := spotParam(t, spec.Topic, spec.Timeframe)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return []interface{}{map[string]interface{}{
		"method": "SUBSCRIPTION",
		"params": params,
	}}, nil
}

func (Binding) PingPayload(spec types.SubscriptionSpec) interface{} {
	if spec.Market == types.Futures {
		return map[string]string{"method": "ping"}
	}
	return map[string]string{"method": "PING"}
}

// channelPeek reads just the channel field every futures push carries.
type channelPeek struct {
	Channel string `json:"channel"`
}

// DecodeFrame implements wsengine.FrameDecoder only when a contract-size
// table is wired in: futures push.deal frames report size in contracts,
// so they are decoded straight into fixed []types.AggTrade instead of the
// generic JSON value every other channel still gets via
// wsengine.DefaultDecodeFrame.
func (b Binding) DecodeFrame(raw []byte) (interface{}, bool, interface{}, error) {
	if b.Fixer == nil {
		return wsengine.DefaultDecodeFrame(raw)
	}
	var peek channelPeek
	if err := json.Unmarshal(raw, &peek); err != nil || peek.Channel != "push.deal" {
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
