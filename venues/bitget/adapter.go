package bitget

import (
	"encoding/json"

	"marketfeed/adapt"
	"marketfeed/errs"
	"marketfeed/types"
)

const venueName = "bitget"

type wsEnvelope struct {
	Arg struct {
		Channel string `json:"channel"`
		InstID  string `json:"instId"`
	} `json:"arg"`
	Data []json.RawMessage `json:"data"`
}

// KlineMessage decodes a candle* push. Rows are positional:
// [ts, open, high, low, close, volume, quoteVolume].
func KlineMessage(raw json.RawMessage) ([]types.Kline, error) {
	var env wsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode candle envelope", err)
	}
	out := make([]types.Kline, 0, len(env.Data))
	for _, row := range env.Data {
		var fields [7]string
		if err := json.Unmarshal(row, &fields); err != nil {
			return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode candle row", err)
		}
		ts, err := adapt.ParseFloat(venueName, "ts", fields[0])
		if err != nil {
			return nil, err
		}
		o, err := adapt.ParseFloat(venueName, "open", fields[1])
		if err != nil {
			return nil, err
		}
		h, err := adapt.ParseFloat(venueName, "high", fields[2])
		if err != nil {
			return nil, err
		}
		l, err := adapt.ParseFloat(venueName, "low", fields[3])
		if err != nil {
			return nil, err
		}
		c, err := adapt.ParseFloat(venueName, "close", fields[4])
		if err != nil {
			return nil, err
		}
		v, err := adapt.ParseFloat(venueName, "quoteVolume", fields[6])
		if err != nil {
			return nil, err
		}
		out = append(out, types.Kline{S: env.Arg.InstID, T: int64(ts), O: o, H: h, L: l, C: c, V: v, Closed: true})
	}
	return out, nil
}

// tradeRow mirrors one row of a trade push's data array.
type tradeRow struct {
	Ts   string `json:"ts"`
	Px   string `json:"price"`
	Sz   string `json:"size"`
	Side string `json:"side"`
}

// AggtradesMessage decodes a trade push.
func AggtradesMessage(raw json.RawMessage) ([]types.AggTrade, error) {
	var env wsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode trade envelope", err)
	}
	out := make([]types.AggTrade, 0, len(env.Data))
	for _, row := range env.Data {
		var t tradeRow
		if err := json.Unmarshal(row, &t); err != nil {
			return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode trade row", err)
		}
		ts, err := adapt.ParseFloat(venueName, "ts", t.Ts)
		if err != nil {
			return nil, err
		}
		px, err := adapt.ParseFloat(venueName, "price", t.Px)
		if err != nil {
			return nil, err
		}
		sz, err := adapt.ParseFloat(venueName, "size", t.Sz)
		if err != nil {
			return nil, err
		}
		side := types.Buy
		if t.Side == "sell" {
			side = types.Sell
		}
		out = append(out, types.AggTrade{T: int64(ts), S: env.Arg.InstID, Side: side, P: px, V: sz})
	}
	return out, nil
}

// tickerRow mirrors one row of a ticker push's data array.
type tickerRow struct {
	Chg24h  string `json:"chg24h"`
	BaseVolume string `json:"baseVolume"`
	QuoteVolume string `json:"quoteVolume"`
}

// TickerMessage decodes a ticker push into symbol->TickerDaily.
func TickerMessage(raw json.RawMessage) (map[string]types.TickerDaily, error) {
	var env wsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode ticker envelope", err)
	}
	out := make(map[string]types.TickerDaily, len(env.Data))
	for _, row := range env.Data {
		var t tickerRow
		if err := json.Unmarshal(row, &t); err != nil {
			return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode ticker row", err)
		}
		chg, err := adapt.ParseFloat(venueName, "chg24h", t.Chg24h)
		if err != nil {
			return nil, err
		}
		qv, err := adapt.ParseFloat(venueName, "quoteVolume", t.QuoteVolume)
		if err != nil {
			return nil, err
		}
		out[env.Arg.InstID] = types.TickerDaily{P: adapt.RoundPercent(chg * 100), V: qv}
	}
	return out, nil
}
