package okx

import (
	"encoding/json"

	"marketfeed/adapt"
	"marketfeed/errs"
	"marketfeed/types"
)

const venueName = "okx"

// wsEnvelope wraps every OKX public WS push.
type wsEnvelope struct {
	Arg struct {
		Channel string `json:"channel"`
		InstID  string `json:"instId"`
	} `json:"arg"`
	Data []json.RawMessage `json:"data"`
}

// KlineMessage decodes a candle* push. Each data row is a positional
// array: [ts, o, h, l, c, vol, volCcy, volCcyQuote, confirm].
func KlineMessage(raw json.RawMessage) ([]types.Kline, error) {
	var env wsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode candle envelope", err)
	}
	out := make([]types.Kline, 0, len(env.Data))
	for _, row := range env.Data {
		var fields [9]string
		if err := json.Unmarshal(row, &fields); err != nil {
			return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode candle row", err)
		}
		k, err := parseCandleRow(env.Arg.InstID, fields)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

func parseCandleRow(symbol string, fields [9]string) (types.Kline, error) {
	ts, err := adapt.ParseFloat(venueName, "ts", fields[0])
	if err != nil {
		return types.Kline{}, err
	}
	o, err := adapt.ParseFloat(venueName, "o", fields[1])
	if err != nil {
		return types.Kline{}, err
	}
	h, err := adapt.ParseFloat(venueName, "h", fields[2])
	if err != nil {
		return types.Kline{}, err
	}
	l, err := adapt.ParseFloat(venueName, "l", fields[3])
	if err != nil {
		return types.Kline{}, err
	}
	c, err := adapt.ParseFloat(venueName, "c", fields[4])
	if err != nil {
		return types.Kline{}, err
	}
	v, err := adapt.ParseFloat(venueName, "volCcyQuote", fields[7])
	if err != nil {
		return types.Kline{}, err
	}
	closed := fields[8] == "1"
	return types.Kline{S: symbol, T: int64(ts), O: o, H: h, L: l, C: c, V: v, Closed: closed}, nil
}

// tradeRow mirrors one row of a trades-all push's data array.
type tradeRow struct {
	InstID  string `json:"instId"`
	Px      string `json:"px"`
	Sz      string `json:"sz"`
	Side    string `json:"side"`
	Ts      string `json:"ts"`
}

// AggtradesMessage decodes a trades-all push.
func AggtradesMessage(raw json.RawMessage) ([]types.AggTrade, error) {
	var env wsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode trades envelope", err)
	}
	out := make([]types.AggTrade, 0, len(env.Data))
	for _, row := range env.Data {
		var t tradeRow
		if err := json.Unmarshal(row, &t); err != nil {
			return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode trade row", err)
		}
		px, err := adapt.ParseFloat(venueName, "px", t.Px)
		if err != nil {
			return nil, err
		}
		sz, err := adapt.ParseFloat(venueName, "sz", t.Sz)
		if err != nil {
			return nil, err
		}
		ts, err := adapt.ParseFloat(venueName, "ts", t.Ts)
		if err != nil {
			return nil, err
		}
		side := types.Buy
		if t.Side == "sell" {
			side = types.Sell
		}
		out = append(out, types.AggTrade{T: int64(ts), S: t.InstID, Side: side, P: px, V: sz})
	}
	return out, nil
}

// tickerRow mirrors one row of a tickers push's data array.
type tickerRow struct {
	InstID  string `json:"instId"`
	Last    string `json:"last"`
	Open24h string `json:"open24h"`
	VolCcy24h string `json:"volCcy24h"`
}

// TickerMessage decodes a tickers push into symbol->TickerDaily. OKX does
// not publish a ready-made percent field; it is derived from last/open24h.
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
		last, err := adapt.ParseFloat(venueName, "last", t.Last)
		if err != nil {
			return nil, err
		}
		open, err := adapt.ParseFloat(venueName, "open24h", t.Open24h)
		if err != nil {
			return nil, err
		}
		volCcy, err := adapt.ParseFloat(venueName, "volCcy24h", t.VolCcy24h)
		if err != nil {
			return nil, err
		}
		pcnt := 0.0
		if open != 0 {
			pcnt = (last - open) / open * 100
		}
		// OKX publishes volume in contract currency; multiply by last to
		// reach quote-currency terms.
		out[t.InstID] = types.TickerDaily{P: adapt.RoundPercent(pcnt), V: volCcy * last}
	}
	return out, nil
}

// liquidationRow mirrors one row of a liquidation-orders push's detail
// array (nested under instId/instType per-message).
type liquidationOrderRow struct {
	Side string `json:"side"`
	Sz   string `json:"sz"`
	Bkpx string `json:"bkPx"`
	Ts   string `json:"ts"`
}

type liquidationMessageData struct {
	InstID  string                `json:"instId"`
	Details []liquidationOrderRow `json:"details"`
}

// LiquidationMessage decodes a liquidation-orders push.
func LiquidationMessage(raw json.RawMessage) ([]types.Liquidation, error) {
	var env struct {
		Data []liquidationMessageData `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode liquidation envelope", err)
	}
	var out []types.Liquidation
	for _, d := range env.Data {
		for _, row := range d.Details {
			sz, err := adapt.ParseFloat(venueName, "sz", row.Sz)
			if err != nil {
				return nil, err
			}
			px, err := adapt.ParseFloat(venueName, "bkPx", row.Bkpx)
			if err != nil {
				return nil, err
			}
			ts, err := adapt.ParseFloat(venueName, "ts", row.Ts)
			if err != nil {
				return nil, err
			}
			side := types.Buy
			if row.Side == "sell" {
				side = types.Sell
			}
			out = append(out, types.Liquidation{T: int64(ts), S: d.InstID, Side: side, V: sz, P: px})
		}
	}
	return out, nil
}
