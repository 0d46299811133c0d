package xt

import (
	"encoding/json"

	"marketfeed/adapt"
	"marketfeed/errs"
	"marketfeed/types"
)

const venueName = "xt"

// wsEnvelope wraps every XT push.
type wsEnvelope struct {
	Topic string          `json:"topic"`
	Data  json.RawMessage `json:"data"`
}

// tradeData mirrors a trade@<symbol> push's data object.
type tradeData struct {
	Symbol string `json:"s"`
	Time   int64  `json:"t"`
	Price  string `json:"p"`
	Qty    string `json:"a"`
	Side   string `json:"m"` // "BID" or "ASK"
}

// AggtradesMessage decodes a trade@<symbol> push.
func AggtradesMessage(raw json.RawMessage) ([]types.AggTrade, error) {
	var env wsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode trade envelope", err)
	}
	var t tradeData
	if err := json.Unmarshal(env.Data, &t); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode trade data", err)
	}
	price, err := adapt.ParseFloat(venueName, "p", t.Price)
	if err != nil {
		return nil, err
	}
	qty, err := adapt.ParseFloat(venueName, "a", t.Qty)
	if err != nil {
		return nil, err
	}
	side := types.Buy
	if t.Side == "ASK" {
		side = types.Sell
	}
	return []types.AggTrade{{T: t.Time, S: t.Symbol, Side: side, P: price, V: qty}}, nil
}
