package bingx

import (
	"encoding/json"
	"strings"

	"marketfeed/adapt"
	"marketfeed/errs"
	"marketfeed/types"
)

const venueName = "bingx"

// tradePush mirrors a <symbol>@trade push (already gunzipped by
// DecodeFrame).
type tradePush struct {
	DataType string `json:"dataType"`
	Data     struct {
		Symbol string `json:"s"`
		Time   int64  `json:"T"`
		Price  string `json:"p"`
		Qty    string `json:"q"`
		Maker  bool   `json:"m"`
	} `json:"data"`
}

// AggtradesMessage decodes a <symbol>@trade push.
func AggtradesMessage(raw json.RawMessage) ([]types.AggTrade, error) {
	var p tradePush
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode trade push", err)
	}
	price, err := adapt.ParseFloat(venueName, "p", p.Data.Price)
	if err != nil {
		return nil, err
	}
	qty, err := adapt.ParseFloat(venueName, "q", p.Data.Qty)
	if err != nil {
		return nil, err
	}
	side := types.Buy
	if p.Data.Maker {
		side = types.Sell
	}
	return []types.AggTrade{{T: p.Data.Time, S: p.Data.Symbol, Side: side, P: price, V: qty}}, nil
}

// depthPush mirrors a <symbol>@depth<N> push (already gunzipped by
// DecodeFrame). The payload itself carries no symbol field.
type depthPush struct {
	DataType string `json:"dataType"`
	Data     struct {
		Asks [][2]string `json:"asks"`
		Bids [][2]string `json:"bids"`
	} `json:"data"`
}

// Depth decodes a <symbol>@depth<N> push, recovering the symbol from the
// leading segment of dataType ("BTC-USDT@depth20@100ms").
func Depth(raw json.RawMessage) (types.Depth, error) {
	var p depthPush
	if err := json.Unmarshal(raw, &p); err != nil {
		return types.Depth{}, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode depth push", err)
	}
	symbol := p.DataType
	if i := strings.Index(symbol, "@"); i >= 0 {
		symbol = symbol[:i]
	}
	asks, err := adapt.ParseLevels(venueName, "ask", p.Data.Asks)
	if err != nil {
		return types.Depth{}, err
	}
	bids, err := adapt.ParseLevels(venueName, "bid", p.Data.Bids)
	if err != nil {
		return types.Depth{}, err
	}
	d := types.Depth{Symbol: symbol, Asks: asks, Bids: bids}
	adapt.SortDepth(&d)
	return d, nil
}
