package bitunix

import (
	"encoding/json"

	"marketfeed/adapt"
	"marketfeed/errs"
	"marketfeed/types"
)

const venueName = "bitunix"

// wsEnvelope wraps every Bitunix futures push.
type wsEnvelope struct {
	Ch     string            `json:"ch"`
	Symbol string            `json:"symbol"`
	Data   []json.RawMessage `json:"data"`
}

// tradeRow mirrors one row of a trade push's data array.
type tradeRow struct {
	Time  int64  `json:"t"`
	Price string `json:"p"`
	Qty   string `json:"v"`
	Side  string `json:"s"` // "buy" / "sell"
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
		price, err := adapt.ParseFloat(venueName, "p", t.Price)
		if err != nil {
			return nil, err
		}
		qty, err := adapt.ParseFloat(venueName, "v", t.Qty)
		if err != nil {
			return nil, err
		}
		side := types.Buy
		if t.Side == "sell" {
			side = types.Sell
		}
		out = append(out, types.AggTrade{T: t.Time, S: env.Symbol, Side: side, P: price, V: qty})
	}
	return out, nil
}
