package gate

import (
	"encoding/json"

	"marketfeed/adapt"
	"marketfeed/errs"
	"marketfeed/types"
)

const venueName = "gate"

// wsEnvelope wraps every Gate WS push.
type wsEnvelope struct {
	Channel string          `json:"channel"`
	Event   string          `json:"event"`
	Result  json.RawMessage `json:"result"`
}

// spotTrade mirrors spot.trades push results.
type spotTrade struct {
	CreateTimeMs string `json:"create_time_ms"`
	CurrencyPair string `json:"currency_pair"`
	Side         string `json:"side"`
	Price        string `json:"price"`
	Amount       string `json:"amount"`
}

// futuresTrade mirrors futures.trades push results (array form).
type futuresTrade struct {
	CreateTimeMs float64 `json:"create_time_ms"`
	Contract     string  `json:"contract"`
	Size         float64 `json:"size"`
	Price        string  `json:"price"`
}

// AggtradesMessage decodes a spot.trades or futures.trades push,
// distinguishing by payload shape (spot wraps a single object, futures an
// array of objects).
func AggtradesMessage(raw json.RawMessage) ([]types.AggTrade, error) {
	var env wsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode trade envelope", err)
	}
	if env.Event != "update" || len(env.Result) == 0 {
		return nil, nil
	}

	if env.Channel == "futures.trades" {
		var rows []futuresTrade
		if err := json.Unmarshal(env.Result, &rows); err != nil {
			return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode futures trade rows", err)
		}
		out := make([]types.AggTrade, 0, len(rows))
		for _, r := range rows {
			price, err := adapt.ParseFloat(venueName, "price", r.Price)
			if err != nil {
				return nil, err
			}
			side := types.Buy
			size := r.Size
			if size < 0 {
				side = types.Sell
				size = -size
			}
			out = append(out, types.AggTrade{T: int64(r.CreateTimeMs), S: r.Contract, Side: side, P: price, V: size})
		}
		return out, nil
	}

	var t spotTrade
	if err := json.Unmarshal(env.Result, &t); err != nil {
		return nil, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode spot trade result", err)
	}
	price, err := adapt.ParseFloat(venueName, "price", t.Price)
	if err != nil {
		return nil, err
	}
	amount, err := adapt.ParseFloat(venueName, "amount", t.Amount)
	if err != nil {
		return nil, err
	}
	ts, err := adapt.ParseFloat(venueName, "create_time_ms", t.CreateTimeMs)
	if err != nil {
		return nil, err
	}
	side := types.Buy
	if t.Side == "sell" {
		side = types.Sell
	}
	return []types.AggTrade{{T: int64(ts), S: t.CurrencyPair, Side: side, P: price, V: amount}}, nil
}

// depthResult mirrors a spot.order_book or futures.order_book push result;
// both channels share the same snapshot shape.
type depthResult struct {
	Symbol string      `json:"s"`
	Asks   [][2]string `json:"asks"`
	Bids   [][2]string `json:"bids"`
}

// Depth decodes a spot.order_book or futures.order_book push.
func Depth(raw json.RawMessage) (types.Depth, error) {
	var env wsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return types.Depth{}, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode depth envelope", err)
	}
	var r depthResult
	if err := json.Unmarshal(env.Result, &r); err != nil {
		return types.Depth{}, errs.Wrap(errs.AdaptFailure, venueName, "failed to decode depth result", err)
	}
	asks, err := adapt.ParseLevels(venueName, "ask", r.Asks)
	if err != nil {
		return types.Depth{}, err
	}
	bids, err := adapt.ParseLevels(venueName, "bid", r.Bids)
	if err != nil {
		return types.Depth{}, err
	}
	d := types.Depth{Symbol: r.Symbol, Asks: asks, Bids: bids}
	adapt.SortDepth(&d)
	return d, nil
}
